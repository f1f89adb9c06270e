package model

// Role người gửi một lượt chat
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Message là một lượt trong transcript; không sửa, không xoá sau khi append
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// State của chat session
type State string

const (
	StateIdle           State = "idle"
	StateAwaitingAnswer State = "awaiting_answer"
)

// Apology là câu trả lời cố định khi answer service lỗi
const Apology = "Xin lỗi, tôi gặp chút trục trặc trong quá trình xử lý. Hãy thử lại sau ít phút nhé!"

// Snapshot là trạng thái chat tại một thời điểm
type Snapshot struct {
	Transcript []Message `json:"transcript"`
	State      State     `json:"state"`
	Pending    bool      `json:"pending"`
}

// DefaultHints là các câu hỏi gợi ý hiển thị dưới ô chat
func DefaultHints() []string {
	return []string{
		"So sánh CPU M2 vs M3",
		"Top bàn phím cơ 2tr",
		"Build PC đồ họa giá rẻ",
		"Ưu đãi cho sinh viên",
	}
}
