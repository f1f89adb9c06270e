package model

// ================================================
// NOTIFICATION ENTITY
// ================================================

type NotificationType string

const (
	NotificationTypeOrder  NotificationType = "order"
	NotificationTypeAI     NotificationType = "ai"
	NotificationTypePromo  NotificationType = "promo"
	NotificationTypeSystem NotificationType = "system"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeOrder, NotificationTypeAI, NotificationTypePromo, NotificationTypeSystem:
		return true
	}
	return false
}

// Page là các trang của storefront shell mà notification có thể dẫn tới
type Page string

const (
	PageHome           Page = "HOME"
	PageListing        Page = "LISTING"
	PageDetail         Page = "DETAIL"
	PageCart           Page = "CART"
	PageCheckout       Page = "CHECKOUT"
	PageProfile        Page = "PROFILE"
	PageOrderDetail    Page = "ORDER_DETAIL"
	PageAuth           Page = "AUTH"
	PageAIAssistant    Page = "AI_ASSISTANT"
	PageCompare        Page = "COMPARE"
	PageAdminDashboard Page = "ADMIN_DASHBOARD"
)

// Notification là một item trong inbox. Timestamp giữ nguyên chuỗi storefront gửi.
type Notification struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Timestamp  string           `json:"timestamp"`
	Type       NotificationType `json:"type"`
	IsRead     bool             `json:"isRead"`
	Link       string           `json:"link,omitempty"`
	TargetPage Page             `json:"targetPage,omitempty"`
}

// DeliverPayload là payload của task notification:deliver
type DeliverPayload struct {
	SessionID     string         `json:"session_id"`
	Notifications []Notification `json:"notifications"`
}
