package model

import "strings"

// Line là một dòng đã render của message
type Line struct {
	Text    string `json:"text"`
	Heading bool   `json:"heading"`
}

// Render tách content theo dòng; dòng bắt đầu và kết thúc bằng ** là heading (bỏ mọi dấu **).
// Dòng chỉ có "**" hay "***" cũng là heading, text còn lại "" và "*".
// Chỉ đọc content, không đụng tới message đã lưu.
func Render(content string) []Line {
	raw := strings.Split(content, "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		if strings.HasPrefix(l, "**") && strings.HasSuffix(l, "**") {
			lines = append(lines, Line{Text: strings.ReplaceAll(l, "**", ""), Heading: true})
			continue
		}
		lines = append(lines, Line{Text: l})
	}
	return lines
}
