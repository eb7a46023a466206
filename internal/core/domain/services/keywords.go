package services

import (
	"regexp"
	"strings"

	"bookstore/internal/pkg/textnorm"
)

var (
	cancelWords  = []string{"hủy", "huỷ", "thôi", "không mua", "dừng", "stop", "cancel", "tạm biệt", "bye"}
	confirmWords = []string{"xác nhận", "xac nhan", "đồng ý", "dong y"}
	thanksWords  = []string{"cảm ơn", "cám ơn", "thank", "thanks"}
	editWords    = []string{"sửa", "thay", "đổi", "edit"}

	okPattern = regexp.MustCompile(`(?i)\bok(ay)?\b`)
)

// IsCancel reports whether msg asks to abandon the current order.
func IsCancel(msg string) bool {
	return textnorm.ContainsAny(msg, cancelWords...)
}

// IsConfirm reports whether msg accepts the order summary.
func IsConfirm(msg string) bool {
	return textnorm.ContainsAny(msg, confirmWords...) || okPattern.MatchString(strings.TrimSpace(msg))
}

// IsThanks reports whether msg is a thank-you.
func IsThanks(msg string) bool {
	return textnorm.ContainsAny(msg, thanksWords...)
}

// IsGenericEdit reports whether msg asks to change something without naming
// a field the edit grammar understands.
func IsGenericEdit(msg string) bool {
	return textnorm.ContainsAny(msg, editWords...)
}
