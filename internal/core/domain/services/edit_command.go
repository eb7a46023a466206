package services

import (
	"regexp"
	"strings"

	"bookstore/internal/core/domain/model/dialog"
)

var editPattern = regexp.MustCompile(
	`(?i)(?:sửa|edit)\s+(số lượng|sl|qty|quantity|số điện thoại|sđt|sdt|phone|địa chỉ|address|tên|name)(?:\s+|$)(.*)`,
)

var editFields = map[string]dialog.Slot{
	"số lượng":      dialog.SlotQuantity,
	"sl":            dialog.SlotQuantity,
	"qty":           dialog.SlotQuantity,
	"quantity":      dialog.SlotQuantity,
	"số điện thoại": dialog.SlotPhone,
	"sđt":           dialog.SlotPhone,
	"sdt":           dialog.SlotPhone,
	"phone":         dialog.SlotPhone,
	"địa chỉ":       dialog.SlotAddress,
	"address":       dialog.SlotAddress,
	"tên":           dialog.SlotCustomerName,
	"name":          dialog.SlotCustomerName,
}

// EditCommand is a parsed "sửa <field> <value>" request.
type EditCommand struct {
	Field    dialog.Slot
	RawValue string
}

// ParseEditCommand recognizes an edit of one draft field. The value may be
// empty, in which case validation of the value rejects it.
//
//	ParseEditCommand("sửa số lượng 2")  // {SlotQuantity, "2"}, true
//	ParseEditCommand("edit phone 0987654321")
func ParseEditCommand(msg string) (EditCommand, bool) {
	m := editPattern.FindStringSubmatch(msg)
	if m == nil {
		return EditCommand{}, false
	}
	field, ok := editFields[strings.ToLower(m[1])]
	if !ok {
		return EditCommand{}, false
	}
	return EditCommand{Field: field, RawValue: strings.TrimSpace(m[2])}, true
}
