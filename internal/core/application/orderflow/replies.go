package orderflow

import (
	"fmt"
	"strings"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/dialog"
	"bookstore/internal/pkg/textnorm"
)

const (
	ReplyAskTitle        = "Bạn muốn mua sách gì ạ? Vui lòng cho biết tên sách."
	ReplyCancelled       = "Đã hủy đặt hàng. Bạn cần gì khác không ạ?"
	ReplyThanksInFlow    = "Rất vui được giúp đỡ bạn! Bạn còn cần gì cho đơn hàng không ạ?"
	ReplySelectionGone   = "Xin lỗi, danh sách lựa chọn đã hết hạn. Bạn vui lòng tìm lại sách nhé."
	ReplyDraftGone       = "Xin lỗi, thông tin đơn hàng đã hết hạn. Bạn vui lòng đặt lại sách nhé."
	ReplyUnknownIndex    = "Số bạn chọn không có trong danh sách, vui lòng chọn lại."
	ReplyUnclearChoice   = "Mình không hiểu lựa chọn của bạn, vui lòng chọn theo số (ví dụ: 1) hoặc viết rõ tên sách."
	ReplyChosenMissing   = "Không tìm thấy sách đã chọn, vui lòng thử lại."
	ReplyAskName         = "Mình có thể biết tên của bạn không?"
	ReplyAskPhone        = "Bạn cho mình xin số điện thoại để liên hệ nhé?"
	ReplyAskAddress      = "Bạn vui lòng cung cấp địa chỉ giao hàng?"
	ReplyBadName         = "Tên quá ngắn, bạn nhập lại giúp mình nhé!"
	ReplyBadPhone        = "Số điện thoại không hợp lệ, vui lòng nhập lại (10-11 số, bắt đầu bằng 0)."
	ReplyBadAddress      = "Địa chỉ hơi ngắn, bạn nhập chi tiết hơn nhé!"
	ReplyEditBadPhone    = "Số điện thoại không hợp lệ (10-11 chữ số, bắt đầu bằng 0)."
	ReplyEditBadAddress  = "Địa chỉ quá ngắn, vui lòng nhập chi tiết hơn."
	ReplyEditBadName     = "Tên quá ngắn, vui lòng nhập lại."
	ReplyEditedPhone     = "Đã cập nhật số điện thoại. Vui lòng gõ 'xác nhận' để hoàn tất."
	ReplyEditedAddress   = "Đã cập nhật địa chỉ. Vui lòng gõ 'xác nhận' để hoàn tất."
	ReplyEditedName      = "Đã cập nhật tên người nhận. Vui lòng gõ 'xác nhận' để hoàn tất."
	ReplyQuantityIsFixed = "Đơn nhiều sách không thể sửa số lượng. Bạn có thể 'hủy' và đặt lại nhé."
	ReplyWhichField      = "Bạn muốn sửa trường nào? (số lượng, tên, sđt, địa chỉ), ví dụ: 'sửa số lượng 2'"
	ReplyConfirmOptions  = "Vui lòng gõ 'xác nhận' để hoàn tất hoặc 'sửa <trường>' để chỉnh thông tin, 'hủy' để huỷ đơn."
	ReplyOrderFailed     = "Có lỗi khi tạo đơn hàng, vui lòng thử lại sau."
	ReplyNothingResolved = "Xin lỗi, mình chưa thể tạo đơn với các sách bạn yêu cầu:"
)

func replyNotFound(keyword string) string {
	return fmt.Sprintf("Xin lỗi, tôi không tìm thấy sách '%s'. Vui lòng kiểm tra lại tên sách.", keyword)
}

func replyOutOfStock(title string) string {
	return fmt.Sprintf("Xin lỗi, sách '%s' hiện đã hết hàng.", title)
}

func replyAskQuantity(stock int) string {
	return fmt.Sprintf("Bạn muốn mua mấy cuốn ạ? (Còn lại: %d cuốn)", stock)
}

func replyBadQuantity(stock int) string {
	return fmt.Sprintf("Bạn muốn mua bao nhiêu cuốn? Số lượng phải từ 1 đến %d (Còn lại: %d cuốn)", stock, stock)
}

func replyEditBadQuantity(stock int) string {
	return fmt.Sprintf("Số lượng không hợp lệ hoặc vượt quá tồn kho (%d), vui lòng nhập lại.", stock)
}

func replyEditedQuantity(quantity int, total float64) string {
	return fmt.Sprintf("Đã cập nhật số lượng thành %d. Tổng tiền mới: %s. Gõ 'xác nhận' để hoàn tất.",
		quantity, textnorm.FormatVND(total))
}

func replyChosen(book catalog.Book) string {
	return fmt.Sprintf("Bạn đã chọn **%s**. Bạn muốn mua mấy cuốn? (Còn lại: %d)", book.Title, book.Stock)
}

func replyPlaced(orderID int64, phone string) string {
	return fmt.Sprintf("✅ **ĐẶT HÀNG THÀNH CÔNG!**\n\n"+
		"Mã đơn hàng: #%d\n"+
		"Chúng tôi sẽ liên hệ với bạn qua số %s để xác nhận.\n"+
		"Cảm ơn bạn đã mua sách tại BookStore! 🎉", orderID, phone)
}

// CandidateList renders the numbered shortlist of a selection.
func CandidateList(sel *dialog.Selection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tôi tìm thấy %d kết quả. Vui lòng chọn số tương ứng (1-%d) hoặc viết rõ tên sách:\n\n",
		sel.Total, len(sel.Preview))
	for i, book := range sel.Preview {
		fmt.Fprintf(&b, "%d. **%s** - %s | Giá: %s | Còn: %d\n",
			i+1, book.Title, book.Author, textnorm.FormatVND(book.Price), book.Stock)
	}
	if n := sel.Omitted(); n > 0 {
		fmt.Fprintf(&b, "\n... và %d kết quả khác.", n)
	}
	b.WriteString("\n\nBạn chọn số mấy?")
	return b.String()
}

func question(slot dialog.Slot, draft *dialog.Draft) string {
	switch slot {
	case dialog.SlotQuantity:
		return replyAskQuantity(draft.Item().Stock)
	case dialog.SlotCustomerName:
		return ReplyAskName
	case dialog.SlotPhone:
		return ReplyAskPhone
	default:
		return ReplyAskAddress
	}
}

func summary(draft *dialog.Draft) string {
	var b strings.Builder
	b.WriteString("📋 **XÁC NHẬN ĐƠN HÀNG:**\n\n")
	if draft.IsSingle() {
		item := draft.Item()
		fmt.Fprintf(&b, "📚 Sách: %s\n🔢 Số lượng: %d cuốn\n", item.Title, item.Quantity)
	} else {
		b.WriteString("📚 Sách:\n")
		for _, item := range draft.Items {
			fmt.Fprintf(&b, "  • %s x %d = %s\n", item.Title, item.Quantity, textnorm.FormatVND(item.Subtotal()))
		}
		fmt.Fprintf(&b, "🔢 Tổng số lượng: %d cuốn\n", draft.TotalQuantity())
	}
	fmt.Fprintf(&b, "💰 Tổng tiền: %s\n", textnorm.FormatVND(draft.TotalPrice()))
	fmt.Fprintf(&b, "👤 Người nhận: %s\n📞 SĐT: %s\n📍 Địa chỉ: %s\n\n", draft.CustomerName, draft.Phone, draft.Address)
	b.WriteString("Gõ 'xác nhận' để hoàn tất đặt hàng, 'sửa <trường>' để sửa (ví dụ 'sửa số lượng 2'), hoặc 'hủy' để hủy đơn.")
	return b.String()
}

func warningPrefix(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	return "⚠️ " + strings.Join(warnings, "\n⚠️ ") + "\n\n"
}
