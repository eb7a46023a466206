package dispatcher

import (
	"fmt"
	"strings"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/pkg/textnorm"
)

// ListLimit caps how many books the catalog listing shows.
const ListLimit = 10

const (
	ReplyGreeting = "Xin chào! 👋 Tôi là trợ lý của BookStore.\n" +
		"Tôi có thể giúp bạn:\n" +
		"• Tìm sách: 'Tìm sách [tên sách]'\n" +
		"• Đặt sách: 'Tôi muốn mua [tên sách]'\n" +
		"• Xem danh sách: 'Có những sách gì'\n" +
		"Bạn cần gì ạ?"
	ReplyAskSearch   = "Bạn muốn tìm sách gì ạ? Vui lòng cho biết tên sách."
	ReplyEmptyStore  = "Hiện tại cửa hàng chưa có sách nào."
	ReplyThanks      = "Rất vui được giúp đỡ bạn! Nếu cần thêm gì, đừng ngần ngại hỏi nhé!"
	ReplyBye         = "Tạm biệt! Hẹn gặp lại bạn!"
	ReplyUnknown     = "Xin lỗi, tôi không hiểu yêu cầu của bạn. 😅\n" +
		"Bạn có thể:\n" +
		"• Tìm sách: 'Tìm sách [tên sách]'\n" +
		"• Đặt sách: 'Tôi muốn mua [tên sách]'\n" +
		"• Xem danh sách: 'Có những sách gì'"
)

func replySearchMiss(keyword string) string {
	return fmt.Sprintf("Xin lỗi, tôi không tìm thấy sách nào với từ khóa '%s'. "+
		"Bạn có thể xem danh sách sách bằng cách hỏi 'Có những sách gì?'", keyword)
}

func detailCard(b catalog.Book) string {
	return fmt.Sprintf("📚 **%s**\n"+
		"👤 Tác giả: %s\n"+
		"💰 Giá: %s\n"+
		"📦 Còn lại: %d cuốn\n"+
		"🏷️ Thể loại: %s\n\n"+
		"Nếu muốn đặt mua, bạn có thể nói 'Tôi muốn mua %s'",
		b.Title, b.Author, textnorm.FormatVND(b.Price), b.Stock, b.Category, b.Title)
}

func listing(books []catalog.Book) string {
	if len(books) == 0 {
		return ReplyEmptyStore
	}

	var b strings.Builder
	b.WriteString("📚 **DANH SÁCH SÁCH CỦA CỬA HÀNG:**\n\n")
	shown := books
	if len(shown) > ListLimit {
		shown = shown[:ListLimit]
	}
	for _, book := range shown {
		fmt.Fprintf(&b, "• **%s**\n  Tác giả: %s | Giá: %s | Còn: %d cuốn\n\n",
			book.Title, book.Author, textnorm.FormatVND(book.Price), book.Stock)
	}
	if rest := len(books) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "\n... và %d cuốn sách khác.", rest)
	}
	return b.String()
}
