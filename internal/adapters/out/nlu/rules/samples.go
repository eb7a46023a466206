package rules

import "bookstore/internal/core/domain/model/nlu"

// intentSamples are short phrases typical for each intent. They are folded
// and tokenized once when the classifier is built.
var intentSamples = map[nlu.Intent][]string{
	nlu.Greeting: {
		"xin chào", "chào bạn", "hello", "hi", "alo shop",
		"ê bạn", "shop ơi", "bạn ơi", "chào buổi sáng",
		"good morning", "good evening",
	},
	nlu.SearchBook: {
		"tìm sách", "có sách không", "giá sách", "thông tin sách",
		"sách này bao nhiêu", "cho mình hỏi sách", "tìm giúp quyển sách",
		"có bán quyển không", "mình muốn hỏi về sách",
		"sách tên có không", "mình cần thông tin sách", "tìm kiếm",
	},
	nlu.OrderBook: {
		"mua", "muốn mua sách", "đặt sách", "order sách", "cho tôi mua",
		"mình muốn đặt mua", "lấy cho mình quyển này", "cho mình đặt",
		"ship sách này cho mình", "tôi muốn mua quyển", "chốt đơn giúp mình",
		"order quyển", "đặt mua quyển", "mình mua", "1 cuốn",
		"tôi tên", "tôi là", "tôi ở", "giao đến", "giao hàng đến",
		"số điện thoại", "địa chỉ", "số đt", "sđt",
	},
	nlu.ListBooks: {
		"danh sách sách", "có những sách gì", "xem sách",
		"shop có sách nào", "có loại nào", "show sách đi",
		"liệt kê sách giúp mình", "cho mình danh mục sách",
		"những quyển nào có ở shop",
	},
	nlu.CheckStock: {
		"còn hàng", "còn bao nhiêu", "còn sách không",
		"hết hàng chưa", "còn quyển này không", "có còn tồn không",
		"stock còn không", "còn mấy cuốn", "còn bao nhiêu bản",
	},
	nlu.Thanks: {
		"cảm ơn", "thanks", "thank you", "cám ơn",
		"thx", "thanks shop", "ok cảm ơn nhiều", "cảm ơn bạn nhiều",
	},
	nlu.ConfirmOrder: {
		"xác nhận", "ok", "đồng ý", "chốt đơn", "ok chốt", "ok mình lấy",
		"mua luôn", "đặt luôn", "đồng ý mua", "oke", "okie",
	},
	nlu.Bye: {
		"tạm biệt", "bye", "hẹn gặp lại",
		"see you", "goodbye", "gặp lại sau",
		"bye shop", "ok mình đi đây",
	},
}
