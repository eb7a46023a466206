package rules

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/nlu"
	"bookstore/internal/pkg/textnorm"
)

// TitleSource lists the catalog so titles can be spotted verbatim.
type TitleSource interface {
	ListAll(ctx context.Context) ([]catalog.Book, error)
}

var (
	itemSeparator  = regexp.MustCompile(`(?i)\s*(?:[,;+&]|\s+và\s+|\s+and\s+)\s*`)
	itemPattern    = regexp.MustCompile(`(?i)^(?:.*?\s)?(\d+)\s*(?:cuốn|quyển|cái|bản)?\s+(.+)$`)
	quantityUnit   = regexp.MustCompile(`(?i)(\d+)\s*(?:cuốn|quyển|cái|bản|cục)`)
	quantityAfter  = regexp.MustCompile(`(?i)(?:mua|đặt|lấy|order)\s+(\d+)\s`)
	phonePattern   = regexp.MustCompile(`(?:^|\D)(0\d{9,10})(?:\D|$)`)
	titlePattern   = regexp.MustCompile(`(?i)(?:đặt mua|mua|đặt|order|tìm sách|tìm kiếm|tìm|sách)\s+(?:\d+\s*(?:cuốn|quyển|cái|bản)?\s+)?(.+?)\s*(?:$|\s+và\s|[?,.!])`)
	namePattern    = regexp.MustCompile(`(?i)(?:tôi tên là|tên tôi là|mình tên là|tôi tên|mình tên|tên là|tôi là|mình là)\s+([^\d,.;!?]+)`)
	addressPattern = regexp.MustCompile(`(?i)(?:địa chỉ(?:\s+là)?|giao (?:hàng )?(?:đến|tới)|ship (?:đến|tới))\s*:?\s*(.+)$`)

	leadingFiller  = regexp.MustCompile(`(?i)^(?:sách|cuốn|quyển)\s+`)
	trailingFiller = regexp.MustCompile(`(?i)\s+(?:không|ko|nhé|nha|ạ|đi|với|giúp mình|cho mình)$`)
)

// Extractor pulls entities out of an utterance with regular expressions.
// Known catalog titles take precedence over the verb pattern.
type Extractor struct {
	titles TitleSource
}

func NewExtractor(titles TitleSource) *Extractor {
	return &Extractor{titles: titles}
}

// Extract implements ports.EntityExtractor.
func (e *Extractor) Extract(ctx context.Context, text string) (nlu.Entities, error) {
	var out nlu.Entities
	text = strings.TrimSpace(text)
	if text == "" {
		return out, nil
	}

	if items := splitItems(text); len(items) >= 2 {
		out.Books = items
	} else {
		out.Quantity = nlu.NewValue(firstGroup(text, quantityUnit, quantityAfter))

		title, err := e.knownTitle(ctx, text)
		if err != nil {
			return nlu.Entities{}, err
		}
		if title == "" {
			title = cleanTitle(firstGroup(text, titlePattern))
		}
		out.BookTitle = nlu.NewValue(title)
	}

	out.Phone = nlu.NewValue(firstGroup(text, phonePattern))
	out.CustomerName = nlu.NewValue(strings.TrimSpace(firstGroup(text, namePattern)))
	out.Address = nlu.NewValue(firstGroup(text, addressPattern))
	return out, nil
}

func (e *Extractor) knownTitle(ctx context.Context, text string) (string, error) {
	if e.titles == nil {
		return "", nil
	}
	books, err := e.titles.ListAll(ctx)
	if err != nil {
		return "", err
	}

	folded := textnorm.Fold(text)
	best := ""
	for _, b := range books {
		t := textnorm.Fold(b.Title)
		if t != "" && strings.Contains(folded, t) && utf8.RuneCountInString(b.Title) > utf8.RuneCountInString(best) {
			best = b.Title
		}
	}
	return best, nil
}

func splitItems(text string) []nlu.BookMention {
	parts := itemSeparator.Split(text, -1)
	if len(parts) < 2 {
		return nil
	}

	items := make([]nlu.BookMention, 0, len(parts))
	for _, p := range parts {
		m := itemPattern.FindStringSubmatch(strings.TrimSpace(p))
		if m == nil {
			continue
		}
		if title := cleanTitle(m[2]); title != "" {
			items = append(items, nlu.BookMention{Title: nlu.NewValue(title), Quantity: nlu.NewValue(m[1])})
		}
	}
	if len(items) < 2 {
		return nil
	}
	return items
}

func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = leadingFiller.ReplaceAllString(s, "")
	for {
		trimmed := trailingFiller.ReplaceAllString(s, "")
		if trimmed == s {
			break
		}
		s = trimmed
	}
	s = strings.Trim(s, " ?!.,\"'")
	if utf8.RuneCountInString(s) < 2 || strings.Trim(s, "0123456789 ") == "" {
		return ""
	}
	return s
}

func firstGroup(text string, patterns ...*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
