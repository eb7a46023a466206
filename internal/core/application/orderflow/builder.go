package orderflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/dialog"
	"bookstore/internal/core/domain/model/nlu"
	"bookstore/internal/core/domain/services"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/textnorm"
)

// Outcome tells the machine what a build produced.
type Outcome int

const (
	// OutcomeNotFound means no book matched. Reply explains it.
	OutcomeNotFound Outcome = iota + 1

	// OutcomeOutOfStock means the only match has no copies left.
	OutcomeOutOfStock

	// OutcomeChoose means several books matched and Selection lists them.
	OutcomeChoose

	// OutcomeDraft means Draft is ready for slot filling.
	OutcomeDraft

	// OutcomeRejected means no item of a multi-item request could be used.
	OutcomeRejected
)

// BuildResult is the product of a draft build.
type BuildResult struct {
	Outcome   Outcome
	Draft     *dialog.Draft
	Selection *dialog.Selection
	Warnings  []string
	Reply     string
}

// Builder turns order requests into drafts by resolving titles against the
// catalog.
type Builder struct {
	books ports.CatalogRepository
}

func NewBuilder(books ports.CatalogRepository) *Builder {
	return &Builder{books: books}
}

// BuildSingle resolves keyword to one book. Slots supplied by entities are
// validated and kept, invalid ones are left empty to be asked later.
func (b *Builder) BuildSingle(ctx context.Context, keyword string, entities nlu.Entities) (BuildResult, error) {
	matches, err := b.resolve(ctx, keyword)
	if err != nil {
		return BuildResult{}, err
	}

	switch len(matches) {
	case 0:
		return BuildResult{Outcome: OutcomeNotFound, Reply: replyNotFound(keyword)}, nil
	case 1:
	default:
		return BuildResult{Outcome: OutcomeChoose, Selection: dialog.NewSelection(matches)}, nil
	}

	book := matches[0]
	draft, err := dialog.NewSingleDraft(book)
	if errors.Is(err, dialog.ErrBookOutOfStock) {
		return BuildResult{Outcome: OutcomeOutOfStock, Reply: replyOutOfStock(book.Title)}, nil
	}
	if err != nil {
		return BuildResult{}, err
	}

	if entities.Quantity.IsSet() {
		if q, qErr := services.ParseQuantity(entities.Quantity.String(), book.Stock); qErr == nil {
			_ = draft.FillQuantity(q)
		}
	}
	prefillContact(draft, entities)

	return BuildResult{Outcome: OutcomeDraft, Draft: draft}, nil
}

// BuildMulti resolves every mentioned title. Items that are unknown,
// ambiguous, out of stock, repeated or have an invalid quantity are skipped
// with a warning. A missing quantity means one copy.
//
// A title is ambiguous only when it matches several books and none of them
// has exactly that title (accents and case folded). When exactly one match
// carries the mentioned title it is taken, as in BuildSingle.
func (b *Builder) BuildMulti(ctx context.Context, entities nlu.Entities) (BuildResult, error) {
	var (
		items    []dialog.LineItem
		warnings []string
		seen     = make(map[int64]struct{})
	)

	for _, mention := range entities.Mentions() {
		title := mention.Title.String()

		matches, err := b.resolve(ctx, title)
		if err != nil {
			return BuildResult{}, err
		}
		if len(matches) == 0 {
			warnings = append(warnings, fmt.Sprintf("Không tìm thấy sách '%s'.", title))
			continue
		}
		if len(matches) > 1 {
			warnings = append(warnings,
				fmt.Sprintf("Có %d sách khớp với '%s', bạn vui lòng đặt riêng cuốn này với tên đầy đủ.", len(matches), title))
			continue
		}

		book := matches[0]
		if _, dup := seen[book.ID]; dup {
			warnings = append(warnings, fmt.Sprintf("Sách '%s' được nhắc nhiều lần, mình chỉ giữ lần đầu.", book.Title))
			continue
		}
		if !book.InStock() {
			warnings = append(warnings, replyOutOfStock(book.Title))
			continue
		}

		quantity := 1
		if mention.Quantity.IsSet() {
			q, qErr := services.ParseQuantity(mention.Quantity.String(), book.Stock)
			if qErr != nil {
				warnings = append(warnings, fmt.Sprintf("Số lượng '%s' cho sách '%s' không hợp lệ (còn lại %d cuốn).",
					mention.Quantity.String(), book.Title, book.Stock))
				continue
			}
			quantity = q
		}

		item, err := dialog.NewLineItem(book, quantity)
		if err != nil {
			return BuildResult{}, err
		}
		seen[book.ID] = struct{}{}
		items = append(items, item)
	}

	if len(items) == 0 {
		return BuildResult{
			Outcome:  OutcomeRejected,
			Warnings: warnings,
			Reply:    ReplyNothingResolved + "\n• " + strings.Join(warnings, "\n• "),
		}, nil
	}

	draft, err := dialog.NewMultiDraft(items)
	if err != nil {
		return BuildResult{}, err
	}
	prefillContact(draft, entities)

	return BuildResult{Outcome: OutcomeDraft, Draft: draft, Warnings: warnings}, nil
}

// resolve searches the catalog. Among several matches a unique title equal
// to the keyword (ignoring case and diacritics) wins.
func (b *Builder) resolve(ctx context.Context, keyword string) ([]catalog.Book, error) {
	matches, err := b.books.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if len(matches) <= 1 {
		return matches, nil
	}

	want := textnorm.Fold(keyword)
	var exact []catalog.Book
	for _, book := range matches {
		if textnorm.Fold(book.Title) == want {
			exact = append(exact, book)
		}
	}
	if len(exact) == 1 {
		return exact, nil
	}
	return matches, nil
}

func prefillContact(draft *dialog.Draft, entities nlu.Entities) {
	if name, err := services.ValidateName(entities.CustomerName.String()); err == nil {
		_ = draft.FillText(dialog.SlotCustomerName, name)
	}
	if phone, err := services.ParsePhone(entities.Phone.String()); err == nil {
		_ = draft.FillText(dialog.SlotPhone, phone)
	}
	if address, err := services.ValidateAddress(entities.Address.String()); err == nil {
		_ = draft.FillText(dialog.SlotAddress, address)
	}
}
