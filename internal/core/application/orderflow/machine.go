// Package orderflow drives the order dialog: it builds drafts from order
// requests, asks for missing slots one at a time, handles edits on the
// summary and places the order once the user confirms.
//
// The machine never decides on cancellation or thanks. Callers check those
// before handing a turn to Step.
package orderflow

import (
	"context"
	"errors"
	"fmt"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/dialog"
	"bookstore/internal/core/domain/model/nlu"
	"bookstore/internal/core/domain/services"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/errs"

	"go.uber.org/zap"
)

// ErrNotInOrderFlow is returned by Step for sessions outside the order dialog.
var ErrNotInOrderFlow = errors.New("session is not in the order flow")

// Sessions is the part of the session store the machine writes through.
type Sessions interface {
	Update(ctx context.Context, id string, state dialog.State, patch dialog.ContextPatch) (*dialog.Session, error)
	Clear(ctx context.Context, id string) error
}

// OrderPlacer persists a confirmed draft and returns the order id.
type OrderPlacer interface {
	Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (int64, error)
}

// Machine is the order dialog state machine.
type Machine struct {
	sessions Sessions
	books    ports.CatalogRepository
	builder  *Builder
	placer   OrderPlacer
	metrics  ports.DialogMetrics
	logger   *zap.Logger
}

func NewMachine(
	sessions Sessions,
	books ports.CatalogRepository,
	placer OrderPlacer,
	metrics ports.DialogMetrics,
	logger *zap.Logger,
) *Machine {
	if metrics == nil {
		metrics = ports.NopDialogMetrics{}
	}
	return &Machine{
		sessions: sessions,
		books:    books,
		builder:  NewBuilder(books),
		placer:   placer,
		metrics:  metrics,
		logger:   logger.With(zap.String("component", "order_flow")),
	}
}

// StartOrder opens the order dialog from an order request. Two or more
// titled items start a multi-item draft, anything else a single-item one.
func (m *Machine) StartOrder(ctx context.Context, sessionID string, entities nlu.Entities) (string, error) {
	if entities.IsMultiItem() {
		return m.startMulti(ctx, sessionID, entities)
	}

	keyword := entities.BookTitle.String()
	if mentions := entities.Mentions(); keyword == "" && len(mentions) == 1 {
		keyword = mentions[0].Title.String()
		if !entities.Quantity.IsSet() {
			entities.Quantity = mentions[0].Quantity
		}
	}
	if keyword == "" {
		return ReplyAskTitle, nil
	}

	result, err := m.builder.BuildSingle(ctx, keyword, entities)
	if err != nil {
		return "", err
	}

	switch result.Outcome {
	case OutcomeChoose:
		return m.offer(ctx, sessionID, result.Selection)
	case OutcomeDraft:
		return m.advance(ctx, sessionID, result.Draft, "")
	default:
		return result.Reply, nil
	}
}

// OfferCandidates stores a shortlist of matches and waits for a choice.
func (m *Machine) OfferCandidates(ctx context.Context, sessionID string, matches []catalog.Book) (string, error) {
	return m.offer(ctx, sessionID, dialog.NewSelection(matches))
}

// Step handles one turn of a session inside the order flow.
func (m *Machine) Step(ctx context.Context, session *dialog.Session, msg string, analysis nlu.Result) (string, error) {
	state := session.State()
	if state == dialog.ChooseBook {
		return m.choose(ctx, session, msg)
	}

	draft := session.Draft()
	if !state.IsOrderFlow() {
		return "", fmt.Errorf("%w: %s", ErrNotInOrderFlow, state)
	}
	if draft == nil || draft.Validate() != nil {
		m.logger.Warn("draft missing for order state",
			zap.String("session_id", session.ID()), zap.Stringer("state", state))
		return ReplyDraftGone, m.sessions.Clear(ctx, session.ID())
	}

	if state == dialog.Confirm {
		return m.confirm(ctx, session.ID(), draft, msg, analysis)
	}

	slot, _ := dialog.SlotFor(state)
	return m.fill(ctx, session.ID(), draft, slot, msg, analysis.Entities)
}

func (m *Machine) startMulti(ctx context.Context, sessionID string, entities nlu.Entities) (string, error) {
	result, err := m.builder.BuildMulti(ctx, entities)
	if err != nil {
		return "", err
	}
	if result.Outcome != OutcomeDraft {
		return result.Reply, nil
	}
	return m.advance(ctx, sessionID, result.Draft, warningPrefix(result.Warnings))
}

func (m *Machine) offer(ctx context.Context, sessionID string, sel *dialog.Selection) (string, error) {
	_, err := m.sessions.Update(ctx, sessionID, dialog.ChooseBook, dialog.ContextPatch{
		Selection: sel,
		Unset:     []dialog.ContextKey{dialog.KeyDraft},
	})
	if err != nil {
		return "", err
	}
	return CandidateList(sel), nil
}

// advance applies the next missing slot rule: ask the first empty required
// slot, or show the summary when every slot is filled.
func (m *Machine) advance(ctx context.Context, sessionID string, draft *dialog.Draft, prefix string) (string, error) {
	next, reply := dialog.Confirm, summary(draft)
	if slot, missing := draft.MissingSlot(); missing {
		next, reply = slot.AskState(), question(slot, draft)
	}

	_, err := m.sessions.Update(ctx, sessionID, next, dialog.ContextPatch{
		Draft: draft,
		Unset: []dialog.ContextKey{dialog.KeySelection},
	})
	if err != nil {
		return "", err
	}
	return prefix + reply, nil
}

func (m *Machine) choose(ctx context.Context, session *dialog.Session, msg string) (string, error) {
	id, err := session.Selection().Resolve(msg)
	switch {
	case errors.Is(err, dialog.ErrSelectionExpired):
		return ReplySelectionGone, m.sessions.Clear(ctx, session.ID())
	case errors.Is(err, dialog.ErrSelectionUnknownIndex):
		return ReplyUnknownIndex, nil
	case err != nil:
		return ReplyUnclearChoice, nil
	}

	book, err := m.books.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ReplyChosenMissing, nil
	}
	if err != nil {
		return "", err
	}

	draft, err := dialog.NewSingleDraft(book)
	if errors.Is(err, dialog.ErrBookOutOfStock) {
		return replyOutOfStock(book.Title), m.sessions.Clear(ctx, session.ID())
	}
	if err != nil {
		return "", err
	}

	_, err = m.sessions.Update(ctx, session.ID(), dialog.AskQuantity, dialog.ContextPatch{
		Draft: draft,
		Unset: []dialog.ContextKey{dialog.KeySelection},
	})
	if err != nil {
		return "", err
	}
	return replyChosen(book), nil
}

func (m *Machine) fill(
	ctx context.Context,
	sessionID string,
	draft *dialog.Draft,
	slot dialog.Slot,
	msg string,
	entities nlu.Entities,
) (string, error) {
	if draft.IsFilled(slot) {
		return m.advance(ctx, sessionID, draft, "")
	}

	var err error
	switch slot {
	case dialog.SlotQuantity:
		stock := draft.Item().Stock
		var quantity int
		if quantity, err = firstValid(stock, entities.Quantity, msg); err != nil {
			m.metrics.SlotRejected(slot)
			return replyBadQuantity(stock), nil
		}
		err = draft.FillQuantity(quantity)
	case dialog.SlotCustomerName:
		err = m.fillText(draft, slot, services.ValidateName, entities.CustomerName, msg)
		if isRejection(err) {
			return ReplyBadName, nil
		}
	case dialog.SlotPhone:
		err = m.fillText(draft, slot, services.ParsePhone, entities.Phone, msg)
		if isRejection(err) {
			return ReplyBadPhone, nil
		}
	case dialog.SlotAddress:
		err = m.fillText(draft, slot, services.ValidateAddress, entities.Address, msg)
		if isRejection(err) {
			return ReplyBadAddress, nil
		}
	}
	if err != nil {
		return "", err
	}

	return m.advance(ctx, sessionID, draft, "")
}

// fillText validates the entity value first and falls back to the raw message.
func (m *Machine) fillText(
	draft *dialog.Draft,
	slot dialog.Slot,
	validate func(string) (string, error),
	entity nlu.Value,
	msg string,
) error {
	value, err := validate(entity.String())
	if !entity.IsSet() || err != nil {
		value, err = validate(msg)
	}
	if err != nil {
		m.metrics.SlotRejected(slot)
		return rejection{err}
	}
	return draft.FillText(slot, value)
}

func (m *Machine) confirm(
	ctx context.Context,
	sessionID string,
	draft *dialog.Draft,
	msg string,
	analysis nlu.Result,
) (string, error) {
	if cmd, ok := services.ParseEditCommand(msg); ok {
		return m.edit(ctx, sessionID, draft, cmd)
	}
	if analysis.Intent == nlu.ConfirmOrder || services.IsConfirm(msg) {
		return m.place(ctx, sessionID, draft)
	}
	if services.IsGenericEdit(msg) {
		return ReplyWhichField, nil
	}
	return ReplyConfirmOptions, nil
}

func (m *Machine) edit(ctx context.Context, sessionID string, draft *dialog.Draft, cmd services.EditCommand) (string, error) {
	var reply string

	switch cmd.Field {
	case dialog.SlotQuantity:
		if !draft.IsSingle() {
			return ReplyQuantityIsFixed, nil
		}
		stock := draft.Item().Stock
		quantity, err := services.ParseQuantity(cmd.RawValue, stock)
		if err != nil {
			m.metrics.SlotRejected(cmd.Field)
			return replyEditBadQuantity(stock), nil
		}
		if err = draft.EditQuantity(quantity); err != nil {
			return "", err
		}
		reply = replyEditedQuantity(quantity, draft.TotalPrice())
	case dialog.SlotPhone:
		phone, err := services.ParsePhone(cmd.RawValue)
		if err != nil {
			m.metrics.SlotRejected(cmd.Field)
			return ReplyEditBadPhone, nil
		}
		if err = draft.EditText(cmd.Field, phone); err != nil {
			return "", err
		}
		reply = ReplyEditedPhone
	case dialog.SlotAddress:
		address, err := services.ValidateAddress(cmd.RawValue)
		if err != nil {
			m.metrics.SlotRejected(cmd.Field)
			return ReplyEditBadAddress, nil
		}
		if err = draft.EditText(cmd.Field, address); err != nil {
			return "", err
		}
		reply = ReplyEditedAddress
	case dialog.SlotCustomerName:
		name, err := services.ValidateName(cmd.RawValue)
		if err != nil {
			m.metrics.SlotRejected(cmd.Field)
			return ReplyEditBadName, nil
		}
		if err = draft.EditText(cmd.Field, name); err != nil {
			return "", err
		}
		reply = ReplyEditedName
	default:
		return ReplyWhichField, nil
	}

	if _, err := m.sessions.Update(ctx, sessionID, dialog.Confirm, dialog.ContextPatch{Draft: draft}); err != nil {
		return "", err
	}
	return reply, nil
}

func (m *Machine) place(ctx context.Context, sessionID string, draft *dialog.Draft) (string, error) {
	cmd, err := commands.NewPlaceOrderCommandFromDraft(draft)
	if err != nil {
		m.logger.Warn("incomplete draft on confirm", zap.String("session_id", sessionID), zap.Error(err))
		return m.advance(ctx, sessionID, draft, "")
	}

	orderID, err := m.placer.Handle(ctx, cmd)
	if err != nil {
		m.metrics.OrderFailed()
		m.logger.Warn("order placement failed", zap.String("session_id", sessionID), zap.Error(err))
		return ReplyOrderFailed, nil
	}

	m.metrics.OrderPlaced(len(draft.Items))
	m.logger.Info("order placed",
		zap.String("session_id", sessionID),
		zap.Int64("order_id", orderID),
		zap.Int("items", len(draft.Items)),
		zap.Float64("total", draft.TotalPrice()),
	)

	if err = m.sessions.Clear(ctx, sessionID); err != nil {
		m.logger.Error("session not cleared after order", zap.String("session_id", sessionID), zap.Error(err))
	}
	return replyPlaced(orderID, draft.Phone), nil
}

// firstValid parses the entity quantity and falls back to the raw message.
func firstValid(stock int, entity nlu.Value, msg string) (int, error) {
	if entity.IsSet() {
		if q, err := services.ParseQuantity(entity.String(), stock); err == nil {
			return q, nil
		}
	}
	return services.ParseQuantity(msg, stock)
}

// rejection marks a validation failure that becomes a re-prompt.
type rejection struct{ err error }

func (r rejection) Error() string { return r.err.Error() }
func (r rejection) Unwrap() error { return r.err }

func isRejection(err error) bool {
	var r rejection
	return errors.As(err, &r)
}
