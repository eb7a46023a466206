// Package dispatcher is the entry point of a chat turn. It loads the session,
// analyses the message once and either continues the order flow or
// answers the classified intent, then hands the turn to the conversation log.
package dispatcher

import (
	"context"
	"fmt"
	"time"

	"bookstore/internal/core/application/orderflow"
	"bookstore/internal/core/domain/model/conversation"
	"bookstore/internal/core/domain/model/dialog"
	"bookstore/internal/core/domain/model/nlu"
	"bookstore/internal/core/domain/services"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/keylock"

	"go.uber.org/zap"
)

// Sessions is the part of the session store the dispatcher needs.
type Sessions interface {
	Get(ctx context.Context, id string) (*dialog.Session, error)
	Clear(ctx context.Context, id string) error
}

// Dispatcher routes chat turns. Turns of one session run one at a time,
// different sessions proceed in parallel.
type Dispatcher struct {
	analyzer ports.Analyzer
	sessions Sessions
	machine  *orderflow.Machine
	books    ports.CatalogRepository
	notifier ports.TurnNotifier
	metrics  ports.DialogMetrics
	logger   *zap.Logger

	locks keylock.KeyedMutex
	now   func() time.Time
}

// Config groups the dispatcher collaborators.
type Config struct {
	Analyzer ports.Analyzer
	Sessions Sessions
	Machine  *orderflow.Machine
	Books    ports.CatalogRepository
	Notifier ports.TurnNotifier
	Metrics  ports.DialogMetrics
	Logger   *zap.Logger
}

func New(cfg Config) *Dispatcher {
	d := &Dispatcher{
		analyzer: cfg.Analyzer,
		sessions: cfg.Sessions,
		machine:  cfg.Machine,
		books:    cfg.Books,
		notifier: cfg.Notifier,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		now:      time.Now,
	}
	if d.metrics == nil {
		d.metrics = ports.NopDialogMetrics{}
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	d.logger = d.logger.With(zap.String("component", "dispatcher"))
	return d
}

// Handle answers one message of a session. Errors are collaborator faults
// (storage, catalog), never rejected user input.
func (d *Dispatcher) Handle(ctx context.Context, sessionID, message string) (string, error) {
	unlock := d.locks.Lock(sessionID)
	defer unlock()

	started := d.now()

	session, err := d.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load session %s: %w", sessionID, err)
	}

	analysis, err := d.analyzer.Analyze(ctx, message, session.State().IsOrderFlow())
	if err != nil {
		d.logger.Warn("analysis failed, treating as unknown", zap.String("session_id", sessionID), zap.Error(err))
		analysis = nlu.Result{Intent: nlu.Unknown}
	}

	var reply string
	if session.State().IsOrderFlow() {
		reply, err = d.inFlow(ctx, session, message, analysis)
	} else {
		reply, err = d.route(ctx, sessionID, analysis)
	}
	if err != nil {
		return "", fmt.Errorf("handle turn in %s: %w", session.State(), err)
	}

	d.record(sessionID, message, reply, analysis.Intent)
	d.metrics.ObserveTurn(analysis.Intent, d.now().Sub(started))
	d.logger.Debug("turn handled",
		zap.String("session_id", sessionID),
		zap.Stringer("state", session.State()),
		zap.String("intent", string(analysis.Intent)),
		zap.Float64("confidence", analysis.Confidence),
	)
	return reply, nil
}

func (d *Dispatcher) inFlow(ctx context.Context, session *dialog.Session, message string, analysis nlu.Result) (string, error) {
	if services.IsCancel(message) {
		if err := d.sessions.Clear(ctx, session.ID()); err != nil {
			return "", err
		}
		return orderflow.ReplyCancelled, nil
	}
	if analysis.Intent == nlu.Thanks || services.IsThanks(message) {
		return orderflow.ReplyThanksInFlow, nil
	}
	return d.machine.Step(ctx, session, message, analysis)
}

func (d *Dispatcher) route(ctx context.Context, sessionID string, analysis nlu.Result) (string, error) {
	switch analysis.Intent {
	case nlu.Greeting:
		return ReplyGreeting, nil
	case nlu.SearchBook, nlu.CheckStock:
		return d.search(ctx, sessionID, analysis.Entities)
	case nlu.OrderBook:
		return d.machine.StartOrder(ctx, sessionID, analysis.Entities)
	case nlu.ListBooks:
		books, err := d.books.ListAll(ctx)
		if err != nil {
			return "", err
		}
		return listing(books), nil
	case nlu.Thanks:
		return ReplyThanks, nil
	case nlu.Bye:
		return ReplyBye, nil
	default:
		return ReplyUnknown, nil
	}
}

func (d *Dispatcher) search(ctx context.Context, sessionID string, entities nlu.Entities) (string, error) {
	keyword := entities.BookTitle.String()
	if mentions := entities.Mentions(); keyword == "" && len(mentions) > 0 {
		keyword = mentions[0].Title.String()
	}
	if keyword == "" {
		return ReplyAskSearch, nil
	}

	books, err := d.books.Search(ctx, keyword)
	if err != nil {
		return "", err
	}

	switch len(books) {
	case 0:
		return replySearchMiss(keyword), nil
	case 1:
		return detailCard(books[0]), nil
	default:
		return d.machine.OfferCandidates(ctx, sessionID, books)
	}
}

// Clear resets a session to idle. It waits for an in-flight turn of the same
// session so that turn cannot write the old draft back afterwards.
func (d *Dispatcher) Clear(ctx context.Context, sessionID string) error {
	unlock := d.locks.Lock(sessionID)
	defer unlock()

	if err := d.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session %s: %w", sessionID, err)
	}
	d.logger.Debug("session cleared", zap.String("session_id", sessionID))
	return nil
}

func (d *Dispatcher) record(sessionID, message, reply string, intent nlu.Intent) {
	if d.notifier == nil {
		return
	}
	turn, err := conversation.NewTurn(sessionID, message, reply, intent, d.now())
	if err != nil {
		d.logger.Warn("turn not recorded", zap.Error(err))
		return
	}
	d.notifier.Notify(turn)
}
