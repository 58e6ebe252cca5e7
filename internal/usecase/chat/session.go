// Package chat holds the state of the free-text chat surface: an append-only
// exchange history and at most one in-flight request.
//
// The surface is driven by a single event loop. Submit and Complete run on
// that loop; only Pending.Run may run elsewhere.
package chat

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"tradedesk/internal/domain"
	"tradedesk/internal/usecase/dispatch"
	"tradedesk/internal/usecase/intent"
)

// EmptyInputText is the reply to a blank submission.
const EmptyInputText = "Please type a message."

// Dispatcher executes a classified action.
type Dispatcher interface {
	Dispatch(ctx context.Context, action domain.ActionID) dispatch.Response
}

// Pending is a submitted message awaiting its reply.
type Pending struct {
	seq        uint64
	Text       string
	Action     domain.ActionID
	dispatcher Dispatcher
}

// Result carries a finished reply back to the event loop.
type Result struct {
	seq      uint64
	Response dispatch.Response
}

// Run dispatches the action. It is safe to call off the event loop and always
// returns; a panic in the dispatcher becomes a failure reply.
func (p *Pending) Run(ctx context.Context) (res Result) {
	res.seq = p.seq
	defer func() {
		if r := recover(); r != nil {
			err := domain.NewDomainError("chat.Run", domain.ErrBackendUnavailable, fmt.Sprintf("panic: %v", r))
			res.Response = dispatch.Response{Action: p.Action, Text: dispatch.FailureText(err), Err: err}
		}
	}()
	res.Response = p.dispatcher.Dispatch(ctx, p.Action)
	return res
}

// Session is the chat surface state.
type Session struct {
	classifier *intent.Classifier
	dispatcher Dispatcher
	exchanges  []domain.ChatExchange
	pending    *Pending
	seq        uint64
	now        func() time.Time
	entropy    *ulid.MonotonicEntropy
}

// NewSession creates an empty chat session.
func NewSession(classifier *intent.Classifier, dispatcher Dispatcher) *Session {
	now := time.Now()
	return &Session{
		classifier: classifier,
		dispatcher: dispatcher,
		now:        time.Now,
		entropy:    ulid.Monotonic(rand.New(rand.NewSource(now.UnixNano())), 0),
	}
}

// Submit records the user's message and returns the work to run. A blank
// message gets an immediate system reply and no Pending (ErrEmptyInput).
// While a reply is outstanding Submit is a no-op returning ErrSurfaceBusy.
func (s *Session) Submit(text string) (*Pending, error) {
	if s.pending != nil {
		return nil, domain.NewDomainError("chat.Submit", domain.ErrSurfaceBusy, "")
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		s.append(domain.RoleSystem, EmptyInputText, "")
		return nil, domain.NewDomainError("chat.Submit", domain.ErrEmptyInput, "")
	}

	s.append(domain.RoleUser, trimmed, "")
	s.seq++
	s.pending = &Pending{
		seq:        s.seq,
		Text:       trimmed,
		Action:     s.classifier.Classify(trimmed),
		dispatcher: s.dispatcher,
	}
	return s.pending, nil
}

// Complete appends the reply for the in-flight message and frees the
// surface. A result that does not belong to the in-flight message is
// rejected and changes nothing.
func (s *Session) Complete(res Result) (domain.ChatExchange, error) {
	if s.pending == nil || res.seq != s.pending.seq {
		return domain.ChatExchange{}, domain.NewDomainError("chat.Complete", domain.ErrInvalidInput, "no matching request in flight")
	}
	s.pending = nil
	return s.append(domain.RoleSystem, res.Response.Text, res.Response.Navigate), nil
}

// Busy reports whether a reply is outstanding.
func (s *Session) Busy() bool { return s.pending != nil }

// InFlight returns the outstanding message, or nil.
func (s *Session) InFlight() *Pending { return s.pending }

// Exchanges returns a copy of the history, oldest first.
func (s *Session) Exchanges() []domain.ChatExchange {
	return append([]domain.ChatExchange(nil), s.exchanges...)
}

// Len returns the number of exchanges.
func (s *Session) Len() int { return len(s.exchanges) }

func (s *Session) append(role domain.Role, text, navigate string) domain.ChatExchange {
	t := s.now()
	ex := domain.ChatExchange{
		ID:        ulid.MustNew(ulid.Timestamp(t), s.entropy).String(),
		Role:      role,
		Text:      text,
		Timestamp: t,
		Navigate:  navigate,
	}
	s.exchanges = append(s.exchanges, ex)
	return ex
}
