package dialog

import (
	"fmt"

	"bookstore/internal/pkg/errs"
)

// State is the position of a conversation in the order dialog.
//
// Transitions:
//
//	Idle ──> ChooseBook ──> AskQuantity ──> AskCustomerName ──> AskPhone ──> AskAddress ──> Confirm ──> Idle
//	  │                          ▲                 ▲
//	  └──────────────────────────┴─────────────────┘
//	     (slots already supplied are skipped; multi-item drafts never ask quantity)
//
// Every non-idle state belongs to the order flow and can be left at any time
// by cancelling.
type State int

const (
	// Unknown is the zero value. Session updates treat it as "keep the current state".
	Unknown State = iota

	// Idle means no draft is pending.
	Idle

	// ChooseBook waits for the user to pick one of several search matches.
	ChooseBook

	// AskQuantity waits for the number of copies of a single-item draft.
	AskQuantity

	// AskCustomerName waits for the recipient name.
	AskCustomerName

	// AskPhone waits for the contact phone number.
	AskPhone

	// AskAddress waits for the delivery address.
	AskAddress

	// Confirm shows the completed draft and waits for confirm, edit or cancel.
	Confirm
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:         "unknown",
		Idle:            "idle",
		ChooseBook:      "order_choose_book",
		AskQuantity:     "order_ask_quantity",
		AskCustomerName: "order_ask_customer_name",
		AskPhone:        "order_ask_phone",
		AskAddress:      "order_ask_address",
		Confirm:         "order_confirm",
	}
}

// String returns the persisted tag of the state, e.g. "order_ask_phone".
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects Unknown and out-of-range values.
func (s State) Validate() error {
	if s <= Unknown || s > Confirm {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid dialog state", s))
	}
	return nil
}

// IsOrderFlow reports whether the state belongs to the order dialog.
func (s State) IsOrderFlow() bool {
	return s >= ChooseBook && s <= Confirm
}

// NeedsDraft reports whether the state is only meaningful with a draft attached.
func (s State) NeedsDraft() bool {
	return s >= AskQuantity && s <= Confirm
}

// ParseState maps a persisted tag back to a State.
func ParseState(tag string) (State, error) {
	for s, str := range getStateStrings() {
		if s != Unknown && str == tag {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid dialog state", tag))
}

func (s State) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
