// Package nlu defines the contract between the dialog and the language
// understanding component: a classified intent plus optional entities.
//
// Every entity is optional. Analyzers may emit nulls, numbers or strings for
// any field, and the dialog tolerates all of them.
package nlu

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Intent is the classified purpose of an utterance.
type Intent string

const (
	Greeting     Intent = "greeting"
	SearchBook   Intent = "search_book"
	OrderBook    Intent = "order_book"
	ListBooks    Intent = "list_books"
	CheckStock   Intent = "check_stock"
	Thanks       Intent = "thanks"
	ConfirmOrder Intent = "confirm_order"
	Bye          Intent = "bye"
	Unknown      Intent = "unknown"
)

// Intents lists every known intent in classification priority order.
func Intents() []Intent {
	return []Intent{Greeting, SearchBook, OrderBook, ListBooks, CheckStock, Thanks, ConfirmOrder, Bye}
}

// ParseIntent maps a label to an Intent, falling back to Unknown.
func ParseIntent(s string) Intent {
	candidate := Intent(strings.TrimSpace(strings.ToLower(s)))
	for _, i := range Intents() {
		if i == candidate {
			return i
		}
	}
	return Unknown
}

// Value is an optional entity value. It accepts JSON strings and numbers and
// treats null, booleans, objects and arrays as absent.
type Value struct {
	raw string
	set bool
}

// NewValue wraps s, treating blank strings as absent.
func NewValue(s string) Value {
	s = strings.TrimSpace(s)
	return Value{raw: s, set: s != ""}
}

// IsSet reports whether the analyzer supplied a non-blank value.
func (v Value) IsSet() bool {
	return v.set
}

// String returns the trimmed value or "" when absent.
func (v Value) String() string {
	return v.raw
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*v = Value{}
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = NewValue(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = NewValue(n.String())
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.raw)
}

// BookMention is one item of a multi-item request.
type BookMention struct {
	Title    Value `json:"title"`
	Quantity Value `json:"quantity"`
}

// Entities are the slots an analyzer extracted from one utterance.
type Entities struct {
	BookTitle    Value         `json:"book_title"`
	Quantity     Value         `json:"quantity"`
	CustomerName Value         `json:"customer_name"`
	Phone        Value         `json:"phone"`
	Address      Value         `json:"address"`
	Books        []BookMention `json:"books,omitempty"`
}

// Mentions returns the titled items of a multi-item request.
func (e Entities) Mentions() []BookMention {
	out := make([]BookMention, 0, len(e.Books))
	for _, m := range e.Books {
		if m.Title.IsSet() {
			out = append(out, m)
		}
	}
	return out
}

// IsMultiItem reports whether at least two titled items were mentioned.
func (e Entities) IsMultiItem() bool {
	return len(e.Mentions()) >= 2
}

// Result is the full analysis of one utterance.
type Result struct {
	Intent     Intent   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Entities   Entities `json:"entities"`
}
