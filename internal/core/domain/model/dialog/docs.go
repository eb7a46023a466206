// Package dialog models the per-conversation state of the order dialog.
//
// A Session carries a State and a Context. The Context holds at most one
// Draft (the order being collected) and at most one Selection (the numbered
// shortlist shown when a search matched several books).
//
// Drafts come in two shapes:
//
//	single: one book, quantity asked in dialog
//	        slots: quantity, customer_name, phone, address
//	multi:  several books, quantities validated when the draft is built
//	        slots: customer_name, phone, address
//
// The next state is always derived from the first missing slot:
//
//	draft, _ := dialog.NewSingleDraft(book)
//	slot, missing := draft.MissingSlot() // SlotQuantity, true
//	next := slot.AskState()              // AskQuantity
//
// Slots fill monotonically. FillQuantity and FillText refuse to overwrite,
// only EditQuantity and EditText replace a value.
package dialog
