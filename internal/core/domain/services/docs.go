// Package services holds the stateless rules of the order dialog: slot
// validators, the edit command grammar and the keyword sets that steer a
// conversation (cancel, confirm, thanks, edit).
//
// Validators never panic on malformed input. They return a normalized value
// or one of the errs types describing why the input was rejected, and the
// caller turns that into a re-prompt.
package services
