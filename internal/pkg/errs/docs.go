// Package errs holds the typed errors shared by the domain, the dialog and
// the adapters.
//
// Every type pairs a sentinel with a struct carrying the parameter name and
// an optional cause:
//
//	ErrValueIsRequired    / ValueIsRequiredError
//	ErrValueIsInvalid     / ValueIsInvalidError
//	ErrValueIsOutOfRange  / ValueIsOutOfRangeError
//	ErrObjectNotFound     / ObjectNotFoundError
//
// The structs unwrap to their sentinel, so callers classify with errors.Is.
// The order dialog treats the first three as a rejected slot value and
// re-prompts, the HTTP layer maps ErrObjectNotFound to 404.
package errs
