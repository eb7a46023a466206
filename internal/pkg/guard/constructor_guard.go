// Package guard lets value objects tell a constructed instance from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into domain values that must only be created
// through their constructor. Its zero value fails validation, a guard made by
// NewConstructorGuard passes.
//
// Example:
//
//	var ErrBookNotConstructed = errors.New("book must be created via NewBook")
//
//	type Book struct {
//	    id    int64
//	    title string
//	    guard guard.ConstructorGuard
//	}
//
//	func (b Book) Validate() error {
//	    return b.guard.Validate(ErrBookNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError otherwise.
// A nil validationError is replaced by ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
