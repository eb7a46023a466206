// Package order provides the Order aggregate created when a customer confirms
// a draft.
//
// An order holds the recipient contact details and one line per book. The
// aggregated quantity and a human readable itemization note are derived from
// the lines so both the per-item detail and the total stay recoverable.
//
// Key business rules:
//   - Customer name, phone and address are required
//   - An order has at least one line, every line has a positive quantity
//   - The same book may appear only once
//   - The identifier is assigned by persistence and set exactly once
package order
