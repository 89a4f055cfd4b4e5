package models

import (
	"strconv"
	"strings"
)

// Quantity is the chosen amount of a material line item. It is either a
// positive integer count or empty, where empty represents a cleared quantity
// input rather than zero. A Quantity is never negative and never a committed
// zero; any edit that would land on zero coerces to one instead.
//
// The zero value is the empty quantity.
type Quantity struct {
	n     int
	valid bool
}

// EmptyQuantity is the cleared-input state.
var EmptyQuantity = Quantity{}

// NewQuantity returns a positive quantity. Values below one are floored to
// one, keeping the never-zero invariant for callers that construct directly
// from backend data.
func NewQuantity(n int) Quantity {
	if n < 1 {
		n = 1
	}
	return Quantity{n: n, valid: true}
}

// ParseQuantity applies the quantity-input policy to raw text from an input
// field:
//
//   - ""            -> empty
//   - "0"           -> 1 (zero coerces, it is never a legal quantity)
//   - positive int  -> that value, exactly as typed
//   - anything else -> empty (malformed input is never an error)
func ParseQuantity(raw string) Quantity {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return EmptyQuantity
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return EmptyQuantity
	}
	if n == 0 {
		return NewQuantity(1)
	}
	return Quantity{n: n, valid: true}
}

// IsEmpty reports whether this is the cleared-input state.
func (q Quantity) IsEmpty() bool {
	return !q.valid
}

// Value returns the count and whether one is present. The count is zero only
// when ok is false.
func (q Quantity) Value() (int, bool) {
	if !q.valid {
		return 0, false
	}
	return q.n, true
}

// Increment returns the next quantity up. Incrementing the empty quantity
// yields one, matching an initial add.
func (q Quantity) Increment() Quantity {
	if !q.valid {
		return NewQuantity(1)
	}
	return Quantity{n: q.n + 1, valid: true}
}

// Decrement returns the next quantity down, flooring at one. Decrementing
// never empties a quantity and never produces zero; at one (or empty) it is
// a no-op.
func (q Quantity) Decrement() Quantity {
	if !q.valid || q.n <= 1 {
		return q
	}
	return Quantity{n: q.n - 1, valid: true}
}

// String renders the quantity for an input field: the digits, or "" when
// empty. A quantity never renders as "0".
func (q Quantity) String() string {
	if !q.valid {
		return ""
	}
	return strconv.Itoa(q.n)
}
