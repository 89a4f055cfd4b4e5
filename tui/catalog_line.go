package tui

import (
	"github.com/renokit/reno/models"
)

// CatalogLine is one row of the picker: a catalog material plus its chosen
// state. Every quantity edit writes through to the shared selection
// immediately, so the batch submit always sees exactly what the rows show.
//
// A line is either not added (no selection entry, no quantity input), or
// added with a quantity that may transiently be empty while the user has
// the input cleared.
type CatalogLine struct {
	Material models.Material

	sel *models.Selection
	qty models.Quantity
}

// NewCatalogLine builds a row over the shared selection, picking up any
// quantity already staged for this material.
func NewCatalogLine(m models.Material, sel *models.Selection) CatalogLine {
	line := CatalogLine{Material: m, sel: sel}
	if q, ok := sel.Quantity(m.Id); ok {
		line.qty = models.NewQuantity(q)
	}
	return line
}

// Added reports whether the material is currently in the selection.
func (l *CatalogLine) Added() bool {
	return l.sel.Has(l.Material.Id)
}

// Quantity is the row's local quantity state. It can be empty while Added
// is false, or while the user has cleared the input.
func (l *CatalogLine) Quantity() models.Quantity {
	return l.qty
}

// Add puts the material into the selection with quantity 1. No-op if the
// material is already chosen.
func (l *CatalogLine) Add() {
	if l.Added() {
		return
	}
	l.qty = models.NewQuantity(1)
	l.sel.Put(l.Material.Id, l.Material.Name, 1)
}

// Increment bumps the quantity. From the cleared state it behaves exactly
// like Add: the quantity becomes 1 and the material is (re)inserted.
func (l *CatalogLine) Increment() {
	l.qty = l.qty.Increment()
	n, _ := l.qty.Value()
	l.sel.Put(l.Material.Id, l.Material.Name, n)
}

// Decrement lowers the quantity, flooring at 1. Decrementing never removes
// the material and never produces zero; on an empty or single quantity it
// is a no-op.
func (l *CatalogLine) Decrement() {
	next := l.qty.Decrement()
	if next == l.qty {
		return
	}
	l.qty = next
	n, _ := l.qty.Value()
	l.sel.Put(l.Material.Id, l.Material.Name, n)
}

// SetInput applies raw text from the quantity input. Cleared or malformed
// input empties the quantity and removes the material from the selection
// right away, without waiting for the input to lose focus. A typed zero
// coerces to 1. Any positive value is taken as typed, inserting the
// material if it is not yet chosen.
func (l *CatalogLine) SetInput(raw string) {
	l.qty = models.ParseQuantity(raw)
	if n, ok := l.qty.Value(); ok {
		l.sel.Put(l.Material.Id, l.Material.Name, n)
		return
	}
	l.sel.Remove(l.Material.Id)
}

// Remove drops the material from the selection and resets the row to the
// not-added state.
func (l *CatalogLine) Remove() {
	l.sel.Remove(l.Material.Id)
	l.qty = models.EmptyQuantity
}

// LineTotal renders the row's total for the chosen quantity, or the
// unavailable placeholder while the input is cleared.
func (l *CatalogLine) LineTotal() string {
	n, ok := l.qty.Value()
	if !ok {
		return models.TotalUnavailable
	}
	return models.FormatMoney(float64(n) * l.Material.UnitPrice)
}
