package tui

import (
	"testing"

	"github.com/renokit/reno/models"
)

func testMaterial() models.Material {
	m := models.Material{
		Id:        42,
		Name:      "Cement",
		Unit:      "KG",
		UnitPrice: 50,
	}
	m.Vendor.Name = "BuildMart"
	return m
}

func TestCatalogLineAddIncrementDecrement(t *testing.T) {
	sel := models.NewSelection()
	line := NewCatalogLine(testMaterial(), sel)

	if line.Added() {
		t.Fatal("line should start not-added")
	}

	// Add -> quantity 1, present in the selection.
	line.Add()
	if !line.Added() {
		t.Fatal("line should be added after Add")
	}
	if q, _ := sel.Quantity(42); q != 1 {
		t.Errorf("selection quantity after Add = %d, want 1", q)
	}

	// Two increments -> 3, one decrement -> 2.
	line.Increment()
	line.Increment()
	if q, _ := sel.Quantity(42); q != 3 {
		t.Errorf("selection quantity after two increments = %d, want 3", q)
	}
	line.Decrement()
	if q, _ := sel.Quantity(42); q != 2 {
		t.Errorf("selection quantity after decrement = %d, want 2", q)
	}

	// Decrement floors at 1 and never removes.
	line.Decrement()
	line.Decrement()
	line.Decrement()
	if q, _ := sel.Quantity(42); q != 1 {
		t.Errorf("selection quantity after flooring = %d, want 1", q)
	}
	if !line.Added() {
		t.Error("decrement must never remove the item")
	}
}

func TestCatalogLineAddIsIdempotent(t *testing.T) {
	sel := models.NewSelection()
	line := NewCatalogLine(testMaterial(), sel)

	line.Add()
	line.Increment() // 2
	line.Add()       // already present: no reset
	if q, _ := sel.Quantity(42); q != 2 {
		t.Errorf("Add on a present line reset the quantity to %d, want 2", q)
	}
}

func TestCatalogLineClearedInputRemovesImmediately(t *testing.T) {
	sel := models.NewSelection()
	line := NewCatalogLine(testMaterial(), sel)

	line.Add()
	line.Increment()
	if !sel.Has(42) {
		t.Fatal("setup: item should be selected")
	}

	// Clearing the field removes the record right away, no blur needed.
	line.SetInput("")
	if sel.Has(42) {
		t.Error("cleared input must remove the item from the selection")
	}
	if !line.Quantity().IsEmpty() {
		t.Error("cleared input must leave the quantity empty")
	}
	if line.Added() {
		t.Error("line must report not-added after the input is cleared")
	}
}

func TestCatalogLineIncrementFromEmptyInserts(t *testing.T) {
	sel := models.NewSelection()
	line := NewCatalogLine(testMaterial(), sel)

	line.Add()
	line.SetInput("") // cleared; removed from selection
	line.Increment()  // behaves like add

	if q, ok := sel.Quantity(42); !ok || q != 1 {
		t.Errorf("increment from empty gave quantity %d (present=%v), want 1", q, ok)
	}
}

func TestCatalogLineSetInput(t *testing.T) {
	tests := []struct {
		name         string
		prepare      func(*CatalogLine)
		input        string
		wantQty      int
		wantSelected bool
	}{
		{"typed zero coerces to one when present", func(l *CatalogLine) { l.Add(); l.Increment() }, "0", 1, true},
		{"typed zero inserts at one when absent", func(l *CatalogLine) {}, "0", 1, true},
		{"typed value inserts when absent", func(l *CatalogLine) {}, "3", 3, true},
		{"typed value updates when present", func(l *CatalogLine) { l.Add() }, "4", 4, true},
		{"appending a digit grows the value", func(l *CatalogLine) { l.Add(); l.SetInput("1") }, "10", 10, true},
		{"malformed input removes", func(l *CatalogLine) { l.Add() }, "abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := models.NewSelection()
			line := NewCatalogLine(testMaterial(), sel)
			tt.prepare(&line)

			line.SetInput(tt.input)

			if sel.Has(42) != tt.wantSelected {
				t.Fatalf("selected = %v, want %v", sel.Has(42), tt.wantSelected)
			}
			if tt.wantSelected {
				if q, _ := sel.Quantity(42); q != tt.wantQty {
					t.Errorf("selection quantity = %d, want %d", q, tt.wantQty)
				}
			}
		})
	}
}

func TestCatalogLineRemoveResetsToNotAdded(t *testing.T) {
	sel := models.NewSelection()
	line := NewCatalogLine(testMaterial(), sel)

	line.Add()
	line.SetInput("6")
	line.Remove()

	if sel.Has(42) {
		t.Error("Remove must delete the selection record")
	}
	if line.Added() {
		t.Error("Remove must return the line to not-added")
	}
	if !line.Quantity().IsEmpty() {
		t.Error("Remove must reset the local quantity")
	}
}

func TestCatalogLineTotal(t *testing.T) {
	sel := models.NewSelection()
	line := NewCatalogLine(testMaterial(), sel)

	line.Add()
	line.Increment() // 2 x 50
	if got := line.LineTotal(); got != models.FormatMoney(100) {
		t.Errorf("LineTotal() = %q, want %q", got, models.FormatMoney(100))
	}

	line.SetInput("")
	if got := line.LineTotal(); got != models.TotalUnavailable {
		t.Errorf("LineTotal() with cleared input = %q, want %q", got, models.TotalUnavailable)
	}
}

func TestCatalogLinePicksUpExistingSelection(t *testing.T) {
	sel := models.NewSelection()
	sel.Put(42, "Cement", 7)

	line := NewCatalogLine(testMaterial(), sel)
	if !line.Added() {
		t.Fatal("line over a staged material should start added")
	}
	if n, _ := line.Quantity().Value(); n != 7 {
		t.Errorf("line quantity = %d, want 7", n)
	}
}
