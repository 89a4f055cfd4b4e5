package tui

import (
	"github.com/renokit/reno/models"
)

// CommittedLine is one row of the phase editor: a material already
// committed to the phase. The row is either viewing (shows the committed
// quantity and total) or editing (holds a draft quantity that only reaches
// the backend on an explicit save).
type CommittedLine struct {
	Item models.PhaseMaterial

	editing bool
	draft   models.Quantity
}

// NewCommittedLine builds a viewing row for a committed material.
func NewCommittedLine(pm models.PhaseMaterial) CommittedLine {
	return CommittedLine{Item: pm}
}

// Editing reports whether an edit session is open.
func (l *CommittedLine) Editing() bool {
	return l.editing
}

// StartEdit opens an edit session, seeding the draft from the committed
// quantity. No-op if already editing.
func (l *CommittedLine) StartEdit() {
	if l.editing {
		return
	}
	l.editing = true
	l.draft = models.NewQuantity(l.Item.Quantity)
}

// Increment bumps the draft; from a cleared input the draft becomes 1.
// No-op outside an edit session.
func (l *CommittedLine) Increment() {
	if !l.editing {
		return
	}
	l.draft = l.draft.Increment()
}

// Decrement lowers the draft, flooring at 1. No-op outside an edit session
// or on an empty or single draft.
func (l *CommittedLine) Decrement() {
	if !l.editing {
		return
	}
	l.draft = l.draft.Decrement()
}

// SetInput applies raw text from the quantity input to the draft. Cleared
// or malformed input empties the draft (the total shows the placeholder and
// save is withheld); a typed zero coerces to 1. Nothing touches the backend
// here.
func (l *CommittedLine) SetInput(raw string) {
	if !l.editing {
		return
	}
	l.draft = models.ParseQuantity(raw)
}

// Draft is the in-progress quantity. Meaningful only while editing.
func (l *CommittedLine) Draft() models.Quantity {
	return l.draft
}

// CanSave reports whether a save may be offered: an edit session is open
// and the draft is not empty. An empty draft never reaches the wire.
func (l *CommittedLine) CanSave() bool {
	return l.editing && !l.draft.IsEmpty()
}

// SaveQuantity returns the draft value to persist. ok is false when saving
// is not currently allowed.
func (l *CommittedLine) SaveQuantity() (int, bool) {
	if !l.CanSave() {
		return 0, false
	}
	n, _ := l.draft.Value()
	return n, true
}

// Cancel discards the draft and returns to viewing. The committed quantity
// is untouched and nothing is sent anywhere.
func (l *CommittedLine) Cancel() {
	l.editing = false
	l.draft = models.EmptyQuantity
}

// DisplayQuantity is what the quantity cell shows: the draft while editing,
// the committed quantity otherwise.
func (l *CommittedLine) DisplayQuantity() string {
	if l.editing {
		return l.draft.String()
	}
	return models.NewQuantity(l.Item.Quantity).String()
}

// DisplayTotal is what the total cell shows: the recomputed draft total
// while editing (or the placeholder when the draft is empty), the committed
// total otherwise.
func (l *CommittedLine) DisplayTotal() string {
	if !l.editing {
		return models.FormatMoney(l.Item.Total())
	}
	n, ok := l.draft.Value()
	if !ok {
		return models.TotalUnavailable
	}
	return models.FormatMoney(float64(n) * l.Item.UnitPrice)
}
