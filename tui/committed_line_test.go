package tui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/renokit/reno/models"
)

func testPhaseMaterial() models.PhaseMaterial {
	return models.PhaseMaterial{
		Id:        7,
		Name:      "Sand",
		Unit:      "KG",
		UnitPrice: 30,
		Quantity:  2,
	}
}

// fakeStore records backend calls in order and can be made to fail.
type fakeStore struct {
	calls     []string
	failSave  error
	failFetch error
	phase     models.Phase
}

func (f *fakeStore) UpdatePhaseMaterial(id, qty int) error {
	f.calls = append(f.calls, fmt.Sprintf("update(%d,%d)", id, qty))
	return f.failSave
}

func (f *fakeStore) DeletePhaseMaterial(id int) error {
	f.calls = append(f.calls, fmt.Sprintf("delete(%d)", id))
	return f.failSave
}

func (f *fakeStore) GetPhase(id int) (*models.Phase, error) {
	f.calls = append(f.calls, fmt.Sprintf("refresh(%d)", id))
	if f.failFetch != nil {
		return nil, f.failFetch
	}
	phase := f.phase
	return &phase, nil
}

func TestCommittedLineEditAndSaveGate(t *testing.T) {
	line := NewCommittedLine(testPhaseMaterial())

	if line.Editing() {
		t.Fatal("line should start in viewing")
	}
	if line.CanSave() {
		t.Fatal("save must not be offered outside an edit session")
	}

	line.StartEdit()
	if !line.Editing() {
		t.Fatal("StartEdit should open an edit session")
	}
	if n, _ := line.Draft().Value(); n != 2 {
		t.Errorf("draft seeded to %d, want committed quantity 2", n)
	}
	if !line.CanSave() {
		t.Error("save should be offered for a non-empty draft")
	}

	line.SetInput("")
	if line.CanSave() {
		t.Error("save must be withheld while the draft is empty")
	}
	if _, ok := line.SaveQuantity(); ok {
		t.Error("SaveQuantity must refuse while the draft is empty")
	}
}

func TestCommittedLineCancelRestoresExactly(t *testing.T) {
	line := NewCommittedLine(testPhaseMaterial())

	line.StartEdit()
	line.Increment()
	line.Increment()
	line.SetInput("25")
	line.Decrement()
	line.SetInput("")
	line.Increment()
	line.Cancel()

	if line.Editing() {
		t.Error("Cancel must return to viewing")
	}
	if line.Item.Quantity != 2 {
		t.Errorf("committed quantity after Cancel = %d, want 2", line.Item.Quantity)
	}
	if got := line.DisplayQuantity(); got != "2" {
		t.Errorf("DisplayQuantity after Cancel = %q, want %q", got, "2")
	}
	if got := line.DisplayTotal(); got != models.FormatMoney(60) {
		t.Errorf("DisplayTotal after Cancel = %q, want %q", got, models.FormatMoney(60))
	}
}

func TestCommittedLineDraftTotals(t *testing.T) {
	line := NewCommittedLine(testPhaseMaterial())

	// Viewing: committed quantity drives the total.
	if got := line.DisplayTotal(); got != models.FormatMoney(60) {
		t.Errorf("viewing total = %q, want %q", got, models.FormatMoney(60))
	}

	line.StartEdit()
	line.Increment() // draft 3
	if got := line.DisplayTotal(); got != models.FormatMoney(90) {
		t.Errorf("editing total = %q, want %q", got, models.FormatMoney(90))
	}

	// Cleared draft shows the placeholder, not zero.
	line.SetInput("")
	if got := line.DisplayTotal(); got != models.TotalUnavailable {
		t.Errorf("cleared-draft total = %q, want %q", got, models.TotalUnavailable)
	}
}

func TestCommittedLineTypedZeroCoercesDraft(t *testing.T) {
	line := NewCommittedLine(testPhaseMaterial())
	line.StartEdit()
	line.SetInput("0")
	if n, ok := line.Draft().Value(); !ok || n != 1 {
		t.Errorf("draft after typing zero = %d (ok=%v), want 1", n, ok)
	}
	if got := line.DisplayQuantity(); got != "1" {
		t.Errorf("DisplayQuantity after typing zero = %q, want %q", got, "1")
	}
}

func TestEditorSavePersistsThenRefreshes(t *testing.T) {
	store := &fakeStore{
		phase: models.Phase{
			Id:   3,
			Name: "Flooring",
			Materials: []models.PhaseMaterial{
				{Id: 7, Name: "Sand", Unit: "KG", UnitPrice: 30, Quantity: 3},
			},
		},
	}
	editor := NewEditor(store, models.Phase{
		Id:        3,
		Name:      "Flooring",
		Materials: []models.PhaseMaterial{testPhaseMaterial()},
	})

	line := editor.current()
	line.StartEdit()
	line.Increment() // 2 -> 3

	qty, ok := line.SaveQuantity()
	if !ok {
		t.Fatal("setup: save should be allowed")
	}
	msg := editor.saveCmd(line.Item.Id, qty)()

	want := []string{"update(7,3)", "refresh(3)"}
	if len(store.calls) != len(want) {
		t.Fatalf("backend calls = %v, want %v", store.calls, want)
	}
	for i := range want {
		if store.calls[i] != want[i] {
			t.Fatalf("backend calls = %v, want %v", store.calls, want)
		}
	}

	editor.Update(msg)
	refreshed := editor.current()
	if refreshed.Editing() {
		t.Error("successful save should close the edit session")
	}
	if refreshed.Item.Quantity != 3 {
		t.Errorf("quantity after refresh = %d, want 3", refreshed.Item.Quantity)
	}
}

func TestEditorSaveFailureStaysEditing(t *testing.T) {
	store := &fakeStore{failSave: errors.New("backend down")}
	editor := NewEditor(store, models.Phase{
		Id:        3,
		Name:      "Flooring",
		Materials: []models.PhaseMaterial{testPhaseMaterial()},
	})

	line := editor.current()
	line.StartEdit()
	line.Increment()

	qty, _ := line.SaveQuantity()
	msg := editor.saveCmd(line.Item.Id, qty)()
	editor.Update(msg)

	if !editor.current().Editing() {
		t.Error("failed save must leave the edit session open for retry or cancel")
	}
	if editor.errMsg == "" {
		t.Error("failed save must surface the error")
	}
	// update attempted, but no refresh after a failed persist
	if len(store.calls) != 1 || store.calls[0] != "update(7,3)" {
		t.Errorf("backend calls = %v, want only the update attempt", store.calls)
	}
}

func TestEditorDeleteRefreshesPhase(t *testing.T) {
	store := &fakeStore{phase: models.Phase{Id: 3, Name: "Flooring"}}
	editor := NewEditor(store, models.Phase{
		Id:        3,
		Name:      "Flooring",
		Materials: []models.PhaseMaterial{testPhaseMaterial()},
	})

	line := editor.current()
	msg := editor.deleteCmd(line.Item.Id, line.Item.Name)()
	editor.Update(msg)

	want := []string{"delete(7)", "refresh(3)"}
	for i := range want {
		if i >= len(store.calls) || store.calls[i] != want[i] {
			t.Fatalf("backend calls = %v, want %v", store.calls, want)
		}
	}
	if len(editor.lines) != 0 {
		t.Errorf("editor should have no rows after the refreshed phase came back empty, got %d", len(editor.lines))
	}
}
