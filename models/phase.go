package models

import "fmt"

// PhaseMaterial is a material committed to a phase. Id identifies the
// phase-material association, not the catalog entry; the same catalog
// material can appear in many phases.
type PhaseMaterial struct {
	Id         int     `json:"id"`
	MaterialId int     `json:"material_id"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}

// Total is the committed line total. Committed quantities are always
// positive; the empty-input state exists only inside an edit session.
func (pm PhaseMaterial) Total() float64 {
	return float64(pm.Quantity) * pm.UnitPrice
}

func (pm PhaseMaterial) String() string {
	// #7 Sand - 2 KG @ ₹30.00/KG = ₹60.00
	return fmt.Sprintf("#%d %s - %d %s @ %s/%s = %s",
		pm.Id, pm.Name, pm.Quantity, pm.Unit, FormatMoney(pm.UnitPrice), pm.Unit, FormatMoney(pm.Total()))
}

// Quote is a vendor's cost quote against a phase.
type Quote struct {
	Id       int     `json:"id"`
	VendorId int     `json:"vendor_id"`
	Vendor   string  `json:"vendor_name"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"` // "pending", "accepted", "rejected"
}

// Phase is one stage of work in a room: flooring, painting, plumbing.
type Phase struct {
	Id        int             `json:"id"`
	RoomId    int             `json:"room_id"`
	Name      string          `json:"name"`
	Status    string          `json:"status"`
	Budget    float64         `json:"budget"`
	Materials []PhaseMaterial `json:"materials"`
	Quotes    []Quote         `json:"quotes"`
}

// MaterialTotal sums all committed material lines.
func (p Phase) MaterialTotal() float64 {
	total := 0.0
	for _, m := range p.Materials {
		total += m.Total()
	}
	return total
}

// AcceptedQuoteTotal sums quotes the customer has accepted.
func (p Phase) AcceptedQuoteTotal() float64 {
	total := 0.0
	for _, q := range p.Quotes {
		if q.Status == "accepted" {
			total += q.Amount
		}
	}
	return total
}

// Cost is the phase's spend as the budget overview counts it: committed
// materials plus accepted vendor quotes.
func (p Phase) Cost() float64 {
	return p.MaterialTotal() + p.AcceptedQuoteTotal()
}

// OverBudget reports whether spend exceeds the phase budget. Phases with no
// budget set are never over.
func (p Phase) OverBudget() bool {
	return p.Budget > 0 && p.Cost() > p.Budget
}
