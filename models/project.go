package models

// Room groups phases within a project.
type Room struct {
	Id     int     `json:"id"`
	Name   string  `json:"name"`
	Area   float64 `json:"area"` // square feet
	Phases []Phase `json:"phases"`
}

// Cost sums the spend of every phase in the room.
func (r Room) Cost() float64 {
	total := 0.0
	for _, p := range r.Phases {
		total += p.Cost()
	}
	return total
}

// Project is a customer's renovation project.
type Project struct {
	Id     int     `json:"id"`
	Name   string  `json:"name"`
	Status string  `json:"status"` // "planned", "in-progress", "completed"
	Budget float64 `json:"budget"`
	Rooms  []Room  `json:"rooms"`
}

// DefaultStatus fills in "planned" where the backend left status blank.
func (p *Project) DefaultStatus() {
	if p.Status == "" {
		p.Status = "planned"
	}
}

// Cost sums the spend of every room.
func (p Project) Cost() float64 {
	total := 0.0
	for _, r := range p.Rooms {
		total += r.Cost()
	}
	return total
}

// PhaseCount counts phases across all rooms.
func (p Project) PhaseCount() int {
	n := 0
	for _, r := range p.Rooms {
		n += len(r.Phases)
	}
	return n
}
