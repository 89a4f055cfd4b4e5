package models

import (
	"fmt"

	"github.com/fatih/color"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Vendor is the supplier of a catalog material.
type Vendor struct {
	Id     int     `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	City   string  `json:"city"`
}

// Material is a catalog entry: something that can be added to a renovation
// phase but has not been committed to one yet. UnitPrice and Unit are fixed
// for the lifetime of the entry; only the chosen quantity ever changes, and
// that lives in the Selection, not here.
type Material struct {
	Id        int     `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Unit      string  `json:"unit"` // display label, e.g. "KG", "SQFT", "LTR"
	UnitPrice float64 `json:"unit_price"`
	ColorHex  string  `json:"color_hex"` // optional, paints and tiles mostly
	Vendor    Vendor  `json:"vendor"`
	Archived  bool    `json:"archived"`
}

// Swatch renders a small colored block for materials that carry a color,
// like paint. Returns "" when there is no color or color output is off.
func (m Material) Swatch() string {
	if m.ColorHex == "" || color.NoColor {
		return ""
	}
	c, err := colorful.Hex("#" + m.ColorHex)
	if err != nil {
		return ""
	}
	r, g, b := c.RGB255()
	// Swatch on a white background so pale paints stay visible.
	return fmt.Sprintf("\x1b[48;2;255;255;255m\x1b[38;2;%d;%d;%dm████\x1b[0m ", r, g, b)
}

func (m Material) String() string {
	//  - ████ #14 Birla White Cement (Cement) - ₹380.00/KG from BuildMart [4.5★] (archived)
	archived := ""
	if m.Archived {
		if color.NoColor {
			archived = " (archived)"
		} else {
			archived = " \x1b[38;2;200;0;0m(archived)\x1b[0m"
		}
	}
	rating := ""
	if m.Vendor.Rating > 0 {
		rating = fmt.Sprintf(" [%.1f★]", m.Vendor.Rating)
	}
	category := ""
	if m.Category != "" {
		category = fmt.Sprintf(" (%s)", m.Category)
	}
	return fmt.Sprintf("%s#%d %s%s - %s/%s from %s%s%s",
		m.Swatch(), m.Id, m.Name, category, FormatMoney(m.UnitPrice), m.Unit, m.Vendor.Name, rating, archived)
}
