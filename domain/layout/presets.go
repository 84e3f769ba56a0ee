package layout

// A4 portrait page.
var A4 = Size{W: 210, H: 297}

// A4Grid is the 3x8 adhesive label sheet used for shelf and garment labels.
// The top margin is 12mm less the 3mm the printer adds at the bottom.
func A4Grid() Sheet {
	return Sheet{
		Name:            "a4-grid",
		Page:            A4,
		Grid:            Grid{Columns: 3, Rows: 8},
		Cell:            Size{W: 65, H: 35},
		Margins:         Margins{Left: 8, Top: 9},
		Inset:           Inset{Horizontal: 5, Vertical: 4},
		CaptionHeight:   3.5,
		CaptionGap:      1,
		CaptionFontSize: 9,
	}
}

// Envelope is the 148x105mm card used for ticket codes, with the code printed
// 10mm from the left edge and 40mm above the bottom edge.
func Envelope() Card {
	return Card{
		Name:     "envelope",
		Page:     Size{W: 148, H: 105},
		TextX:    10,
		TextY:    105 - 40,
		FontSize: 14,
	}
}

// Presets groups the layouts the application can print with.
type Presets struct {
	Labels Sheet `yaml:"labels" json:"labels"`
	Cards  Card  `yaml:"cards" json:"cards"`
}

// DefaultPresets returns the built-in layouts.
func DefaultPresets() Presets {
	return Presets{Labels: A4Grid(), Cards: Envelope()}
}

// Validate checks both layouts.
func (p Presets) Validate() error {
	if err := p.Labels.Validate(); err != nil {
		return err
	}
	return p.Cards.Validate()
}
