package medication

import "fmt"

// Variant selects the layout used to render a schedule
type Variant string

const (
	// Compact lists each medication with its dose count
	Compact Variant = "compact"
	// Full adds a row per dose
	Full Variant = "full"
)

// Placeholder texts shown instead of a schedule
const (
	NoDataPlaceholder     = "No medication data available"
	NoSchedulePlaceholder = "No medication schedule available"
)

// ParseVariant maps a query or form value to a variant. Anything unknown is Full.
func ParseVariant(v string) Variant {
	if Variant(v) == Compact {
		return Compact
	}
	return Full
}

// DoseRow is one dose in the full layout
type DoseRow struct {
	Time       string `json:"time"`
	Status     string `json:"status"`
	IsPositive bool   `json:"isPositive"`
}

// MedicationView is one rendered medication
type MedicationView struct {
	Name      string    `json:"name"`
	DoseCount int       `json:"doseCount"`
	Doses     []DoseRow `json:"doses,omitempty"`
}

// Render builds the view model for a schedule
func Render(s *Schedule, v Variant) []MedicationView {
	views := make([]MedicationView, 0, s.Len())
	s.each(func(name string, doses []Dose) {
		view := MedicationView{Name: name, DoseCount: len(doses)}
		if v != Compact {
			view.Doses = make([]DoseRow, 0, len(doses))
			for _, d := range doses {
				view.Doses = append(view.Doses, DoseRow{
					Time:       d.Time,
					Status:     d.Status,
					IsPositive: d.Status == StatusTaken,
				})
			}
		}
		views = append(views, view)
	})
	return views
}

// Display is what a medication field shows: either rendered medications or a single
// fallback line
type Display struct {
	Variant     Variant          `json:"variant"`
	Fallback    string           `json:"fallback,omitempty"`
	Medications []MedicationView `json:"medications"`
}

// IsFallback reports whether the field degraded to a single line
func (d Display) IsFallback() bool {
	return d.Fallback != ""
}

// Present parses and renders the medication text, degrading to a fallback line
func Present(input string, v Variant) Display {
	d := Display{Variant: v, Medications: []MedicationView{}}
	if input == "" {
		d.Fallback = NoDataPlaceholder
		return d
	}

	schedule, err := Parse(input)
	switch {
	case err == nil:
		d.Medications = Render(schedule, v)
	case IsSchemaDegradation(err):
		d.Fallback = NoSchedulePlaceholder
	default:
		d.Fallback = input
	}
	return d
}

// DoseLabel is the per-medication badge text
func DoseLabel(n int) string {
	if n == 1 {
		return "1 time/day"
	}
	return fmt.Sprintf("%d times/day", n)
}
