// Package medication holds the persona medication schedule codec: parsing the JSON string
// stored on a persona, rendering it for the dashboard, and the degraded fallback used when
// the stored text cannot be shown as a schedule.
package medication

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// EnvelopeKey wraps the schedule mapping on the wire
const EnvelopeKey = "medication_schedule"

// StatusTaken is the only status that receives the positive treatment
const StatusTaken = "taken"

// Dose is a single scheduled administration
type Dose struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// Schedule maps medication names to their doses. Names keep the order they were
// encoded in and doses keep their list order.
type Schedule struct {
	entries *orderedmap.OrderedMap[string, []Dose]
}

// NewSchedule returns an empty schedule
func NewSchedule() *Schedule {
	return &Schedule{entries: orderedmap.New[string, []Dose]()}
}

// Set adds or replaces a medication. A replaced medication keeps its position.
func (s *Schedule) Set(name string, doses []Dose) {
	s.entries.Set(name, doses)
}

// Doses returns the doses for a medication
func (s *Schedule) Doses(name string) ([]Dose, bool) {
	return s.entries.Get(name)
}

// Len is the number of medications
func (s *Schedule) Len() int {
	if s == nil || s.entries == nil {
		return 0
	}
	return s.entries.Len()
}

// Names lists the medications in schedule order
func (s *Schedule) Names() []string {
	names := make([]string, 0, s.Len())
	s.each(func(name string, _ []Dose) {
		names = append(names, name)
	})
	return names
}

func (s *Schedule) each(fn func(name string, doses []Dose)) {
	if s.Len() == 0 {
		return
	}
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// MarshalJSON encodes the bare mapping, without the envelope
func (s *Schedule) MarshalJSON() ([]byte, error) {
	if s.Len() == 0 {
		return []byte("{}"), nil
	}
	return s.entries.MarshalJSON()
}

// UnmarshalJSON decodes a bare mapping, without the envelope
func (s *Schedule) UnmarshalJSON(data []byte) error {
	if s.entries == nil {
		s.entries = orderedmap.New[string, []Dose]()
	}
	return s.entries.UnmarshalJSON(data)
}

// Encode serializes the schedule back to the string stored on a persona
func (s *Schedule) Encode() (string, error) {
	b, err := json.Marshal(struct {
		Schedule *Schedule `json:"medication_schedule"`
	}{Schedule: s})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
