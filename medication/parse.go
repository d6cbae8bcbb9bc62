package medication

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

var (
	// ErrInvalidJSON is returned when the medication text is not well-formed JSON
	ErrInvalidJSON = errors.New("medication: invalid JSON")
	// ErrMissingScheduleEnvelope is returned for well-formed JSON without a
	// medication_schedule object
	ErrMissingScheduleEnvelope = errors.New("medication: missing medication_schedule envelope")
	// ErrMalformedSchedule is returned when the envelope is present but a dose list
	// does not decode
	ErrMalformedSchedule = errors.New("medication: malformed medication schedule")
)

// Parse decodes the medication text stored on a persona
func Parse(input string) (*Schedule, error) {
	raw := []byte(input)
	if !json.Valid(raw) {
		return nil, ErrInvalidJSON
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrMissingScheduleEnvelope
	}

	value, ok := envelope(trimmed)
	if !ok {
		return nil, ErrMissingScheduleEnvelope
	}

	schedule := NewSchedule()
	if err := schedule.UnmarshalJSON(value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSchedule, err)
	}
	return schedule, nil
}

// envelope returns the medication_schedule object. A repeated key resolves to its last
// occurrence, as encoding/json does.
func envelope(doc []byte) ([]byte, bool) {
	var (
		value    []byte
		dataType jsonparser.ValueType
		found    bool
	)
	err := jsonparser.ObjectEach(doc, func(key, v []byte, dt jsonparser.ValueType, _ int) error {
		if string(key) == EnvelopeKey {
			value, dataType, found = v, dt, true
		}
		return nil
	})
	if err != nil || !found || dataType != jsonparser.Object {
		return nil, false
	}
	return value, true
}

// IsValid reports whether the text is well-formed JSON. A missing envelope still counts
// as valid since live feedback is only about well-formedness.
func IsValid(input string) bool {
	_, err := Parse(input)
	return !errors.Is(err, ErrInvalidJSON)
}

// IsSchemaDegradation reports whether err means the JSON parsed but did not hold a
// usable schedule
func IsSchemaDegradation(err error) bool {
	return errors.Is(err, ErrMissingScheduleEnvelope) || errors.Is(err, ErrMalformedSchedule)
}
