package views

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/cordial-cms/cordial-cms/medication"
	"github.com/cordial-cms/cordial-cms/models"
	"github.com/cordial-cms/cordial-cms/personastore"
)

// Field names a persona form input. The values match the backend JSON keys.
type Field string

// Persona form fields
const (
	FieldName             Field = "name"
	FieldMedication       Field = "medication"
	FieldDescription      Field = "persona_description"
	FieldVisuallyImpaired Field = "is_visually_impaired"
)

// FieldState tracks a single input. Only the medication field can become Invalid.
type FieldState int

// Field states
const (
	Pristine FieldState = iota
	Editing
	Valid
	Invalid
)

func (s FieldState) String() string {
	switch s {
	case Editing:
		return "editing"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "pristine"
	}
}

// FormMode is create or edit
type FormMode string

// Form modes
const (
	CreateMode FormMode = "create"
	EditMode   FormMode = "edit"
)

// PersonaForm is the create/edit form for a persona
type PersonaForm struct {
	store     personastore.Store
	mode      FormMode
	id        string
	callbacks []func(*models.Persona)

	submitting atomic.Bool

	mu          sync.Mutex
	values      models.PersonaFields
	states      map[Field]FieldState
	fieldErrors map[Field]string
	message     string
	closed      bool
}

// NewCreateForm opens an empty form that adds a persona. Each callback runs once after
// a successful submission.
func NewCreateForm(store personastore.Store, callbacks ...func(*models.Persona)) *PersonaForm {
	return newPersonaForm(store, CreateMode, "", models.PersonaFields{}, callbacks)
}

// NewEditForm opens a form prefilled from p that replaces its mutable fields
func NewEditForm(store personastore.Store, p models.Persona, callbacks ...func(*models.Persona)) *PersonaForm {
	return newPersonaForm(store, EditMode, p.ID, p.Fields(), callbacks)
}

func newPersonaForm(store personastore.Store, mode FormMode, id string, values models.PersonaFields, callbacks []func(*models.Persona)) *PersonaForm {
	return &PersonaForm{
		store:       store,
		mode:        mode,
		id:          id,
		callbacks:   callbacks,
		values:      values,
		states:      map[Field]FieldState{},
		fieldErrors: map[Field]string{},
	}
}

// Mode returns whether the form creates or edits
func (f *PersonaForm) Mode() FormMode { return f.mode }

// PersonaID is the id being edited, empty for a create form
func (f *PersonaForm) PersonaID() string { return f.id }

// Set updates a text field. Medication is checked for well-formed JSON on every change.
func (f *PersonaForm) Set(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case FieldName:
		f.values.Name = value
	case FieldDescription:
		f.values.PersonaDescription = value
	case FieldMedication:
		f.values.Medication = value
		f.checkMedication()
		return
	default:
		return
	}
	f.states[field] = Editing
	delete(f.fieldErrors, field)
}

// SetVisuallyImpaired updates the checkbox
func (f *PersonaForm) SetVisuallyImpaired(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.IsVisuallyImpaired = v
	f.states[FieldVisuallyImpaired] = Editing
}

// SetValues applies every field at once, as a posted HTML form does
func (f *PersonaForm) SetValues(v models.PersonaFields) {
	f.Set(FieldName, v.Name)
	f.Set(FieldDescription, v.PersonaDescription)
	f.Set(FieldMedication, v.Medication)
	f.SetVisuallyImpaired(v.IsVisuallyImpaired)
}

// must hold f.mu
func (f *PersonaForm) checkMedication() {
	switch {
	case f.values.Medication == "":
		f.states[FieldMedication] = Editing
		delete(f.fieldErrors, FieldMedication)
	case medication.IsValid(f.values.Medication):
		f.states[FieldMedication] = Valid
		delete(f.fieldErrors, FieldMedication)
	default:
		f.states[FieldMedication] = Invalid
		f.fieldErrors[FieldMedication] = MsgInvalidJSON
	}
}

// Values returns the current field values
func (f *PersonaForm) Values() models.PersonaFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// State returns the state of one field
func (f *PersonaForm) State(field Field) FieldState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.states[field]
}

// FieldError returns the message shown under a field, if any
func (f *PersonaForm) FieldError(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fieldErrors[field]
}

// ErrorMessage returns the form-level error
func (f *PersonaForm) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Submitting reports whether a submission is pending
func (f *PersonaForm) Submitting() bool {
	return f.submitting.Load()
}

// Closed reports whether the form was released after a successful submission
func (f *PersonaForm) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Preview renders the medication as it will appear on the persona card. It returns
// false while the field is empty or not well-formed.
func (f *PersonaForm) Preview() (medication.Display, bool) {
	f.mu.Lock()
	text := f.values.Medication
	f.mu.Unlock()

	if text == "" || !medication.IsValid(text) {
		return medication.Display{}, false
	}
	return medication.Present(text, medication.Full), true
}

// Submit validates the form and sends it to the backend
func (f *PersonaForm) Submit(ctx context.Context) (*models.Persona, error) {
	if !f.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer f.submitting.Store(false)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrFormClosed
	}
	values := f.values
	if verr := f.validate(); verr != nil {
		f.mu.Unlock()
		return nil, verr
	}
	f.message = ""
	f.mu.Unlock()

	var (
		persona *models.Persona
		err     error
		failMsg string
	)
	if f.mode == EditMode {
		persona, err = f.store.EditPersona(ctx, f.id, values)
		failMsg = MsgUpdateFailed
	} else {
		persona, err = f.store.AddPersona(ctx, values)
		failMsg = MsgAddFailed
	}
	if err != nil {
		zap.S().With(err).Errorw("failed to submit persona form", "mode", f.mode, "id", f.id)
		f.mu.Lock()
		f.message = failMsg
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	f.mu.Lock()
	f.closed = true
	callbacks := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb(persona)
	}
	return persona, nil
}

// must hold f.mu
func (f *PersonaForm) validate() *ValidationError {
	errs := map[string]string{}
	if strings.TrimSpace(f.values.Name) == "" {
		errs[string(FieldName)] = MsgNameRequired
		f.fieldErrors[FieldName] = MsgNameRequired
	}
	if strings.TrimSpace(f.values.PersonaDescription) == "" {
		errs[string(FieldDescription)] = MsgDescriptionMissing
		f.fieldErrors[FieldDescription] = MsgDescriptionMissing
	}
	f.checkMedication()
	if f.states[FieldMedication] == Invalid {
		errs[string(FieldMedication)] = MsgInvalidJSON
	}
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 && errs[string(FieldMedication)] != "" {
		f.message = MsgInvalidJSON
	} else {
		f.message = MsgRequiredFields
	}
	return &ValidationError{Fields: errs}
}
