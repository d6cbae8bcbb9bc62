package views

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cordial-cms/cordial-cms/models"
	"github.com/cordial-cms/cordial-cms/personastore"
)

// Dashboard shows the current default persona and hosts the add-persona form
type Dashboard struct {
	store personastore.Store

	mu      sync.Mutex
	current *models.Persona
	loaded  bool
	message string
	addForm *PersonaForm
}

// NewDashboard creates a dashboard that has not loaded yet
func NewDashboard(store personastore.Store) *Dashboard {
	return &Dashboard{store: store}
}

// Load fetches the default persona. Retrying is calling Load again.
func (d *Dashboard) Load(ctx context.Context) error {
	current, err := d.store.CurrentPersona(ctx)
	if err != nil {
		zap.S().With(err).Error("failed to load default persona")
		d.mu.Lock()
		d.message = MsgLoadDefaultFailed
		d.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if current != nil {
		current.IsDefault = true
	}
	d.current = current
	d.loaded = true
	d.message = ""
	return nil
}

// Current returns the default persona, nil when none is set
func (d *Dashboard) Current() *models.Persona {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// NoDefault reports that a load succeeded and no default is set
func (d *Dashboard) NoDefault() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loaded && d.current == nil
}

// ErrorMessage returns the load error, if any
func (d *Dashboard) ErrorMessage() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.message
}

// OpenAddForm opens the create form. A successful submission reloads the default and
// closes the form.
func (d *Dashboard) OpenAddForm(ctx context.Context) *PersonaForm {
	d.mu.Lock()
	defer d.mu.Unlock()

	var form *PersonaForm
	form = NewCreateForm(d.store,
		func(*models.Persona) { _ = d.Load(ctx) },
		func(*models.Persona) { d.closeAddForm(form) },
	)
	d.addForm = form
	return form
}

// AddForm returns the open create form or nil
func (d *Dashboard) AddForm() *PersonaForm {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.addForm
}

// CloseAddForm discards the create form
func (d *Dashboard) CloseAddForm() {
	d.closeAddForm(d.AddForm())
}

func (d *Dashboard) closeAddForm(form *PersonaForm) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.addForm == form {
		d.addForm = nil
	}
}
