package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cordial-cms/cordial-cms/models"
	"github.com/cordial-cms/cordial-cms/personastore"
)

// ErrUnknownPersona is returned when an id is not in the loaded list
var ErrUnknownPersona = errors.New("views: unknown persona")

// PersonaList is the all-personas page: the loaded personas, the default marker and at
// most one inline editor
type PersonaList struct {
	store personastore.Store

	mu       sync.Mutex
	personas []models.Persona
	message  string
	editor   *PersonaForm
}

// NewPersonaList creates an empty list
func NewPersonaList(store personastore.Store) *PersonaList {
	return &PersonaList{store: store}
}

// Load fetches the personas and the current default together. Both must succeed.
func (l *PersonaList) Load(ctx context.Context) error {
	var (
		personas []models.Persona
		current  *models.Persona
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		personas, err = l.store.ListPersonas(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		current, err = l.store.CurrentPersona(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		zap.S().With(err).Error("failed to load personas")
		l.mu.Lock()
		l.personas = nil
		l.message = MsgLoadFailed
		l.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	for i := range personas {
		personas[i].IsDefault = current != nil && personas[i].ID == current.ID
	}

	l.mu.Lock()
	l.personas = personas
	l.message = ""
	l.mu.Unlock()
	return nil
}

// Personas returns a copy of the loaded personas
func (l *PersonaList) Personas() []models.Persona {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Persona(nil), l.personas...)
}

// ErrorMessage returns the page-level error
func (l *PersonaList) ErrorMessage() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.message
}

// SetDefault makes id the default persona. The markers are only moved once the backend
// confirms.
func (l *PersonaList) SetDefault(ctx context.Context, id string) error {
	if err := l.store.MakePersonaDefault(ctx, id); err != nil {
		zap.S().With(err).Errorw("failed to set default persona", "id", id)
		l.mu.Lock()
		l.message = MsgSetDefaultFailed
		l.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.personas {
		l.personas[i].IsDefault = l.personas[i].ID == id
	}
	l.message = ""
	return nil
}

// StartEdit opens the inline editor for id, replacing any other open editor
func (l *PersonaList) StartEdit(id string) (*PersonaForm, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.personas {
		if p.ID == id {
			l.editor = NewEditForm(l.store, p, func(saved *models.Persona) { l.merge(id, saved) })
			return l.editor, nil
		}
	}
	return nil, ErrUnknownPersona
}

// CancelEdit closes the inline editor without saving
func (l *PersonaList) CancelEdit() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.editor = nil
}

// Editor returns the open inline editor or nil
func (l *PersonaList) Editor() *PersonaForm {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.editor
}

// Save submits fields through the inline editor for id. On failure the editor stays
// open with the unsaved values.
func (l *PersonaList) Save(ctx context.Context, id string, fields models.PersonaFields) (*models.Persona, error) {
	editor := l.Editor()
	if editor == nil || editor.PersonaID() != id {
		return nil, ErrNotEditing
	}

	editor.SetValues(fields)
	persona, err := editor.Submit(ctx)
	if err != nil {
		l.mu.Lock()
		l.message = editor.ErrorMessage()
		l.mu.Unlock()
		return nil, err
	}
	return persona, nil
}

// merge folds the saved fields into entry id only and closes its editor
func (l *PersonaList) merge(id string, saved *models.Persona) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.personas {
		if l.personas[i].ID == id {
			l.personas[i] = l.personas[i].WithFields(saved.Fields())
		}
	}
	if l.editor != nil && l.editor.PersonaID() == id {
		l.editor = nil
	}
	l.message = ""
}

// Filter returns the loaded personas matching query
func (l *PersonaList) Filter(query string) []models.Persona {
	return FilterPersonas(l.Personas(), query)
}

// FilterPersonas keeps personas whose name, raw medication text or description contains
// query, ignoring case. An empty query keeps everything.
func FilterPersonas(personas []models.Persona, query string) []models.Persona {
	if query == "" {
		return personas
	}

	q := strings.ToLower(query)
	matches := make([]models.Persona, 0, len(personas))
	for _, p := range personas {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Medication), q) ||
			strings.Contains(strings.ToLower(p.PersonaDescription), q) {
			matches = append(matches, p)
		}
	}
	return matches
}
