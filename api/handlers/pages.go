package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/cordial-cms/cordial-cms/catalog"
	"github.com/cordial-cms/cordial-cms/medication"
	"github.com/cordial-cms/cordial-cms/models"
	templates "github.com/cordial-cms/cordial-cms/templates/html"
	"github.com/cordial-cms/cordial-cms/views"
)

// StatusSource reports the last backend ping
type StatusSource interface {
	Status() models.BackendStatus
}

// Page is shared by every rendered page
type Page struct {
	Title   string
	Backend models.BackendStatus
}

// DashboardPage is the data for the dashboard
type DashboardPage struct {
	Page
	Error      string
	NoDefault  bool
	Persona    *models.Persona
	Medication medication.Display
}

// PersonaFormPage is the data for the add persona page
type PersonaFormPage struct {
	Page
	Form *FormView
}

// PersonaRow is one persona on the list page
type PersonaRow struct {
	models.Persona
	Medication medication.Display
}

// PersonasPage is the data for the all personas page
type PersonasPage struct {
	Page
	Query    string
	Error    string
	Personas []PersonaRow
	Edit     *FormView
}

// FormView is a persona form ready for the template
type FormView struct {
	PersonaID   string
	Values      models.PersonaFields
	FieldErrors map[string]string
	Error       string
	Preview     *medication.Display
}

// ChatPage is the data for the chat page
type ChatPage struct {
	Page
}

// ScenarioFormPage is the data for the create scenario page
type ScenarioFormPage struct {
	Page
	Catalog  *catalog.Catalog
	Draft    models.Scenario
	Selected map[string]bool
	Error    string
}

// ScenariosPage is the data for the saved scenarios page
type ScenariosPage struct {
	Page
	Catalog   *catalog.Catalog
	Scenarios []models.Scenario
	Error     string
	// PrevPage and NextPage are zero when there is no such page
	PrevPage int
	NextPage int
}

// SimulatorPage is the data for the simulator page
type SimulatorPage struct {
	Page
	Catalog  *catalog.Catalog
	Selected string
	Running  bool
	URL      string
	Error    string
}

// pages renders templates with the shared page data
type pages struct {
	Templates *templates.Renderer
	Health    StatusSource
}

func (p pages) page(title string) Page {
	pg := Page{Title: title}
	if p.Health != nil {
		pg.Backend = p.Health.Status()
	}
	return pg
}

func (p pages) render(w http.ResponseWriter, status int, page string, data interface{}) {
	if err := p.Templates.Render(w, status, page, data); err != nil {
		zap.S().With(err).Errorw("failed to render page", "page", page)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// statusFor maps a view error to the page status code
func statusFor(err error) int {
	var verr *views.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, views.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func newFormView(f *views.PersonaForm) *FormView {
	v := &FormView{
		PersonaID:   f.PersonaID(),
		Values:      f.Values(),
		FieldErrors: map[string]string{},
		Error:       f.ErrorMessage(),
	}
	for _, field := range []views.Field{views.FieldName, views.FieldMedication, views.FieldDescription} {
		if msg := f.FieldError(field); msg != "" {
			v.FieldErrors[string(field)] = msg
		}
	}
	if d, ok := f.Preview(); ok {
		v.Preview = &d
	}
	return v
}

// personaFieldsFromForm reads a posted persona form
func personaFieldsFromForm(r *http.Request) (models.PersonaFields, error) {
	if err := r.ParseForm(); err != nil {
		return models.PersonaFields{}, err
	}
	impaired, _ := strconv.ParseBool(r.PostForm.Get(string(views.FieldVisuallyImpaired)))
	if r.PostForm.Get(string(views.FieldVisuallyImpaired)) == "on" {
		impaired = true
	}
	return models.PersonaFields{
		Name:               r.PostForm.Get(string(views.FieldName)),
		Medication:         r.PostForm.Get(string(views.FieldMedication)),
		PersonaDescription: r.PostForm.Get(string(views.FieldDescription)),
		IsVisuallyImpaired: impaired,
	}, nil
}
