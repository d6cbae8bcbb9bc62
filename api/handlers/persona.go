package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cordial-cms/cordial-cms/medication"
	"github.com/cordial-cms/cordial-cms/personastore"
	"github.com/cordial-cms/cordial-cms/views"
)

// Persona serves the dashboard and persona pages backed by the REST backend
type Persona struct {
	pages
	Store personastore.Store
}

// LoginPageHandler renders the sign in page
func (h Persona) LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login", h.page("Sign in"))
}

// LoginHandler accepts any credentials and goes to the dashboard
func (h Persona) LoginHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// DashboardHandler shows the current default persona
func (h Persona) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	d := views.NewDashboard(h.Store)
	err := d.Load(r.Context())

	data := DashboardPage{
		Page:      h.page("Dashboard"),
		Error:     d.ErrorMessage(),
		NoDefault: d.NoDefault(),
		Persona:   d.Current(),
	}
	if data.Persona != nil {
		data.Medication = medication.Present(data.Persona.Medication, medication.Full)
	}
	h.render(w, statusFor(err), "dashboard", data)
}

// NewPersonaPageHandler renders an empty add persona form
func (h Persona) NewPersonaPageHandler(w http.ResponseWriter, r *http.Request) {
	form := views.NewDashboard(h.Store).OpenAddForm(r.Context())
	h.render(w, http.StatusOK, "persona_new", PersonaFormPage{
		Page: h.page("Add persona"),
		Form: newFormView(form),
	})
}

// CreatePersonaHandler submits the add persona form
func (h Persona) CreatePersonaHandler(w http.ResponseWriter, r *http.Request) {
	fields, err := personaFieldsFromForm(r)
	if err != nil {
		http.Error(w, "Failed to read form", http.StatusBadRequest)
		return
	}

	d := views.NewDashboard(h.Store)
	form := d.OpenAddForm(r.Context())
	form.SetValues(fields)

	if _, err := form.Submit(r.Context()); err != nil {
		h.render(w, statusFor(err), "persona_new", PersonaFormPage{
			Page: h.page("Add persona"),
			Form: newFormView(form),
		})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// PersonasHandler lists personas, filtered by the q query parameter
func (h Persona) PersonasHandler(w http.ResponseWriter, r *http.Request) {
	l := views.NewPersonaList(h.Store)
	err := l.Load(r.Context())
	h.renderList(w, statusFor(err), l, r.URL.Query().Get("q"))
}

// EditPersonaPageHandler opens the inline editor for one persona
func (h Persona) EditPersonaPageHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	l := views.NewPersonaList(h.Store)
	if err := l.Load(r.Context()); err != nil {
		h.renderList(w, statusFor(err), l, "")
		return
	}
	if _, err := l.StartEdit(id); err != nil {
		http.Error(w, "Persona not found", http.StatusNotFound)
		return
	}
	h.renderList(w, http.StatusOK, l, "")
}

// SavePersonaHandler replaces the mutable fields of a persona
func (h Persona) SavePersonaHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	fields, err := personaFieldsFromForm(r)
	if err != nil {
		http.Error(w, "Failed to read form", http.StatusBadRequest)
		return
	}

	l := views.NewPersonaList(h.Store)
	if err := l.Load(r.Context()); err != nil {
		h.renderList(w, statusFor(err), l, "")
		return
	}
	if _, err := l.StartEdit(id); err != nil {
		http.Error(w, "Persona not found", http.StatusNotFound)
		return
	}

	if _, err := l.Save(r.Context(), id, fields); err != nil {
		h.renderList(w, statusFor(err), l, "")
		return
	}
	http.Redirect(w, r, "/personas", http.StatusSeeOther)
}

// SetDefaultPersonaHandler moves the default marker to a persona
func (h Persona) SetDefaultPersonaHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	l := views.NewPersonaList(h.Store)
	if err := l.Load(r.Context()); err != nil {
		h.renderList(w, statusFor(err), l, "")
		return
	}
	if err := l.SetDefault(r.Context(), id); err != nil {
		h.renderList(w, statusFor(err), l, "")
		return
	}
	http.Redirect(w, r, "/personas", http.StatusSeeOther)
}

func (h Persona) renderList(w http.ResponseWriter, status int, l *views.PersonaList, query string) {
	data := PersonasPage{
		Page:  h.page("All personas"),
		Query: query,
		Error: l.ErrorMessage(),
	}
	for _, p := range l.Filter(query) {
		data.Personas = append(data.Personas, PersonaRow{
			Persona:    p,
			Medication: medication.Present(p.Medication, medication.Compact),
		})
	}
	if editor := l.Editor(); editor != nil {
		data.Edit = newFormView(editor)
		if data.Edit.Error == data.Error {
			data.Error = ""
		}
	}
	h.render(w, status, "personas", data)
}
