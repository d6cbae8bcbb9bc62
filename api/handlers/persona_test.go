package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cordial-cms/cordial-cms/models"
	"github.com/cordial-cms/cordial-cms/views"
)

const aspirinSchedule = `{"medication_schedule":{"Aspirin":[{"status":"taken","time":"08:00 AM"}]}}`

func testPersonas() []models.Persona {
	return []models.Persona{
		{ID: "1", Name: "Amy", PersonaDescription: "retired teacher", Medication: ""},
		{ID: "2", Name: "Bob", PersonaDescription: "likes chess", Medication: aspirinSchedule},
	}
}

func TestLoginPage(t *testing.T) {
	ta := newTestApp(t)
	req, _ := http.NewRequest("GET", "/", nil)
	response := ta.executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "<title>Sign in")
}

func TestLoginRedirectsToDashboard(t *testing.T) {
	ta := newTestApp(t)
	response := ta.executeRequest(postForm("/login", url.Values{"email": {"a@b.c"}, "password": {"x"}}))

	checkResponseCode(t, http.StatusSeeOther, response.Code)
	assert.Equal(t, "/dashboard", response.Header().Get("Location"))
}

func TestDashboardHandler(t *testing.T) {
	t.Run("default persona", func(t *testing.T) {
		ta := newTestApp(t)
		ta.store.On("CurrentPersona", mock.Anything).Return(&models.Persona{ID: "2", Name: "Bob", Medication: aspirinSchedule}, nil)

		req, _ := http.NewRequest("GET", "/dashboard", nil)
		response := ta.executeRequest(req)

		checkResponseCode(t, http.StatusOK, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, "Bob")
		assert.Contains(t, body, "Aspirin")
		assert.Contains(t, body, "1 time/day")
		assert.Contains(t, body, "08:00 AM: taken")
		assert.NotContains(t, body, "No default persona set")
	})

	t.Run("no default persona", func(t *testing.T) {
		ta := newTestApp(t)
		ta.store.On("CurrentPersona", mock.Anything).Return(nil, nil)

		req, _ := http.NewRequest("GET", "/dashboard", nil)
		response := ta.executeRequest(req)

		checkResponseCode(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "No default persona set")
	})

	t.Run("backend failure", func(t *testing.T) {
		ta := newTestApp(t)
		ta.store.On("CurrentPersona", mock.Anything).Return(nil, errors.New("connection refused"))

		req, _ := http.NewRequest("GET", "/dashboard", nil)
		response := ta.executeRequest(req)

		checkResponseCode(t, http.StatusBadGateway, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, views.MsgLoadDefaultFailed)
		assert.Contains(t, body, "Retry")
		assert.NotContains(t, body, "connection refused")
	})
}

func TestNewPersonaPage(t *testing.T) {
	ta := newTestApp(t)
	req, _ := http.NewRequest("GET", "/dashboard/personas/new", nil)
	response := ta.executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, `name="persona_description"`)
	assertSubmitGuarded(t, body, `action="/dashboard/personas/new"`)
}

// assertSubmitGuarded checks that the form posting to action disables its button once
// submitted
func assertSubmitGuarded(t *testing.T, body, action string) {
	t.Helper()
	assert.Contains(t, body, action+` data-submit-guard`)
	assert.Contains(t, body, `data-submitting-label=`)
	assert.Contains(t, body, "button.disabled = true")
	assert.Contains(t, body, "e.preventDefault()")
}

func TestCreatePersonaHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ta := newTestApp(t)
		fields := models.PersonaFields{
			Name:               "Dana",
			Medication:         aspirinSchedule,
			PersonaDescription: "likes gardening",
			IsVisuallyImpaired: true,
		}
		ta.store.On("AddPersona", mock.Anything, fields).Return(&models.Persona{ID: "3", Name: "Dana"}, nil).Once()
		ta.store.On("CurrentPersona", mock.Anything).Return(nil, nil).Maybe()

		response := ta.executeRequest(postForm("/dashboard/personas/new", url.Values{
			"name":                 {"Dana"},
			"medication":           {aspirinSchedule},
			"persona_description":  {"likes gardening"},
			"is_visually_impaired": {"on"},
		}))

		checkResponseCode(t, http.StatusSeeOther, response.Code)
		assert.Equal(t, "/dashboard", response.Header().Get("Location"))
		ta.store.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		ta := newTestApp(t)

		response := ta.executeRequest(postForm("/dashboard/personas/new", url.Values{
			"name":                {"  "},
			"persona_description": {""},
		}))

		checkResponseCode(t, http.StatusUnprocessableEntity, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, views.MsgNameRequired)
		assert.Contains(t, body, views.MsgDescriptionMissing)
		assert.Contains(t, body, views.MsgRequiredFields)
		ta.store.AssertNotCalled(t, "AddPersona", mock.Anything, mock.Anything)
	})

	t.Run("invalid medication", func(t *testing.T) {
		ta := newTestApp(t)

		response := ta.executeRequest(postForm("/dashboard/personas/new", url.Values{
			"name":                {"Dana"},
			"medication":          {"{bad"},
			"persona_description": {"likes gardening"},
		}))

		checkResponseCode(t, http.StatusUnprocessableEntity, response.Code)
		assert.Contains(t, response.Body.String(), views.MsgInvalidJSON)
		ta.store.AssertNotCalled(t, "AddPersona", mock.Anything, mock.Anything)
	})

	t.Run("backend failure keeps the values", func(t *testing.T) {
		ta := newTestApp(t)
		ta.store.On("AddPersona", mock.Anything, mock.Anything).Return(nil, errors.New("status 500"))

		response := ta.executeRequest(postForm("/dashboard/personas/new", url.Values{
			"name":                {"Dana"},
			"persona_description": {"likes gardening"},
		}))

		checkResponseCode(t, http.StatusBadGateway, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, views.MsgAddFailed)
		assert.Contains(t, body, `value="Dana"`)
		assertSubmitGuarded(t, body, `action="/dashboard/personas/new"`)
	})
}

func TestPersonasHandler(t *testing.T) {
	t.Run("list and filter", func(t *testing.T) {
		ta := newTestApp(t)
		ta.store.On("ListPersonas", mock.Anything).Return(testPersonas(), nil)
		ta.store.On("CurrentPersona", mock.Anything).Return(&models.Persona{ID: "1", Name: "Amy"}, nil)

		req, _ := http.NewRequest("GET", "/personas", nil)
		response := ta.executeRequest(req)
		checkResponseCode(t, http.StatusOK, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, "Amy")
		assert.Contains(t, body, "Bob")
		assert.Contains(t, body, "No medication data available")
		assert.Contains(t, body, "/personas/2/default")
		assert.NotContains(t, body, "/personas/1/default")

		req, _ = http.NewRequest("GET", "/personas?q=ASP", nil)
		response = ta.executeRequest(req)
		checkResponseCode(t, http.StatusOK, response.Code)
		body = response.Body.String()
		assert.Contains(t, body, "Bob")
		assert.NotContains(t, body, "Amy")
	})

	t.Run("no match", func(t *testing.T) {
		ta := newTestApp(t)
		ta.store.On("ListPersonas", mock.Anything).Return(testPersonas(), nil)
		ta.store.On("CurrentPersona", mock.Anything).Return(nil, nil)

		req, _ := http.NewRequest("GET", "/personas?q=zzz", nil)
		response := ta.executeRequest(req)
		checkResponseCode(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "No personas found.")
	})

	t.Run("backend failure", func(t *testing.T) {
		ta := newTestApp(t)
		ta.store.On("ListPersonas", mock.Anything).Return(nil, errors.New("timeout"))
		ta.store.On("CurrentPersona", mock.Anything).Return(nil, nil).Maybe()

		req, _ := http.NewRequest("GET", "/personas", nil)
		response := ta.executeRequest(req)
		checkResponseCode(t, http.StatusBadGateway, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, views.MsgLoadFailed)
		assert.NotContains(t, body, "No personas found.")
	})
}

func TestEditPersonaPageHandler(t *testing.T) {
	ta := newTestApp(t)
	ta.store.On("ListPersonas", mock.Anything).Return(testPersonas(), nil)
	ta.store.On("CurrentPersona", mock.Anything).Return(nil, nil)

	req, _ := http.NewRequest("GET", "/personas/2/edit", nil)
	response := ta.executeRequest(req)
	checkResponseCode(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, `action="/personas/2"`)
	assert.Contains(t, body, `value="Bob"`)
	assert.Contains(t, body, "/personas/1/edit")
	assertSubmitGuarded(t, body, `action="/personas/2"`)

	req, _ = http.NewRequest("GET", "/personas/99/edit", nil)
	response = ta.executeRequest(req)
	checkResponseCode(t, http.StatusNotFound, response.Code)
}

func TestSavePersonaHandler(t *testing.T) {
	edited := models.PersonaFields{Name: "Bobby", PersonaDescription: "likes chess", Medication: aspirinSchedule}

	t.Run("success", func(t *testing.T) {
		ta := newTestApp(t)
		ta.store.On("ListPersonas", mock.Anything).Return(testPersonas(), nil)
		ta.store.On("CurrentPersona", mock.Anything).Return(nil, nil)
		ta.store.On("EditPersona", mock.Anything, "2", edited).Return(&models.Persona{ID: "2", Name: "Bobby"}, nil).Once()

		response := ta.executeRequest(postForm("/personas/2", url.Values{
			"name":                {"Bobby"},
			"medication":          {aspirinSchedule},
			"persona_description": {"likes chess"},
		}))

		checkResponseCode(t, http.StatusSeeOther, response.Code)
		assert.Equal(t, "/personas", response.Header().Get("Location"))
		ta.store.AssertExpectations(t)
	})

	t.Run("backend failure", func(t *testing.T) {
		ta := newTestApp(t)
		ta.store.On("ListPersonas", mock.Anything).Return(testPersonas(), nil)
		ta.store.On("CurrentPersona", mock.Anything).Return(nil, nil)
		ta.store.On("EditPersona", mock.Anything, "2", edited).Return(nil, errors.New("status 500"))

		response := ta.executeRequest(postForm("/personas/2", url.Values{
			"name":                {"Bobby"},
			"medication":          {aspirinSchedule},
			"persona_description": {"likes chess"},
		}))

		checkResponseCode(t, http.StatusBadGateway, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, views.MsgUpdateFailed)
		assert.Contains(t, body, `value="Bobby"`)
	})

	t.Run("unknown persona", func(t *testing.T) {
		ta := newTestApp(t)
		ta.store.On("ListPersonas", mock.Anything).Return(testPersonas(), nil)
		ta.store.On("CurrentPersona", mock.Anything).Return(nil, nil)

		response := ta.executeRequest(postForm("/personas/99", url.Values{"name": {"X"}}))

		checkResponseCode(t, http.StatusNotFound, response.Code)
		ta.store.AssertNotCalled(t, "EditPersona", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSetDefaultPersonaHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ta := newTestApp(t)
		ta.store.On("ListPersonas", mock.Anything).Return(testPersonas(), nil)
		ta.store.On("CurrentPersona", mock.Anything).Return(nil, nil)
		ta.store.On("MakePersonaDefault", mock.Anything, "2").Return(nil).Once()

		response := ta.executeRequest(postForm("/personas/2/default", url.Values{}))

		checkResponseCode(t, http.StatusSeeOther, response.Code)
		assert.Equal(t, "/personas", response.Header().Get("Location"))
		ta.store.AssertExpectations(t)
	})

	t.Run("backend failure", func(t *testing.T) {
		ta := newTestApp(t)
		ta.store.On("ListPersonas", mock.Anything).Return(testPersonas(), nil)
		ta.store.On("CurrentPersona", mock.Anything).Return(&models.Persona{ID: "1", Name: "Amy"}, nil)
		ta.store.On("MakePersonaDefault", mock.Anything, "2").Return(errors.New("status 404"))

		response := ta.executeRequest(postForm("/personas/2/default", url.Values{}))

		checkResponseCode(t, http.StatusBadGateway, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, views.MsgSetDefaultFailed)
		assert.NotContains(t, body, "/personas/1/default")
	})
}
