package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cordial-cms/cordial-cms/databases"
	"github.com/cordial-cms/cordial-cms/models"
	"github.com/cordial-cms/cordial-cms/views"
)

func TestNewScenarioPage(t *testing.T) {
	ta := newTestApp(t)
	req, _ := http.NewRequest("GET", "/scenarios/new", nil)
	response := ta.executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, "Kitchen")
	assert.Contains(t, body, "Environmental Risks")
	assert.Contains(t, body, `value="power-outage"`)
}

func TestCreateScenarioHandler(t *testing.T) {
	valid := url.Values{
		"name":     {"Night outage"},
		"roomType": {"kitchen"},
		"risks":    {"power-outage", "break-ins"},
	}

	t.Run("saved", func(t *testing.T) {
		ta := newTestApp(t)
		ta.scenarios.On("Create", mock.Anything, mock.MatchedBy(func(s models.Scenario) bool {
			return s.Name == "Night outage" && s.RoomType == "kitchen" &&
				assert.ObjectsAreEqual([]string{"power-outage", "break-ins"}, s.Risks)
		})).Return(&models.Scenario{ID: primitive.NewObjectID(), Name: "Night outage"}, nil).Once()

		response := ta.executeRequest(postForm("/scenarios/new", valid))

		checkResponseCode(t, http.StatusSeeOther, response.Code)
		assert.Equal(t, "/dashboard", response.Header().Get("Location"))
		ta.scenarios.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		ta := newTestApp(t)
		response := ta.executeRequest(postForm("/scenarios/new", url.Values{"name": {"Night outage"}}))

		checkResponseCode(t, http.StatusUnprocessableEntity, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, views.MsgAllFieldsRequired)
		assert.Contains(t, body, `value="Night outage"`)
		ta.scenarios.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("risk outside the catalog", func(t *testing.T) {
		ta := newTestApp(t)
		response := ta.executeRequest(postForm("/scenarios/new", url.Values{
			"name":     {"Night outage"},
			"roomType": {"garage"},
			"risks":    {"power-outage"},
		}))

		checkResponseCode(t, http.StatusUnprocessableEntity, response.Code)
		ta.scenarios.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("database failure", func(t *testing.T) {
		ta := newTestApp(t)
		ta.scenarios.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("write concern"))

		response := ta.executeRequest(postForm("/scenarios/new", valid))

		checkResponseCode(t, http.StatusBadGateway, response.Code)
		assert.Contains(t, response.Body.String(), views.MsgScenarioSaveFailed)
	})
}

func TestScenariosHandler(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		ta := newTestApp(t)
		ta.scenarios.On("List", mock.Anything, 1).Return([]models.Scenario{
			{ID: primitive.NewObjectID(), Name: "Night outage", RoomType: "kitchen", Risks: []string{"power-outage"}},
		}, nil)

		req, _ := http.NewRequest("GET", "/scenarios", nil)
		response := ta.executeRequest(req)

		checkResponseCode(t, http.StatusOK, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, "Night outage")
		assert.Contains(t, body, "Risk of being unprepared during a power outage")
	})

	t.Run("empty", func(t *testing.T) {
		ta := newTestApp(t)
		ta.scenarios.On("List", mock.Anything, 1).Return([]models.Scenario{}, nil)

		req, _ := http.NewRequest("GET", "/scenarios", nil)
		response := ta.executeRequest(req)

		checkResponseCode(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "No scenarios yet.")
	})

	t.Run("database failure", func(t *testing.T) {
		ta := newTestApp(t)
		ta.scenarios.On("List", mock.Anything, 1).Return(nil, errors.New("server selection timeout"))

		req, _ := http.NewRequest("GET", "/scenarios", nil)
		response := ta.executeRequest(req)

		checkResponseCode(t, http.StatusInternalServerError, response.Code)
		assert.Contains(t, response.Body.String(), MsgLoadScenariosFailed)
	})
}

func TestScenariosHandlerPages(t *testing.T) {
	ta := newTestApp(t)
	full := make([]models.Scenario, databases.DefaultPageSize)
	for i := range full {
		full[i] = models.Scenario{ID: primitive.NewObjectID(), Name: "s", RoomType: "kitchen"}
	}
	ta.scenarios.On("List", mock.Anything, 1).Return(full, nil)
	ta.scenarios.On("List", mock.Anything, 2).Return(full[:1], nil)

	req, _ := http.NewRequest("GET", "/scenarios?page=0", nil)
	response := ta.executeRequest(req)
	checkResponseCode(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, `href="/scenarios?page=2"`)
	assert.NotContains(t, body, "Previous")

	req, _ = http.NewRequest("GET", "/scenarios?page=2", nil)
	response = ta.executeRequest(req)
	checkResponseCode(t, http.StatusOK, response.Code)
	body = response.Body.String()
	assert.Contains(t, body, `href="/scenarios?page=1"`)
	assert.NotContains(t, body, "Next")
}

func TestSimulatorHandler(t *testing.T) {
	ta := newTestApp(t)

	req, _ := http.NewRequest("GET", "/simulator", nil)
	response := ta.executeRequest(req)
	checkResponseCode(t, http.StatusOK, response.Code)
	assert.NotContains(t, response.Body.String(), "<iframe")

	req, _ = http.NewRequest("GET", "/simulator?scenario=scenario-02", nil)
	response = ta.executeRequest(req)
	checkResponseCode(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, `<iframe src="http://localhost:8000"`)
	assert.Contains(t, body, `value="scenario-02" selected`)

	req, _ = http.NewRequest("GET", "/simulator?scenario=scenario-99", nil)
	response = ta.executeRequest(req)
	checkResponseCode(t, http.StatusUnprocessableEntity, response.Code)
	body = response.Body.String()
	assert.Contains(t, body, views.MsgUnknownScenario)
	assert.NotContains(t, body, "<iframe")
}
