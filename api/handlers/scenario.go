package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/cordial-cms/cordial-cms/api"
	"github.com/cordial-cms/cordial-cms/catalog"
	"github.com/cordial-cms/cordial-cms/databases"
	"github.com/cordial-cms/cordial-cms/views"
)

// MsgLoadScenariosFailed is shown when the saved scenarios cannot be read
const MsgLoadScenariosFailed = "Failed to load scenarios. Please try again."

// Scenario serves the scenario and simulator pages
type Scenario struct {
	pages
	DB           databases.ScenarioDatabase
	Catalog      *catalog.Catalog
	SimulatorURL string
}

// NewScenarioPageHandler renders an empty scenario form
func (h Scenario) NewScenarioPageHandler(w http.ResponseWriter, r *http.Request) {
	form := views.NewScenarioForm(h.Catalog, h.DB)
	h.renderForm(w, http.StatusOK, form)
}

// CreateScenarioHandler validates and saves a scenario
func (h Scenario) CreateScenarioHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to read form", http.StatusBadRequest)
		return
	}

	form := views.NewScenarioForm(h.Catalog, h.DB)
	form.SetName(r.PostForm.Get("name"))
	form.SetRoomType(r.PostForm.Get("roomType"))
	form.SetRisks(r.PostForm["risks"])

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := form.Submit(ctx); err != nil {
		h.renderForm(w, statusFor(err), form)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h Scenario) renderForm(w http.ResponseWriter, status int, form *views.ScenarioForm) {
	draft := form.Draft()
	selected := make(map[string]bool, len(draft.Risks))
	for _, risk := range draft.Risks {
		selected[risk] = true
	}
	h.render(w, status, "scenario_new", ScenarioFormPage{
		Page:     h.page("Create a scenario"),
		Catalog:  form.Catalog(),
		Draft:    draft,
		Selected: selected,
		Error:    form.ErrorMessage(),
	})
}

// ScenariosHandler lists the saved scenarios
func (h Scenario) ScenariosHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	pageNumber, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || pageNumber < 1 {
		pageNumber = 1
	}

	data := ScenariosPage{Page: h.page("Scenarios"), Catalog: h.Catalog, PrevPage: pageNumber - 1}
	status := http.StatusOK

	scenarios, err := h.DB.List(ctx, pageNumber)
	if err != nil {
		zap.S().With(err).Error("failed to list scenarios")
		data.Error = MsgLoadScenariosFailed
		status = http.StatusInternalServerError
	}
	data.Scenarios = scenarios
	if len(scenarios) == databases.DefaultPageSize {
		data.NextPage = pageNumber + 1
	}
	h.render(w, status, "scenarios", data)
}

// SimulatorHandler launches the simulator for the scenario query parameter
func (h Scenario) SimulatorHandler(w http.ResponseWriter, r *http.Request) {
	sim := views.NewSimulator(h.Catalog, h.SimulatorURL)
	status := http.StatusOK
	if selected := r.URL.Query().Get("scenario"); selected != "" {
		if err := sim.Run(selected); err != nil {
			status = statusFor(err)
		}
	}

	h.render(w, status, "simulator", SimulatorPage{
		Page:     h.page("Simulator"),
		Catalog:  sim.Catalog(),
		Selected: sim.Selected(),
		Running:  sim.Running(),
		URL:      sim.URL(),
		Error:    sim.ErrorMessage(),
	})
}
