package views

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cordial-cms/cordial-cms/catalog"
	"github.com/cordial-cms/cordial-cms/databases"
	"github.com/cordial-cms/cordial-cms/models"
)

// ScenarioForm collects a scenario name, a room type and the risks to rehearse
type ScenarioForm struct {
	catalog *catalog.Catalog
	db      databases.ScenarioDatabase

	mu       sync.Mutex
	name     string
	roomType string
	risks    []string
	message  string
}

// NewScenarioForm creates an empty form backed by the given catalog
func NewScenarioForm(c *catalog.Catalog, db databases.ScenarioDatabase) *ScenarioForm {
	return &ScenarioForm{catalog: c, db: db}
}

// Catalog returns the choices the form offers
func (f *ScenarioForm) Catalog() *catalog.Catalog { return f.catalog }

// SetName sets the scenario name
func (f *ScenarioForm) SetName(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name = v
}

// SetRoomType sets the room type
func (f *ScenarioForm) SetRoomType(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roomType = v
}

// SetRisks replaces the selected risks, dropping duplicates
func (f *ScenarioForm) SetRisks(risks []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.risks = f.risks[:0]
	seen := map[string]bool{}
	for _, r := range risks {
		if !seen[r] {
			seen[r] = true
			f.risks = append(f.risks, r)
		}
	}
}

// ToggleRisk selects a risk, or removes it when already selected
func (f *ScenarioForm) ToggleRisk(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.risks {
		if r == v {
			f.risks = append(f.risks[:i], f.risks[i+1:]...)
			return
		}
	}
	f.risks = append(f.risks, v)
}

// Draft returns the scenario as currently filled in
func (f *ScenarioForm) Draft() models.Scenario {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.Scenario{
		Name:     f.name,
		RoomType: f.roomType,
		Risks:    append([]string(nil), f.risks...),
	}
}

// ErrorMessage returns the form-level error
func (f *ScenarioForm) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Submit validates the scenario against the catalog and saves it
func (f *ScenarioForm) Submit(ctx context.Context) (*models.Scenario, error) {
	draft := f.Draft()

	if verr := f.validate(draft); verr != nil {
		return nil, verr
	}

	saved, err := f.db.Create(ctx, draft)
	if err != nil {
		zap.S().With(err).Errorw("failed to save scenario", "name", draft.Name)
		f.setMessage(MsgScenarioSaveFailed)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	f.setMessage("")
	return saved, nil
}

func (f *ScenarioForm) validate(s models.Scenario) *ValidationError {
	if strings.TrimSpace(s.Name) == "" || s.RoomType == "" || len(s.Risks) == 0 {
		f.setMessage(MsgAllFieldsRequired)
		errs := map[string]string{}
		if strings.TrimSpace(s.Name) == "" {
			errs["name"] = MsgAllFieldsRequired
		}
		if s.RoomType == "" {
			errs["roomType"] = MsgAllFieldsRequired
		}
		if len(s.Risks) == 0 {
			errs["risks"] = MsgAllFieldsRequired
		}
		return &ValidationError{Fields: errs}
	}

	errs := map[string]string{}
	if !f.catalog.HasRoomType(s.RoomType) {
		errs["roomType"] = fmt.Sprintf("Unknown room type %q", s.RoomType)
	}
	for _, r := range s.Risks {
		if !f.catalog.HasRisk(r) {
			errs["risks"] = fmt.Sprintf("Unknown risk %q", r)
			break
		}
	}
	if len(errs) > 0 {
		f.setMessage(MsgAllFieldsRequired)
		return &ValidationError{Fields: errs}
	}
	return nil
}

func (f *ScenarioForm) setMessage(m string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = m
}

// Simulator launches the external simulator for a catalog scenario
type Simulator struct {
	catalog *catalog.Catalog
	url     string

	mu       sync.Mutex
	selected string
	running  bool
	message  string
}

// NewSimulator creates a launcher for the simulator served at url
func NewSimulator(c *catalog.Catalog, url string) *Simulator {
	return &Simulator{catalog: c, url: url}
}

// Catalog returns the scenarios the simulator can run
func (s *Simulator) Catalog() *catalog.Catalog { return s.catalog }

// Run starts the simulator for selected. Unknown scenarios leave it stopped.
func (s *Simulator) Run(selected string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = selected
	if !s.catalog.HasSimulatorScenario(selected) {
		s.running = false
		s.message = MsgUnknownScenario
		return &ValidationError{Fields: map[string]string{"scenario": MsgUnknownScenario}}
	}
	s.running = true
	s.message = ""
	return nil
}

// Selected is the last scenario passed to Run
func (s *Simulator) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Running reports whether the simulator frame is shown
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// URL is the address embedded in the simulator frame
func (s *Simulator) URL() string { return s.url }

// ErrorMessage returns the launch error, if any
func (s *Simulator) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}
