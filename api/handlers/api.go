package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cordial-cms/cordial-cms/api"
	"github.com/cordial-cms/cordial-cms/api/scheduler"
	"github.com/cordial-cms/cordial-cms/catalog"
	"github.com/cordial-cms/cordial-cms/config"
	"github.com/cordial-cms/cordial-cms/databases"
	"github.com/cordial-cms/cordial-cms/personastore"
	templates "github.com/cordial-cms/cordial-cms/templates/html"
)

// App stores the router and its collaborators, so it can be reused
type App struct {
	Router  *mux.Router
	Handler http.Handler
	Config  config.Config

	Store        personastore.Store
	Conversation personastore.Conversation
	PersonaDocs  databases.PersonaDocumentDatabase
	Scenarios    databases.ScenarioDatabase
	Catalog      *catalog.Catalog
	Health       StatusSource
	Metrics      *api.MetricsCollector
	Templates    *templates.Renderer

	dbClient  databases.ClientHelper
	scheduler *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	a.setDefaults()

	r := mux.NewRouter()
	r.Use(api.MetricsMiddleware(a.Metrics))

	pg := pages{Templates: a.Templates, Health: a.Health}
	p := Persona{pages: pg, Store: a.Store}
	c := Chat{pages: pg, Conversation: a.Conversation, Upgrader: websocket.Upgrader{}}
	s := Scenario{pages: pg, DB: a.Scenarios, Catalog: a.Catalog, SimulatorURL: a.Config.SimulatorURL}
	m := Metrics{Collector: a.Metrics, Health: a.Health}
	med := Medication{}
	docs := PersonaDocument{DB: a.PersonaDocs}

	// healthchex
	r.HandleFunc("/health", m.HealthCheckHandler).Methods("GET")

	r.HandleFunc("/", p.LoginPageHandler).Methods("GET")
	r.HandleFunc("/login", p.LoginHandler).Methods("POST")
	r.HandleFunc("/dashboard", p.DashboardHandler).Methods("GET")
	r.HandleFunc("/dashboard/personas/new", p.NewPersonaPageHandler).Methods("GET")
	r.HandleFunc("/dashboard/personas/new", p.CreatePersonaHandler).Methods("POST")
	r.HandleFunc("/personas", p.PersonasHandler).Methods("GET")
	r.HandleFunc("/personas/{id}/edit", p.EditPersonaPageHandler).Methods("GET")
	r.HandleFunc("/personas/{id}", p.SavePersonaHandler).Methods("POST")
	r.HandleFunc("/personas/{id}/default", p.SetDefaultPersonaHandler).Methods("POST")

	r.HandleFunc("/chat", c.ChatPageHandler).Methods("GET")
	r.HandleFunc("/chat/ws", c.ChatSocketHandler).Methods("GET")

	r.HandleFunc("/scenarios", s.ScenariosHandler).Methods("GET")
	r.HandleFunc("/scenarios/new", s.NewScenarioPageHandler).Methods("GET")
	r.HandleFunc("/scenarios/new", s.CreateScenarioHandler).Methods("POST")
	r.HandleFunc("/simulator", s.SimulatorHandler).Methods("GET")

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/metrics", m.MetricsHandler).Methods("GET")
	apiRouter.HandleFunc("/medication/validate", med.ValidateHandler).Methods("POST")
	apiRouter.HandleFunc("/medication/render", med.RenderHandler).Methods("POST")

	apiV1 := apiRouter.PathPrefix("/v1").Subrouter()
	apiV1.HandleFunc("/personas", docs.ListHandler).Methods("GET")
	apiV1.HandleFunc("/personas", docs.CreateHandler).Methods("POST")
	apiV1.HandleFunc("/personas/{id}", docs.GetHandler).Methods("GET")
	apiV1.HandleFunc("/personas/{id}", docs.ReplaceHandler).Methods("PUT")

	return r
}

func (a *App) setDefaults() {
	if a.Catalog == nil {
		a.Catalog = catalog.Default()
	}
	if a.Metrics == nil {
		a.Metrics = api.NewMetricsCollector(1000)
	}
	if a.Templates == nil {
		t, err := templates.New()
		if err != nil {
			zap.S().With(err).Fatal("failed to parse page templates")
		}
		a.Templates = t
	}
	if a.Config.SimulatorURL == "" {
		a.Config.SimulatorURL = "http://localhost:8000"
	}
}

// Initialize is invoked by the serve command to connect with the database, start the
// backend ping and create a router
func (a *App) Initialize(ctx context.Context) error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	dbHelper := databases.NewDatabase(&a.Config, client)
	if err := client.Connect(ctx); err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	a.dbClient = client
	zap.S().Info("cordial-cms has connected to the database")

	a.PersonaDocs = databases.NewPersonaDocumentDatabase(dbHelper)
	a.Scenarios = databases.NewScenarioDatabase(dbHelper)

	backend := personastore.NewClient(a.Config.BackendURL, a.Config.BackendTimeout)
	a.Store = backend
	a.Conversation = backend

	a.scheduler = scheduler.NewScheduler(backend, a.Config.PingSchedule)
	if err := a.scheduler.Start(); err != nil {
		return err
	}
	a.Health = a.scheduler

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
	a.Handler = api.CORS(a.Config.AllowedOrigins)(api.TimeoutMiddleware(a.Config.RequestTimeout)(a.Router))
}

// Close stops the backend ping and disconnects from the database
func (a *App) Close(ctx context.Context) {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.dbClient != nil {
		if err := a.dbClient.Disconnect(ctx); err != nil {
			zap.S().With(err).Error("failed to disconnect from database")
		}
	}
}
