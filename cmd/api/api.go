package main

import (
	"net/http"
	"time"

	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/conversion"
	"github.com/farxc/carteira-devedores/internal/crm"
	"github.com/farxc/carteira-devedores/internal/goals"
	"github.com/farxc/carteira-devedores/internal/logger"
	"github.com/farxc/carteira-devedores/internal/portfolio"
	"github.com/farxc/carteira-devedores/internal/prospecting"
	"github.com/farxc/carteira-devedores/internal/registry"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type application struct {
	config      config
	store       *store.Storage
	logger      *logger.Logger
	tokens      *auth.Tokens
	credentials *auth.Credentials

	importer   *prospecting.Importer
	conversion *conversion.Service
	portfolio  *portfolio.Service
	employees  *crm.EmployeeService
	tasks      *crm.TaskService
	meetings   *crm.MeetingService
	goals      *goals.Service
}

type config struct {
	addr        string
	storeDriver string
	corsOrigins []string
	db          dbConfig
	registry    registryConfig
	auth        authConfig
	log         logConfig
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

type registryConfig struct {
	enabled     bool
	baseURL     string
	timeout     time.Duration
	concurrency int
	redisURL    string
	cacheTTL    time.Duration
}

type authConfig struct {
	secret        string
	issuer        string
	tokenTTL      time.Duration
	adminEmail    string
	adminPassword string
	adminHash     string
	users         string
}

type logConfig struct {
	level  string
	format string
}

// newApplication wires every service over one storage. lookup may be nil,
// in which case clients are created without registry data.
func newApplication(cfg config, storage *store.Storage, lookup registry.Lookup, l *logger.Logger, tokens *auth.Tokens, creds *auth.Credentials) *application {
	converter := conversion.NewConverter(lookup, l).
		WithConcurrency(cfg.registry.concurrency).
		WithLookupTimeout(cfg.registry.timeout)
	return &application{
		config:      cfg,
		store:       storage,
		logger:      l,
		tokens:      tokens,
		credentials: creds,
		importer:    prospecting.NewImporter(storage, l),
		conversion:  conversion.NewService(storage, converter),
		portfolio:   portfolio.NewService(storage, l),
		employees:   crm.NewEmployeeService(storage, l),
		tasks:       crm.NewTaskService(storage),
		meetings:    crm.NewMeetingService(storage),
		goals:       goals.NewService(storage, l),
	}
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   app.config.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}).Handler)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Post("/auth/login", app.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(app.authenticate)

			r.Get("/auth/me", app.handleMe)

			r.Route("/imports", func(r chi.Router) {
				r.Post("/", app.handleCreateImport)
				r.Get("/current", app.handleGetCurrentImport)
				r.Get("/history", app.handleGetImportHistory)
				r.With(app.requireSupervisor).Delete("/current", app.handleClearImport)
			})
			r.Route("/debtors", func(r chi.Router) {
				r.Get("/", app.handleListDebtors)
				r.Post("/convert", app.handleConvertDebtors)
				r.Delete("/{id}", app.handleDeleteDebtor)
			})
			r.Route("/clients", func(r chi.Router) {
				r.Get("/", app.handleListClients)
				r.Get("/summary", app.handleGetClientsSummary)
				r.Get("/{id}", app.handleGetClient)
				r.Patch("/{id}/stage", app.handleUpdateClientStage)
				r.Post("/{id}/contracts", app.handleAddContract)
				r.Patch("/{id}/contracts/{contractID}/status", app.handleUpdateContractStatus)
				r.Put("/{id}/assignee", app.handleAssignClient)
				r.Delete("/{id}/assignee", app.handleUnassignClient)
			})
			r.Route("/portfolios", func(r chi.Router) {
				r.Get("/", app.handleGetPortfolios)
				r.Get("/export", app.handleExportPortfolios)
			})
			r.Route("/employees", func(r chi.Router) {
				r.Get("/", app.handleListEmployees)
				r.Get("/{id}", app.handleGetEmployee)
				r.Group(func(r chi.Router) {
					r.Use(app.requireSupervisor)
					r.Post("/", app.handleCreateEmployee)
					r.Put("/{id}", app.handleUpdateEmployee)
					r.Delete("/{id}", app.handleDeleteEmployee)
				})
			})
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", app.handleListTasks)
				r.Post("/", app.handleCreateTask)
				r.Put("/{id}", app.handleUpdateTask)
				r.Patch("/{id}/status", app.handleUpdateTaskStatus)
				r.Delete("/{id}", app.handleDeleteTask)
			})
			r.Route("/meetings", func(r chi.Router) {
				r.Get("/", app.handleListMeetings)
				r.Post("/", app.handleCreateMeeting)
				r.Put("/{id}", app.handleUpdateMeeting)
				r.Delete("/{id}", app.handleDeleteMeeting)
			})
			r.Route("/goals", func(r chi.Router) {
				r.Get("/", app.handleListGoals)
				r.Post("/", app.handleCreateGoal)
				r.Get("/{id}", app.handleGetGoal)
				r.Put("/{id}", app.handleUpdateGoal)
				r.Delete("/{id}", app.handleDeleteGoal)
				r.Patch("/{id}/progress", app.handleUpdateGoalProgress)
				r.Post("/{id}/sync", app.handleSyncGoal)
			})
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	const component = "API"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.logger.Info(component, "Server started: addr=%s store=%s", app.config.addr, app.config.storeDriver)
	return srv.ListenAndServe()
}
