package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Pjt727/odautofill/autofill"
	"github.com/Pjt727/odautofill/data"
	logginghelpers "github.com/Pjt727/odautofill/data/logging-helpers"
	"github.com/Pjt727/odautofill/data/stores"
	"github.com/Pjt727/odautofill/draft"
	"github.com/Pjt727/odautofill/odrequest"
	"github.com/Pjt727/odautofill/roster"
	serverdrafts "github.com/Pjt727/odautofill/server/drafts"
	serverrequests "github.com/Pjt727/odautofill/server/requests"
	serverroster "github.com/Pjt727/odautofill/server/roster"
	servertimetables "github.com/Pjt727/odautofill/server/timetables"
	"github.com/Pjt727/odautofill/timetable"
	"github.com/Pjt727/odautofill/timetable/remote"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps is everything the routes share. Drafts and the roster only ever live in memory.
type Deps struct {
	Timetables     timetable.Store
	Drafts         *draft.Registry
	Roster         *roster.Book
	Requests       odrequest.Store
	Hub            *serverrequests.Hub // created by NewRouter when nil
	AllowedOrigins []string
	Logger         *slog.Logger
}

func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	hub := deps.Hub
	if hub == nil {
		hub = serverrequests.NewHub(logger)
	}
	autofillService := autofill.NewService(deps.Timetables, logger)
	requestService := odrequest.NewService(deps.Requests, hub, logger)

	r := chi.NewRouter()
	cors := cors.New(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum age for preflight requests
	})
	r.Use(cors.Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/timetables", func(r chi.Router) {
		servertimetables.PopulateTimetableRoutes(&r, deps.Timetables, logger)
	})
	r.Route("/drafts", func(r chi.Router) {
		serverdrafts.PopulateDraftRoutes(&r, deps.Drafts, deps.Roster, autofillService, logger)
	})
	r.Route("/roster", func(r chi.Router) {
		serverroster.PopulateRosterRoutes(&r, deps.Roster, logger)
	})
	r.Route("/requests", func(r chi.Router) {
		serverrequests.PopulateRequestRoutes(&r, requestService, deps.Drafts, hub, logger)
	})
	return r
}

func Serve(cfg data.Config) error {
	level, err := logginghelpers.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, closer, err := logginghelpers.NewLogger(level, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	deps := Deps{
		Drafts:         draft.NewRegistry(),
		Roster:         roster.NewBook(),
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	}

	var pool *pgxpool.Pool
	if cfg.NeedsDatabase() {
		pool, err = data.NewPool(context.Background(), false)
		if err != nil {
			logger.Log(context.Background(), logginghelpers.LevelBrokenProcess, "Fatal cannot connect to main db", "err", err)
			return err
		}
		defer pool.Close()
	}

	switch cfg.TimetableSource {
	case data.SourcePostgres:
		deps.Timetables = timetable.WithDefaults(stores.NewTimetableStore(pool))
	case data.SourceRemote:
		remoteStore, err := remote.NewStore(cfg.TimetableRemoteURL, nil, remote.WithLogger(logger))
		if err != nil {
			return err
		}
		deps.Timetables = remoteStore
	default:
		deps.Timetables = timetable.WithDefaults(timetable.NewMemoryStore())
	}

	switch cfg.RequestSource {
	case data.SourcePostgres:
		deps.Requests = stores.NewRequestStore(pool)
	default:
		deps.Requests = odrequest.NewMemoryStore()
	}

	logger.Info("Running server on", "port", cfg.Port, "timetables", cfg.TimetableSource, "requests", cfg.RequestSource)
	return http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), NewRouter(deps))
}
