package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	respond "github.com/kachalmers/tuiter/server/internal/api/respond"
	"github.com/kachalmers/tuiter/server/internal/api/recovery"
	"github.com/kachalmers/tuiter/server/internal/services"
	"github.com/kachalmers/tuiter/server/internal/store"
)

// Options configure the router.
type Options struct {
	// BcryptCost for password hashing; zero uses bcrypt.DefaultCost.
	BcryptCost int
	Logger     zerolog.Logger
	// Health reports cached service health; nil pings the store per request.
	Health Monitor
}

// NewRouter wires services over s and mounts the REST API under /api.
func NewRouter(s store.Store, opts Options) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares; access log runs outermost so it sees recovered 500s.
	router.Use(accessLog(opts.Logger))
	router.Use(recovery.Middleware)

	userHandler := NewUserHandler(services.NewUserService(s, opts.BcryptCost))
	tuitHandler := NewTuitHandler(services.NewTuitService(s))
	healthHandler := NewHealthHandler(s, opts.Health)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// Health endpoint
	api.HandleFunc("/health", healthHandler.CheckHealth).Methods(http.MethodGet)

	// User endpoints
	api.HandleFunc("/users", userHandler.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users", userHandler.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/username/{username}/delete", userHandler.DeleteUsersByUsername).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}", userHandler.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}", userHandler.DeleteUser).Methods(http.MethodDelete)
	api.HandleFunc("/login", userHandler.Login).Methods(http.MethodPost)

	// Tuit endpoints
	api.HandleFunc("/users/{userId}/tuits", tuitHandler.CreateTuit).Methods(http.MethodPost)
	api.HandleFunc("/tuits", tuitHandler.ListTuits).Methods(http.MethodGet)
	api.HandleFunc("/tuits/{tuitId}", tuitHandler.GetTuit).Methods(http.MethodGet)
	api.HandleFunc("/tuits/{tuitId}", tuitHandler.DeleteTuit).Methods(http.MethodDelete)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteNotFound(w, "no route for "+r.Method+" "+r.URL.Path)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	})

	return router
}
