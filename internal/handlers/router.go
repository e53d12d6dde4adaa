package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/Utkarsh4517/fast-chat/internal/app"
	"github.com/Utkarsh4517/fast-chat/internal/chat"
	"github.com/Utkarsh4517/fast-chat/internal/metrics"
	"github.com/Utkarsh4517/fast-chat/internal/store"
)

// NewRouter wires up all routes and middleware.
func NewRouter(cfg app.Config, log *slog.Logger, st store.Store, registry *chat.Registry) http.Handler {
	authHandler := &AuthHandler{Store: st, Log: log}
	roomHandler := &RoomHandler{
		Store:    st,
		Log:      log,
		Registry: registry,
		Gate:     chat.StoreGate{Store: st},
	}

	r := mux.NewRouter()
	r.Use(LoggingMiddleware(log))

	r.HandleFunc("/users/", authHandler.CreateUser).Methods("POST")
	r.HandleFunc("/token", authHandler.Login).Methods("POST")
	r.HandleFunc("/rooms/", roomHandler.CreateRoom).Methods("POST")
	// Detail lookup and websocket join share this route; the handler splits
	// on the Upgrade header.
	r.HandleFunc("/rooms/{id}", roomHandler.Room).Methods("GET")

	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllow,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(r)
}
