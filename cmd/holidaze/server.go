package main

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"holidaze/internal/app/accounts"
	"holidaze/internal/app/bookings"
	"holidaze/internal/app/catalog"
	"holidaze/internal/app/venues"
	"holidaze/internal/holidazeapi"
	"holidaze/internal/http/middleware"
	"holidaze/internal/httpapi"
	"holidaze/internal/session"
	"holidaze/internal/venuestore"
)

func newHTTPHandler(cfg Config, logger zerolog.Logger) http.Handler {
	client := holidazeapi.NewClient(holidazeapi.Config{
		BaseURL: cfg.RemoteBaseURL,
	}, logger)

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	store := venuestore.New()

	catalogSvc := catalog.New(client, store, logger)
	accountSvc := accounts.New(client, sessions, logger)
	bookingSvc := bookings.New(client, logger)
	managerSvc := venues.New(client, logger)

	handler := httpapi.New(catalogSvc, accountSvc, bookingSvc, managerSvc, sessions).Routes()

	handler = middleware.Recovery()(handler)
	handler = middleware.RequestLogging()(handler)

	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", "X-Session-ID", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Session-ID", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           3600,
	}).Handler(handler)
}
