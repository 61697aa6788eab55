package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"med-reminder/internal/adapters/auth/gotrue"
	"med-reminder/internal/adapters/notify/lognotifier"
	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/auth"
	"med-reminder/internal/router"
)

// @title med-reminder API
// @version 0.1
// @description API de recordatorios de medicación: medicamentos, alarmas y sincronización por usuario.
// @BasePath /
func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	lg := logger.NewFromEnv()

	var verifier auth.AuthVerifier
	if baseURL := os.Getenv("AUTH_BASE_URL"); baseURL != "" {
		client, err := gotrue.NewClient(gotrue.Config{
			BaseURL: baseURL,
			APIKey:  os.Getenv("AUTH_API_KEY"),
			Timeout: 5 * time.Second,
		})
		if err != nil {
			log.Fatalf("auth client: %v", err)
		}
		verifier = gotrue.NewVerifier(client)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier, // nil => modo dev (X-Debug-User-ID)
		Notifier:     lognotifier.New(lg),
		Logger:       lg,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lg.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
