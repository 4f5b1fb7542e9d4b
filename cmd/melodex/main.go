package main

import (
	"context"
	"net/http"
	"time"

	"melodex/internal/logging"
	"melodex/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logging.New(logging.Config{}).Fatal(err, "load config")
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.SetGlobalLogger(logger)

	db, err := openDatabase(context.Background(), cfg.DatabaseURL, cfg.DBConnectMaxWait)
	if err != nil {
		logger.Fatal(err, "open database")
	}
	defer db.Close()

	if err := ensureSchema(context.Background(), db); err != nil {
		logger.Fatal(err, "ensure schema")
	}

	dataStore := store.New(db)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHTTPHandler(cfg, dataStore),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("API listening on " + cfg.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal(err, "server error")
	}
}
