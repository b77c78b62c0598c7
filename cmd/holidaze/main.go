package main

import (
	"net/http"
	"os"

	"holidaze/internal/logging"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	logging.SetGlobal(logger)

	handler := newHTTPHandler(cfg, logger)

	logger.Info().Str("addr", cfg.Addr).Msg("holidaze API listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
