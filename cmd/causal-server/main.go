// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

// Command causal-server wires the causal event registry, proof
// generator, stateless verifier, and progressive light-proof pipeline
// behind an HTTP API, with metrics and health endpoints served
// alongside.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sage-x-project/causalproof/config"
	"github.com/sage-x-project/causalproof/internal/cryptoinit"
	"github.com/sage-x-project/causalproof/internal/health"
	"github.com/sage-x-project/causalproof/internal/logger"
)

func main() {
	// Best-effort: a local .env can supply CAUSALPROOF_* overrides for
	// local runs; its absence is not an error.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to a YAML or JSON config file (optional)")
	agentID := flag.String("agent", "", "Agent identifier (overrides config)")
	port := flag.String("port", "8088", "HTTP API port")
	flag.Parse()

	cryptoinit.MustHaveSecureRandom()

	cfg := loadServerConfig(*configPath, *agentID)

	log := logger.NewDefaultLogger()
	log.SetLevel(parseLevel(cfg.Logging.Level))

	pl, err := newPipeline(cfg, log)
	if err != nil {
		log.Fatal("failed to build causal pipeline", logger.Error(err))
		os.Exit(1)
	}

	checker := health.NewChecker(pl.registry)
	healthServer := health.NewServer(checker, log, cfg.Health.Port)

	if cfg.Health.Enabled {
		if err := healthServer.Start(); err != nil {
			log.Fatal("failed to start health server", logger.Error(err))
			os.Exit(1)
		}
	}

	apiServer := newAPIServer(pl, log, *port)
	go func() {
		log.Info("starting causal API server", logger.String("port", *port))
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("API server error", logger.Error(err))
		}
	}()

	waitForShutdown(log, healthServer, apiServer)
	pl.close()
}

func waitForShutdown(log logger.Logger, healthServer interface {
	Stop(ctx context.Context) error
}, apiServer interface{ Shutdown(ctx context.Context) error }) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error("API server shutdown error", logger.Error(err))
	}
	if err := healthServer.Stop(ctx); err != nil {
		log.Error("health server shutdown error", logger.Error(err))
	}
}

func loadServerConfig(path, agentIDOverride string) *config.Config {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load(config.LoaderOptions{SkipValidation: true})
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if agentIDOverride != "" {
		cfg.Agent.ID = agentIDOverride
	}
	if cfg.Agent.ID == "" {
		cfg.Agent.ID = "causal-server"
	}
	return cfg
}

func parseLevel(level string) logger.Level {
	switch level {
	case "debug":
		return logger.DebugLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}
