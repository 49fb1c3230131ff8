// Copyright 2025 Ehab Terra
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ehabterra/userapi/internal/api"
	"github.com/ehabterra/userapi/internal/config"
	"github.com/ehabterra/userapi/internal/domain"
	"github.com/ehabterra/userapi/internal/repository"
	"github.com/ehabterra/userapi/internal/service"
)

var (
	flagHost    string
	flagPort    int
	flagRouter  string
	flagSeed    bool
	flagVerbose bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Starts the HTTP server and blocks until SIGINT or SIGTERM, then shuts down gracefully.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	addServeFlags(serveCmd)
}

// addServeFlags registers the server flags. The root command carries them too
// so that a bare "userapi" starts the server.
func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagHost, "host", config.DefaultHost, "listen host")
	cmd.Flags().IntVarP(&flagPort, "port", "p", config.DefaultPort, "listen port")
	cmd.Flags().StringVarP(&flagRouter, "router", "r", config.DefaultRouter, "HTTP router: chi|gin|echo|fiber")
	cmd.Flags().BoolVar(&flagSeed, "seed", true, "start with the demo users")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable per-request access logs")
}

// applyServeFlags copies the flags the user set explicitly onto cfg.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Lookup("host") == nil {
		return
	}
	if flags.Changed("host") {
		cfg.Host = flagHost
	}
	if flags.Changed("port") {
		cfg.Port = flagPort
	}
	if flags.Changed("router") {
		cfg.Router = flagRouter
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("verbose") {
		cfg.Verbose = flagVerbose
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg)
}

// newServer wires repository, service and controller for cfg.
func newServer(cfg *config.Config) (api.Server, *repository.UserRepository, error) {
	var seed []domain.User
	if cfg.Seed {
		seed = repository.DefaultSeed()
	}
	repo := repository.NewUserRepository(seed...)

	controller, err := api.NewController(service.NewUserService(repo), api.Options{
		Title:   cfg.Title,
		Version: cfg.Version,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create controller: %w", err)
	}

	srv, err := api.NewServer(controller, api.ServerConfig{
		Addr:         cfg.Addr(),
		Router:       cfg.Router,
		Verbose:      cfg.Verbose,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if err != nil {
		return nil, nil, err
	}
	return srv, repo, nil
}

// serve runs the server until ctx is done, then shuts it down within
// cfg.ShutdownTimeout.
func serve(ctx context.Context, cfg *config.Config) error {
	srv, repo, err := newServer(cfg)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("🚀 %s starting on http://%s", cfg.Title, cfg.Addr())
	log.Printf("⚙️  Router: %s, users: %d, docs: %s", cfg.Router, repo.Len(), api.DocsPath)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down (timeout %s)", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errCh; err != nil {
		return err
	}
	log.Printf("✅ Server stopped")
	return nil
}
