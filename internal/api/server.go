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

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Server runs one router until it is shut down.
type Server interface {
	// ListenAndServe blocks until the server stops. A graceful Shutdown
	// makes it return nil.
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// ServerConfig holds the listener settings.
type ServerConfig struct {
	Addr         string
	Router       string
	Verbose      bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewServer builds the server for cfg.Router around c.
func NewServer(c *Controller, cfg ServerConfig) (Server, error) {
	opts := RouterOptions{Verbose: cfg.Verbose}

	if cfg.Router == RouterFiber {
		app := NewFiberApp(c, FiberOptions{
			RouterOptions: opts,
			ReadTimeout:   cfg.ReadTimeout,
			WriteTimeout:  cfg.WriteTimeout,
		})
		return &fiberServer{app: app, addr: cfg.Addr}, nil
	}

	h, err := NewHandler(cfg.Router, c, opts)
	if err != nil {
		return nil, err
	}
	return &httpServer{srv: &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}}, nil
}

// httpServer serves the chi, gin and echo handlers.
type httpServer struct {
	srv *http.Server
}

func (s *httpServer) ListenAndServe() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *httpServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type fiberServer struct {
	app  *fiber.App
	addr string
}

func (s *fiberServer) ListenAndServe() error {
	if err := s.app.Listen(s.addr); err != nil {
		return fmt.Errorf("fiber server: %w", err)
	}
	return nil
}

func (s *fiberServer) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
