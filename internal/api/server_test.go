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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	c := newTestController(t)

	for _, router := range []string{RouterChi, RouterGin, RouterEcho} {
		srv, err := NewServer(c, ServerConfig{Addr: "127.0.0.1:0", Router: router})
		require.NoError(t, err, router)
		assert.IsType(t, &httpServer{}, srv, router)
	}

	srv, err := NewServer(c, ServerConfig{Addr: "127.0.0.1:0", Router: RouterFiber})
	require.NoError(t, err)
	assert.IsType(t, &fiberServer{}, srv)

	_, err = NewServer(c, ServerConfig{Router: "mux"})
	assert.ErrorContains(t, err, `unknown router "mux"`)
}

func TestNewHandler_Fiber(t *testing.T) {
	_, err := NewHandler(RouterFiber, newTestController(t), RouterOptions{})
	assert.Error(t, err)
}

func TestHTTPServer_ShutdownIsGraceful(t *testing.T) {
	srv, err := NewServer(newTestController(t), ServerConfig{
		Addr:         "127.0.0.1:0",
		Router:       RouterChi,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	// a server that was shut down reports a clean exit
	assert.NoError(t, srv.ListenAndServe())
}
