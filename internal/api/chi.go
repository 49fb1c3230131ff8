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
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// NewChiRouter binds the controller's routes to a chi router.
func NewChiRouter(c *Controller, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if opts.Verbose {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	for _, route := range c.Routes() {
		h := chiHandler(route.Handle)
		for _, p := range collectionPaths(route.Path) {
			r.Method(route.Method, p, h)
		}
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		render.Status(req, http.StatusNotFound)
		render.JSON(w, req, statusDetail(http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		render.Status(req, http.StatusMethodNotAllowed)
		render.JSON(w, req, statusDetail(http.StatusMethodNotAllowed))
	})
	return r
}

func chiHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Detail: "failed to read request body"})
			return
		}

		params := make(map[string]string)
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				params[key] = rctx.URLParams.Values[i]
			}
		}
		renderResponse(w, r, h(Request{Params: params, Body: body}))
	}
}

// renderResponse writes resp with go-chi/render. Raw bodies keep their own
// content type.
func renderResponse(w http.ResponseWriter, r *http.Request, resp Response) {
	switch {
	case resp.Raw != nil:
		w.Header().Set("Content-Type", resp.ContentType)
		w.WriteHeader(resp.Status)
		if _, err := w.Write(resp.Raw); err != nil {
			log.Printf("write response: %v", err)
		}
	case resp.Body == nil && resp.Status == http.StatusNoContent:
		render.NoContent(w, r)
	case resp.Body == nil:
		w.WriteHeader(resp.Status)
	default:
		render.Status(r, resp.Status)
		render.JSON(w, r, resp.Body)
	}
}
