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
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewGinRouter binds the controller's routes to a gin engine.
func NewGinRouter(c *Controller, opts RouterOptions) *gin.Engine {
	if opts.Verbose {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// both slash variants are registered explicitly
	r.RedirectTrailingSlash = false
	r.HandleMethodNotAllowed = true
	if opts.Verbose {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	for _, route := range c.Routes() {
		h := ginHandler(route.Handle)
		for _, p := range collectionPaths(route.Path) {
			r.Handle(route.Method, colonParams(p), h)
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, statusDetail(http.StatusNotFound))
	})
	r.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, statusDetail(http.StatusMethodNotAllowed))
	})
	return r
}

func ginHandler(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		body, err := ctx.GetRawData()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Detail: "failed to read request body"})
			return
		}

		params := make(map[string]string, len(ctx.Params))
		for _, p := range ctx.Params {
			params[p.Key] = p.Value
		}

		resp := h(Request{Params: params, Body: body})
		switch {
		case resp.Raw != nil:
			ctx.Data(resp.Status, resp.ContentType, resp.Raw)
		case resp.Body == nil:
			ctx.Status(resp.Status)
		default:
			ctx.JSON(resp.Status, resp.Body)
		}
	}
}
