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
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewEchoRouter binds the controller's routes to an echo instance.
func NewEchoRouter(c *Controller, opts RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = echoErrorHandler

	e.Use(middleware.RequestID())
	if opts.Verbose {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	for _, route := range c.Routes() {
		h := echoHandler(route.Handle)
		for _, p := range collectionPaths(route.Path) {
			e.Add(route.Method, colonParams(p), h)
		}
	}
	return e
}

func echoHandler(h HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		body, err := io.ReadAll(ctx.Request().Body)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{Detail: "failed to read request body"})
		}

		names := ctx.ParamNames()
		params := make(map[string]string, len(names))
		for _, name := range names {
			params[name] = ctx.Param(name)
		}

		resp := h(Request{Params: params, Body: body})
		switch {
		case resp.Raw != nil:
			return ctx.Blob(resp.Status, resp.ContentType, resp.Raw)
		case resp.Body == nil:
			return ctx.NoContent(resp.Status)
		default:
			return ctx.JSON(resp.Status, resp.Body)
		}
	}
}

// echoErrorHandler renders router errors (unknown route, wrong method, panics)
// with the same {detail} body as the controller.
func echoErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
	}
	if err := ctx.JSON(status, statusDetail(status)); err != nil {
		ctx.Logger().Error(err)
	}
}
