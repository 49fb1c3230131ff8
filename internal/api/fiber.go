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
	"bytes"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// FiberOptions extends RouterOptions with the fasthttp server timeouts.
type FiberOptions struct {
	RouterOptions
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewFiberApp binds the controller's routes to a fiber app. Fiber ignores
// trailing slashes by default, so each route is registered once.
func NewFiberApp(c *Controller, opts FiberOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          fiberErrorHandler,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
	})

	app.Use(requestid.New())
	if opts.Verbose {
		app.Use(logger.New())
	}
	app.Use(fiberrecover.New())

	for _, route := range c.Routes() {
		app.Add(route.Method, colonParams(route.Path), fiberHandler(route.Handle))
	}
	return app
}

func fiberHandler(h HandlerFunc) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// fasthttp reuses request buffers once the handler returns
		body := bytes.Clone(ctx.Body())
		resp := h(Request{Params: ctx.AllParams(), Body: body})

		switch {
		case resp.Raw != nil:
			ctx.Set(fiber.HeaderContentType, resp.ContentType)
			return ctx.Status(resp.Status).Send(resp.Raw)
		case resp.Body == nil:
			ctx.Status(resp.Status)
			return nil
		default:
			return ctx.Status(resp.Status).JSON(resp.Body)
		}
	}
}

func fiberErrorHandler(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	return ctx.Status(status).JSON(statusDetail(status))
}
