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
	"fmt"
	"net/http"
	"strings"
)

// Supported router frameworks.
const (
	RouterChi   = "chi"
	RouterGin   = "gin"
	RouterEcho  = "echo"
	RouterFiber = "fiber"
)

// RouterOptions configures the router adapters.
type RouterOptions struct {
	// Verbose enables the framework's request logger.
	Verbose bool
}

// NewHandler returns the net/http handler for router. Fiber does not run on
// net/http and is built with NewFiberApp instead.
func NewHandler(router string, c *Controller, opts RouterOptions) (http.Handler, error) {
	switch router {
	case RouterChi:
		return NewChiRouter(c, opts), nil
	case RouterGin:
		return NewGinRouter(c, opts), nil
	case RouterEcho:
		return NewEchoRouter(c, opts), nil
	case RouterFiber:
		return nil, fmt.Errorf("router %q is not a net/http handler", router)
	default:
		return nil, fmt.Errorf("unknown router %q", router)
	}
}

// collectionPaths returns path and, for paths with a trailing slash, the
// same path without it, so "/api/users" and "/api/users/" both match.
func collectionPaths(path string) []string {
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		return []string{path, strings.TrimSuffix(path, "/")}
	}
	return []string{path}
}

// colonParams rewrites {name} segments to the :name form used by gin, echo
// and fiber.
func colonParams(path string) string {
	var b strings.Builder
	for {
		open := strings.IndexByte(path, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(path[open:], '}')
		if end < 0 {
			break
		}
		b.WriteString(path[:open])
		b.WriteByte(':')
		b.WriteString(path[open+1 : open+end])
		path = path[open+end+1:]
	}
	b.WriteString(path)
	return b.String()
}

func statusDetail(status int) ErrorResponse {
	return ErrorResponse{Detail: http.StatusText(status)}
}
