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

// Package api maps HTTP requests onto the user service. The Controller is
// independent of any web framework; the chi, gin, echo and fiber adapters
// bind its route table to their own routers.
package api

import (
	"embed"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"

	"github.com/ehabterra/userapi/internal/domain"
	"github.com/ehabterra/userapi/internal/metrics"
	"github.com/ehabterra/userapi/internal/openapi"
)

//go:embed docs.html
var docsTemplate embed.FS

const (
	docsTemplateFile     = "docs.html"
	docsTitlePlaceholder = "{{TITLE}}"
	docsSpecPlaceholder  = "{{SPEC_URL}}"

	DefaultUsersPath = "/api/users"
	DocsPath         = "/docs"
	OpenAPIJSONPath  = "/openapi.json"
	OpenAPIYAMLPath  = "/openapi.yaml"
	HealthPath       = "/health"
	MetricsPath      = "/metrics"

	metricRequests        = "http.requests"
	metricRequestDuration = "http.request.duration"

	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeYAML = "application/yaml"
)

// UserService is the business layer the controller delegates to.
type UserService interface {
	GetAllUsers() []domain.User
	GetUserByID(id int) (domain.User, error)
	CreateUser(name, email string) (domain.User, error)
	UpdateUser(id int, patch domain.UserPatch) (domain.User, error)
	DeleteUser(id int) bool
}

// Request is the framework-neutral view of an incoming call.
type Request struct {
	Params map[string]string
	Body   []byte
}

// Response is written back by the router adapter. Body is JSON-encoded unless
// Raw is set; a nil Body and nil Raw produce an empty body.
type Response struct {
	Status      int
	Body        any
	Raw         []byte
	ContentType string
}

// HandlerFunc serves one route.
type HandlerFunc func(Request) Response

// Route binds a method and a path pattern to a handler. Path parameters use
// the {name} form.
type Route struct {
	Method      string
	Path        string
	OperationID string
	Handle      HandlerFunc
}

// Options configures a Controller.
type Options struct {
	Title     string
	Version   string
	UsersPath string
	// Metrics receives per-route counters and timers. A collector is
	// created when nil.
	Metrics *metrics.Collector
}

// Controller translates requests into UserService calls.
type Controller struct {
	svc       UserService
	metrics   *metrics.Collector
	title     string
	version   string
	usersPath string

	docJSON  []byte
	docYAML  []byte
	docsHTML []byte
}

// NewController creates a Controller and renders its API documents.
func NewController(svc UserService, opts Options) (*Controller, error) {
	if opts.Title == "" {
		opts.Title = openapi.DefaultTitle
	}
	if opts.Version == "" {
		opts.Version = openapi.DefaultAPIVersion
	}
	if opts.UsersPath == "" {
		opts.UsersPath = DefaultUsersPath
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewCollector()
	}

	c := &Controller{
		svc:       svc,
		metrics:   opts.Metrics,
		title:     opts.Title,
		version:   opts.Version,
		usersPath: strings.TrimSuffix(opts.UsersPath, "/"),
	}

	doc := openapi.UsersDocument(openapi.Options{
		Title:     opts.Title,
		Version:   opts.Version,
		UsersPath: c.usersPath,
	})
	var err error
	if c.docJSON, err = openapi.MarshalJSON(doc); err != nil {
		return nil, err
	}
	if c.docYAML, err = openapi.MarshalYAML(doc); err != nil {
		return nil, err
	}

	tmpl, err := docsTemplate.ReadFile(docsTemplateFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read docs template: %w", err)
	}
	page := strings.ReplaceAll(string(tmpl), docsTitlePlaceholder, html.EscapeString(c.title))
	page = strings.ReplaceAll(page, docsSpecPlaceholder, OpenAPIJSONPath)
	c.docsHTML = []byte(page)

	return c, nil
}

// Metrics returns the collector the controller records into.
func (c *Controller) Metrics() *metrics.Collector {
	return c.metrics
}

// Routes returns the route table. Every handler records request metrics.
func (c *Controller) Routes() []Route {
	item := c.usersPath + "/{id}"
	collection := c.usersPath + "/"

	routes := []Route{
		{http.MethodGet, "/", "root", c.Root},
		{http.MethodGet, HealthPath, "health", c.Health},
		{http.MethodGet, DocsPath, "docs", c.Docs},
		{http.MethodGet, OpenAPIJSONPath, "openapiJSON", c.OpenAPIJSON},
		{http.MethodGet, OpenAPIYAMLPath, "openapiYAML", c.OpenAPIYAML},
		{http.MethodGet, MetricsPath, "metrics", c.MetricsSnapshot},
		{http.MethodGet, collection, "listUsers", c.ListUsers},
		{http.MethodPost, collection, "createUser", c.CreateUser},
		{http.MethodGet, item, "getUser", c.GetUser},
		{http.MethodPut, item, "updateUser", c.UpdateUser},
		{http.MethodDelete, item, "deleteUser", c.DeleteUser},
	}
	for i := range routes {
		routes[i].Handle = c.observe(routes[i].OperationID, routes[i].Handle)
	}
	return routes
}

func (c *Controller) observe(operation string, h HandlerFunc) HandlerFunc {
	return func(req Request) Response {
		timer := c.metrics.StartTimer(metricRequestDuration, map[string]string{"operation": operation})
		resp := h(req)
		timer.Stop()
		c.metrics.IncrementCounter(metricRequests, map[string]string{"operation": operation, "status": strconv.Itoa(resp.Status)})
		return resp
	}
}

// Root serves the service metadata.
func (c *Controller) Root(Request) Response {
	return jsonResponse(http.StatusOK, ServiceInfo{
		Message: "Welcome to " + c.title,
		Version: c.version,
		Docs:    DocsPath,
		API:     c.usersPath,
	})
}

// Health reports that the process is serving.
func (c *Controller) Health(Request) Response {
	return jsonResponse(http.StatusOK, HealthResponse{Status: "healthy"})
}

// Docs serves the Swagger UI page.
func (c *Controller) Docs(Request) Response {
	return Response{Status: http.StatusOK, Raw: c.docsHTML, ContentType: contentTypeHTML}
}

// OpenAPIJSON serves the OpenAPI document as JSON.
func (c *Controller) OpenAPIJSON(Request) Response {
	return Response{Status: http.StatusOK, Raw: c.docJSON, ContentType: "application/json"}
}

// OpenAPIYAML serves the OpenAPI document as YAML.
func (c *Controller) OpenAPIYAML(Request) Response {
	return Response{Status: http.StatusOK, Raw: c.docYAML, ContentType: contentTypeYAML}
}

// MetricsSnapshot serves the aggregated request metrics.
func (c *Controller) MetricsSnapshot(Request) Response {
	return jsonResponse(http.StatusOK, c.metrics.Snapshot())
}

// ListUsers returns every user ordered by id.
func (c *Controller) ListUsers(Request) Response {
	users := c.svc.GetAllUsers()
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return jsonResponse(http.StatusOK, out)
}

// GetUser returns one user, or 404.
func (c *Controller) GetUser(req Request) Response {
	id, errResp, ok := parseID(req)
	if !ok {
		return errResp
	}
	u, err := c.svc.GetUserByID(id)
	if err != nil {
		return errorResponse(id, err)
	}
	return jsonResponse(http.StatusOK, toUserResponse(u))
}

// CreateUser stores a new user and answers 201.
func (c *Controller) CreateUser(req Request) Response {
	var body CreateUserRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return detailResponse(http.StatusUnprocessableEntity, err.Error())
	}
	u, err := c.svc.CreateUser(*body.Name, *body.Email)
	if err != nil {
		return errorResponse(0, err)
	}
	return jsonResponse(http.StatusCreated, toUserResponse(u))
}

// UpdateUser applies the fields present in the body.
func (c *Controller) UpdateUser(req Request) Response {
	id, errResp, ok := parseID(req)
	if !ok {
		return errResp
	}
	var body UpdateUserRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return detailResponse(http.StatusUnprocessableEntity, err.Error())
	}
	u, err := c.svc.UpdateUser(id, domain.UserPatch{Name: body.Name, Email: body.Email})
	if err != nil {
		return errorResponse(id, err)
	}
	return jsonResponse(http.StatusOK, toUserResponse(u))
}

// DeleteUser removes a user and answers 204.
func (c *Controller) DeleteUser(req Request) Response {
	id, errResp, ok := parseID(req)
	if !ok {
		return errResp
	}
	if !c.svc.DeleteUser(id) {
		return notFound(strconv.Itoa(id))
	}
	return Response{Status: http.StatusNoContent}
}

func parseID(req Request) (int, Response, bool) {
	raw := req.Params["id"]
	id, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		// integers past the int range cannot name a stored record
		return 0, notFound(raw), false
	}
	if err != nil {
		return 0, detailResponse(http.StatusUnprocessableEntity,
			fmt.Sprintf("Invalid user id %q: must be an integer", raw)), false
	}
	return id, Response{}, true
}

func jsonResponse(status int, body any) Response {
	return Response{Status: status, Body: body}
}

func detailResponse(status int, detail string) Response {
	return jsonResponse(status, ErrorResponse{Detail: detail})
}

func notFound(id string) Response {
	return detailResponse(http.StatusNotFound, fmt.Sprintf("User with id %s not found", id))
}

// errorResponse maps a service error onto its status code.
func errorResponse(id int, err error) Response {
	var inputErr *domain.InputError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return notFound(strconv.Itoa(id))
	case errors.As(err, &inputErr):
		return detailResponse(http.StatusBadRequest, inputErr.Message)
	case errors.Is(err, domain.ErrInvalidInput):
		return detailResponse(http.StatusBadRequest, err.Error())
	default:
		return detailResponse(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
