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

// Package openapi describes the user API as an OpenAPI 3.1 document.
package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ehabterra/userapi/internal/validator"
)

const (
	DefaultOpenAPIVersion = "3.1.1"
	DefaultTitle          = "User API"
	DefaultAPIVersion     = "1.0.0"
	DefaultUsersPath      = "/api/users"
	DefaultDescription    = "Layered CRUD service for user records"

	mediaTypeJSON = "application/json"
	usersTag      = "users"
	jsonIndent    = "  "
)

// Options controls the generated document.
type Options struct {
	Title       string
	Version     string
	Description string
	UsersPath   string
	Servers     []Server
}

func (o *Options) applyDefaults() {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Version == "" {
		o.Version = DefaultAPIVersion
	}
	if o.Description == "" {
		o.Description = DefaultDescription
	}
	if o.UsersPath == "" {
		o.UsersPath = DefaultUsersPath
	}
	o.UsersPath = strings.TrimSuffix(o.UsersPath, "/")
}

func ref(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

func jsonContent(s *Schema) map[string]MediaType {
	return map[string]MediaType{mediaTypeJSON: {Schema: s}}
}

func response(status int, s *Schema) Response {
	r := Response{Description: http.StatusText(status)}
	if s != nil {
		r.Content = jsonContent(s)
	}
	return r
}

// responses maps status codes to body schemas; a nil schema means no body.
func responses(bodies map[int]*Schema) map[string]Response {
	out := make(map[string]Response, len(bodies))
	for status, s := range bodies {
		out[strconv.Itoa(status)] = response(status, s)
	}
	return out
}

// UsersDocument builds the document for the user API and its metadata endpoints.
func UsersDocument(opts Options) *Document {
	opts.applyDefaults()

	idParam := Parameter{
		Name:        "id",
		In:          "path",
		Description: "User identifier",
		Required:    true,
		Schema:      &Schema{Type: "integer", Minimum: 1},
	}
	userList := &Schema{Type: "array", Items: ref("User")}

	collection := PathItem{
		Get: &Operation{
			Tags:        []string{usersTag},
			Summary:     "Get all users",
			OperationID: "listUsers",
			Responses:   responses(map[int]*Schema{http.StatusOK: userList}),
		},
		Post: &Operation{
			Tags:        []string{usersTag},
			Summary:     "Create a new user",
			OperationID: "createUser",
			RequestBody: &RequestBody{Required: true, Content: jsonContent(ref("UserCreate"))},
			Responses: responses(map[int]*Schema{
				http.StatusCreated:             ref("User"),
				http.StatusBadRequest:          ref("HTTPError"),
				http.StatusUnprocessableEntity: ref("HTTPError"),
			}),
		},
	}
	item := PathItem{
		Parameters: []Parameter{idParam},
		Get: &Operation{
			Tags:        []string{usersTag},
			Summary:     "Get a specific user by ID",
			OperationID: "getUser",
			Responses: responses(map[int]*Schema{
				http.StatusOK:                  ref("User"),
				http.StatusNotFound:            ref("HTTPError"),
				http.StatusUnprocessableEntity: ref("HTTPError"),
			}),
		},
		Put: &Operation{
			Tags:        []string{usersTag},
			Summary:     "Update an existing user",
			OperationID: "updateUser",
			RequestBody: &RequestBody{Required: true, Content: jsonContent(ref("UserUpdate"))},
			Responses: responses(map[int]*Schema{
				http.StatusOK:                  ref("User"),
				http.StatusBadRequest:          ref("HTTPError"),
				http.StatusNotFound:            ref("HTTPError"),
				http.StatusUnprocessableEntity: ref("HTTPError"),
			}),
		},
		Delete: &Operation{
			Tags:        []string{usersTag},
			Summary:     "Delete a user",
			OperationID: "deleteUser",
			Responses: responses(map[int]*Schema{
				http.StatusNoContent:           nil,
				http.StatusNotFound:            ref("HTTPError"),
				http.StatusUnprocessableEntity: ref("HTTPError"),
			}),
		},
	}

	return &Document{
		OpenAPI: DefaultOpenAPIVersion,
		Info: Info{
			Title:       opts.Title,
			Description: opts.Description,
			Version:     opts.Version,
			License:     &License{Name: "Apache 2.0", URL: "http://www.apache.org/licenses/LICENSE-2.0"},
		},
		Servers: opts.Servers,
		Tags:    []Tag{{Name: usersTag, Description: "User records"}},
		Paths: map[string]PathItem{
			"/": {Get: &Operation{
				Summary:     "Service metadata",
				OperationID: "root",
				Responses:   responses(map[int]*Schema{http.StatusOK: ref("ServiceInfo")}),
			}},
			"/health": {Get: &Operation{
				Summary:     "Health check",
				OperationID: "health",
				Responses:   responses(map[int]*Schema{http.StatusOK: ref("Health")}),
			}},
			opts.UsersPath + "/":      collection,
			opts.UsersPath + "/{id}": item,
		},
		Components: &Components{Schemas: schemas()},
	}
}

func schemas() map[string]*Schema {
	name := &Schema{Type: "string", MinLength: validator.DefaultMinLength, MaxLength: validator.DefaultMaxLength, Example: "Ana"}
	email := &Schema{Type: "string", Format: "email", Pattern: validator.EmailPattern, Example: "ana@example.com"}
	str := &Schema{Type: "string"}

	return map[string]*Schema{
		"User": {
			Type: "object",
			Properties: map[string]*Schema{
				"id":    {Type: "integer", ReadOnly: true, Example: 3},
				"name":  name,
				"email": email,
			},
			Required: []string{"id", "name", "email"},
		},
		"UserCreate": {
			Type:       "object",
			Properties: map[string]*Schema{"name": name, "email": email},
			Required:   []string{"name", "email"},
		},
		"UserUpdate": {
			Type:        "object",
			Description: "Omitted fields are left unchanged",
			Properties:  map[string]*Schema{"name": name, "email": email},
		},
		"HTTPError": {
			Type:       "object",
			Properties: map[string]*Schema{"detail": str},
			Required:   []string{"detail"},
		},
		"ServiceInfo": {
			Type: "object",
			Properties: map[string]*Schema{
				"message": str,
				"version": str,
				"docs":    str,
				"api":     str,
			},
		},
		"Health": {
			Type:       "object",
			Properties: map[string]*Schema{"status": {Type: "string", Example: "healthy"}},
		},
	}
}

// MarshalJSON renders doc as indented JSON.
func MarshalJSON(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", jsonIndent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal openapi json: %w", err)
	}
	return data, nil
}

// MarshalYAML renders doc as YAML.
func MarshalYAML(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal openapi yaml: %w", err)
	}
	return data, nil
}

// Marshal renders doc in format, "json" or "yaml".
func Marshal(doc *Document, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json", "":
		return MarshalJSON(doc)
	case "yaml", "yml":
		return MarshalYAML(doc)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
