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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ehabterra/userapi/internal/openapi"
)

var (
	flagFormat    string
	flagOutput    string
	flagServerURL string
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI document",
	Long:  "Renders the OpenAPI 3.1 document of the API as JSON or YAML, to stdout or a file.",
	Args:  cobra.NoArgs,
	RunE:  runOpenAPI,
}

func init() {
	openapiCmd.Flags().StringVarP(&flagFormat, "format", "f", "json", "output format: json|yaml")
	openapiCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default: stdout)")
	openapiCmd.Flags().StringVar(&flagServerURL, "server-url", "", "server URL listed in the document")
}

func runOpenAPI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := openapi.Options{Title: cfg.Title, Version: cfg.Version}
	if flagServerURL != "" {
		opts.Servers = []openapi.Server{{URL: flagServerURL}}
	}
	data, err := openapi.Marshal(openapi.UsersDocument(opts), flagFormat)
	if err != nil {
		return err
	}

	if flagOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(flagOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", flagOutput, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "OpenAPI document written to %s\n", flagOutput)
	return nil
}
