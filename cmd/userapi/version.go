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
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/ehabterra/userapi"

// Version info can be injected at build time via -ldflags; otherwise it is
// read from the embedded build info.
var (
	Version   = "0.0.1"
	Commit    = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		detectVersionInfo()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "userapi version: %s\n", Version)
		fmt.Fprintf(out, "Commit: %s\n", Commit)
		fmt.Fprintf(out, "Build date: %s\n", BuildDate)
		fmt.Fprintf(out, "Go version: %s\n", GoVersion)
	},
}

func detectVersionInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if info.GoVersion != "" {
		GoVersion = info.GoVersion
	}
	// values injected via -ldflags win
	if Version != "0.0.1" {
		return
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var modified, hasVCS bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			hasVCS = true
			Commit = setting.Value
			if len(Commit) > 7 {
				Commit = Commit[:7]
			}
		case "vcs.time":
			BuildDate = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	switch {
	case hasVCS && Version == "0.0.1":
		Version = "dev"
	case Version == "0.0.1" && info.Main.Path == modulePath:
		Version = "latest (go install)"
	}
	if modified && !strings.Contains(Version, "+dirty") {
		Version += "+dirty"
	}
}
