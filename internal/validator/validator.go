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

// Package validator holds the format checks applied to user input.
package validator

import (
	"regexp"
	"unicode/utf8"
)

const (
	DefaultMinLength = 1
	DefaultMaxLength = 255

	// EmailPattern accepts local@domain.tld where the last label has at least two letters.
	EmailPattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
)

var emailPattern = regexp.MustCompile(EmailPattern)

// ValidateEmail reports whether text has the shape of an email address.
// No DNS or MX lookup is done.
func ValidateEmail(text string) bool {
	return emailPattern.MatchString(text)
}

// ValidateLength reports whether the number of characters in text lies in [min, max].
func ValidateLength(text string, min, max int) bool {
	n := utf8.RuneCountInString(text)
	return min <= n && n <= max
}

// ValidateDefaultLength is ValidateLength with DefaultMinLength and DefaultMaxLength.
func ValidateDefaultLength(text string) bool {
	return ValidateLength(text, DefaultMinLength, DefaultMaxLength)
}
