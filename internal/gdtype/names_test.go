// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package gdtype

import "testing"

func TestUncapitalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "GKPlayer", expected: "gKPlayer"},
		{input: "Image", expected: "image"},
		{input: "x", expected: "x"},
		{input: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := Uncapitalize(tc.input); got != tc.expected {
				t.Errorf("Uncapitalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestPascalCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single word", input: "authenticate", expected: "Authenticate"},
		{name: "snake case", input: "get_local_player", expected: "GetLocalPlayer"},
		{name: "screaming snake", input: "TOP_LEADING", expected: "TopLeading"},
		{name: "mixed case word lowered", input: "load_URL", expected: "LoadUrl"},
		{name: "repeated underscores", input: "a__b", expected: "AB"},
		{name: "leading underscore", input: "_private", expected: "Private"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PascalCase(tc.input); got != tc.expected {
				t.Errorf("PascalCase(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "player_scope", expected: "playerScope"},
		{input: "ids", expected: "ids"},
		{input: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := CamelCase(tc.input); got != tc.expected {
				t.Errorf("CamelCase(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestCamelToScreamingSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "Location", expected: "LOCATION"},
		{input: "PlayerScope", expected: "PLAYER_SCOPE"},
		{input: "URL", expected: "URL"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := CamelToScreamingSnake(tc.input); got != tc.expected {
				t.Errorf("CamelToScreamingSnake(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestEnumValueName(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		enum     string
		expected string
	}{
		{name: "prefix stripped", constant: "LOCATION_TOP_LEADING", enum: "Location", expected: "TopLeading"},
		{name: "multi word prefix", constant: "PLAYER_SCOPE_GLOBAL", enum: "PlayerScope", expected: "Global"},
		{name: "no prefix", constant: "TOP_LEADING", enum: "Location", expected: "TopLeading"},
		{name: "prefix only", constant: "LOCATION_", enum: "Location", expected: "Location"},
		{name: "digit after prefix kept", constant: "SIZE_2", enum: "Size", expected: "Size2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EnumValueName(tc.constant, tc.enum); got != tc.expected {
				t.Errorf("EnumValueName(%q, %q) = %q, want %q", tc.constant, tc.enum, got, tc.expected)
			}
		})
	}
}

func TestSafeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "event", expected: "@event"},
		{input: "object", expected: "@object"},
		{input: "string", expected: "@string"},
		{input: "score", expected: "score"},
		{input: "Event", expected: "Event"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := SafeIdent(tc.input); got != tc.expected {
				t.Errorf("SafeIdent(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestParamName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "player_scope", expected: "playerScope"},
		{input: "event", expected: "@event"},
		{input: "", expected: "arg"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParamName(tc.input); got != tc.expected {
				t.Errorf("ParamName(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestLowerCamel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "GKLeaderboard", expected: "gkLeaderboard"},
		{input: "Image", expected: "image"},
		{input: "URL", expected: "url"},
		{input: "AppleURL", expected: "appleURL"},
		{input: "int", expected: "int"},
		{input: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := LowerCamel(tc.input); got != tc.expected {
				t.Errorf("LowerCamel(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
