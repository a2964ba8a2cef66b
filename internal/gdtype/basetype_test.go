// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package gdtype

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsBuiltin(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "int", want: true},
		{name: "String", want: true},
		{name: "PackedByteArray", want: true},
		{name: "Callable", want: true},
		{name: "GKPlayer", want: false},
		{name: "string", want: false},
		{name: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBuiltin(tt.name); got != tt.want {
				t.Errorf("IsBuiltin(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestArrayElement(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{input: "Array[GKPlayer]", want: "GKPlayer", wantOK: true},
		{input: "Array[int]", want: "int", wantOK: true},
		{input: " Array[String] ", want: "String", wantOK: true},
		{input: "Array", want: "", wantOK: false},
		{input: "Array[]", want: "", wantOK: false},
		{input: "PackedStringArray", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ArrayElement(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ArrayElement(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestReferencedTypes(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "", want: nil},
		{input: "GKPlayer", want: []string{"GKPlayer"}},
		{input: "Array[StoreProduct]", want: []string{"StoreProduct"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ReferencedTypes(tt.input)); diff != "" {
				t.Errorf("ReferencedTypes(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}
