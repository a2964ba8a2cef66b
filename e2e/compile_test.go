// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

//go:build e2e

// Package e2e provides end-to-end compile verification tests.
// These tests verify that generated code is valid and compilable.
//
// Run with: go test -tags e2e ./e2e/... -v
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/tools/txtar"
)

// godotSDK is the Godot .NET SDK the generated wrappers are built against.
const godotSDK = "Godot.NET.Sdk/4.3.0"

// Tool installation instructions
var installInstructions = map[string]string{
	"go":     "Go is required. Install from https://go.dev/dl/",
	"dotnet": "The .NET SDK is required. Install from https://dotnet.microsoft.com/download",
}

// requireTool fails the test if the tool is not available.
func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		instruction := installInstructions[name]
		if instruction == "" {
			instruction = fmt.Sprintf("Install %s and ensure it's in PATH", name)
		}
		t.Fatalf("%s not found in PATH.\n%s", name, instruction)
	}
}

// TestCSharpOutputCompiles verifies that the generated wrappers build as a
// Godot C# project.
func TestCSharpOutputCompiles(t *testing.T) {
	requireTool(t, "dotnet")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tmpDir := t.TempDir()
	docDir := filepath.Join(tmpDir, "doc_classes")
	projDir := filepath.Join(tmpDir, "Wrappers")

	// Reuse the documentation of every e2e case.
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatalf("parse %s: %v", file, err)
		}
		tc, err := parseE2ECase(file, ar)
		if err != nil {
			t.Fatalf("parse %s: %v", file, err)
		}
		for rel, data := range tc.docs {
			path := filepath.Join(docDir, filepath.FromSlash(rel))
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}

	if err := os.MkdirAll(projDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	csproj := fmt.Sprintf(`<Project Sdk="%s">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
    <Nullable>enable</Nullable>
  </PropertyGroup>
</Project>
`, godotSDK)
	if err := os.WriteFile(filepath.Join(projDir, "Wrappers.csproj"), []byte(csproj), 0o644); err != nil {
		t.Fatalf("write csproj: %v", err)
	}

	cmd := exec.CommandContext(ctx, binary,
		"generate",
		"-i", docDir,
		"-o", filepath.Join(projDir, "Generated"),
		"--signatures", filepath.Join(tmpDir, "callback-signatures.json"),
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("gdbind generate: %v\n%s", err, stderr.String())
	}

	t.Run("dotnet_build", func(t *testing.T) {
		start := time.Now()
		var out bytes.Buffer
		cmd := exec.CommandContext(ctx, "dotnet", "build", "-nologo", "-v:q")
		cmd.Dir = projDir
		cmd.Stdout = &out
		cmd.Stderr = &out
		if err := cmd.Run(); err != nil {
			t.Fatalf("dotnet build failed: %v\n%s", err, out.String())
		}
		t.Logf("dotnet build: %v", time.Since(start))
	})
}

// TestJSONOutputValid verifies the full build's json target writes a
// well-formed model dump.
func TestJSONOutputValid(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tmpDir := t.TempDir()
	binaryPath := filepath.Join(tmpDir, "gdbind")
	if err := buildBinary(binaryPath, "gdbind_full"); err != nil {
		t.Fatalf("build binary: %v", err)
	}

	ar, err := txtar.ParseFile(filepath.Join("testdata", "access_point.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	tc, err := parseE2ECase("access_point", ar)
	if err != nil {
		t.Fatal(err)
	}
	docDir := filepath.Join(tmpDir, "doc_classes")
	if err := os.MkdirAll(docDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for rel, data := range tc.docs {
		if err := os.WriteFile(filepath.Join(docDir, rel), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	outDir := filepath.Join(tmpDir, "out")
	cmd := exec.CommandContext(ctx, binaryPath, "generate", "-t", "json", "-i", docDir, "-o", outDir, "--signatures", "")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("gdbind generate: %v\n%s", err, stderr.String())
	}

	data, err := os.ReadFile(filepath.Join(outDir, "api.json"))
	if err != nil {
		t.Fatalf("read api.json: %v", err)
	}
	var doc struct {
		Classes []struct {
			Name string `json:"name"`
		} `json:"classes"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("api.json is not valid JSON: %v", err)
	}
	if len(doc.Classes) != 1 || doc.Classes[0].Name != "GKAccessPoint" {
		t.Errorf("unexpected classes: %+v", doc.Classes)
	}
}
