// SPDX-License-Identifier: MIT

// Package testutil provides testing utilities for gdbind.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"golang.org/x/tools/txtar"

	"github.com/albertocavalcante/gdbind/internal/callbacks"
	"github.com/albertocavalcante/gdbind/internal/docxml"
	"github.com/albertocavalcante/gdbind/model"
)

// Archive file names and prefixes.
const (
	docPrefix      = "doc/"
	wantPrefix     = "want/"
	containsPrefix = "contains/"
	absentPrefix   = "absent/"
	signaturesFile = "callbacks.json"
)

// Case represents a parsed test case from a txtar archive.
type Case struct {
	// Name is the test case name (typically the filename without extension).
	Name string

	// Description is the first comment block before any files.
	Description string

	// Flags contains any flags parsed from "Flags: ..." line in the description.
	Flags []string

	// Docs maps "doc/<name>.xml" entries to class reference XML.
	Docs map[string][]byte

	// Signatures is the contents of "callbacks.json", if present.
	Signatures []byte

	// Want maps relative paths (e.g., "GameCenter/GKPlayer.cs") to the
	// exact expected content.
	Want map[string][]byte

	// Contains maps relative paths to lines that must each appear in the
	// generated file.
	Contains map[string][]string

	// Absent maps relative paths to lines that must not appear.
	Absent map[string][]string
}

// ParseCase parses a txtar archive into a test Case.
// The archive should contain:
//   - A description comment (text before first file)
//   - One or more "doc/<Class>.xml" class reference files
//   - An optional "callbacks.json" signatures file
//   - "want/<file>" exact outputs and/or "contains/<file>" and
//     "absent/<file>" line fragments
//
// The description may contain a "Flags: flag1, flag2" line to pass flags
// to the generator.
func ParseCase(name string, ar *txtar.Archive) (*Case, error) {
	c := &Case{
		Name:        name,
		Description: string(ar.Comment),
		Docs:        make(map[string][]byte),
		Want:        make(map[string][]byte),
		Contains:    make(map[string][]string),
		Absent:      make(map[string][]string),
	}

	// Parse flags from description
	c.parseFlags()

	// Process files
	for _, f := range ar.Files {
		switch {
		case strings.HasPrefix(f.Name, docPrefix):
			c.Docs[f.Name] = f.Data
		case f.Name == signaturesFile:
			c.Signatures = f.Data
		case strings.HasPrefix(f.Name, wantPrefix):
			c.Want[strings.TrimPrefix(f.Name, wantPrefix)] = f.Data
		case strings.HasPrefix(f.Name, containsPrefix):
			c.Contains[strings.TrimPrefix(f.Name, containsPrefix)] = fragments(f.Data)
		case strings.HasPrefix(f.Name, absentPrefix):
			c.Absent[strings.TrimPrefix(f.Name, absentPrefix)] = fragments(f.Data)
		default:
			return nil, fmt.Errorf("unexpected file in archive: %q (expected doc/*, %s, want/*, contains/* or absent/*)", f.Name, signaturesFile)
		}
	}

	if len(c.Docs) == 0 {
		return nil, fmt.Errorf("missing doc/* files in archive")
	}

	if len(c.Want) == 0 && len(c.Contains) == 0 {
		return nil, fmt.Errorf("missing want/* or contains/* files in archive")
	}

	return c, nil
}

func fragments(data []byte) []string {
	var out []string
	for line := range strings.SplitSeq(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// parseFlags extracts flags from "Flags: ..." line in the description.
func (c *Case) parseFlags() {
	lines := strings.Split(c.Description, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Flags:") {
			flagStr := strings.TrimPrefix(line, "Flags:")
			flagStr = strings.TrimSpace(flagStr)
			if flagStr != "" {
				for _, f := range strings.Split(flagStr, ",") {
					f = strings.TrimSpace(f)
					if f != "" {
						c.Flags = append(c.Flags, f)
					}
				}
			}
			break
		}
	}
}

// Load parses the case's documentation and signatures the same way the
// CLI does, through an in-memory filesystem.
func (c *Case) Load(ctx context.Context) (*model.API, *callbacks.File, error) {
	fsys := afero.NewMemMapFs()
	for name, data := range c.Docs {
		if err := afero.WriteFile(fsys, path.Join("/", name), data, 0o644); err != nil {
			return nil, nil, err
		}
	}
	if c.Signatures != nil {
		if err := afero.WriteFile(fsys, "/"+signaturesFile, c.Signatures, 0o644); err != nil {
			return nil, nil, err
		}
	}

	api, err := docxml.ParseDir(ctx, fsys, "/doc", docxml.Options{Strict: true})
	if err != nil {
		return nil, nil, err
	}
	sigs, err := callbacks.Load(fsys, "/"+signaturesFile)
	if err != nil {
		return nil, nil, err
	}
	return api, sigs, nil
}

// GenerateFunc is a function that generates output for a test case.
// It returns a map of filename to content.
type GenerateFunc func(c *Case) (map[string][]byte, error)

// Run executes the test case using the provided generate function.
// It compares generated output against expected output and reports differences.
func (c *Case) Run(t *testing.T, generate GenerateFunc) {
	t.Helper()

	got, err := generate(c)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// Compare exact contents
	for _, wantFile := range sortedKeys(c.Want) {
		gotContent, ok := got[wantFile]
		if !ok {
			t.Errorf("missing output file: %q", wantFile)
			continue
		}

		// Normalize line endings and trailing whitespace
		wantNorm := normalizeContent(c.Want[wantFile])
		gotNorm := normalizeContent(gotContent)

		if diff := cmp.Diff(wantNorm, gotNorm); diff != "" {
			t.Errorf("file %q mismatch (-want +got):\n%s", wantFile, diff)
		}
	}

	// Check fragments line by line, ignoring indentation
	for _, file := range sortedKeys(c.Contains) {
		gotContent, ok := got[file]
		if !ok {
			t.Errorf("missing output file: %q", file)
			continue
		}
		lines := fragments(gotContent)
		for _, want := range c.Contains[file] {
			if !slices.ContainsFunc(lines, func(l string) bool { return strings.Contains(l, want) }) {
				t.Errorf("file %q: missing line %q\n--- got ---\n%s", file, want, gotContent)
			}
		}
	}

	for _, file := range sortedKeys(c.Absent) {
		gotContent := string(got[file])
		for _, unwanted := range c.Absent[file] {
			if strings.Contains(gotContent, unwanted) {
				t.Errorf("file %q: unexpected %q", file, unwanted)
			}
		}
	}
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeContent normalizes content for comparison:
// - Trims trailing whitespace from each line
// - Ensures consistent line endings
// - Trims trailing newlines
func normalizeContent(content []byte) string {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	result := strings.Join(lines, "\n")
	return strings.TrimRight(result, "\n")
}

// UpdateArchive updates a txtar archive with new generated content.
// Used for golden file updates with -update flag. Only files the archive
// already lists under want/ are rewritten; inputs and fragments are kept.
func UpdateArchive(ar *txtar.Archive, got map[string][]byte) *txtar.Archive {
	result := &txtar.Archive{
		Comment: ar.Comment,
	}

	for _, f := range ar.Files {
		name, isWant := strings.CutPrefix(f.Name, wantPrefix)
		if !isWant {
			result.Files = append(result.Files, f)
			continue
		}
		content, ok := got[name]
		if !ok {
			continue
		}
		// Ensure trailing newline
		if len(content) > 0 && content[len(content)-1] != '\n' {
			content = append(content, '\n')
		}
		result.Files = append(result.Files, txtar.File{Name: f.Name, Data: content})
	}

	return result
}

// FormatArchive formats an archive to bytes.
func FormatArchive(ar *txtar.Archive) []byte {
	return txtar.Format(ar)
}

// LoadTestCases loads all txtar test cases from a directory.
func LoadTestCases(t *testing.T, dir string) []*Case {
	t.Helper()

	pattern := filepath.Join(dir, "*.txtar")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %q: %v", pattern, err)
	}

	if len(files) == 0 {
		t.Fatalf("no txtar files found in %q", dir)
	}

	var cases []*Case
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatalf("parse %q: %v", file, err)
		}

		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		c, err := ParseCase(name, ar)
		if err != nil {
			t.Fatalf("parse case %q: %v", name, err)
		}

		cases = append(cases, c)
	}

	// Sort by name for determinism
	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Name < cases[j].Name
	})

	return cases
}

// StripHeader removes the "Code generated by gdbind" header from generated
// code. This allows tests to compare just the meaningful code.
func StripHeader(content []byte) []byte {
	lines := bytes.Split(content, []byte("\n"))
	var result [][]byte
	inHeader := true

	for _, line := range lines {
		lineStr := string(line)
		// Skip header lines (comments at the start)
		if inHeader {
			if strings.HasPrefix(lineStr, "//") || lineStr == "" {
				continue
			}
			inHeader = false
		}
		result = append(result, line)
	}

	return bytes.Join(result, []byte("\n"))
}
