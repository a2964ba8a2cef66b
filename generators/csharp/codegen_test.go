// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package csharp

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/albertocavalcante/gdbind/generator"
	"github.com/albertocavalcante/gdbind/internal/callbacks"
	"github.com/albertocavalcante/gdbind/internal/testutil"
	"github.com/albertocavalcante/gdbind/internal/typemap"
	"github.com/albertocavalcante/gdbind/model"
)

var update = flag.Bool("update", false, "update golden files")

// TestCodegen runs txtar-based integration tests.
func TestCodegen(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no txtar files found in testdata/")
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatalf("parse txtar: %v", err)
			}

			tc, err := testutil.ParseCase(name, ar)
			if err != nil {
				t.Fatalf("parse case: %v", err)
			}

			if *update {
				got, err := runCodegen(tc)
				if err != nil {
					t.Fatalf("generate: %v", err)
				}
				content := testutil.FormatArchive(testutil.UpdateArchive(ar, got))
				if err := os.WriteFile(file, content, 0o644); err != nil {
					t.Fatalf("write updated file: %v", err)
				}
				t.Logf("updated %s", file)
				return
			}

			tc.Run(t, runCodegen)
		})
	}
}

// caseConfig builds the generator configuration from a case's flags.
func caseConfig(tc *testutil.Case) generator.Config {
	cfg := generator.Config{Options: make(map[string]string)}

	// Parse flags
	for _, f := range tc.Flags {
		switch {
		case f == "resolve-deps":
			cfg.ResolveDeps = true
		case strings.HasPrefix(f, "root="):
			cfg.RootNamespace = strings.TrimPrefix(f, "root=")
		case strings.HasPrefix(f, "classes="):
			for c := range strings.SplitSeq(strings.TrimPrefix(f, "classes="), ";") {
				if c = strings.TrimSpace(c); c != "" {
					cfg.Classes = append(cfg.Classes, c)
				}
			}
		case strings.HasPrefix(f, "string-names="):
			cfg.Options[OptionStringNamesClass] = strings.TrimPrefix(f, "string-names=")
		case strings.HasPrefix(f, "factory="):
			cfg.Options[OptionFactoryClass] = strings.TrimPrefix(f, "factory=")
		}
	}
	return cfg
}

// runCodegen generates C# from a test case the way the generate command
// does: extracted signatures are merged under the archive's callbacks.json.
func runCodegen(tc *testutil.Case) (map[string][]byte, error) {
	return runCodegenWith(tc, caseConfig(tc))
}

func runCodegenWith(tc *testutil.Case, cfg generator.Config) (map[string][]byte, error) {
	ctx := context.Background()
	api, sigs, err := tc.Load(ctx)
	if err != nil {
		return nil, err
	}
	cfg.Signatures = callbacks.Merge(sigs, callbacks.Extract(api))

	out, err := NewGenerator().Generate(ctx, api, cfg)
	if err != nil {
		return nil, err
	}
	return out.Files, nil
}

func newTestCodegen(api *model.API, cfg Config) *Codegen {
	return New(api, typemap.New(typemap.Options{API: api}), cfg)
}

func TestCallbackWithoutSignature(t *testing.T) {
	api := &model.API{Classes: []*model.Class{
		{
			Name: "AppleFilePicker",
			Methods: []*model.Method{
				{
					Name:       "pick",
					ReturnType: "void",
					Parameters: []*model.Parameter{
						{Index: 0, Name: "on_done", Type: "Callable"},
					},
				},
				{
					Name:       "pick_later",
					ReturnType: "void",
					Parameters: []*model.Parameter{
						{Index: 0, Name: "types", Type: "PackedStringArray"},
						{Index: 1, Name: "on_done", Type: "Callable", DefaultValue: "Callable()", HasDefault: true},
					},
				},
			},
		},
	}}

	out, err := newTestCodegen(api, Config{}).Generate()
	if err != nil {
		t.Fatal(err)
	}
	got := string(out.Files.get("UI/AppleFilePicker.cs"))
	for _, want := range []string{
		"public void Pick(Callable onDone)",
		"_instance.Call(ApplePluginStringNames.Pick, onDone);",
		"public void PickLater(string[] types, Callable onDone = default)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestOptionalCallback(t *testing.T) {
	api := &model.API{Classes: []*model.Class{
		{
			Name: "StoreKitManager",
			Methods: []*model.Method{
				{
					Name:       "refresh",
					ReturnType: "void",
					Parameters: []*model.Parameter{
						{Index: 0, Name: "callback", Type: "Callable", DefaultValue: "Callable()", HasDefault: true},
					},
				},
			},
		},
	}}
	sigs := callbacks.NewFile()
	sigs.Callbacks["StoreKitManager.refresh"] = &callbacks.Signature{
		Parameters: []callbacks.Parameter{{Name: "success", Type: "bool"}},
	}

	out, err := newTestCodegen(api, Config{Signatures: sigs}).Generate()
	if err != nil {
		t.Fatal(err)
	}
	got := string(out.Files.get("StoreKit/StoreKitManager.cs"))
	for _, want := range []string{
		"public void Refresh(Action<bool>? callback = null)",
		"var callbackCallable = callback == null ? default : Callable.From((Variant arg0) => callback(arg0.AsBool()));",
		"_instance.Call(ApplePluginStringNames.Refresh, callbackCallable);",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestFilter(t *testing.T) {
	api := &model.API{Classes: []*model.Class{
		{Name: "AVAudioSession", Constants: []*model.Constant{{Name: "MODE_A", Value: "0", Enum: "Mode"}}},
		{Name: "GKPlayer", Constants: []*model.Constant{{Name: "KIND_A", Value: "0", Enum: "Kind"}}},
	}}

	out, err := newTestCodegen(api, Config{Filter: map[string]bool{"GKPlayer": true}}).Generate()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out.Files.m["AVFoundation/AVAudioSession.cs"]; ok {
		t.Error("filtered class was generated")
	}
	if out.Classes != 1 {
		t.Errorf("Classes = %d, want 1", out.Classes)
	}
	enums := string(out.Files.get("Shared/Enums.cs"))
	if strings.Contains(enums, "AVAudioSessionMode") || !strings.Contains(enums, "public enum GKPlayerKind") {
		t.Errorf("unexpected enums:\n%s", enums)
	}
}

func TestParentOutsideFilter(t *testing.T) {
	api := &model.API{Classes: []*model.Class{
		{Name: "GKPlayer"},
		{Name: "GKLocalPlayer", Inherits: "GKPlayer"},
	}}

	out, err := newTestCodegen(api, Config{Filter: map[string]bool{"GKLocalPlayer": true}}).Generate()
	if err != nil {
		t.Fatal(err)
	}
	got := string(out.Files.get("GameCenter/GKLocalPlayer.cs"))
	if strings.Contains(got, ": GKPlayer") {
		t.Errorf("class derives from a parent that is not generated:\n%s", got)
	}
	if !strings.Contains(got, "protected readonly GodotObject _instance;") {
		t.Errorf("root class is missing _instance:\n%s", got)
	}
}

func TestBitfieldEnum(t *testing.T) {
	api := &model.API{Classes: []*model.Class{
		{
			Name: "AVAudioSession",
			Constants: []*model.Constant{
				{Name: "OPTION_MIX", Value: "1", Enum: "Option", IsBitfield: true},
				{Name: "OPTION_DUCK", Value: "2", Enum: "Option", IsBitfield: true},
				{Name: "OPTION_DUCK_OTHERS", Value: "4", Enum: "Option", IsBitfield: true},
			},
		},
	}}

	out, err := newTestCodegen(api, Config{}).Generate()
	if err != nil {
		t.Fatal(err)
	}
	got := string(out.Files.get("Shared/Enums.cs"))
	for _, want := range []string{
		"[Flags]\npublic enum AVAudioSessionOption : long",
		"    Mix = 1,",
		"    Duck = 2,",
		"    DuckOthers = 4,",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestStringNamesDeduplicated(t *testing.T) {
	api := &model.API{Classes: []*model.Class{
		{Name: "GKAchievement", Methods: []*model.Method{{Name: "reset", ReturnType: "void"}}},
		{Name: "GKLeaderboard", Methods: []*model.Method{{Name: "reset", ReturnType: "void"}}},
	}}

	out, err := newTestCodegen(api, Config{}).Generate()
	if err != nil {
		t.Fatal(err)
	}
	got := string(out.Files.get("Shared/ApplePluginStringNames.cs"))
	if n := strings.Count(got, `new("reset")`); n != 1 {
		t.Errorf("reset declared %d times:\n%s", n, got)
	}
	if strings.Contains(got, "#region GKLeaderboard") {
		t.Errorf("empty region emitted:\n%s", got)
	}
	board := string(out.Files.get("GameCenter/GKLeaderboard.cs"))
	if !strings.Contains(board, "_instance.Call(ApplePluginStringNames.Reset);") {
		t.Errorf("shared name not used:\n%s", board)
	}
}

func TestDefaultLiteral(t *testing.T) {
	api := &model.API{Classes: []*model.Class{
		{Name: "GKAccessPoint", Constants: []*model.Constant{{Name: "LOCATION_TOP", Value: "0", Enum: "Location"}}},
	}}
	g := newTestCodegen(api, Config{})

	tests := []struct {
		name   string
		param  *model.Parameter
		want   string
		wantOK bool
	}{
		{name: "no default", param: &model.Parameter{Type: "int"}},
		{name: "bool", param: &model.Parameter{Type: "bool", DefaultValue: "true", HasDefault: true}, want: "true", wantOK: true},
		{name: "int", param: &model.Parameter{Type: "int", DefaultValue: "-3", HasDefault: true}, want: "-3", wantOK: true},
		{name: "enum", param: &model.Parameter{Type: "int", Enum: "GKAccessPoint.Location", DefaultValue: "0", HasDefault: true}, want: "(GKAccessPointLocation)0", wantOK: true},
		{name: "negative enum", param: &model.Parameter{Type: "int", Enum: "GKAccessPoint.Location", DefaultValue: "-1", HasDefault: true}, want: "(GKAccessPointLocation)(-1)", wantOK: true},
		{name: "float", param: &model.Parameter{Type: "float", DefaultValue: "0.5", HasDefault: true}, want: "0.5", wantOK: true},
		{name: "float integral", param: &model.Parameter{Type: "float", DefaultValue: "2", HasDefault: true}, want: "2.0", wantOK: true},
		{name: "string", param: &model.Parameter{Type: "String", DefaultValue: `"abc"`, HasDefault: true}, want: `"abc"`, wantOK: true},
		{name: "variant null", param: &model.Parameter{Type: "Variant", DefaultValue: "null", HasDefault: true}, want: "default", wantOK: true},
		{name: "object null", param: &model.Parameter{Type: "GKPlayer", DefaultValue: "null", HasDefault: true}},
		{name: "vector", param: &model.Parameter{Type: "Vector2", DefaultValue: "Vector2(0, 0)", HasDefault: true}},
		{name: "bad int", param: &model.Parameter{Type: "int", DefaultValue: "x", HasDefault: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.defaultLiteral(tt.param)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("defaultLiteral() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMemberNames(t *testing.T) {
	m := newMemberNames("GKMatch", "Instance")

	tests := []struct {
		base, suffix, want string
	}{
		{base: "Players", suffix: "Value", want: "Players"},
		{base: "Players", suffix: "Event", want: "PlayersEvent"},
		{base: "Players", suffix: "Event", want: "PlayersEvent2"},
		{base: "GKMatch", suffix: "Value", want: "GKMatchValue"},
		{base: "Instance", suffix: "Value", want: "InstanceValue"},
		{base: "2dMode", suffix: "Value", want: "_2dMode"},
	}
	for _, tt := range tests {
		if got := m.name(tt.base, tt.suffix); got != tt.want {
			t.Errorf("name(%q, %q) = %q, want %q", tt.base, tt.suffix, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	api := &model.API{}
	tests := []struct {
		name string
		cfg  Config
		root string
	}{
		{name: "bad string names class", cfg: Config{StringNamesClass: "Bad Name"}},
		{name: "bad factory class", cfg: Config{FactoryClass: "1Factory"}},
		{name: "bad root", root: "Godot..Plugins"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(api, typemap.New(typemap.Options{Root: tt.root}), tt.cfg)
			if _, err := g.Generate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestProvenanceHeader checks that provenance only changes the header and
// that repeated runs are byte-identical.
func TestProvenanceHeader(t *testing.T) {
	for _, tc := range testutil.LoadTestCases(t, "testdata") {
		t.Run(tc.Name, func(t *testing.T) {
			plain, err := runCodegen(tc)
			if err != nil {
				t.Fatal(err)
			}
			again, err := runCodegen(tc)
			if err != nil {
				t.Fatal(err)
			}

			cfg := caseConfig(tc)
			cfg.Source = "https://example.com/plugin@main"
			cfg.Ref = "main"
			cfg.CommitHash = "0123456789abcdef0123456789abcdef01234567"
			stampedFiles, err := runCodegenWith(tc, cfg)
			if err != nil {
				t.Fatal(err)
			}

			for name, content := range plain {
				if string(again[name]) != string(content) {
					t.Errorf("%s differs between runs", name)
				}
				stamped, ok := stampedFiles[name]
				if !ok {
					continue
				}
				if !strings.Contains(string(stamped), "// Commit: 0123456789abcdef0123456789abcdef01234567\n") {
					t.Errorf("%s: commit missing from header", name)
				}
				if diff := cmp.Diff(string(testutil.StripHeader(content)), string(testutil.StripHeader(stamped))); diff != "" {
					t.Errorf("%s: body changed with provenance (-plain +stamped):\n%s", name, diff)
				}
			}
		})
	}
}
