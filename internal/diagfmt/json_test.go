package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"migralint/internal/diag"
	"migralint/internal/symbols"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.MigMissingField, "Enemy", "Class 'Enemy' has missing annotation parameter id.").
		WithField("id").
		WithOrigin(symbols.Origin{File: "Enemy.cs", Line: 9, Col: 1}))
	bag.Add(diag.NewError(diag.MigDuplicateVersion, "PlayerV2", "Class 'PlayerV2' has duplicate version for the serialized-id annotation.").
		WithOrigin(symbols.Origin{File: "PlayerV2.cs", Line: 4, Col: 2}).
		WithNote(symbols.Origin{}, "version 0 of 'player' first claimed by class 'Player'"))
	bag.Sort()
	return bag
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{IncludeNotes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}

	first := out.Diagnostics[0]
	if first.Code != "MIG2002" || first.Class != "Enemy" || first.Field != "id" {
		t.Fatalf("first = %+v", first)
	}
	if first.Location == nil || first.Location.File != "Enemy.cs" {
		t.Fatalf("location = %+v", first.Location)
	}

	second := out.Diagnostics[1]
	if len(second.Notes) != 1 {
		t.Fatalf("notes = %+v", second.Notes)
	}
	if second.Notes[0].Location != nil {
		t.Fatalf("zero origin must be omitted, got %+v", second.Notes[0].Location)
	}
}

func TestJSONEmptyBag(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, diag.NewBag(1), JSONOpts{}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 0 || out.Diagnostics == nil {
		t.Fatalf("empty bag must serialize an empty array, got %s", buf.String())
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{Max: 1}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, shown = %d", out.Count, len(out.Diagnostics))
	}
}

func TestPrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), PrettyOpts{ShowNotes: true})
	out := buf.String()

	if !strings.Contains(out, "Enemy.cs:9:1: ERROR MIG2002: Class 'Enemy' has missing annotation parameter id.") {
		t.Fatalf("missing first line in:\n%s", out)
	}
	if !strings.Contains(out, "note: version 0 of 'player' first claimed by class 'Player'") {
		t.Fatalf("missing note in:\n%s", out)
	}
}

func TestPrettyWithoutNotes(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes shown without opt-in:\n%s", buf.String())
	}
}

func TestPrettyMaxTruncates(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), PrettyOpts{Max: 1})
	out := buf.String()
	if !strings.Contains(out, "... and 1 more") {
		t.Fatalf("missing truncation marker:\n%s", out)
	}
}

func TestSarifOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Sarif(&buf, sampleBag(), SarifRunMeta{ToolName: "migralint", ToolVersion: "0.1.0"}); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("log = %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "migralint" {
		t.Fatalf("tool = %+v", run.Tool)
	}
	if len(run.Results) != 2 {
		t.Fatalf("results = %d", len(run.Results))
	}
	if run.Results[0].Level != "error" {
		t.Fatalf("level = %q", run.Results[0].Level)
	}
	if len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("rules = %+v", run.Tool.Driver.Rules)
	}
}
