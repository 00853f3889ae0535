package main

import (
	"testing"

	"migralint/internal/diag"
)

func TestAdjustWarningsDrops(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevWarning, diag.MigDuplicateVersion, "A", "w"))
	bag.Add(diag.NewError(diag.MigMissingField, "B", "e"))

	out := adjustWarnings(bag, false)
	if out.Len() != 1 || out.Items()[0].Severity != diag.SevError {
		t.Fatalf("items = %v", out.Items())
	}
}

func TestAdjustWarningsPromotes(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevWarning, diag.MigDuplicateVersion, "A", "w"))

	out := adjustWarnings(bag, true)
	if out.Len() != 1 || out.Items()[0].Severity != diag.SevError {
		t.Fatalf("warning not promoted: %v", out.Items())
	}
	if !out.HasErrors() {
		t.Fatalf("promoted bag must report errors")
	}
}

func TestColorEnabledExplicitModes(t *testing.T) {
	if !colorEnabled("on", nil) {
		t.Fatalf("mode on must force color")
	}
	if colorEnabled("off", nil) {
		t.Fatalf("mode off must disable color")
	}
}
