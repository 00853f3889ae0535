package diag

import (
	"testing"

	"migralint/internal/symbols"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(MigMissingField, "A", "a")) {
		t.Fatalf("first add rejected")
	}
	if !bag.Add(NewError(MigMissingField, "B", "b")) {
		t.Fatalf("second add rejected")
	}
	if bag.Add(NewError(MigMissingField, "C", "c")) {
		t.Fatalf("add beyond limit must be rejected")
	}
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d", bag.Len())
	}
}

func TestBagHasErrorsAndWarnings(t *testing.T) {
	bag := NewBag(4)
	bag.Add(New(SevInfo, MigInfo, "A", "i"))
	if bag.HasErrors() || bag.HasWarnings() {
		t.Fatalf("info-only bag must report no errors or warnings")
	}
	bag.Add(New(SevWarning, MigDuplicateVersion, "A", "w"))
	if bag.HasErrors() {
		t.Fatalf("warning is not an error")
	}
	if !bag.HasWarnings() {
		t.Fatalf("expected warnings")
	}
	bag.Add(NewError(MigMissingField, "A", "e"))
	if !bag.HasErrors() {
		t.Fatalf("expected errors")
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(MigMissingField, "A", "a"))
	b := NewBag(1)
	b.Add(NewError(MigInvalidField, "B", "b"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Len() = %d after merge", a.Len())
	}
}

func TestBagSortDeterministic(t *testing.T) {
	bag := NewBag(8)
	bag.Add(NewError(MigMissingField, "B", "m").WithOrigin(symbols.Origin{File: "b.cs", Line: 2}))
	bag.Add(NewError(MigDuplicateVersion, "A", "d").WithOrigin(symbols.Origin{File: "a.cs", Line: 9}))
	bag.Add(NewError(MigInvalidField, "C", "i").WithOrigin(symbols.Origin{File: "a.cs", Line: 1}))
	bag.Sort()

	items := bag.Items()
	if items[0].Class != "C" || items[1].Class != "A" || items[2].Class != "B" {
		t.Fatalf("unexpected order: %q %q %q", items[0].Class, items[1].Class, items[2].Class)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(8)
	d := NewError(MigMissingField, "A", "m").WithField("id").WithOrigin(symbols.Origin{File: "a.cs"})
	bag.Add(d)
	bag.Add(d)
	bag.Add(NewError(MigMissingField, "A", "m").WithField("version").WithOrigin(symbols.Origin{File: "a.cs"}))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d after dedup, want 2", bag.Len())
	}
}

func TestDedupReporterSuppressesRepeats(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})
	d := NewError(MigDuplicateVersion, "A", "dup").WithOrigin(symbols.Origin{File: "a.cs", Line: 3})
	r.Report(d)
	r.Report(d)
	r.Report(NewError(MigDuplicateVersion, "B", "dup"))
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}
}

func TestCodeIDRanges(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{SnapBadSchema, "SNAP1001"},
		{MigMissingAnnotation, "MIG2001"},
		{MigDuplicateVersion, "MIG2004"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Fatalf("ID(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
