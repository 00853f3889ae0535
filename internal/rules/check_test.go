package rules

import (
	"fmt"
	"sync"
	"testing"

	"migralint/internal/diag"
	"migralint/internal/registry"
	"migralint/internal/symbols"
)

func migratable(name string, args map[string]symbols.Value) symbols.Class {
	return symbols.Class{
		Name:         name,
		Capabilities: []string{DefaultCapability},
		Annotations:  []symbols.Annotation{{TypeName: DefaultAnnotation, Args: args}},
	}
}

func checkOne(t *testing.T, class symbols.Class, reg *registry.VersionRegistry) (Outcome, []diag.Diagnostic) {
	t.Helper()
	bag := diag.NewBag(8)
	outcome := Check(class, Options{
		Reporter: diag.BagReporter{Bag: bag},
		Registry: reg,
		Config:   DefaultConfig(),
	})
	return outcome, bag.Items()
}

func wantSingle(t *testing.T, items []diag.Diagnostic, code diag.Code, class, field string) diag.Diagnostic {
	t.Helper()
	if len(items) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(items))
	}
	d := items[0]
	if d.Code != code {
		t.Fatalf("code = %v, want %v", d.Code, code)
	}
	if d.Class != class {
		t.Fatalf("class = %q, want %q", d.Class, class)
	}
	if d.Field != field {
		t.Fatalf("field = %q, want %q", d.Field, field)
	}
	return d
}

func TestCheckOutOfScopeEmitsNothing(t *testing.T) {
	class := symbols.Class{Name: "Helper", Capabilities: []string{"IDisposable"}}
	outcome, items := checkOne(t, class, registry.New())
	if outcome != OutcomeSkipped {
		t.Fatalf("outcome = %v, want skipped", outcome)
	}
	if len(items) != 0 {
		t.Fatalf("expected no diagnostics, got %d", len(items))
	}
}

func TestCheckMissingAnnotation(t *testing.T) {
	class := symbols.Class{Name: "Player", Capabilities: []string{DefaultCapability}}
	outcome, items := checkOne(t, class, registry.New())
	if outcome != OutcomeFlagged {
		t.Fatalf("outcome = %v, want flagged", outcome)
	}
	d := wantSingle(t, items, diag.MigMissingAnnotation, "Player", "")
	want := "Class 'Player' needs to have the serialized-id annotation."
	if d.Message != want {
		t.Fatalf("message = %q, want %q", d.Message, want)
	}
}

func TestCheckMissingID(t *testing.T) {
	class := migratable("Player", map[string]symbols.Value{
		FieldVersion: symbols.IntValue(1),
	})
	_, items := checkOne(t, class, registry.New())
	d := wantSingle(t, items, diag.MigMissingField, "Player", FieldID)
	want := "Class 'Player' has missing annotation parameter id."
	if d.Message != want {
		t.Fatalf("message = %q, want %q", d.Message, want)
	}
}

func TestCheckEmptyIDPrecedesMissingVersion(t *testing.T) {
	// id invalid and version absent: the id check fires first
	class := migratable("Player", map[string]symbols.Value{
		FieldID: symbols.StringValue(""),
	})
	_, items := checkOne(t, class, registry.New())
	d := wantSingle(t, items, diag.MigInvalidField, "Player", FieldID)
	want := "Class 'Player' has incorrect annotation parameter id."
	if d.Message != want {
		t.Fatalf("message = %q, want %q", d.Message, want)
	}
}

func TestCheckMissingKindIDTreatedAsEmpty(t *testing.T) {
	// permissive coercion: a present key whose value stringifies to ""
	// behaves exactly like an empty string
	class := migratable("Player", map[string]symbols.Value{
		FieldID:      symbols.MissingValue(),
		FieldVersion: symbols.IntValue(0),
	})
	_, items := checkOne(t, class, registry.New())
	wantSingle(t, items, diag.MigInvalidField, "Player", FieldID)
}

func TestCheckIntIDAccepted(t *testing.T) {
	// permissive coercion: an integer id stringifies to non-empty text
	class := migratable("Player", map[string]symbols.Value{
		FieldID:      symbols.IntValue(12),
		FieldVersion: symbols.IntValue(0),
	})
	outcome, items := checkOne(t, class, registry.New())
	if outcome != OutcomePassed || len(items) != 0 {
		t.Fatalf("outcome = %v, diags = %d, want pass", outcome, len(items))
	}
}

func TestCheckMissingVersion(t *testing.T) {
	class := migratable("Player", map[string]symbols.Value{
		FieldID: symbols.StringValue("player"),
	})
	_, items := checkOne(t, class, registry.New())
	d := wantSingle(t, items, diag.MigMissingField, "Player", FieldVersion)
	want := "Class 'Player' has missing annotation parameter version."
	if d.Message != want {
		t.Fatalf("message = %q, want %q", d.Message, want)
	}
}

func TestCheckNegativeVersion(t *testing.T) {
	class := migratable("Player", map[string]symbols.Value{
		FieldID:      symbols.StringValue("player"),
		FieldVersion: symbols.IntValue(-1),
	})
	_, items := checkOne(t, class, registry.New())
	wantSingle(t, items, diag.MigInvalidField, "Player", FieldVersion)
}

func TestCheckZeroVersionPasses(t *testing.T) {
	reg := registry.New()
	class := migratable("Player", map[string]symbols.Value{
		FieldID:      symbols.StringValue("player"),
		FieldVersion: symbols.IntValue(0),
	})
	outcome, items := checkOne(t, class, reg)
	if outcome != OutcomePassed {
		t.Fatalf("outcome = %v, want passed", outcome)
	}
	if len(items) != 0 {
		t.Fatalf("expected no diagnostics, got %v", items)
	}
	if got := reg.Versions("player"); len(got) != 1 || got[0] != 0 {
		t.Fatalf("registry = %v, want [0]", got)
	}
}

func TestCheckDuplicateVersionSecondClassFlagged(t *testing.T) {
	reg := registry.New()
	args := map[string]symbols.Value{
		FieldID:      symbols.StringValue("player"),
		FieldVersion: symbols.IntValue(0),
	}

	outcome, _ := checkOne(t, migratable("Player", args), reg)
	if outcome != OutcomePassed {
		t.Fatalf("first class outcome = %v, want passed", outcome)
	}

	outcome, items := checkOne(t, migratable("PlayerV2", args), reg)
	if outcome != OutcomeFlagged {
		t.Fatalf("second class outcome = %v, want flagged", outcome)
	}
	d := wantSingle(t, items, diag.MigDuplicateVersion, "PlayerV2", "")
	want := "Class 'PlayerV2' has duplicate version for the serialized-id annotation."
	if d.Message != want {
		t.Fatalf("message = %q, want %q", d.Message, want)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("expected a note naming the first claimant, got %v", d.Notes)
	}

	// the rejection is idempotent: the registry still holds one entry
	if got := reg.Versions("player"); len(got) != 1 {
		t.Fatalf("registry = %v, want single entry", got)
	}
}

func TestCheckSameClassNameDifferentPairs(t *testing.T) {
	reg := registry.New()
	one := migratable("Player", map[string]symbols.Value{
		FieldID:      symbols.StringValue("player"),
		FieldVersion: symbols.IntValue(0),
	})
	two := migratable("Player", map[string]symbols.Value{
		FieldID:      symbols.StringValue("player"),
		FieldVersion: symbols.IntValue(1),
	})
	if outcome, _ := checkOne(t, one, reg); outcome != OutcomePassed {
		t.Fatalf("version 0 should pass")
	}
	if outcome, _ := checkOne(t, two, reg); outcome != OutcomePassed {
		t.Fatalf("version 1 should pass")
	}
}

func TestCheckDeterministicWithFreshRegistry(t *testing.T) {
	class := migratable("Player", map[string]symbols.Value{
		FieldID:      symbols.StringValue("player"),
		FieldVersion: symbols.IntValue(3),
	})
	for i := 0; i < 5; i++ {
		outcome, items := checkOne(t, class, registry.New())
		if outcome != OutcomePassed || len(items) != 0 {
			t.Fatalf("run %d: outcome = %v, diags = %d", i, outcome, len(items))
		}
	}
}

func TestCheckOrderIndependence(t *testing.T) {
	classes := make([]symbols.Class, 0, 8)
	for i := 0; i < 8; i++ {
		classes = append(classes, migratable(fmt.Sprintf("C%d", i), map[string]symbols.Value{
			FieldID:      symbols.StringValue(fmt.Sprintf("id%d", i%4)),
			FieldVersion: symbols.IntValue(int64(i / 4)),
		}))
	}

	orders := [][]int{
		{0, 1, 2, 3, 4, 5, 6, 7},
		{7, 6, 5, 4, 3, 2, 1, 0},
		{3, 7, 0, 4, 1, 5, 2, 6},
	}
	for _, order := range orders {
		reg := registry.New()
		bag := diag.NewBag(16)
		opts := Options{Reporter: diag.BagReporter{Bag: bag}, Registry: reg, Config: DefaultConfig()}
		passed := 0
		for _, idx := range order {
			if Check(classes[idx], opts) == OutcomePassed {
				passed++
			}
		}
		if passed != len(classes) {
			t.Fatalf("order %v: %d of %d distinct pairs passed", order, passed, len(classes))
		}
	}
}

func TestCheckConcurrentDuplicateExactlyOneWinner(t *testing.T) {
	const workers = 16
	reg := registry.New()

	var wg sync.WaitGroup
	outcomes := make([]Outcome, workers)
	bags := make([]*diag.Bag, workers)
	for i := 0; i < workers; i++ {
		bags[i] = diag.NewBag(4)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			class := migratable(fmt.Sprintf("Player%d", i), map[string]symbols.Value{
				FieldID:      symbols.StringValue("Foo"),
				FieldVersion: symbols.IntValue(3),
			})
			outcomes[i] = Check(class, Options{
				Reporter: diag.BagReporter{Bag: bags[i]},
				Registry: reg,
				Config:   DefaultConfig(),
			})
		}(i)
	}
	wg.Wait()

	passed, flagged := 0, 0
	for i := 0; i < workers; i++ {
		switch outcomes[i] {
		case OutcomePassed:
			passed++
			if bags[i].Len() != 0 {
				t.Fatalf("winner %d has diagnostics", i)
			}
		case OutcomeFlagged:
			flagged++
			if bags[i].Len() != 1 || bags[i].Items()[0].Code != diag.MigDuplicateVersion {
				t.Fatalf("loser %d: unexpected diagnostics %v", i, bags[i].Items())
			}
		}
	}
	if passed != 1 || flagged != workers-1 {
		t.Fatalf("passed = %d, flagged = %d, want exactly one winner", passed, flagged)
	}
}

func TestCheckUnicodeNormalizedIDsCollide(t *testing.T) {
	reg := registry.New()
	// "é" composed (U+00E9) vs decomposed (U+0065 U+0301)
	composed := migratable("A", map[string]symbols.Value{
		FieldID:      symbols.StringValue("café"),
		FieldVersion: symbols.IntValue(1),
	})
	decomposed := migratable("B", map[string]symbols.Value{
		FieldID:      symbols.StringValue("café"),
		FieldVersion: symbols.IntValue(1),
	})
	if outcome, _ := checkOne(t, composed, reg); outcome != OutcomePassed {
		t.Fatalf("composed form should pass")
	}
	outcome, items := checkOne(t, decomposed, reg)
	if outcome != OutcomeFlagged {
		t.Fatalf("decomposed form of the same identifier must collide")
	}
	wantSingle(t, items, diag.MigDuplicateVersion, "B", "")
}

func TestCheckSeverityOverride(t *testing.T) {
	reg := registry.New()
	args := map[string]symbols.Value{
		FieldID:      symbols.StringValue("player"),
		FieldVersion: symbols.IntValue(0),
	}
	cfg := DefaultConfig()
	cfg.Severities = map[diag.Code]diag.Severity{diag.MigDuplicateVersion: diag.SevWarning}

	bag := diag.NewBag(4)
	opts := Options{Reporter: diag.BagReporter{Bag: bag}, Registry: reg, Config: cfg}
	Check(migratable("Player", args), opts)
	Check(migratable("PlayerV2", args), opts)

	items := bag.Items()
	if len(items) != 1 || items[0].Severity != diag.SevWarning {
		t.Fatalf("expected one warning, got %v", items)
	}
}

func TestCheckAllCounts(t *testing.T) {
	classes := []symbols.Class{
		{Name: "Helper"},
		{Name: "NoAnn", Capabilities: []string{DefaultCapability}},
		migratable("Player", map[string]symbols.Value{
			FieldID:      symbols.StringValue("player"),
			FieldVersion: symbols.IntValue(0),
		}),
	}
	bag := diag.NewBag(8)
	passed, flagged, skipped := CheckAll(classes, Options{
		Reporter: diag.BagReporter{Bag: bag},
		Registry: registry.New(),
		Config:   DefaultConfig(),
	})
	if passed != 1 || flagged != 1 || skipped != 1 {
		t.Fatalf("counts = %d/%d/%d, want 1/1/1", passed, flagged, skipped)
	}
}
