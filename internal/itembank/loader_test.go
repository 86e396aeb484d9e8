package itembank

import (
	"errors"
	"strings"
	"testing"

	"github.com/gioe/quotient/internal/blueprint"
)

const validBank = `{
	"name": "mini",
	"items": [
		{"id": "pr-1", "discrimination": 1.2, "difficulty": -0.5, "domain": "pattern-reasoning"},
		{"id": "wm-1", "discrimination": 0.9, "difficulty": 1.1, "domain": "working-memory"}
	]
}`

func TestParse_ValidBank(t *testing.T) {
	bank, err := Parse([]byte(validBank), blueprint.MustDefault())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if bank.Name != "mini" {
		t.Errorf("Name = %q, want mini", bank.Name)
	}
	if len(bank.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(bank.Items))
	}
	if got := bank.Items[0].Discrimination(); got != 1.2 {
		t.Errorf("Discrimination() = %v, want 1.2", got)
	}
	if got := bank.Items[1].Domain(); got != "working-memory" {
		t.Errorf("Domain() = %q, want working-memory", got)
	}
}

func TestParse_RejectsNonPositiveDiscrimination(t *testing.T) {
	raw := `{"items": [{"id": "x", "discrimination": 0, "difficulty": 0, "domain": "working-memory"}]}`
	_, err := Parse([]byte(raw), blueprint.MustDefault())
	if err == nil {
		t.Fatal("expected schema validation error for discrimination = 0")
	}
}

func TestParse_RejectsUnknownDomain(t *testing.T) {
	raw := `{"items": [{"id": "x", "discrimination": 1.0, "difficulty": 0, "domain": "tarot"}]}`
	_, err := Parse([]byte(raw), blueprint.MustDefault())
	var ude *blueprint.UnknownDomainError
	if !errors.As(err, &ude) {
		t.Fatalf("Parse() error = %v, want *UnknownDomainError", err)
	}
}

func TestParse_RejectsDuplicateIDs(t *testing.T) {
	raw := `{"items": [
		{"id": "x", "discrimination": 1.0, "difficulty": 0, "domain": "working-memory"},
		{"id": "x", "discrimination": 1.1, "difficulty": 0.5, "domain": "working-memory"}
	]}`
	_, err := Parse([]byte(raw), blueprint.MustDefault())
	if err == nil || !strings.Contains(err.Error(), "duplicate item id") {
		t.Errorf("Parse() error = %v, want duplicate id error", err)
	}
}

func TestParse_RejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"items": [`), blueprint.MustDefault())
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestDemoBank(t *testing.T) {
	reg := blueprint.MustDefault()
	bank := DemoBank(reg, 10)
	if want := reg.Len() * 10; len(bank.Items) != want {
		t.Fatalf("len(Items) = %d, want %d", len(bank.Items), want)
	}

	perDomain := make(map[string]int)
	ids := make(map[string]bool)
	for _, it := range bank.Items {
		perDomain[it.Domain()]++
		if ids[it.ID()] {
			t.Fatalf("duplicate demo item id %q", it.ID())
		}
		ids[it.ID()] = true
		if it.Discrimination() <= 0 {
			t.Errorf("item %q discrimination = %v, want > 0", it.ID(), it.Discrimination())
		}
	}
	for tag, n := range perDomain {
		if n != 10 {
			t.Errorf("domain %q has %d items, want 10", tag, n)
		}
	}
}
