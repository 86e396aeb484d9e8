package blueprint

import (
	"errors"
	"strings"
	"testing"
)

func TestNew_DefaultDomains(t *testing.T) {
	r, err := New(DefaultDomains())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if r.Len() != 6 {
		t.Errorf("Len() = %d, want 6", r.Len())
	}
	if r.MinItemsTotal() != 12 {
		t.Errorf("MinItemsTotal() = %d, want 12", r.MinItemsTotal())
	}
	if !r.Has(TagWorkingMemory) {
		t.Errorf("Has(%q) = false, want true", TagWorkingMemory)
	}
}

func TestNew_DuplicateTag(t *testing.T) {
	_, err := New([]Domain{
		{Tag: "a", TargetShare: 0.5},
		{Tag: "a", TargetShare: 0.5},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate domain tag") {
		t.Errorf("New() error = %v, want duplicate tag error", err)
	}
}

func TestNew_SharesMustSumToOne(t *testing.T) {
	_, err := New([]Domain{
		{Tag: "a", TargetShare: 0.5},
		{Tag: "b", TargetShare: 0.3},
	})
	if err == nil || !strings.Contains(err.Error(), "sum to 1.0") {
		t.Errorf("New() error = %v, want share-sum error", err)
	}
}

func TestNew_NegativeShare(t *testing.T) {
	_, err := New([]Domain{
		{Tag: "a", TargetShare: -0.2},
		{Tag: "b", TargetShare: 1.2},
	})
	if err == nil || !strings.Contains(err.Error(), "TargetShare must be >= 0") {
		t.Errorf("New() error = %v, want negative share error", err)
	}
}

func TestNew_CollectsAllProblems(t *testing.T) {
	_, err := New([]Domain{
		{Tag: "", TargetShare: 0.4},
		{Tag: "b", TargetShare: -0.1, MinItems: -1},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"empty tag", "MinItems must be >= 0"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestGet_Unknown(t *testing.T) {
	r := MustDefault()
	_, err := r.Get("astral-projection")
	var ude *UnknownDomainError
	if !errors.As(err, &ude) {
		t.Fatalf("Get() error type = %T, want *UnknownDomainError", err)
	}
	if ude.Tag != "astral-projection" {
		t.Errorf("Tag = %q, want astral-projection", ude.Tag)
	}
}

func TestTags_Deterministic(t *testing.T) {
	r := MustDefault()
	tags := r.Tags()
	for i := 1; i < len(tags); i++ {
		if tags[i-1] >= tags[i] {
			t.Fatalf("Tags() not sorted: %v", tags)
		}
	}
}

func TestZeroCoverage(t *testing.T) {
	r := MustDefault()
	cov := r.ZeroCoverage()
	if len(cov) != r.Len() {
		t.Fatalf("ZeroCoverage len = %d, want %d", len(cov), r.Len())
	}
	for tag, n := range cov {
		if n != 0 {
			t.Errorf("coverage[%q] = %d, want 0", tag, n)
		}
	}
}
