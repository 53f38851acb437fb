package wld

import (
	"errors"
	"testing"
)

func TestLimits_WithDefaults(t *testing.T) {
	l := (Limits{}).withDefaults()
	if l.MaxFragments == 0 || l.MaxFragmentSize == 0 || l.MaxStringPoolSize == 0 {
		t.Fatal("expected defaults for zero fields")
	}

	custom := (Limits{MaxFragments: 7}).withDefaults()
	if custom.MaxFragments != 7 {
		t.Fatalf("expected custom MaxFragments, got %d", custom.MaxFragments)
	}
	if custom.MaxFragmentSize != defaultLimits().MaxFragmentSize {
		t.Fatal("unset fields must still default")
	}
}

func TestLimits_Validate(t *testing.T) {
	if err := defaultLimits().validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	err := (Limits{MaxFragmentSize: -1}).validate()
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}
