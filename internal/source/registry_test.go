package source

import (
	"testing"

	"sol-watchtower/internal/domain"
)

func TestRegistryOrdersByPriority(t *testing.T) {
	reg := NewRegistry([]domain.Source{
		{Name: "backup-2", Class: domain.ClassLiquidity, Priority: 2},
		{Name: "primary", Class: domain.ClassLiquidity, Priority: 0},
		{Name: "backup-1", Class: domain.ClassLiquidity, Priority: 1},
	})

	chain := reg.Chain(domain.ClassLiquidity)
	if len(chain) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(chain))
	}
	if chain[0].Name != "primary" || chain[1].Name != "backup-1" || chain[2].Name != "backup-2" {
		t.Fatalf("unexpected order: %+v", chain)
	}

	primary, ok := reg.Primary(domain.ClassLiquidity)
	if !ok || primary.Name != "primary" {
		t.Fatalf("unexpected primary: %+v", primary)
	}
}

func TestRegistryChainIsACopy(t *testing.T) {
	reg := NewRegistry([]domain.Source{
		{Name: "a", Class: domain.ClassLiquidity, Priority: 0},
	})
	chain := reg.Chain(domain.ClassLiquidity)
	chain[0].Name = "mutated"

	again := reg.Chain(domain.ClassLiquidity)
	if again[0].Name != "a" {
		t.Fatal("registry must not expose internal state")
	}
}

func TestRegistryUnknownClass(t *testing.T) {
	reg := NewRegistry(nil)
	if reg.Chain(domain.ClassAuxLiquidity) != nil {
		t.Fatal("expected nil chain for unknown class")
	}
	if _, ok := reg.Primary(domain.ClassAuxLiquidity); ok {
		t.Fatal("expected no primary for unknown class")
	}
	if reg.Len(domain.ClassAuxLiquidity) != 0 {
		t.Fatal("expected zero length")
	}
}
