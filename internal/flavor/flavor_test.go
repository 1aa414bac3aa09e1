package flavor

import (
	"errors"
	"testing"

	"github.com/vmspawn/vmspawn/internal/api"
	"github.com/vmspawn/vmspawn/internal/domain"
)

func TestFind(t *testing.T) {
	f, err := Find("tor-1024")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if f.Memory != 1024 {
		t.Errorf("expected 1024 MB, got %d", f.Memory)
	}
	if f.PriceCents != 28 {
		t.Errorf("expected 28 cents/day, got %d", f.PriceCents)
	}
	if f.IPv4 != api.IPTor || f.IPv6 != api.IPTor {
		t.Errorf("expected tor connectivity, got ipv4=%s ipv6=%s", f.IPv4, f.IPv6)
	}
}

func TestFindUnknown(t *testing.T) {
	_, err := Find("tor-9999")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAllSorted(t *testing.T) {
	flavors := All()
	if len(flavors) == 0 {
		t.Fatal("expected a non-empty catalog")
	}
	for i := 1; i < len(flavors); i++ {
		if flavors[i-1].Slug >= flavors[i].Slug {
			t.Errorf("catalog not sorted: %s before %s", flavors[i-1].Slug, flavors[i].Slug)
		}
	}
}
