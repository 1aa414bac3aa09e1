// Package flavor holds the catalog of predefined machine shapes.
package flavor

import (
	"fmt"
	"sort"

	"github.com/vmspawn/vmspawn/internal/api"
	"github.com/vmspawn/vmspawn/internal/domain"
)

// Flavor describes a predefined machine shape and its daily price.
type Flavor struct {
	// Slug uniquely identifies the flavor.
	Slug string
	// Cores is the number of vCPU cores.
	Cores uint
	// Memory in megabytes.
	Memory uint
	// Disk in gigabytes.
	Disk uint
	// PriceCents is the price in USD cents per day.
	PriceCents uint
	// IPv4 and IPv6 connectivity. Tor flavors must be tor on both.
	IPv4 api.IPPolicy
	IPv6 api.IPPolicy
	// Bandwidth in gigabytes per day.
	Bandwidth int64
}

var catalog = map[string]Flavor{
	"tor-1024": {
		Slug:       "tor-1024",
		Cores:      1,
		Memory:     1024,
		Disk:       8,
		PriceCents: 28,
		IPv4:       api.IPTor,
		IPv6:       api.IPTor,
		Bandwidth:  20,
	},
	"tor-2048": {
		Slug:       "tor-2048",
		Cores:      1,
		Memory:     2048,
		Disk:       16,
		PriceCents: 56,
		IPv4:       api.IPTor,
		IPv6:       api.IPTor,
		Bandwidth:  40,
	},
	"tor-3072": {
		Slug:       "tor-3072",
		Cores:      1,
		Memory:     3072,
		Disk:       24,
		PriceCents: 84,
		IPv4:       api.IPTor,
		IPv6:       api.IPTor,
		Bandwidth:  60,
	},
	"tor-4096": {
		Slug:       "tor-4096",
		Cores:      1,
		Memory:     4096,
		Disk:       32,
		PriceCents: 112,
		IPv4:       api.IPTor,
		IPv6:       api.IPTor,
		Bandwidth:  80,
	},
}

// Find looks up a flavor by slug.
func Find(slug string) (Flavor, error) {
	f, ok := catalog[slug]
	if !ok {
		return Flavor{}, fmt.Errorf("%w: unknown flavor %q", domain.ErrNotFound, slug)
	}
	return f, nil
}

// All returns every flavor in the catalog, sorted by slug.
func All() []Flavor {
	flavors := make([]Flavor, 0, len(catalog))
	for _, f := range catalog {
		flavors = append(flavors, f)
	}
	sort.Slice(flavors, func(i, j int) bool {
		return flavors[i].Slug < flavors[j].Slug
	})
	return flavors
}
