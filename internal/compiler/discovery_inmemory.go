package compiler

import (
	"context"
	"fmt"
)

type InMemoryUnit struct {
	Name    string
	Content string
}

// InMemoryDiscovery is a test implementation of Discovery that stores unit
// sources in memory, listed in the order they were given.
type InMemoryDiscovery struct {
	order    []string
	units    map[string]*UnitMetadata
	contents map[string]string
}

// NewInMemoryDiscovery creates a new InMemoryDiscovery instance.
func NewInMemoryDiscovery(units []InMemoryUnit) *InMemoryDiscovery {
	discovery := &InMemoryDiscovery{
		units:    make(map[string]*UnitMetadata),
		contents: make(map[string]string),
	}
	for _, u := range units {
		discovery.order = append(discovery.order, u.Name)
		discovery.units[u.Name] = &UnitMetadata{
			Name:     u.Name,
			FilePath: u.Name + ".graphql",
		}
		discovery.contents[u.Name] = u.Content
	}
	return discovery
}

// ListUnits implements Discovery.
func (d *InMemoryDiscovery) ListUnits(ctx context.Context) ([]*UnitMetadata, error) {
	units := make([]*UnitMetadata, 0, len(d.order))
	for _, name := range d.order {
		units = append(units, d.units[name])
	}
	return units, nil
}

// ReadUnitSource implements Discovery.
func (d *InMemoryDiscovery) ReadUnitSource(ctx context.Context, name string) (string, error) {
	content, exists := d.contents[name]
	if !exists {
		return "", fmt.Errorf("unit %q not found", name)
	}
	return content, nil
}
