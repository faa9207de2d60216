package fixture

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Group struct {
	fixtures map[string]*Fixture
}

// Create a new Group object with reasonable defaults for real usage.
func NewGroup() *Group {
	return &Group{
		fixtures: make(map[string]*Fixture),
	}
}

func (fg *Group) GetFixture(name string) (*Fixture, error) {
	if fixture, found := fg.fixtures[name]; found {
		return fixture, nil
	}
	return nil, fmt.Errorf("the fixture group does not contain a fixture with the name: %s", name)
}

// AddFixture adds fixture under its name, replacing any fixture with the same name.
func (fg *Group) AddFixture(fixture *Fixture) {
	fg.fixtures[fixture.Name] = fixture
}

// HasFixture returns true if a fixture with the given name is in the group
func (fg *Group) HasFixture(name string) bool {
	_, found := fg.fixtures[name]
	return found
}

// Count returns the number of fixtures in the group
func (fg *Group) Count() int {
	return len(fg.fixtures)
}

// Names returns the fixture names in sorted order.
func (fg *Group) Names() []string {
	names := maps.Keys(fg.fixtures)
	slices.Sort(names)
	return names
}

// Fixtures returns the fixtures ordered by name.
func (fg *Group) Fixtures() []*Fixture {
	out := make([]*Fixture, 0, len(fg.fixtures))
	for _, name := range fg.Names() {
		out = append(out, fg.fixtures[name])
	}
	return out
}
