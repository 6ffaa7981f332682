package critic

import "sort"

// registry maps critic names to constructors. Adding a critic means
// adding an entry here; the supervisor never changes.
var registry = map[string]func() Critic{
	"correctness":  func() Critic { return &Correctness{} },
	"completeness": func() Critic { return &Completeness{} },
	// security, architecture, delegation land here in later phases
}

// Lookup returns the critic registered under name.
func Lookup(name string) (Critic, bool) {
	factory, ok := registry[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Names returns the registered critic names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
