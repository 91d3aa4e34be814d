package archway

// Config holds global tunables for the storage engine. None of these
// change observable semantics, only preallocation behavior.
var Config config = config{
	initialColumnCapacity:  8,
	initialRegistrySize:    16,
	initialComponentsGuess: 8,
}

type config struct {
	// initialColumnCapacity is the capacity hint used when a column store
	// allocates its backing slice for the first time.
	initialColumnCapacity int

	// initialRegistrySize is the map size hint for a freshly created
	// archetype registry.
	initialRegistrySize int

	// initialComponentsGuess sizes the component-id registry's backing
	// map and slice when the package is initialized.
	initialComponentsGuess int
}

// SetInitialColumnCapacity configures the capacity hint for new columns.
func (c *config) SetInitialColumnCapacity(n int) {
	c.initialColumnCapacity = n
}

// SetInitialRegistrySize configures the map size hint for new archetype registries.
func (c *config) SetInitialRegistrySize(n int) {
	c.initialRegistrySize = n
}
