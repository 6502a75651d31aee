package walker

import "github.com/seitarof/gen-dtl/internal/descriptor"

// Collector accumulates the instances an InstanceProvider exports. It never
// renders anything.
type Collector struct {
	instances []descriptor.GlobalInstance
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// AddInstance records one binding. typ is cloned.
func (c *Collector) AddInstance(name string, typ descriptor.Parts, external bool) {
	c.instances = append(c.instances, descriptor.GlobalInstance{
		Name:     name,
		Type:     typ.Clone(),
		External: external,
	})
}

// Instances returns the collected bindings in the order they were added.
func (c *Collector) Instances() []descriptor.GlobalInstance {
	return c.instances
}
