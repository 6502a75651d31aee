package descriptor

// TypeBody is implemented by anything that can describe its own shape.
type TypeBody interface {
	TypeBody() TypeGenerator
}

// TypeBodyFunc adapts a function to TypeBody.
type TypeBodyFunc func() TypeGenerator

// TypeBody calls f.
func (f TypeBodyFunc) TypeBody() TypeGenerator { return f() }

// GlobalInstance binds a top-level global name to a type.
type GlobalInstance struct {
	Name string
	Type Parts

	// External qualifies Type with the generated module's name, for types
	// declared inside that module.
	External bool
}

// InstanceCollector accumulates global instances.
type InstanceCollector interface {
	AddInstance(name string, typ Parts, external bool)
}

// InstanceProvider exports zero or more global instances.
type InstanceProvider interface {
	AddInstances(c InstanceCollector) error
}

// InstanceProviderFunc adapts a function to InstanceProvider.
type InstanceProviderFunc func(c InstanceCollector) error

// AddInstances calls f.
func (f InstanceProviderFunc) AddInstances(c InstanceCollector) error { return f(c) }
