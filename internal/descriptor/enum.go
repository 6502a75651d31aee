package descriptor

// Enum describes a Teal enum: a closed set of string literals.
type Enum struct {
	Name     string
	Variants []string
	Doc      string
}

// Kind returns KindEnum.
func (e *Enum) Kind() Kind { return KindEnum }

// TypeName returns the enum's name.
func (e *Enum) TypeName() string { return e.Name }

// TypeBody returns e itself, so a built enum can be registered directly.
func (e *Enum) TypeBody() TypeGenerator { return e }

func (*Enum) sealed() {}
