// Package descriptor defines the in-memory shape of the types a Teal
// declaration file describes: records, enums and the references between them.
package descriptor

// Kind identifies the variant of a TypeGenerator.
type Kind int

const (
	KindRecord Kind = iota
	KindEnum
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "Record"
	case KindEnum:
		return "Enum"
	default:
		return "Unknown"
	}
}

// TypeGenerator describes one declared type. The only implementations are
// *Record and *Enum.
//
// Descriptors refer to each other by name only, so self and mutual
// references need no special handling.
type TypeGenerator interface {
	// Kind returns the variant for type switching.
	Kind() Kind

	// TypeName returns the declared name. It must be unique within one
	// generation pass; nothing enforces that except Walker.Validate.
	TypeName() string

	sealed()
}
