package descriptor

// Record describes a Teal record.
type Record struct {
	// Name is the declared record name.
	Name string

	// Generics lists the generic parameter names, rendered as Name<T, U>.
	Generics []string

	// Fields in declaration order.
	Fields []Field

	// Methods in declaration order.
	Methods []Method

	// UserData marks the record as backed by a host userdata value.
	UserData bool

	// ShouldBeInlined asks the enclosing module to splice the record body
	// into its own scope instead of declaring a child record.
	ShouldBeInlined bool

	// Doc is rendered as comment lines above the declaration.
	Doc string
}

// Field is a typed record member.
type Field struct {
	Name string
	Type Parts
	Doc  string
}

// Method is a function-typed record member.
type Method struct {
	Name string

	// Self makes the record itself the first parameter.
	Self bool

	// Meta renders the member as a metamethod (e.g. __add).
	Meta bool

	Params  []Param
	Returns []Parts
	Doc     string
}

// Param is a function parameter. Name is optional.
type Param struct {
	Name string
	Type Parts
}

// Kind returns KindRecord.
func (r *Record) Kind() Kind { return KindRecord }

// TypeName returns the record's name.
func (r *Record) TypeName() string { return r.Name }

// TypeBody returns r itself, so a built record can be registered directly.
func (r *Record) TypeBody() TypeGenerator { return r }

func (*Record) sealed() {}

// SelfType returns the reference a Self method uses for its first
// parameter: the record name plus its generic parameters.
func (r *Record) SelfType() Parts {
	args := make([]Parts, 0, len(r.Generics))
	for _, g := range r.Generics {
		args = append(args, Ref(g))
	}
	return Generic(r.Name, args...)
}

// Inlined returns a copy of r with ShouldBeInlined set.
func (r *Record) Inlined() *Record {
	cp := *r
	cp.ShouldBeInlined = true
	return &cp
}
