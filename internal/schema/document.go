package schema

import (
	"github.com/cockroachdb/errors"

	"github.com/seitarof/gen-dtl/internal/descriptor"
	"github.com/seitarof/gen-dtl/internal/walker"
)

// Document is the serialized form of one declaration module.
type Document struct {
	// Name is the outer module name. The CLI may override it.
	Name string `yaml:"name" json:"name" toml:"name"`

	// Local declares the module record local instead of global.
	Local bool `yaml:"local" json:"local" toml:"local"`

	Types     []TypeSpec     `yaml:"types" json:"types" toml:"types"`
	Instances []InstanceSpec `yaml:"instances" json:"instances" toml:"instances"`
}

// TypeSpec holds exactly one of Record or Enum.
type TypeSpec struct {
	Record *RecordSpec `yaml:"record,omitempty" json:"record,omitempty" toml:"record,omitempty"`
	Enum   *EnumSpec   `yaml:"enum,omitempty" json:"enum,omitempty" toml:"enum,omitempty"`
}

// RecordSpec describes a record. Type expressions are plain Teal text such
// as "{string: Foo}".
type RecordSpec struct {
	Name     string       `yaml:"name" json:"name" toml:"name"`
	Generics []string     `yaml:"generics" json:"generics" toml:"generics"`
	UserData bool         `yaml:"userdata" json:"userdata" toml:"userdata"`
	Inline   bool         `yaml:"inline" json:"inline" toml:"inline"`
	Doc      string       `yaml:"doc" json:"doc" toml:"doc"`
	Fields   []FieldSpec  `yaml:"fields" json:"fields" toml:"fields"`
	Methods  []MethodSpec `yaml:"methods" json:"methods" toml:"methods"`
}

type FieldSpec struct {
	Name string `yaml:"name" json:"name" toml:"name"`
	Type string `yaml:"type" json:"type" toml:"type"`
	Doc  string `yaml:"doc" json:"doc" toml:"doc"`
}

type MethodSpec struct {
	Name    string      `yaml:"name" json:"name" toml:"name"`
	Self    bool        `yaml:"self" json:"self" toml:"self"`
	Meta    bool        `yaml:"meta" json:"meta" toml:"meta"`
	Params  []ParamSpec `yaml:"params" json:"params" toml:"params"`
	Returns []string    `yaml:"returns" json:"returns" toml:"returns"`
	Doc     string      `yaml:"doc" json:"doc" toml:"doc"`
}

type ParamSpec struct {
	Name string `yaml:"name" json:"name" toml:"name"`
	Type string `yaml:"type" json:"type" toml:"type"`
}

// EnumSpec describes an enum.
type EnumSpec struct {
	Name     string   `yaml:"name" json:"name" toml:"name"`
	Variants []string `yaml:"variants" json:"variants" toml:"variants"`
	Doc      string   `yaml:"doc" json:"doc" toml:"doc"`
}

// InstanceSpec describes one global instance binding.
type InstanceSpec struct {
	Name     string `yaml:"name" json:"name" toml:"name"`
	Type     string `yaml:"type" json:"type" toml:"type"`
	External bool   `yaml:"external" json:"external" toml:"external"`
}

// Check reports the first structural problem in the document itself.
// Semantic problems such as duplicate names are left to Walker.Validate.
func (d *Document) Check() error {
	for i, t := range d.Types {
		switch {
		case t.Record != nil && t.Enum != nil:
			return errors.Newf("types[%d]: both record and enum are set", i)
		case t.Record == nil && t.Enum == nil:
			return errors.Newf("types[%d]: neither record nor enum is set", i)
		}
	}
	return nil
}

// TypeBody converts the entry into a descriptor.
func (t TypeSpec) TypeBody() descriptor.TypeGenerator {
	if t.Enum != nil {
		return &descriptor.Enum{
			Name:     t.Enum.Name,
			Variants: append([]string(nil), t.Enum.Variants...),
			Doc:      t.Enum.Doc,
		}
	}
	r := t.Record
	out := &descriptor.Record{
		Name:            r.Name,
		Generics:        append([]string(nil), r.Generics...),
		UserData:        r.UserData,
		ShouldBeInlined: r.Inline,
		Doc:             r.Doc,
	}
	for _, f := range r.Fields {
		out.Fields = append(out.Fields, descriptor.Field{
			Name: f.Name,
			Type: descriptor.ParseParts(f.Type),
			Doc:  f.Doc,
		})
	}
	for _, m := range r.Methods {
		method := descriptor.Method{Name: m.Name, Self: m.Self, Meta: m.Meta, Doc: m.Doc}
		for _, p := range m.Params {
			method.Params = append(method.Params, descriptor.Param{
				Name: p.Name,
				Type: descriptor.ParseParts(p.Type),
			})
		}
		for _, ret := range m.Returns {
			method.Returns = append(method.Returns, descriptor.ParseParts(ret))
		}
		out.Methods = append(out.Methods, method)
	}
	return out
}

// AddInstances exports the document's instances. It fails on the first
// instance without a type.
func (d *Document) AddInstances(c descriptor.InstanceCollector) error {
	for _, inst := range d.Instances {
		if inst.Type == "" {
			return errors.Newf("instance %q has no type", inst.Name)
		}
		c.AddInstance(inst.Name, descriptor.ParseParts(inst.Type), inst.External)
	}
	return nil
}

// Walker registers every type and instance of the document, in document
// order, on a new walker.
func (d *Document) Walker() (*walker.Walker, error) {
	if err := d.Check(); err != nil {
		return nil, err
	}
	w := walker.New()
	for _, t := range d.Types {
		if t.Record != nil && t.Record.Inline {
			w.ProcessTypeInline(t)
			continue
		}
		w.ProcessType(t)
	}
	return w.DocumentGlobalInstance(d)
}
