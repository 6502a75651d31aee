// Package render turns type descriptors into Teal declaration text.
package render

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/seitarof/gen-dtl/internal/descriptor"
)

// Declaration is one rendered type. It keeps its pieces apart so the caller
// can either nest it as a child declaration (Block) or splice the record
// body into the enclosing scope (Members). The text of each piece does not
// depend on Record.ShouldBeInlined.
type Declaration struct {
	Name string
	Kind descriptor.Kind

	doc      []string
	head     string
	preamble []string
	fields   [][]string
	methods  [][]string
	variants []string
}

// Render renders one descriptor. The only error it returns is a
// *DecodeError.
func Render(g descriptor.TypeGenerator) (*Declaration, error) {
	var d *Declaration
	switch t := g.(type) {
	case *descriptor.Record:
		d = renderRecord(t)
	case *descriptor.Enum:
		d = renderEnum(t)
	default:
		return nil, errors.AssertionFailedf("unknown descriptor %T", g)
	}
	if err := checkText(d.Name, d.Text()); err != nil {
		return nil, err
	}
	return d, nil
}

func renderRecord(r *descriptor.Record) *Declaration {
	d := &Declaration{
		Name: r.Name,
		Kind: descriptor.KindRecord,
		doc:  docLines(r.Doc),
		head: "record " + r.SelfType().String(),
	}
	if r.UserData {
		d.preamble = append(d.preamble, "userdata")
	}
	d.fields = make([][]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		lines := docLines(f.Doc)
		d.fields = append(d.fields, append(lines, f.Name+": "+f.Type.String()))
	}
	d.methods = make([][]string, 0, len(r.Methods))
	for _, m := range r.Methods {
		lines := docLines(m.Doc)
		d.methods = append(d.methods, append(lines, methodLine(r, m)))
	}
	return d
}

func methodLine(r *descriptor.Record, m descriptor.Method) string {
	params := make([]descriptor.Parts, 0, len(m.Params)+1)
	if m.Self {
		params = append(params, r.SelfType())
	}
	for _, p := range m.Params {
		if p.Name == "" {
			params = append(params, p.Type)
			continue
		}
		params = append(params, descriptor.Concat(descriptor.Sym(p.Name+": "), p.Type))
	}
	sig := descriptor.Function(params, m.Returns).String()
	if m.Meta {
		return "metamethod " + m.Name + ": " + sig
	}
	return m.Name + ": " + sig
}

func renderEnum(e *descriptor.Enum) *Declaration {
	d := &Declaration{
		Name: e.Name,
		Kind: descriptor.KindEnum,
		doc:  docLines(e.Doc),
		head: "enum " + e.Name,
	}
	d.variants = make([]string, 0, len(e.Variants))
	for _, v := range e.Variants {
		d.variants = append(d.variants, strconv.Quote(v))
	}
	return d
}

// Text renders the declaration as a child of the outer module.
func (d *Declaration) Text() string {
	return d.Block(1)
}

// Block renders the full declaration indented by depth tabs:
//
//	record Name
//		userdata
//		<fields>
//		<methods>
//	end
//
// The field and method sections are each followed by a newline even when
// empty.
func (d *Declaration) Block(depth int) string {
	indent := strings.Repeat("\t", depth)
	inner := indent + "\t"

	var b strings.Builder
	for _, line := range d.doc {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString(d.head)
	for _, line := range d.preamble {
		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString(line)
	}
	switch d.Kind {
	case descriptor.KindEnum:
		for _, v := range d.variants {
			b.WriteString("\n")
			b.WriteString(inner)
			b.WriteString(v)
		}
	default:
		b.WriteString("\n")
		b.WriteString(d.Members(depth + 1))
	}
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString("end")
	return b.String()
}

// Members renders only the record body, fields then methods, indented by
// depth tabs. It is what an inlined record contributes to its scope.
func (d *Declaration) Members(depth int) string {
	indent := strings.Repeat("\t", depth)
	return joinMembers(d.fields, indent) + "\n" + joinMembers(d.methods, indent)
}

func joinMembers(members [][]string, indent string) string {
	var b strings.Builder
	first := true
	for _, lines := range members {
		for _, line := range lines {
			if !first {
				b.WriteString("\n")
			}
			first = false
			b.WriteString(indent)
			b.WriteString(line)
		}
	}
	return b.String()
}

func docLines(doc string) []string {
	doc = strings.TrimRight(doc, "\n")
	if doc == "" {
		return nil
	}
	raw := strings.Split(doc, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			out = append(out, "--")
			continue
		}
		out = append(out, "-- "+line)
	}
	return out
}
