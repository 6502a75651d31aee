package walker

import (
	"fmt"

	"github.com/seitarof/gen-dtl/internal/descriptor"
)

// ValidationError is one structural problem found by Validate.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate reports problems Generate would render as-is: duplicate or empty
// names, empty reference segments, and references to inlined records (an
// inlined record is never declared under its own name). It returns every
// problem found, not just the first. Generate never calls it.
func (w *Walker) Validate() []error {
	var errs []error
	add := func(code, format string, args ...any) {
		errs = append(errs, &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	inlined := map[string]bool{}
	names := map[string]bool{}
	for i, t := range w.types {
		name := t.TypeName()
		if name == "" {
			add("empty_name", "type #%d has an empty name", i)
			continue
		}
		if names[name] {
			add("duplicate_type", "duplicate type name: %s", name)
		}
		names[name] = true
		if r, ok := t.(*descriptor.Record); ok && r.ShouldBeInlined {
			inlined[name] = true
		}
	}

	checkRef := func(where string, ref descriptor.Parts) {
		for _, part := range ref {
			if part.Text == "" {
				add("empty_segment", "%s: type reference has an empty segment", where)
				break
			}
		}
		for _, name := range ref.References() {
			if inlined[name] {
				add("inline_reference", "%s: references inlined record %s", where, name)
			}
		}
	}

	for _, t := range w.types {
		r, ok := t.(*descriptor.Record)
		if !ok {
			continue
		}
		for _, f := range r.Fields {
			checkRef(r.Name+"."+f.Name, f.Type)
		}
		for _, m := range r.Methods {
			where := r.Name + "." + m.Name
			if m.Self && r.ShouldBeInlined {
				add("inline_reference", "%s: self parameter references inlined record %s", where, r.Name)
			}
			for _, p := range m.Params {
				checkRef(where, p.Type)
			}
			for _, ret := range m.Returns {
				checkRef(where, ret)
			}
		}
	}

	instances := map[string]bool{}
	for i, inst := range w.instances {
		if inst.Name == "" {
			add("empty_name", "instance #%d has an empty name", i)
		} else if instances[inst.Name] {
			add("duplicate_instance", "duplicate instance name: %s", inst.Name)
		}
		instances[inst.Name] = true
		checkRef("instance "+inst.Name, inst.Type)
	}
	return errs
}
