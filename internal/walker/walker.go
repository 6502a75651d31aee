// Package walker collects type descriptors and global instances and renders
// them into a single Teal declaration module.
package walker

import (
	"iter"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/seitarof/gen-dtl/internal/descriptor"
	"github.com/seitarof/gen-dtl/internal/render"
)

// Walker is a builder for one declaration module. Types and instances are
// append-only and keep registration order, which is also output order.
//
// A Walker is not safe for concurrent use; build independent modules with
// independent walkers.
type Walker struct {
	types     []descriptor.TypeGenerator
	instances []descriptor.GlobalInstance
}

// New returns an empty walker.
func New() *Walker {
	return &Walker{}
}

// ProcessType registers the descriptor produced by t as a child declaration.
func (w *Walker) ProcessType(t descriptor.TypeBody) *Walker {
	w.types = append(w.types, t.TypeBody())
	return w
}

// ProcessTypeInline registers the descriptor produced by t so that, for a
// record, its body is spliced directly into the module. Enums are
// registered unchanged.
//
// This is what a record exposed as the module table itself needs.
func (w *Walker) ProcessTypeInline(t descriptor.TypeBody) *Walker {
	g := t.TypeBody()
	if r, ok := g.(*descriptor.Record); ok {
		g = r.Inlined()
	}
	w.types = append(w.types, g)
	return w
}

// DocumentGlobalInstance collects every instance p exports. If p fails the
// walker is returned unmodified together with the error.
func (w *Walker) DocumentGlobalInstance(p descriptor.InstanceProvider) (*Walker, error) {
	c := NewCollector()
	if err := p.AddInstances(c); err != nil {
		return w, errors.Wrap(err, "collect instances")
	}
	w.instances = append(w.instances, c.Instances()...)
	return w, nil
}

// Types iterates over the registered descriptors in registration order.
func (w *Walker) Types() iter.Seq[descriptor.TypeGenerator] {
	return slices.Values(w.types)
}

// Instances iterates over the collected global instances in order.
func (w *Walker) Instances() iter.Seq[descriptor.GlobalInstance] {
	return slices.Values(w.instances)
}

// Len returns the number of registered descriptors.
func (w *Walker) Len() int {
	return len(w.types)
}

// Generate renders the module named outerName. The module record is declared
// global when isGlobal is set and local otherwise. Output is deterministic
// for a given registration order; nothing is sorted or deduplicated.
//
// The only error is a *render.DecodeError.
func (w *Walker) Generate(outerName string, isGlobal bool) (string, error) {
	blocks := make([]string, 0, len(w.types))
	for _, t := range w.types {
		decl, err := render.Render(t)
		if err != nil {
			return "", err
		}
		if r, ok := t.(*descriptor.Record); ok && r.ShouldBeInlined {
			blocks = append(blocks, decl.Members(1))
			continue
		}
		blocks = append(blocks, decl.Text())
	}
	return render.Module(render.ModuleData{
		Name:      outerName,
		Global:    isGlobal,
		Blocks:    blocks,
		Instances: w.instances,
	})
}

// GenerateGlobal is Generate(outerName, true).
func (w *Walker) GenerateGlobal(outerName string) (string, error) {
	return w.Generate(outerName, true)
}

// GenerateLocal is Generate(outerName, false).
func (w *Walker) GenerateLocal(outerName string) (string, error) {
	return w.Generate(outerName, false)
}
