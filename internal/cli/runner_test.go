package cli

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/seitarof/gen-dtl/internal/generator"
	"github.com/seitarof/gen-dtl/internal/schema"
	"github.com/seitarof/gen-dtl/internal/walker"
)

func TestRunner_Run_UsesDocumentNameAndScope(t *testing.T) {
	p := &mockParser{doc: &schema.Document{
		Name:  "Shapes",
		Local: true,
		Types: []schema.TypeSpec{{Enum: &schema.EnumSpec{Name: "Color"}}},
	}}
	gen := &mockGenerator{}

	cfg := &Config{Input: "shapes.yaml", Filename: "shapes.d.tl"}
	if err := NewRunner(p, gen, nil).Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if p.lastPath != "shapes.yaml" {
		t.Fatalf("parser path = %q, want shapes.yaml", p.lastPath)
	}
	if gen.callCount != 1 {
		t.Fatalf("generator call count = %d, want 1", gen.callCount)
	}
	if gen.cfg.ModuleName() != "Shapes" {
		t.Fatalf("module name = %q, want Shapes", gen.cfg.ModuleName())
	}
	if gen.cfg.IsGlobal() {
		t.Fatal("document marked local, module should not be global")
	}
	if gen.walker.Len() != 1 {
		t.Fatalf("walker types = %d, want 1", gen.walker.Len())
	}
}

func TestRunner_Run_NameAndLocalFlagsOverride(t *testing.T) {
	p := &mockParser{doc: &schema.Document{Name: "Shapes"}}
	gen := &mockGenerator{}

	cfg := &Config{Input: "shapes.yaml", Filename: "-", Name: "Geometry"}
	if err := NewRunner(p, gen, nil).Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if gen.cfg.ModuleName() != "Geometry" || !gen.cfg.IsGlobal() {
		t.Fatalf("unexpected module %q global=%v", gen.cfg.ModuleName(), gen.cfg.IsGlobal())
	}

	cfg = &Config{Input: "shapes.yaml", Filename: "-", Local: true}
	if err := NewRunner(p, gen, nil).Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if gen.cfg.IsGlobal() {
		t.Fatal("--local should declare the module local")
	}
}

func TestRunner_Run_ParseError(t *testing.T) {
	r := NewRunner(&mockParser{err: errors.New("bad yaml")}, &mockGenerator{}, nil)

	err := r.Run(&Config{Input: "x.yaml", Filename: "-"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "parse schema") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunner_Run_RequiresModuleName(t *testing.T) {
	gen := &mockGenerator{}
	err := NewRunner(&mockParser{doc: &schema.Document{}}, gen, nil).Run(&Config{Input: "x.yaml", Filename: "-"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if gen.callCount != 0 {
		t.Fatal("generator should not run without a module name")
	}
}

func TestRunner_Run_InstanceFailureAborts(t *testing.T) {
	doc := &schema.Document{
		Name:      "M",
		Instances: []schema.InstanceSpec{{Name: "broken"}},
	}
	gen := &mockGenerator{}
	err := NewRunner(&mockParser{doc: doc}, gen, nil).Run(&Config{Input: "x.yaml", Filename: "-"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if gen.callCount != 0 {
		t.Fatal("generator should not run after a collection failure")
	}
}

func duplicateDoc() *schema.Document {
	return &schema.Document{
		Name: "M",
		Types: []schema.TypeSpec{
			{Enum: &schema.EnumSpec{Name: "Dup"}},
			{Record: &schema.RecordSpec{Name: "Dup"}},
		},
	}
}

func TestRunner_Run_ValidationWarnings(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	gen := &mockGenerator{}

	r := NewRunner(&mockParser{doc: duplicateDoc()}, gen, zap.New(core).Sugar())
	if err := r.Run(&Config{Input: "x.yaml", Filename: "-"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if gen.callCount != 1 {
		t.Fatal("warnings must not stop generation")
	}
	entries := logs.FilterMessage("gen-dtl: validation").All()
	if len(entries) != 1 {
		t.Fatalf("warnings = %d, want 1", len(entries))
	}
	if code := entries[0].ContextMap()["code"]; code != "duplicate_type" {
		t.Fatalf("code = %v, want duplicate_type", code)
	}
}

func TestRunner_Run_StrictValidation(t *testing.T) {
	gen := &mockGenerator{}
	r := NewRunner(&mockParser{doc: duplicateDoc()}, gen, nil)

	err := r.Run(&Config{Input: "x.yaml", Filename: "-", Strict: true})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "1 validation issue(s)") {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.callCount != 0 {
		t.Fatal("generator should not run on strict validation failure")
	}
}

func TestRunner_Run_GeneratorError(t *testing.T) {
	gen := &mockGenerator{err: generator.ErrOutOfDate}
	err := NewRunner(&mockParser{doc: &schema.Document{Name: "M"}}, gen, nil).
		Run(&Config{Input: "x.yaml", Filename: "m.d.tl", Check: true})
	if !errors.Is(err, generator.ErrOutOfDate) {
		t.Fatalf("expected ErrOutOfDate, got %v", err)
	}
}

type mockParser struct {
	doc      *schema.Document
	err      error
	lastPath string
}

func (m *mockParser) Parse(path string) (*schema.Document, error) {
	m.lastPath = path
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

func (m *mockParser) ParseBytes(data []byte, format schema.Format) (*schema.Document, error) {
	return nil, errors.New("not implemented")
}

type mockGenerator struct {
	callCount int
	cfg       generator.Config
	walker    *walker.Walker
	err       error
}

func (m *mockGenerator) Generate(cfg generator.Config, w *walker.Walker) error {
	m.callCount++
	m.cfg = cfg
	m.walker = w
	return m.err
}
