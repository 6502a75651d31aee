package walker

import (
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seitarof/gen-dtl/internal/descriptor"
	"github.com/seitarof/gen-dtl/internal/render"
)

func example() *descriptor.Record {
	return &descriptor.Record{Name: "Example", UserData: true}
}

func TestGenerate_Empty(t *testing.T) {
	got, err := New().Generate("Foo", true)
	require.NoError(t, err)
	assert.Equal(t, "global record Foo\n\nend\nreturn Foo", got)
}

func TestGenerate_SingleChildRecord(t *testing.T) {
	got, err := New().ProcessType(example()).Generate("Examples", true)
	require.NoError(t, err)
	want := "global record Examples\n" +
		"\trecord Example\n" +
		"\t\tuserdata\n" +
		"\n" +
		"\n" +
		"\tend\n" +
		"end\n" +
		"return Examples"
	assert.Equal(t, want, got)
}

func TestGenerate_GlobalAndLocalDifferOnlyInScope(t *testing.T) {
	build := func() *Walker {
		return New().
			ProcessType(example()).
			ProcessType(&descriptor.Enum{Name: "Color", Variants: []string{"Red"}})
	}
	global, err := build().GenerateGlobal("Examples")
	require.NoError(t, err)
	local, err := build().GenerateLocal("Examples")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(global, "global "))
	require.True(t, strings.HasPrefix(local, "local "))
	assert.Equal(t, strings.TrimPrefix(global, "global "), strings.TrimPrefix(local, "local "))
}

func TestGenerate_Instances(t *testing.T) {
	w, err := New().
		ProcessType(&descriptor.Record{Name: "Bar"}).
		DocumentGlobalInstance(descriptor.InstanceProviderFunc(func(c descriptor.InstanceCollector) error {
			c.AddInstance("bar", descriptor.Ref("Bar"), true)
			c.AddInstance("count", descriptor.Ref("integer"), false)
			return nil
		}))
	require.NoError(t, err)

	got, err := w.Generate("Mod", true)
	require.NoError(t, err)
	want := "global record Mod\n" +
		"\trecord Bar\n\n\n\tend\n" +
		"end\n" +
		"global bar: Mod.Bar\n" +
		"global count: integer\n" +
		"return Mod"
	assert.Equal(t, want, got)
}

func TestDocumentGlobalInstance_FailureLeavesWalkerUnmodified(t *testing.T) {
	w, err := New().DocumentGlobalInstance(descriptor.InstanceProviderFunc(func(c descriptor.InstanceCollector) error {
		c.AddInstance("kept", descriptor.Ref("number"), false)
		return nil
	}))
	require.NoError(t, err)

	boom := errors.New("boom")
	w, err = w.DocumentGlobalInstance(descriptor.InstanceProviderFunc(func(c descriptor.InstanceCollector) error {
		c.AddInstance("dropped", descriptor.Ref("number"), false)
		return boom
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	require.NotNil(t, w)

	names := []string{}
	for inst := range w.Instances() {
		names = append(names, inst.Name)
	}
	assert.Equal(t, []string{"kept"}, names)
}

func TestGenerate_InlineRecordIsSpliced(t *testing.T) {
	api := &descriptor.Record{
		Name:   "Api",
		Fields: []descriptor.Field{{Name: "version", Type: descriptor.Ref("string")}},
	}
	got, err := New().
		ProcessTypeInline(api).
		ProcessType(&descriptor.Record{Name: "Point", UserData: true}).
		Generate("Api", true)
	require.NoError(t, err)

	want := "global record Api\n" +
		"\tversion: string\n" +
		"\n" +
		"\trecord Point\n\t\tuserdata\n\n\n\tend\n" +
		"end\n" +
		"return Api"
	assert.Equal(t, want, got)
	assert.False(t, api.ShouldBeInlined, "ProcessTypeInline must not modify the provider's record")
}

func TestProcessTypeInline_FlagOnlyDiffers(t *testing.T) {
	normal := slices.Collect(New().ProcessType(example()).Types())
	inline := slices.Collect(New().ProcessTypeInline(example()).Types())
	require.Len(t, normal, 1)
	require.Len(t, inline, 1)

	nr := normal[0].(*descriptor.Record)
	ir := inline[0].(*descriptor.Record)
	assert.False(t, nr.ShouldBeInlined)
	assert.True(t, ir.ShouldBeInlined)

	nd, err := render.Render(nr)
	require.NoError(t, err)
	id, err := render.Render(ir)
	require.NoError(t, err)
	assert.Equal(t, nd.Text(), id.Text())
}

func TestProcessTypeInline_EnumUnchanged(t *testing.T) {
	color := &descriptor.Enum{Name: "Color", Variants: []string{"Red"}}
	a, err := New().ProcessType(color).Generate("M", true)
	require.NoError(t, err)
	b, err := New().ProcessTypeInline(color).Generate("M", true)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_Deterministic(t *testing.T) {
	build := func() *Walker {
		return New().
			ProcessType(&descriptor.Enum{Name: "Color", Variants: []string{"Red", "Green"}}).
			ProcessType(&descriptor.Record{
				Name: "Node",
				Fields: []descriptor.Field{
					{Name: "next", Type: descriptor.Ref("Node")},
					{Name: "color", Type: descriptor.Ref("Color")},
				},
			}).
			ProcessType(&descriptor.Record{Name: "Node"})
	}
	first, err := build().Generate("Graph", true)
	require.NoError(t, err)
	second, err := build().Generate("Graph", true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, strings.Count(first, "\trecord Node\n"), "duplicates are rendered as-is")
}

var headerRe = regexp.MustCompile(`(?m)^\t(?:record|enum) (\w+)`)

func TestGenerate_HeadersMatchRegistrationOrder(t *testing.T) {
	names := []string{"Zeta", "Alpha", "Color", "Mid"}
	w := New()
	for _, name := range names {
		if name == "Color" {
			w.ProcessType(&descriptor.Enum{Name: name, Variants: []string{"Red"}})
			continue
		}
		w.ProcessType(&descriptor.Record{Name: name, UserData: true})
	}

	got, err := w.Generate("Mod", true)
	require.NoError(t, err)

	var headers []string
	for _, m := range headerRe.FindAllStringSubmatch(got, -1) {
		headers = append(headers, m[1])
	}
	assert.Equal(t, names, headers)
}

func TestGenerate_CyclicReferences(t *testing.T) {
	got, err := New().
		ProcessType(&descriptor.Record{Name: "A", Fields: []descriptor.Field{{Name: "b", Type: descriptor.Ref("B")}}}).
		ProcessType(&descriptor.Record{Name: "B", Fields: []descriptor.Field{{Name: "a", Type: descriptor.Ref("A")}}}).
		Generate("Cycle", false)
	require.NoError(t, err)
	assert.Contains(t, got, "\t\tb: B\n")
	assert.Contains(t, got, "\t\ta: A\n")
}

func TestGenerate_DecodeFailure(t *testing.T) {
	_, err := New().
		ProcessType(example()).
		ProcessType(&descriptor.Record{
			Name:   "Bad",
			Fields: []descriptor.Field{{Name: "f\xff", Type: descriptor.Ref("number")}},
		}).
		Generate("Mod", true)
	require.Error(t, err)
	var de *render.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Bad", de.Name)
}

func TestTypes_RegistrationOrder(t *testing.T) {
	w := New().
		ProcessType(&descriptor.Record{Name: "B"}).
		ProcessType(descriptor.TypeBodyFunc(func() descriptor.TypeGenerator {
			return &descriptor.Enum{Name: "A"}
		}))
	var names []string
	for g := range w.Types() {
		names = append(names, g.TypeName())
	}
	assert.Equal(t, []string{"B", "A"}, names)
	assert.Equal(t, 2, w.Len())
}
