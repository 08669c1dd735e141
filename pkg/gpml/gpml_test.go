package gpml_test

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pathclip/pkg/copyset"
	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/gpml"
	"github.com/matzehuels/pathclip/pkg/pathway"
)

// source builds a document exercising every element kind and reference form.
func source(t *testing.T) *pathway.Model {
	t.Helper()
	m := pathway.New()
	add := func(e pathway.Element) {
		require.NoError(t, m.Add(e))
	}
	tp53 := &pathway.DataNode{
		Common:    pathway.Common{ID: "tp53", Comments: []string{"tumor suppressor", "  spaced  "}},
		TextLabel: "TP53\np53",
		Type:      pathway.DataNodeProtein,
		Xref:      pathway.Xref{Identifier: "P04637", DataSource: "Uniprot-TrEMBL"},
		Graphics:  pathway.Rect{CenterX: 120.5, CenterY: 80, Width: 90, Height: 25},
	}
	tp53.SetProperty("color", "#ff0000")
	tp53.SetProperty("note", `a "quoted" <value> & more`)
	add(tp53)
	add(&pathway.DataNode{
		Common:    pathway.Common{ID: "mdm2"},
		TextLabel: "MDM2",
		Type:      pathway.DataNodeGeneProduct,
		Graphics:  pathway.Rect{CenterX: 300, CenterY: 80, Width: 90, Height: 25},
	})
	add(&pathway.Label{
		Common:    pathway.Common{ID: "lbl"},
		TextLabel: "nucleus",
		Href:      "https://example.org/nucleus",
		Graphics:  pathway.Rect{CenterX: 10, CenterY: 10, Width: 50, Height: 15},
	})
	add(&pathway.Shape{
		Common:    pathway.Common{ID: "cell"},
		ShapeType: "RoundedRectangle",
		Rotation:  1.5707963267948966,
		Graphics:  pathway.Rect{CenterX: 200, CenterY: 200, Width: 400, Height: 300},
	})
	inh := &pathway.Line{
		Common:        pathway.Common{ID: "inh"},
		ConnectorType: "Elbow",
		Start:         pathway.LinePoint{Point: pathway.Point{X: 255, Y: 80}, ElementRef: "mdm2", RelX: -1},
		End:           pathway.LinePoint{Point: pathway.Point{X: 165, Y: 80}, ElementRef: "tp53", RelX: 1, ArrowHead: "mim-inhibition"},
		Waypoints:     []pathway.Point{{X: 210, Y: 60}},
	}
	add(inh)
	anc, err := inh.AddAnchor("anc", 0.4)
	require.NoError(t, err)
	anc.Shape = "Circle"
	add(&pathway.Line{
		Common:    pathway.Common{ID: "gl"},
		Graphical: true,
		Start:     pathway.LinePoint{ElementRef: "lbl"},
		End:       pathway.LinePoint{Point: pathway.Point{X: 210, Y: 70}, ElementRef: "anc"},
	})
	g := &pathway.Group{Common: pathway.Common{ID: "cplx"}, Type: pathway.GroupComplex, TextLabel: "p53 complex"}
	add(g)
	for _, id := range []string{"tp53", "mdm2"} {
		e, _ := m.Element(id)
		g.AddMember(e.(pathway.Groupable))
	}
	outer := &pathway.Group{Common: pathway.Common{ID: "outer"}}
	add(outer)
	outer.AddMember(g)
	add(&pathway.DataNode{Common: pathway.Common{ID: "alias"}, Type: pathway.DataNodeAlias, AliasRef: "cplx"})
	add(&pathway.DataNode{Common: pathway.Common{ID: "alias2"}, Type: pathway.DataNodeAlias, AliasRef: "outer"})
	require.NoError(t, m.Validate())
	return m
}

func fragment(t *testing.T, src *pathway.Model, ids ...string) *pathway.Model {
	t.Helper()
	var sel []pathway.Element
	for _, id := range ids {
		e, ok := src.Element(id)
		require.True(t, ok)
		sel = append(sel, e)
	}
	quiet := log.New(io.Discard)
	set, err := copyset.Build(src, sel, copyset.WithLogger(quiet))
	require.NoError(t, err)
	_, err = set.Remap(src, quiet)
	require.NoError(t, err)
	frag, err := set.Fragment()
	require.NoError(t, err)
	return frag
}

func assertSameElements(t *testing.T, want, got *pathway.Model) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	for i, w := range want.Elements() {
		g := got.Elements()[i]
		assert.Equal(t, pathway.Copy(w), pathway.Copy(g), "element %s", w.ElementID())
	}
}

func TestRoundTrip(t *testing.T) {
	src := source(t)
	tests := []struct {
		name string
		ids  []string
	}{
		{"everything", []string{"tp53", "mdm2", "lbl", "cell", "inh", "gl", "cplx", "outer", "alias", "alias2"}},
		{"partial group", []string{"cplx", "tp53", "alias"}},
		{"floating lines", []string{"inh", "gl"}},
		{"external alias", []string{"alias2", "mdm2"}},
		{"nothing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag := fragment(t, src, tt.ids...)

			data, err := gpml.Marshal(frag)
			require.NoError(t, err)
			parsed, err := gpml.Unmarshal(data)
			require.NoError(t, err)
			require.NotNil(t, parsed)

			assert.NotEqual(t, frag.ID(), parsed.ID())
			assertSameElements(t, frag, parsed)
			assert.NoError(t, parsed.Validate(pathway.AllowExternalAliases()))

			again, err := gpml.Marshal(parsed)
			require.NoError(t, err)
			assert.Equal(t, string(data), string(again))
		})
	}
}

func TestRoundTripDocument(t *testing.T) {
	src := source(t)
	path := filepath.Join(t.TempDir(), "doc.gpml")
	require.NoError(t, gpml.WriteFile(src, path))

	got, err := gpml.ReadFile(path)
	require.NoError(t, err)
	assertSameElements(t, src, got)
	require.NoError(t, got.Validate())

	e, _ := got.Element("tp53")
	assert.Equal(t, "cplx", e.(pathway.Groupable).GroupID())
	e, _ = got.Element("cplx")
	assert.Equal(t, "outer", e.(pathway.Groupable).GroupID())
}

func TestSurroundingWhitespace(t *testing.T) {
	frag := fragment(t, source(t), "tp53", "mdm2", "inh")
	data, err := gpml.Marshal(frag)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(data), "\n"), "output should end with a newline")

	for _, in := range []string{string(data), "\n  " + string(data) + "\r\n\n"} {
		got, err := gpml.Unmarshal([]byte(in))
		require.NoError(t, err)
		assertSameElements(t, frag, got)
	}
}

func TestEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t \r\n"} {
		m, err := gpml.Unmarshal([]byte(in))
		assert.NoError(t, err)
		assert.Nil(t, m)

		m, err = gpml.Read(strings.NewReader(in))
		assert.NoError(t, err)
		assert.Nil(t, m)

		s, err := gpml.Inspect([]byte(in))
		assert.NoError(t, err)
		assert.Nil(t, s)
	}
}

func TestMalformedInput(t *testing.T) {
	data, err := gpml.Marshal(fragment(t, source(t), "tp53", "mdm2", "inh"))
	require.NoError(t, err)
	doc := string(data)

	ns := `xmlns="` + gpml.Namespace + `"`
	tests := []struct {
		name string
		in   string
	}{
		{"truncated", doc[:len(doc)/2]},
		{"missing close", strings.TrimSuffix(strings.TrimSpace(doc), "</Pathway>")},
		{"not xml", "TP53 -> MDM2"},
		{"wrong root", `<Document ` + ns + ` schemaVersion="1"/>`},
		{"wrong namespace", `<Pathway xmlns="urn:other" schemaVersion="1"/>`},
		{"no version", `<Pathway ` + ns + `/>`},
		{"future version", `<Pathway ` + ns + ` schemaVersion="2"/>`},
		{"unknown element", `<Pathway ` + ns + ` schemaVersion="1"><Gadget elementId="x"/></Pathway>`},
		{"missing id", `<Pathway ` + ns + ` schemaVersion="1"><DataNode/></Pathway>`},
		{"duplicate id", `<Pathway ` + ns + ` schemaVersion="1"><DataNode elementId="a"/><Label elementId="a"/></Pathway>`},
		{"bad number", `<Pathway ` + ns + ` schemaVersion="1"><DataNode elementId="a"><Graphics width="wide"/></DataNode></Pathway>`},
		{"dangling endpoint", `<Pathway ` + ns + ` schemaVersion="1"><Interaction elementId="i"><End elementRef="ghost"/></Interaction></Pathway>`},
		{"dangling member", `<Pathway ` + ns + ` schemaVersion="1"><Group elementId="g"><Member elementRef="ghost"/></Group></Pathway>`},
		{"two groups", `<Pathway ` + ns + ` schemaVersion="1"><DataNode elementId="a"/>` +
			`<Group elementId="g1"><Member elementRef="a"/></Group><Group elementId="g2"><Member elementRef="a"/></Group></Pathway>`},
		{"info member", `<Pathway ` + ns + ` schemaVersion="1"><Info elementId="i"/><Group elementId="g"><Member elementRef="i"/></Group></Pathway>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := gpml.Unmarshal([]byte(tt.in))
			assert.Nil(t, m)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidPayload), "got %v", err)
		})
	}
}

func TestExternalAliasKept(t *testing.T) {
	in := `<Pathway xmlns="` + gpml.Namespace + `" schemaVersion="1">
  <DataNode elementId="al" type="Alias" aliasRef="elsewhere"/>
</Pathway>`
	m, err := gpml.Unmarshal([]byte(in))
	require.NoError(t, err)
	e, ok := m.Element("al")
	require.True(t, ok)
	assert.Equal(t, "elsewhere", e.(*pathway.DataNode).AliasRef)
}

func TestSyntheticInfo(t *testing.T) {
	src := source(t)

	m, err := gpml.Unmarshal(mustMarshal(t, fragment(t, src, "tp53")))
	require.NoError(t, err)
	info, ok := gpml.SyntheticInfo(m)
	require.True(t, ok)
	assert.True(t, gpml.IsSynthetic(info))

	_, ok = gpml.SyntheticInfo(src)
	assert.False(t, ok)
	assert.False(t, gpml.IsSynthetic(nil))
}

func TestInspect(t *testing.T) {
	src := source(t)
	require.NoError(t, src.Add(&pathway.Info{Common: pathway.Common{ID: "meta"}, Title: "p53 signaling"}))

	s, err := gpml.Inspect(mustMarshal(t, src))
	require.NoError(t, err)
	assert.Equal(t, gpml.SchemaVersion, s.SchemaVersion)
	assert.Equal(t, "p53 signaling", s.Title)
	assert.Equal(t, 11, s.Elements)
	assert.Equal(t, 1, s.Anchors)
	assert.Equal(t, map[string]int{
		"DataNode":      4,
		"Label":         1,
		"Shape":         1,
		"Interaction":   1,
		"GraphicalLine": 1,
		"Group":         2,
		"Info":          1,
	}, s.Counts)
	assert.False(t, s.Synthetic)

	s, err = gpml.Inspect(mustMarshal(t, fragment(t, src, "tp53")))
	require.NoError(t, err)
	assert.True(t, s.Synthetic)
	assert.Empty(t, s.Title)

	_, err = gpml.Inspect([]byte("<Document/>"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPayload))
}

func TestWriteNil(t *testing.T) {
	var buf bytes.Buffer
	err := gpml.Write(nil, &buf)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	assert.Zero(t, buf.Len())
}

func TestReadFileMissing(t *testing.T) {
	_, err := gpml.ReadFile(filepath.Join(t.TempDir(), "missing.gpml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func mustMarshal(t *testing.T, m *pathway.Model) []byte {
	t.Helper()
	data, err := gpml.Marshal(m)
	require.NoError(t, err)
	return data
}
