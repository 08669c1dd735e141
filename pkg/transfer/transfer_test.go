package transfer

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/gpml"
	"github.com/matzehuels/pathclip/pkg/pathway"
)

var quiet = log.New(io.Discard)

func document(t *testing.T) *pathway.Model {
	t.Helper()
	m := pathway.New()
	require.NoError(t, m.Add(&pathway.DataNode{
		Common:   pathway.Common{ID: "a"},
		Graphics: pathway.Rect{CenterX: 100, CenterY: 100, Width: 40, Height: 20},
	}))
	require.NoError(t, m.Add(&pathway.DataNode{
		Common:   pathway.Common{ID: "b"},
		Graphics: pathway.Rect{CenterX: 200, CenterY: 150, Width: 40, Height: 20},
	}))
	require.NoError(t, m.Add(&pathway.Line{
		Common: pathway.Common{ID: "ab"},
		Start:  pathway.LinePoint{Point: pathway.Point{X: 120, Y: 100}, ElementRef: "a"},
		End:    pathway.LinePoint{Point: pathway.Point{X: 180, Y: 150}, ElementRef: "b"},
	}))
	require.NoError(t, m.Add(&pathway.Info{Common: pathway.Common{ID: "meta"}, Title: "target"}))
	return m
}

func selection(t *testing.T, m *pathway.Model, ids ...string) []pathway.Element {
	t.Helper()
	var out []pathway.Element
	for _, id := range ids {
		e, ok := m.Element(id)
		require.True(t, ok)
		out = append(out, e)
	}
	return out
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		p    Payload
		want string
		ok   bool
	}{
		{"text", TextPayload("<Pathway/>"), "<Pathway/>", true},
		{"empty text", TextPayload(""), "", true},
		{"charset parameter", Payload{Items: []Item{{Flavor: "text/plain; charset=utf-8", Text: "x"}}}, "x", true},
		{"uri list only", Payload{Items: []Item{{Flavor: FlavorURIList, Text: "file:///tmp/a.gpml"}}}, "", false},
		{"uri list with charset", Payload{Items: []Item{{Flavor: "text/uri-list; charset=utf-8", Text: "file:///tmp/a.gpml"}}}, "", false},
		{"uri list first", Payload{Items: []Item{
			{Flavor: FlavorURIList, Text: "file:///tmp/a.gpml"},
			{Flavor: FlavorText, Text: "real"},
		}}, "real", true},
		{"files only", FilePayload("/tmp/a.gpml"), "", false},
		{"nothing", Payload{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractText(tt.p)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractFileLocation(t *testing.T) {
	tests := []struct {
		name string
		p    Payload
		want string
	}{
		{"file list", FilePayload("/data/a.gpml", "/data/b.gpml"), "file:///data/a.gpml"},
		{"file list wins", Payload{Items: []Item{
			{Flavor: FlavorURIList, Text: "file:///other.gpml"},
			{Flavor: FlavorFileList, Files: []string{"/data/a.gpml"}},
		}}, "file:///data/a.gpml"},
		{"uri list", Payload{Items: []Item{{Flavor: FlavorURIList, Text: "file:///data/a.gpml\r\nfile:///data/b.gpml"}}}, "file:///data/a.gpml"},
		{"uri list with charset", Payload{Items: []Item{{Flavor: "Text/URI-List; charset=utf-8", Text: "file:///data/a.gpml"}}}, "file:///data/a.gpml"},
		{"uri list with text", Payload{Items: []Item{{Flavor: FlavorURIList, Text: "just some words"}}}, ""},
		{"uri list http", Payload{Items: []Item{{Flavor: FlavorURIList, Text: "https://example.org/a.gpml"}}}, ""},
		{"empty file list", Payload{Items: []Item{{Flavor: FlavorFileList}}}, ""},
		{"text only", TextPayload("file:///data/a.gpml"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractFileLocation(tt.p)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(TextPayload("one"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, Fingerprint(Payload{Items: []Item{{Flavor: FlavorFileList}, {Flavor: FlavorText, Text: "one"}}}))
	assert.NotEqual(t, a, Fingerprint(TextPayload("two")))
	assert.Empty(t, Fingerprint(FilePayload("/a")))
}

func TestProduce(t *testing.T) {
	a := NewAdapter(WithLogger(quiet))

	text, ok := a.Produce(document(t))
	require.True(t, ok)
	assert.Contains(t, text, `elementId="ab"`)

	text, ok = a.Produce(nil)
	assert.False(t, ok)
	assert.Empty(t, text)
	assert.True(t, a.Offer(nil).IsEmpty())

	res := <-a.ProduceAsync(context.Background(), document(t))
	assert.True(t, res.OK)
	assert.NotEmpty(t, res.Text)
}

func TestCopyAndLoad(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(WithLogger(quiet))
	src := document(t)

	copied, err := a.Copy(ctx, src, selection(t, src, "a", "ab"))
	require.NoError(t, err)
	require.Equal(t, []string{FlavorText}, copied.Payload.Flavors())
	assert.Len(t, copied.Report.DroppedOf(pathway.RefEnd), 1)

	frag, err := a.Load(ctx, copied.Payload)
	require.NoError(t, err)
	require.NotNil(t, frag)
	assert.Equal(t, 3, frag.Len()) // node, line, synthetic info
	_, ok := gpml.SyntheticInfo(frag)
	assert.True(t, ok)
	assert.NoError(t, frag.Validate())

	_, err = a.Copy(ctx, src, []pathway.Element{&pathway.DataNode{Common: pathway.Common{ID: "stray"}}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

type stubLoader struct {
	got *url.URL
	doc *pathway.Model
}

func (s *stubLoader) LoadDocument(_ context.Context, loc *url.URL) (*pathway.Model, error) {
	s.got = loc
	return s.doc, nil
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	doc := pathway.New()
	loader := &stubLoader{doc: doc}
	a := NewAdapter(WithLogger(quiet), WithLoader(loader))

	t.Run("nothing", func(t *testing.T) {
		m, err := a.Load(ctx, Payload{})
		assert.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("empty text", func(t *testing.T) {
		m, err := a.Load(ctx, TextPayload("  \n"))
		assert.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("malformed text", func(t *testing.T) {
		m, err := a.Load(ctx, TextPayload("<Pathway"))
		assert.Nil(t, m)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidPayload))
	})

	t.Run("file locator", func(t *testing.T) {
		m, err := a.Load(ctx, FilePayload("/data/a.gpml"))
		require.NoError(t, err)
		assert.Same(t, doc, m)
		assert.Equal(t, "/data/a.gpml", loader.got.Path)
	})

	t.Run("open prefers locator", func(t *testing.T) {
		p := Payload{Items: []Item{
			{Flavor: FlavorText, Text: "<Pathway"},
			{Flavor: FlavorFileList, Files: []string{"/data/b.gpml"}},
		}}
		m, err := a.Open(ctx, p)
		require.NoError(t, err)
		assert.Same(t, doc, m)
		assert.Equal(t, "/data/b.gpml", loader.got.Path)
	})
}

func TestFileLoader(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.gpml")
	require.NoError(t, gpml.WriteFile(document(t), path))

	a := NewAdapter(WithLogger(quiet))
	m, err := a.Load(ctx, FilePayload(path))
	require.NoError(t, err)
	assert.Equal(t, 4, m.Len())

	_, err = FileLoader{}.LoadDocument(ctx, &url.URL{Scheme: "https", Host: "example.org"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidLocator))
}

func TestSession(t *testing.T) {
	s := NewSession("default")
	assert.False(t, s.IsOwner())
	dx, dy := s.NextShift()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	s.ObtainedOwnership("fp1")
	for i := 1; i <= 3; i++ {
		dx, dy = s.NextShift()
		assert.Equal(t, float64(i)*PasteOffset, dx)
		assert.Equal(t, dx, dy)
	}
	assert.Equal(t, 3, s.TimesPasted)

	s.Sync("fp1")
	assert.True(t, s.IsOwner())

	s.Sync("fp2")
	assert.Equal(t, NotOwner, s.TimesPasted)
	dx, _ = s.NextShift()
	assert.Zero(t, dx)

	s.ObtainedOwnership("fp2")
	dx, _ = s.NextShiftBy(25)
	assert.Equal(t, 25.0, dx)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "sessions")
	store, err := NewSessionStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Path())

	s, err := store.Get(ctx, "default")
	require.NoError(t, err)
	assert.False(t, s.IsOwner())

	s.ObtainedOwnership("abc")
	s.NextShift()
	require.NoError(t, store.Set(ctx, s))

	got, err := store.Get(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, 1, got.TimesPasted)
	assert.Equal(t, "abc", got.Fingerprint)

	require.NoError(t, store.Delete(ctx, "default"))
	got, err = store.Get(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, NotOwner, got.TimesPasted)

	_, err = store.Get(ctx, "../etc")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidBoard))

	_, err = NewSessionStore("")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))

	_, statErr := os.Stat(dir)
	assert.NoError(t, statErr)
}

func TestCursorShift(t *testing.T) {
	m := document(t)
	dx, dy := CursorShift(m.Elements(), pathway.Point{X: 0, Y: 0})
	// Top-left corner is the left edge of node a (80) and its top (90).
	assert.InDelta(t, -80, dx, 1e-9)
	assert.InDelta(t, -90, dy, 1e-9)

	dx, dy = CursorShift([]pathway.Element{&pathway.Info{}}, pathway.Point{X: 5, Y: 5})
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestPaste(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(WithLogger(quiet))
	src := document(t)

	copied, err := a.Copy(ctx, src, selection(t, src, "a", "b", "ab"))
	require.NoError(t, err)

	t.Run("drops placeholder into documents with metadata", func(t *testing.T) {
		target := document(t)
		frag, err := a.Load(ctx, copied.Payload)
		require.NoError(t, err)

		inserted := Paste(ctx, target, frag, 10, 10)
		assert.Len(t, inserted, 3)
		assert.Len(t, target.Infos(), 1)
		assert.Equal(t, 7, target.Len())
		assert.NoError(t, target.Validate())

		n := inserted[0].(*pathway.DataNode)
		assert.InDelta(t, 110, n.Graphics.CenterX, 1e-9)
	})

	t.Run("keeps placeholder otherwise", func(t *testing.T) {
		target := pathway.New()
		frag, err := a.Load(ctx, copied.Payload)
		require.NoError(t, err)

		Paste(ctx, target, frag, 0, 0)
		assert.Len(t, target.Infos(), 1)
		assert.Equal(t, 4, target.Len())
	})
}
