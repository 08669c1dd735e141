package pathway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string, x, y float64) *DataNode {
	return &DataNode{
		Common:    Common{ID: id},
		TextLabel: id,
		Type:      DataNodeGeneProduct,
		Graphics:  Rect{CenterX: x, CenterY: y, Width: 80, Height: 20},
	}
}

func line(id, from, to string) *Line {
	return &Line{
		Common: Common{ID: id},
		Start:  LinePoint{Point: Point{0, 0}, ElementRef: from},
		End:    LinePoint{Point: Point{100, 0}, ElementRef: to},
	}
}

// fixture builds a group {a, b}, a node c outside the group, an interaction
// a->c carrying anchor anc, a catalysis b->anc, and an alias of the group.
func fixture(t *testing.T) *Model {
	t.Helper()
	m := New()
	for _, n := range []*DataNode{node("a", 0, 0), node("b", 100, 0), node("c", 200, 100)} {
		require.NoError(t, m.Add(n))
	}
	g := &Group{Common: Common{ID: "g"}, Type: GroupComplex}
	require.NoError(t, m.Add(g))
	a, _ := m.Element("a")
	b, _ := m.Element("b")
	g.AddMember(a.(Groupable))
	g.AddMember(b.(Groupable))

	conv := line("conv", "a", "c")
	require.NoError(t, m.Add(conv))
	_, err := conv.AddAnchor("anc", 0.5)
	require.NoError(t, err)
	require.NoError(t, m.Add(line("cat", "b", "anc")))

	require.NoError(t, m.Add(&DataNode{Common: Common{ID: "alias"}, Type: DataNodeAlias, AliasRef: "g"}))
	require.NoError(t, m.Add(&Info{Common: Common{ID: "info"}, Title: "Apoptosis"}))
	return m
}

func TestModelAdd(t *testing.T) {
	m := New()
	require.NoError(t, m.Add(node("a", 0, 0)))

	tests := []struct {
		name string
		elem Element
		want error
	}{
		{"empty id", node("", 0, 0), ErrInvalidElementID},
		{"duplicate", node("a", 0, 0), ErrDuplicateElementID},
		{"bare anchor", &Anchor{Common: Common{ID: "x"}}, ErrAnchorDetached},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, m.Add(tt.elem), tt.want)
		})
	}

	t.Run("owned elsewhere", func(t *testing.T) {
		other := New()
		n := node("z", 0, 0)
		require.NoError(t, other.Add(n))
		assert.ErrorIs(t, m.Add(n), ErrAlreadyOwned)
	})

	t.Run("anchor id collides", func(t *testing.T) {
		l := line("l", "", "")
		l.Anchors = []*Anchor{{Common: Common{ID: "a"}}}
		assert.ErrorIs(t, m.Add(l), ErrDuplicateElementID)
		assert.False(t, m.Has("l"))
	})
}

func TestModelLookup(t *testing.T) {
	m := fixture(t)

	assert.Equal(t, 8, m.Len())
	assert.True(t, m.Has("anc"))
	assert.Len(t, m.Infos(), 1)

	e, ok := m.Element("anc")
	require.True(t, ok)
	anc := e.(*Anchor)
	assert.Equal(t, "conv", anc.Line().ID)
	assert.Same(t, m, anc.Owner())

	ids := make([]string, 0, m.Len())
	for _, e := range m.Elements() {
		ids = append(ids, e.ElementID())
	}
	assert.Equal(t, []string{"a", "b", "c", "g", "conv", "cat", "alias", "info"}, ids)
}

func TestModelValidate(t *testing.T) {
	t.Run("sound", func(t *testing.T) {
		assert.NoError(t, fixture(t).Validate())
	})

	tests := []struct {
		name   string
		mutate func(m *Model)
	}{
		{"dangling endpoint", func(m *Model) {
			e, _ := m.Element("cat")
			e.(*Line).SetEndRef("nope")
		}},
		{"endpoint on info", func(m *Model) {
			e, _ := m.Element("cat")
			e.(*Line).SetEndRef("info")
		}},
		{"member without back reference", func(m *Model) {
			e, _ := m.Element("a")
			e.(Groupable).SetGroupID("")
		}},
		{"group ref without membership", func(m *Model) {
			e, _ := m.Element("c")
			e.(Groupable).SetGroupID("g")
		}},
		{"alias to non-group", func(m *Model) {
			e, _ := m.Element("alias")
			e.(*DataNode).AliasRef = "c"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := fixture(t)
			tt.mutate(m)
			assert.ErrorIs(t, m.Validate(), ErrDanglingReference)
		})
	}

	t.Run("external alias", func(t *testing.T) {
		m := fixture(t)
		e, _ := m.Element("alias")
		e.(*DataNode).AliasRef = "elsewhere"
		assert.ErrorIs(t, m.Validate(), ErrDanglingReference)
		assert.NoError(t, m.Validate(AllowExternalAliases()))
	})
}

func TestModelRemove(t *testing.T) {
	t.Run("line takes anchors", func(t *testing.T) {
		m := fixture(t)
		require.NoError(t, m.Remove("conv"))
		assert.False(t, m.Has("anc"))

		cat, _ := m.Element("cat")
		assert.Empty(t, cat.(*Line).EndRef())
		assert.NoError(t, m.Validate())
	})

	t.Run("member leaves group", func(t *testing.T) {
		m := fixture(t)
		require.NoError(t, m.Remove("a"))
		g, _ := m.Element("g")
		assert.Equal(t, []string{"b"}, g.(*Group).Members)
		assert.NoError(t, m.Validate())
	})

	t.Run("group clears members and aliases", func(t *testing.T) {
		m := fixture(t)
		require.NoError(t, m.Remove("g"))
		b, _ := m.Element("b")
		assert.Empty(t, b.(Groupable).GroupID())
		alias, _ := m.Element("alias")
		assert.Empty(t, alias.(*DataNode).AliasRef)
		assert.NoError(t, m.Validate())
	})

	t.Run("unknown", func(t *testing.T) {
		assert.ErrorIs(t, New().Remove("x"), ErrUnknownElement)
	})
}

func TestModelNewID(t *testing.T) {
	m := fixture(t)
	seen := map[string]bool{}
	for range 100 {
		id := m.NewID()
		assert.False(t, m.Has(id))
		assert.Regexp(t, `^id[0-9a-f]{8}$`, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 90)
}

func TestModelClone(t *testing.T) {
	m := fixture(t)
	c := m.Clone()

	assert.Equal(t, m.ID(), c.ID())
	assert.Equal(t, m.Len(), c.Len())
	require.NoError(t, c.Validate())

	ca, _ := c.Element("a")
	ca.(*DataNode).TextLabel = "changed"
	ma, _ := m.Element("a")
	assert.Equal(t, "a", ma.(*DataNode).TextLabel)

	anc, _ := c.Element("anc")
	conv, _ := c.Element("conv")
	assert.Same(t, conv, anc.(*Anchor).Line())
}

func TestModelBoundsAndTranslate(t *testing.T) {
	m := New()
	require.NoError(t, m.Add(node("a", 50, 50)))
	require.NoError(t, m.Add(node("b", 150, 90)))
	require.NoError(t, m.Add(&Info{Common: Common{ID: "info"}}))

	b := m.Bounds()
	assert.InDelta(t, 10, b.Left(), 1e-9)
	assert.InDelta(t, 40, b.Top(), 1e-9)
	assert.InDelta(t, 190, b.Right(), 1e-9)
	assert.InDelta(t, 100, b.Bottom(), 1e-9)

	m.Translate(10, -5)
	assert.Equal(t, Point{20, 35}, m.Bounds().TopLeft())
}

func TestModelInsert(t *testing.T) {
	target := New()
	require.NoError(t, target.Add(node("a", 0, 0)))
	require.NoError(t, target.Add(&Group{Common: Common{ID: "outer"}}))

	frag := New()
	require.NoError(t, frag.Add(node("a", 10, 10)))
	require.NoError(t, frag.Add(node("b", 20, 20)))
	l := line("l", "a", "b")
	require.NoError(t, frag.Add(l))
	_, err := l.AddAnchor("anc", 0.3)
	require.NoError(t, err)
	require.NoError(t, frag.Add(line("l2", "", "anc")))
	require.NoError(t, frag.Add(&DataNode{Common: Common{ID: "al1"}, Type: DataNodeAlias, AliasRef: "outer"}))
	require.NoError(t, frag.Add(&DataNode{Common: Common{ID: "al2"}, Type: DataNodeAlias, AliasRef: "missing"}))

	inserted := target.Insert(frag)
	require.Len(t, inserted, 6)
	assert.Equal(t, 0, frag.Len())
	require.NoError(t, target.Validate())

	renamed := inserted[0].ElementID()
	assert.NotEqual(t, "a", renamed)
	assert.Equal(t, "b", inserted[1].ElementID())

	pasted := inserted[2].(*Line)
	assert.Equal(t, renamed, pasted.StartRef())
	assert.Equal(t, "b", pasted.EndRef())
	assert.Same(t, target, pasted.Anchors[0].Owner())
	assert.Equal(t, "anc", inserted[3].(*Line).EndRef())

	assert.Equal(t, "outer", inserted[4].(*DataNode).AliasRef)
	assert.Empty(t, inserted[5].(*DataNode).AliasRef)
}

func TestGroupAddMember(t *testing.T) {
	g := &Group{Common: Common{ID: "g"}}
	n := node("a", 0, 0)
	g.AddMember(n)
	g.AddMember(n)
	assert.Equal(t, []string{"a"}, g.Members)
	assert.Equal(t, "g", n.GroupID())

	g.RemoveMember("a")
	assert.Empty(t, g.Members)
}

func TestCopy(t *testing.T) {
	l := line("l", "a", "b")
	_, err := l.AddAnchor("anc", 0.5)
	require.NoError(t, err)
	l.SetProperty("color", "red")

	c := Copy(l).(*Line)
	c.SetProperty("color", "blue")
	c.Anchors[0].Position = 0.9

	v, _ := l.Property("color")
	assert.Equal(t, "red", v)
	assert.InDelta(t, 0.5, l.Anchors[0].Position, 1e-9)
	assert.Same(t, c, c.Anchors[0].Line())
	assert.Nil(t, Copy(l.Anchors[0]))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Interaction", (&Line{}).Kind().String())
	assert.Equal(t, "GraphicalLine", (&Line{Graphical: true}).Kind().String())
	assert.Equal(t, "Unknown", Kind(99).String())
}
