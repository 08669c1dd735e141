package pathway

// Insert moves every element of frag into m and returns the inserted
// top-level elements in fragment order. frag is left empty.
//
// Fragment IDs that collide with IDs of m are renamed and the fragment's
// internal references follow the rename. References that resolve neither
// inside the fragment nor, for aliases, inside m are cleared so m stays
// sound.
func (m *Model) Insert(frag *Model) []Element {
	if frag == nil || frag == m {
		return nil
	}

	rename := make(map[string]string, len(frag.index))
	taken := func(id string) bool {
		if m.Has(id) {
			return true
		}
		for _, v := range rename {
			if v == id {
				return true
			}
		}
		return false
	}
	for _, e := range frag.order {
		ids := []string{e.ElementID()}
		if l, ok := e.(*Line); ok {
			for _, a := range l.Anchors {
				ids = append(ids, a.ID)
			}
		}
		for _, id := range ids {
			if !m.Has(id) {
				rename[id] = id
				continue
			}
			nid := m.NewID()
			for taken(nid) || frag.Has(nid) {
				nid = m.NewID()
			}
			rename[id] = nid
		}
	}

	elems := frag.order
	frag.order = nil
	frag.index = make(map[string]Element)

	for _, e := range elems {
		c := e.common()
		c.owner = nil
		c.ID = rename[c.ID]
		if l, ok := e.(*Line); ok {
			for _, a := range l.Anchors {
				a.owner = nil
				a.ID = rename[a.ID]
			}
		}
		rewriteRefs(e, func(k RefKind, target string) string {
			if nid, ok := rename[target]; ok {
				return nid
			}
			if _, isGroup := m.index[target].(*Group); k == RefAlias && isGroup {
				return target
			}
			return ""
		})
	}
	for _, e := range elems {
		m.attach(e)
	}
	return elems
}
