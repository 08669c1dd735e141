package pathway

// RefKind classifies an element-to-element reference.
type RefKind int

const (
	// RefStart is the element a line's start point is attached to.
	RefStart RefKind = iota
	// RefEnd is the element a line's end point is attached to.
	RefEnd
	// RefMember is one entry of a group's member list.
	RefMember
	// RefGroup is the enclosing group of a groupable element.
	RefGroup
	// RefAlias is the group an alias node stands in for.
	RefAlias
)

var refKindNames = map[RefKind]string{
	RefStart:  "start",
	RefEnd:    "end",
	RefMember: "member",
	RefGroup:  "groupRef",
	RefAlias:  "aliasRef",
}

func (k RefKind) String() string {
	if s, ok := refKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Ref is a single non-empty reference held by an element.
type Ref struct {
	Kind   RefKind
	Target string
}

// References returns the non-empty references held by e, in a stable order:
// group reference, endpoints, alias, then members in declaration order.
func References(e Element) []Ref {
	var refs []Ref
	add := func(k RefKind, id string) {
		if id != "" {
			refs = append(refs, Ref{k, id})
		}
	}
	if g, ok := e.(Groupable); ok {
		add(RefGroup, g.GroupID())
	}
	switch e := e.(type) {
	case *Line:
		add(RefStart, e.Start.ElementRef)
		add(RefEnd, e.End.ElementRef)
	case *DataNode:
		add(RefAlias, e.AliasRef)
	case *Group:
		for _, id := range e.Members {
			add(RefMember, id)
		}
	}
	return refs
}

// rewriteRefs replaces every reference held by e with fn(kind, target).
// Members mapped to "" are removed from the member list.
func rewriteRefs(e Element, fn func(RefKind, string) string) {
	apply := func(k RefKind, id string) string {
		if id == "" {
			return ""
		}
		return fn(k, id)
	}
	if g, ok := e.(Groupable); ok {
		g.SetGroupID(apply(RefGroup, g.GroupID()))
	}
	switch e := e.(type) {
	case *Line:
		e.SetStartRef(apply(RefStart, e.StartRef()))
		e.SetEndRef(apply(RefEnd, e.EndRef()))
	case *DataNode:
		e.AliasRef = apply(RefAlias, e.AliasRef)
	case *Group:
		members := e.Members[:0]
		for _, id := range e.Members {
			if id = apply(RefMember, id); id != "" {
				members = append(members, id)
			}
		}
		e.Members = members
	}
}
