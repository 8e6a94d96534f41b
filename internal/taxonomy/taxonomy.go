// Package taxonomy defines the controlled vocabularies used to code a
// response entry and the selection sets drawn from them.
package taxonomy

// Node is one option in a coded vocabulary. A node without children is a
// plain code; a node with children is a category. Category codes are
// selectable in their own right, independent of their children.
type Node struct {
	Code     string
	Label    string
	Children []Node
}

// IsCategory reports whether the node groups further options.
func (n Node) IsCategory() bool {
	return len(n.Children) > 0
}

// Taxonomy is a fixed tree of coded options with constant-time code lookup.
type Taxonomy struct {
	Name  string
	Roots []Node

	codes map[string]struct{}
}

// New builds a taxonomy from its root nodes and indexes every code in the
// tree, categories included.
func New(name string, roots []Node) *Taxonomy {
	t := &Taxonomy{
		Name:  name,
		Roots: roots,
		codes: make(map[string]struct{}),
	}
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			t.codes[n.Code] = struct{}{}
			walk(n.Children)
		}
	}
	walk(roots)
	return t
}

// Contains reports whether code appears anywhere in the tree.
func (t *Taxonomy) Contains(code string) bool {
	_, ok := t.codes[code]
	return ok
}

// LeafCodes returns the codes of all non-category nodes in tree order.
func (t *Taxonomy) LeafCodes() []string {
	var leaves []string
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			if n.IsCategory() {
				walk(n.Children)
			} else {
				leaves = append(leaves, n.Code)
			}
		}
	}
	walk(t.Roots)
	return leaves
}

// Selection is an ordered set of codes. Membership is toggled, never
// appended, so duplicates are impossible by construction.
type Selection struct {
	codes []string
}

// Toggle selects code if it is absent and deselects it if present.
// Toggling the same code twice restores the selection exactly.
func (s *Selection) Toggle(code string) {
	for i, c := range s.codes {
		if c == code {
			s.codes = append(s.codes[:i], s.codes[i+1:]...)
			return
		}
	}
	s.codes = append(s.codes, code)
}

// Has reports whether code is currently selected.
func (s *Selection) Has(code string) bool {
	for _, c := range s.codes {
		if c == code {
			return true
		}
	}
	return false
}

// Codes returns a copy of the selected codes in selection order.
func (s *Selection) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// Len returns the number of selected codes.
func (s *Selection) Len() int {
	return len(s.codes)
}

// Clear removes every selected code.
func (s *Selection) Clear() {
	s.codes = nil
}
