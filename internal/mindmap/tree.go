// Package mindmap turns the indented mindmap text emitted by the card
// generator into a three-level tree.
package mindmap

// Tree is the parsed form of a mindmap document.
type Tree struct {
	Root     string   `json:"root"`
	Branches []Branch `json:"branches"`
}

// Branch is a level 1 node (4 spaces of indentation).
type Branch struct {
	Title       string      `json:"title"`
	SubBranches []SubBranch `json:"subBranches"`
}

// SubBranch is a level 2 node (6 spaces). Leaves are level 3 lines (8 spaces).
type SubBranch struct {
	Title  string   `json:"title"`
	Leaves []string `json:"leaves"`
}

// Empty reports whether the tree has neither a root label nor branches.
func (t Tree) Empty() bool {
	return t.Root == "" && len(t.Branches) == 0
}

// LeafCount returns the number of leaves across all sub-branches.
func (t Tree) LeafCount() int {
	n := 0
	for _, b := range t.Branches {
		for _, s := range b.SubBranches {
			n += len(s.Leaves)
		}
	}
	return n
}
