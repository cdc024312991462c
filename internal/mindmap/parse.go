package mindmap

import (
	"regexp"
	"strings"
)

// Indentation depths that carry meaning in the mindmap dialect.
const (
	BranchIndent    = 4
	SubBranchIndent = 6
	LeafIndent      = 8
)

var rootPattern = regexp.MustCompile(`root\(\(([^)]+)\)\)`)

// Parse converts canonical mindmap text into a Tree.
//
// Only the fixed depths 4, 6 and 8 produce nodes. A sub-branch attaches to the
// most recent branch and a leaf to the most recent sub-branch; lines at any
// other depth, or without an open parent, are dropped. Parse never fails.
func Parse(text string) Tree {
	tree := Tree{Branches: []Branch{}}

	// Indexes into tree.Branches and the current branch's SubBranches.
	branch, sub := -1, -1

	for _, line := range strings.Split(text, "\n") {
		trimmed := trimSpace(line)
		if trimmed == "" || trimmed == Header {
			continue
		}

		if strings.Contains(trimmed, "root((") {
			if m := rootPattern.FindStringSubmatch(trimmed); m != nil {
				tree.Root = trimSpace(m[1])
			}
			continue
		}

		switch indentOf(line) {
		case BranchIndent:
			tree.Branches = append(tree.Branches, Branch{
				Title:       trimmed,
				SubBranches: []SubBranch{},
			})
			branch, sub = len(tree.Branches)-1, -1
		case SubBranchIndent:
			if branch < 0 {
				continue
			}
			b := &tree.Branches[branch]
			b.SubBranches = append(b.SubBranches, SubBranch{
				Title:  trimmed,
				Leaves: []string{},
			})
			sub = len(b.SubBranches) - 1
		case LeafIndent:
			if sub < 0 {
				continue
			}
			s := &tree.Branches[branch].SubBranches[sub]
			s.Leaves = append(s.Leaves, trimmed)
		}
	}

	return tree
}

// indentOf counts the leading whitespace characters of line.
func indentOf(line string) int {
	n := 0
	for _, r := range line {
		if !isSpace(r) {
			break
		}
		n++
	}
	return n
}
