package tui

import (
	"strings"

	"github.com/monakit/monakit/internal/mindmap"
	"github.com/monakit/monakit/internal/styles"
)

// RenderTree draws a mindmap tree with box-drawing guides:
//
//	Go Tour
//	├── Types
//	│   └── Structs
//	│       └── Embedding
//	└── Methods
func RenderTree(tree mindmap.Tree) string {
	var b strings.Builder

	root := tree.Root
	if root == "" {
		root = "(no root)"
	}
	b.WriteString(styles.RootStyle.Render(root))
	b.WriteString("\n")

	for i, br := range tree.Branches {
		lastBranch := i == len(tree.Branches)-1
		writeNode(&b, "", lastBranch, styles.BranchStyle.Render(br.Title))

		branchIndent := guide(lastBranch)
		for j, sub := range br.SubBranches {
			lastSub := j == len(br.SubBranches)-1
			writeNode(&b, branchIndent, lastSub, styles.SubBranchStyle.Render(sub.Title))

			subIndent := branchIndent + guide(lastSub)
			for k, leaf := range sub.Leaves {
				writeNode(&b, subIndent, k == len(sub.Leaves)-1, styles.LeafStyle.Render(leaf))
			}
		}
	}

	return b.String()
}

func writeNode(b *strings.Builder, indent string, last bool, label string) {
	connector := "├── "
	if last {
		connector = "└── "
	}
	b.WriteString(styles.GuideStyle.Render(indent + connector))
	b.WriteString(label)
	b.WriteString("\n")
}

func guide(last bool) string {
	if last {
		return "    "
	}
	return "│   "
}
