// Package thread turns the flat comment lists returned by the platform API
// into nested reply trees and keeps them consistent across local mutations.
package thread

import (
	"sort"

	"blogtty/domain"
)

// SortOrder controls how root comments are ordered. Replies always keep
// their fetched order under their parent.
type SortOrder int

const (
	Newest SortOrder = iota
	Oldest
	MostLiked
)

// String returns the label shown in the detail view header.
func (o SortOrder) String() string {
	switch o {
	case Oldest:
		return "oldest"
	case MostLiked:
		return "most liked"
	default:
		return "newest"
	}
}

// Next cycles to the following sort order.
func (o SortOrder) Next() SortOrder {
	switch o {
	case Newest:
		return Oldest
	case Oldest:
		return MostLiked
	default:
		return Newest
	}
}

type builderNode struct {
	comment  domain.Comment
	children []*builderNode
}

// BuildTree converts a flat comment list into an ordered sequence of root
// nodes, each recursively populated with its replies.
//
// A comment whose ParentID names an id absent from the input is dropped
// entirely and is never promoted to root. The input slice is not mutated
// and no references into it survive the call.
func BuildTree(flat []domain.Comment, order SortOrder) []domain.CommentNode {
	index := make(map[string]*builderNode, len(flat))
	for _, c := range flat {
		index[c.ID] = &builderNode{comment: c}
	}

	roots := make([]*builderNode, 0, len(flat))
	for _, c := range flat {
		node := index[c.ID]
		if c.ParentID == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := index[c.ParentID]
		if !ok {
			continue // Orphan: parent absent from the fetched set.
		}
		parent.children = append(parent.children, node)
	}

	sortRoots(roots, order)

	out := make([]domain.CommentNode, 0, len(roots))
	for _, r := range roots {
		out = append(out, materialize(r))
	}
	return out
}

func sortRoots(roots []*builderNode, order SortOrder) {
	switch order {
	case Oldest:
		sort.SliceStable(roots, func(i, j int) bool {
			return roots[i].comment.CreatedAt.Before(roots[j].comment.CreatedAt)
		})
	case MostLiked:
		// Ties on like count break to the newer comment, explicitly.
		// not left to sort stability.
		sort.SliceStable(roots, func(i, j int) bool {
			li, lj := len(roots[i].comment.LikedBy), len(roots[j].comment.LikedBy)
			if li != lj {
				return li > lj
			}
			return roots[i].comment.CreatedAt.After(roots[j].comment.CreatedAt)
		})
	default:
		sort.SliceStable(roots, func(i, j int) bool {
			return roots[i].comment.CreatedAt.After(roots[j].comment.CreatedAt)
		})
	}
}

func materialize(n *builderNode) domain.CommentNode {
	node := domain.CommentNode{Comment: n.comment}
	if len(n.children) == 0 {
		return node
	}
	node.Children = make([]domain.CommentNode, 0, len(n.children))
	for _, child := range n.children {
		node.Children = append(node.Children, materialize(child))
	}
	return node
}

// CountNodes returns the total number of comments in the tree, nested
// replies included.
func CountNodes(tree []domain.CommentNode) int {
	total := 0
	for _, n := range tree {
		total += 1 + CountNodes(n.Children)
	}
	return total
}
