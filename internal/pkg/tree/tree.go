package tree

import (
	"strconv"

	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/models"
)

// DepthUnbounded requests a full walk ("all" in the query string).
const DepthUnbounded = -1

// DefaultDepth is applied when the query does not name a depth.
const DefaultDepth = 1

// Node is a transient view of a user nested by the manager relationship.
// Children is omitted entirely (not an empty list) for leaves and for nodes
// truncated by the depth bound, so callers can tell the two apart from a
// parent that simply has no reports.
type Node struct {
	models.UserResponse
	Children []*Node `json:"children,omitempty"`
}

// Build nests roots using the managerID -> direct reports adjacency.
// Recursion is bounded strictly by depth; with DepthUnbounded a visited set
// guards against accidental cycles in the manager data, so Build terminates
// either way.
func Build(roots []*models.UserResponse, children map[uint][]*models.UserResponse, depth int) []*Node {
	nodes := make([]*Node, 0, len(roots))
	seen := make(map[uint]bool)
	for _, r := range roots {
		nodes = append(nodes, toNode(r, children, 0, depth, seen))
	}
	return nodes
}

func toNode(u *models.UserResponse, children map[uint][]*models.UserResponse, current, depth int, seen map[uint]bool) *Node {
	seen[u.ID] = true
	node := &Node{UserResponse: *u}

	if depth != DepthUnbounded && current >= depth {
		return node
	}
	for _, kid := range children[u.ID] {
		if seen[kid.ID] {
			continue
		}
		node.Children = append(node.Children, toNode(kid, children, current+1, depth, seen))
	}
	return node
}

// ParseDepth parses the depth query value: "all" means unbounded, otherwise a
// non-negative integer. Empty input falls back to DefaultDepth.
func ParseDepth(raw string) (int, bool) {
	if raw == "" {
		return DefaultDepth, true
	}
	if raw == "all" {
		return DepthUnbounded, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
