package social

import (
	"context"
	"fmt"
)

// Node type names and layout constants, matching what the frontend renders.
// Users with a score above the threshold get the highlighted node type.
const (
	nodeTypeHigh = "highScoreNode"
	nodeTypeLow  = "lowScoreNode"

	highScoreThreshold = 5.0

	gridColumns = 5
	gridSpacing = 200
	gridOffset  = 100
)

// Position is a node's layout coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NodeData is the display payload of a node
type NodeData struct {
	Label           string   `json:"label"`
	Username        string   `json:"username"`
	Age             int      `json:"age"`
	Hobbies         []string `json:"hobbies"`
	PopularityScore float64  `json:"popularityScore"`
}

// Node is one user in the projected graph
type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// Edge is one undirected friendship in the projected graph
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is a node/edge snapshot of the whole user graph
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Project reads the full user set and produces a render-ready snapshot.
// Nodes are laid out on a fixed grid in store enumeration order; positions
// are stable only as long as that order is stable. Each mutual friendship
// yields exactly one edge, keyed by whichever direction is encountered
// first.
func (s *Service) Project(ctx context.Context) (*Graph, error) {
	users, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(users))
	for i, u := range users {
		nodeType := nodeTypeLow
		if u.PopularityScore > highScoreThreshold {
			nodeType = nodeTypeHigh
		}

		nodes = append(nodes, Node{
			ID:   u.ID,
			Type: nodeType,
			Position: Position{
				X: (i%gridColumns)*gridSpacing + gridOffset,
				Y: (i/gridColumns)*gridSpacing + gridOffset,
			},
			Data: NodeData{
				Label:           fmt.Sprintf("%s (%d)", u.Username, u.Age),
				Username:        u.Username,
				Age:             u.Age,
				Hobbies:         u.Hobbies,
				PopularityScore: u.PopularityScore,
			},
		})
	}

	edges := []Edge{}
	seen := make(map[string]bool)
	for _, u := range users {
		for _, friendID := range u.Friends {
			forward := u.ID + "-" + friendID
			reverse := friendID + "-" + u.ID
			if seen[forward] || seen[reverse] {
				continue
			}
			edges = append(edges, Edge{
				ID:     forward,
				Source: u.ID,
				Target: friendID,
			})
			seen[forward] = true
			seen[reverse] = true
		}
	}

	return &Graph{Nodes: nodes, Edges: edges}, nil
}
