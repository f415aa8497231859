package connectivity

import (
	"github.com/dgallion1/tracemesh/internal/nodeid"
	"github.com/dgallion1/tracemesh/internal/structure"
)

// TreeResult is the connectivity of one tree.
type TreeResult struct {
	Edges []Edge

	// Attach maps a branch path key to the parent node its first point was
	// wired to. Branches entered with no prior point are absent.
	Attach map[string]int
}

// Tree walks the tree depth-first and chains consecutive points of each
// branch. A sub-branch starts from the last point its parent branch emitted
// before the sub-branch, so sibling sub-branches fan out from the same
// branch point. A branch with no points of its own hands its inherited
// attachment straight down to its children.
func Tree(root *structure.Branch, nodes *nodeid.TreeNodes) (*TreeResult, error) {
	out := &TreeResult{Attach: make(map[string]int)}
	if root == nil {
		return out, nil
	}

	type frame struct {
		branch   *structure.Branch
		path     structure.Path
		next     int
		previous int // 0 when the branch has no prior point
	}
	stack := []frame{{branch: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.branch.Items) {
			stack = stack[:len(stack)-1]
			continue
		}
		i := top.next
		top.next++
		itemPath := top.path.Append(i)
		item := top.branch.Items[i]

		switch {
		case item.Kind == structure.ItemPoint:
			id, ok := nodes.ID(itemPath)
			if !ok {
				return nil, &structure.StructuralError{Path: itemPath, Tag: "point", Msg: "point has no resolved node"}
			}
			if top.previous != 0 {
				out.Edges = append(out.Edges, Edge{From: top.previous, To: id})
			}
			top.previous = id
		case item.Kind == structure.ItemBranch && item.Branch != nil:
			if top.previous != 0 {
				out.Attach[itemPath.Key()] = top.previous
			}
			stack = append(stack, frame{branch: item.Branch, path: itemPath, previous: top.previous})
		default:
			return nil, &structure.StructuralError{Path: itemPath, Tag: item.Kind.String(), Msg: "tree item is neither a point nor a branch"}
		}
	}
	return out, nil
}
