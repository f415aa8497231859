package structure

import (
	"strconv"
	"strings"
)

// Path is the sequence of child indices from a tree root to a point or
// branch. Two points are siblings iff their paths share the same parent.
type Path []int

// Append returns a new path extended by i. The receiver is never aliased.
func (p Path) Append(i int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = i
	return out
}

// Parent drops the last index. The parent of the root path is the root path.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}

// Key is a comparable form of the path, usable as a map key.
func (p Path) Key() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, v := range p {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

func (p Path) String() string {
	return "[" + p.Key() + "]"
}

// PointVisitor receives every point of a tree in depth-first, left-to-right
// order together with its path.
type PointVisitor func(path Path, p Point) error

// WalkPoints visits every point below root without recursion. An item that is
// neither a point nor a non-nil branch is a structural violation.
func WalkPoints(root *Branch, visit PointVisitor) error {
	if root == nil {
		return nil
	}
	type frame struct {
		branch *Branch
		path   Path
		next   int
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
		case item.Kind == ItemPoint:
			if err := visit(itemPath, item.Point); err != nil {
				return err
			}
		case item.Kind == ItemBranch && item.Branch != nil:
			stack = append(stack, frame{branch: item.Branch, path: itemPath})
		default:
			return &StructuralError{Path: itemPath, Tag: item.Kind.String(), Msg: "tree item is neither a point nor a branch"}
		}
	}
	return nil
}
