package connectivity

// Contour pairs consecutive node ids and, for a closed contour of more than
// one point, closes the loop from the last id back to the first.
func Contour(ids []int, closed bool) []Edge {
	if len(ids) < 2 {
		return nil
	}
	edges := make([]Edge, 0, len(ids))
	for i := 0; i+1 < len(ids); i++ {
		edges = append(edges, Edge{From: ids[i], To: ids[i+1]})
	}
	if closed {
		edges = append(edges, Edge{From: ids[len(ids)-1], To: ids[0]})
	}
	return edges
}
