package testdata

type node struct {
	edges []*node
	seen  bool
}

func visit(n *node) {
	if n.seen {
		return
	}
	n.seen = true
	for _, e := range n.edges {
		walk(e)
	}
}

func walk(n *node) {
	visit(n)
}

func triangles(adj [][]bool) int {
	count := 0
	for i := range adj {
		for j := range adj {
			for k := range adj {
				if adj[i][j] && adj[j][k] && adj[k][i] {
					count++
				}
			}
		}
	}
	return count
}

func digits(n int) int {
	d := 0
	for n > 0 {
		n /= 10
		d++
	}
	return d
}
