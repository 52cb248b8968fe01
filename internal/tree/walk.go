package tree

// PostOrder evaluates fn bottom-up over a tree of any node type. Every child
// is evaluated before its parent, and fn receives the child results in child
// order together with the depth of the node (the starting node has depth
// depth).
func PostOrder[N, R any](node N, depth int, children func(N) []N, fn func(node N, depth int, results []R) R) R {
	kids := children(node)
	results := make([]R, len(kids))
	for i, c := range kids {
		results[i] = PostOrder(c, depth+1, children, fn)
	}
	return fn(node, depth, results)
}
