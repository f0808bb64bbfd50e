package datastructure

// computeComponents. labels connected components with an iterative dfs. the graph is undirected,
// so the strongly connected components are the connected components.
func (g *CityGraph) computeComponents() {
	n := len(g.nodes)
	components := make([]Index, n)
	for i := range components {
		components[i] = INVALID_INDEX
	}

	stack := make([]Index, 0, 64)
	componentId := Index(0)
	for s := 0; s < n; s++ {
		if components[s] != INVALID_INDEX {
			continue
		}
		components[s] = componentId
		stack = append(stack[:0], Index(s))
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for i := g.firstOut[u]; i < g.firstOut[u+1]; i++ {
				v := g.arcs[i].head
				if components[v] == INVALID_INDEX {
					components[v] = componentId
					stack = append(stack, v)
				}
			}
		}
		componentId++
	}

	g.components = components
	g.numComponents = int(componentId)
}

// ComponentSizes. number of nodes per component id.
func (g *CityGraph) ComponentSizes() []int {
	sizes := make([]int, g.numComponents)
	for _, c := range g.components {
		sizes[c]++
	}
	return sizes
}
