package bench

import (
	"fmt"

	"github.com/vango-dev/observable/internal/config"
	"github.com/vango-dev/observable/pkg/observable"
)

// Graph is a built bench graph.
type Graph struct {
	// Values are the source cells, initialised to 1.
	Values []*observable.Number[int]

	// Layers are the computed layers, bottom first. Every layer is as wide
	// as Values.
	Layers [][]*observable.Computed[int]

	// Top sums the last layer, or Values when there are no layers.
	Top *observable.Computed[int]

	// Items is the array cell; ItemsTotal sums it.
	Items      *observable.Array[int]
	ItemsTotal *observable.Computed[int]

	fanout int
}

// Build creates the graph described by cfg with every cell bound to tracker.
// cfg must be valid.
func Build(cfg *config.Config, tracker *observable.Tracker) *Graph {
	g := &Graph{fanout: cfg.Graph.Fanout}
	width := cfg.Graph.Values

	g.Values = make([]*observable.Number[int], width)
	below := make([]observable.Cell[int], width)
	for i := range g.Values {
		g.Values[i] = observable.NewNumber(1,
			observable.WithTracker(tracker),
			observable.WithName(fmt.Sprintf("value.%d", i)),
		)
		below[i] = g.Values[i]
	}

	for depth := 0; depth < cfg.Graph.Depth; depth++ {
		layer := make([]*observable.Computed[int], width)
		for j := range layer {
			window := make([]observable.Cell[int], g.fanout)
			for k := range window {
				window[k] = below[(j+k)%width]
			}
			layer[j] = observable.NewComputed(sum(window),
				observable.WithTracker(tracker),
				observable.WithName(fmt.Sprintf("layer%d.%d", depth, j)),
			)
		}
		g.Layers = append(g.Layers, layer)

		below = make([]observable.Cell[int], width)
		for j, c := range layer {
			below[j] = c
		}
	}

	g.Top = observable.NewComputed(sum(below),
		observable.WithTracker(tracker),
		observable.WithName("top"),
	)

	items := make([]int, cfg.Graph.ArrayLen)
	for i := range items {
		items[i] = i
	}
	g.Items = observable.NewArray(items,
		observable.WithTracker(tracker),
		observable.WithName("items"),
	)
	g.ItemsTotal = observable.NewComputed(func() int {
		return g.Items.Reduce(func(acc, n int) int { return acc + n }, 0)
	},
		observable.WithTracker(tracker),
		observable.WithName("items.total"),
	)

	return g
}

// Expected returns the value Top should hold given the current values.
func (g *Graph) Expected() int {
	total := 0
	for _, v := range g.Values {
		total += v.Peek()
	}
	for range g.Layers {
		total *= g.fanout
	}
	return total
}

// Cells returns the number of cells in the graph.
func (g *Graph) Cells() int {
	n := len(g.Values) + 3
	for _, layer := range g.Layers {
		n += len(layer)
	}
	return n
}

// Release unsubscribes every computed cell from its dependencies.
func (g *Graph) Release() {
	for _, layer := range g.Layers {
		for _, c := range layer {
			c.ReleaseDependencies()
		}
	}
	g.Top.ReleaseDependencies()
	g.ItemsTotal.ReleaseDependencies()
}

func sum(cells []observable.Cell[int]) func() int {
	return func() int {
		total := 0
		for _, c := range cells {
			total += c.Get()
		}
		return total
	}
}
