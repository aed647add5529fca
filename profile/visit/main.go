// Profiling harness for the traversal hot path.
//
//	go build ./profile/visit
//	go tool pprof -http=":8000" -nodefraction=0.001 ./visit cpu.pprof
package main

import (
	"fmt"

	"github.com/phanxgames/arbor"
	"github.com/pkg/profile"
)

func main() {
	iters := 10000
	width := 100
	depth := 100

	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	stats := run(iters, width, depth)
	p.Stop()

	fmt.Printf("visited %d nodes, recomputed %d transforms\n", stats.NodesVisited, stats.Recomputed)
}

// run builds a width*depth tree and alternates dirty and clean traversals.
func run(iters, width, depth int) arbor.FrameStats {
	root := arbor.NewNode("root")
	for i := 0; i < width; i++ {
		branch := arbor.NewNode("")
		branch.X = float64(i)
		root.AddChild(branch)
		for j := 0; j < depth; j++ {
			leaf := arbor.NewNode("")
			leaf.X = float64(j)
			leaf.Angle = float64(j % 360)
			branch.AddChild(leaf)
		}
	}

	var stats arbor.FrameStats
	for i := 0; i < iters; i++ {
		if i%2 == 0 {
			root.MarkDirty()
		}
		root.Visit(false, &stats)
	}
	return stats
}
