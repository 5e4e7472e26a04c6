package main

import (
	"flag"
	"fmt"
	"os"

	"mesh-rasterizer/internal/mesh"
)

func main() {
	faces := flag.Int("faces", 10, "Number of random triangles")
	size := flag.Int("size", 512, "Canvas size the vertices are spread over")
	seed := flag.Uint64("seed", 1, "Random seed")
	grid := flag.Int("grid", 0, "Generate an N x N shared-vertex lattice instead of random triangles")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: genscene [flags] out.json\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 || *size <= 0 || *faces < 0 {
		flag.Usage()
		os.Exit(2)
	}

	var s *mesh.Scene
	if *grid > 0 {
		s = mesh.Grid(*grid, *grid, *size, *seed)
	} else {
		s = mesh.Random(*faces, *size, *seed)
	}

	out := flag.Arg(0)
	if err := mesh.Save(out, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %d faces, %d vertices\n", out, len(s.Faces), len(s.Vertices))
}
