package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"arbor/internal/mesh"
	"arbor/internal/species"
	"arbor/internal/tree"
)

type scenario struct {
	species string
	seed    int64
}

func (s scenario) String() string {
	return fmt.Sprintf("%s seed=%d", s.species, s.seed)
}

type scenarioResult struct {
	scenario scenario
	stats    tree.Stats
	verts    int
	polys    int
	height   float64
	spread   float64
	err      error
}

func main() {
	names := flag.String("species", strings.Join(species.Names(), ","), "comma-separated species to sweep")
	seeds := flag.Int("seeds", 16, "seeds per species, starting at -first-seed")
	firstSeed := flag.Int64("first-seed", 1, "first seed of the sweep")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	density := flag.Int("density", 255, "branch density 0-255 for levels above the trunk")
	flag.Parse()

	var sets []scenario
	for _, name := range strings.Split(*names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := species.Lookup(name); !ok {
			fmt.Fprintf(os.Stderr, "forest-sweep: unknown species %q\n", name)
			os.Exit(1)
		}
		for i := 0; i < *seeds; i++ {
			sets = append(sets, scenario{species: name, seed: *firstSeed + int64(i)})
		}
	}

	fmt.Printf("Sweeping %d scenarios (%d workers)\n", len(sets), *workers)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(sc, uint8(*density))
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	failed := 0
	for res := range results {
		if res.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "forest-sweep: %s: %v\n", res.scenario, res.err)
			continue
		}
		all = append(all, res)
	}
	elapsed := time.Since(start)

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.scenario.species != b.scenario.species {
			return a.scenario.species < b.scenario.species
		}
		return a.scenario.seed < b.scenario.seed
	})

	fmt.Printf("\nResults (elapsed %s, %d failed):\n", elapsed.Round(time.Millisecond), failed)
	current := ""
	for _, res := range all {
		if res.scenario.species != current {
			current = res.scenario.species
			fmt.Printf("%s\n", current)
		}
		fmt.Printf("  seed %4d: stems=%d clones=%d leaves=%d verts=%d polys=%d height=%.1f spread=%.1f\n",
			res.scenario.seed, res.stats.Stems, res.stats.Clones, res.stats.Leaves,
			res.verts, res.polys, res.height, res.spread)
	}

	printSummary(all)
}

func runScenario(sc scenario, density uint8) scenarioResult {
	factory, _ := species.Lookup(sc.species)
	t, err := tree.Generate(factory(nil), sc.seed)
	if err != nil {
		return scenarioResult{scenario: sc, err: err}
	}

	b := mesh.NewBuilder(t)
	for level := 1; level < len(b.Density); level++ {
		b.Density[level] = density
	}
	var c mesh.Collector
	if err := b.Build(&c); err != nil {
		return scenarioResult{scenario: sc, err: err}
	}

	var height, spread float64
	for i := 0; i+2 < len(c.Vertices); i += 3 {
		x := float64(c.Vertices[i])
		y := float64(c.Vertices[i+1])
		z := float64(c.Vertices[i+2])
		if z > height {
			height = z
		}
		if r := math.Hypot(x, y); r > spread {
			spread = r
		}
	}

	return scenarioResult{
		scenario: sc,
		stats:    t.Stats(),
		verts:    c.VertexCount(),
		polys:    c.PolyCount(),
		height:   height,
		spread:   spread,
	}
}

func printSummary(all []scenarioResult) {
	type agg struct {
		n      int
		stems  int
		leaves int
		polys  int
		height float64
	}
	byName := map[string]*agg{}
	for _, res := range all {
		a := byName[res.scenario.species]
		if a == nil {
			a = &agg{}
			byName[res.scenario.species] = a
		}
		a.n++
		a.stems += res.stats.Stems
		a.leaves += res.stats.Leaves
		a.polys += res.polys
		a.height += res.height
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("\nPer-species averages:\n")
	for _, name := range names {
		a := byName[name]
		fmt.Printf("  %-16s stems=%.0f leaves=%.0f polys=%.0f height=%.1f (n=%d)\n",
			name, float64(a.stems)/float64(a.n), float64(a.leaves)/float64(a.n),
			float64(a.polys)/float64(a.n), a.height/float64(a.n), a.n)
	}
}
