package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"arbor/internal/mesh"
	"arbor/internal/species"
	"arbor/internal/tree"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	name := flag.String("species", "quaking_aspen", "builtin species to grow")
	preset := flag.String("preset", "", "yaml preset file, overrides -species")
	seed := flag.Int64("seed", 42, "seed for structure generation")
	out := flag.String("o", "", "write the mesh as Wavefront OBJ to this path")
	gz := flag.Bool("gzip", false, "gzip the OBJ output")
	density := flag.Int("density", 255, "branch density 0-255 for levels above the trunk")
	describe := flag.Bool("describe", false, "print the species parameter sheet and exit")
	scaffold := flag.String("scaffold", "", "write the chosen species as a yaml preset to this path and exit")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	p, err := resolveParams(*name, *preset, overrides)
	if err != nil {
		fatal(err)
	}

	if *scaffold != "" {
		if err := species.SaveFile(*scaffold, p); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", *scaffold)
		return
	}
	if *describe {
		printSnapshot(p)
		return
	}

	t, err := tree.Generate(p, *seed)
	if err != nil {
		fatal(err)
	}
	st := t.Stats()
	fmt.Printf("seed %d: %d stems, %d clones, %d segments, %d leaves, max level %d\n",
		*seed, st.Stems, st.Clones, st.Segments, st.Leaves, st.MaxLevel)

	b := mesh.NewBuilder(t)
	if *density >= 0 && *density < 256 {
		for level := 1; level < len(b.Density); level++ {
			b.Density[level] = uint8(*density)
		}
	}
	var c mesh.Collector
	if err := b.Build(&c); err != nil {
		fatal(err)
	}
	fmt.Printf("mesh: %d vertices, %d polygons, %d branch records\n",
		c.VertexCount(), c.PolyCount(), len(c.Branches))

	if *out == "" {
		return
	}
	f, err := os.Create(*out)
	if err != nil {
		fatal(err)
	}
	defer f.Close()
	if *gz {
		err = mesh.WriteOBJGzip(f, &c)
	} else {
		err = mesh.WriteOBJ(f, &c)
	}
	if err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", *out)
}

func resolveParams(name, preset string, overrides kvList) (tree.Params, error) {
	if preset != "" {
		return species.LoadFile(preset)
	}
	factory, ok := species.Lookup(name)
	if !ok {
		return tree.Params{}, fmt.Errorf("unknown species %q (have: %s)",
			name, strings.Join(species.Names(), ", "))
	}
	cfg := map[string]string{}
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		cfg[parts[0]] = parts[1]
	}
	p := factory(cfg)
	if err := p.Validate(); err != nil {
		return tree.Params{}, err
	}
	return p, nil
}

func printSnapshot(p tree.Params) {
	snap := p.Snapshot()
	for _, group := range snap.Groups {
		fmt.Printf("%s\n", group.Name)
		if group.Summary != "" {
			fmt.Printf("  %s\n", group.Summary)
		}
		for _, param := range group.Params {
			fmt.Printf("  %-18s %s\n", param.Label, param.Value)
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "treegen:", err)
	os.Exit(1)
}
