package mesh

import (
	"bufio"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// WriteOBJ writes a collected mesh as Wavefront OBJ text. Texture
// coordinates are per polygon corner, so each face emits its own vt
// entries. Leaf anchors have no OBJ representation and are omitted.
func WriteOBJ(w io.Writer, c *Collector) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# arbor tree mesh: %d vertices, %d polygons\n", c.VertexCount(), c.PolyCount())
	for i := 0; i+2 < len(c.Vertices); i += 3 {
		fmt.Fprintf(bw, "v %g %g %g\n", c.Vertices[i], c.Vertices[i+1], c.Vertices[i+2])
	}

	vt := 0
	for i := 0; i+1 < len(c.QuadUVs); i += 2 {
		fmt.Fprintf(bw, "vt %g %g\n", c.QuadUVs[i], c.QuadUVs[i+1])
	}
	for i := 0; i+1 < len(c.TriUVs); i += 2 {
		fmt.Fprintf(bw, "vt %g %g\n", c.TriUVs[i], c.TriUVs[i+1])
	}

	for q := 0; q+3 < len(c.Quads); q += 4 {
		fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d %d/%d\n",
			c.Quads[q]+1, vt+1, c.Quads[q+1]+1, vt+2, c.Quads[q+2]+1, vt+3, c.Quads[q+3]+1, vt+4)
		vt += 4
	}
	for t := 0; t+2 < len(c.Tris); t += 3 {
		fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n",
			c.Tris[t]+1, vt+1, c.Tris[t+1]+1, vt+2, c.Tris[t+2]+1, vt+3)
		vt += 3
	}

	return bw.Flush()
}

// WriteOBJGzip writes the OBJ text through a gzip stream.
func WriteOBJGzip(w io.Writer, c *Collector) error {
	zw := gzip.NewWriter(w)
	if err := WriteOBJ(zw, c); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}
