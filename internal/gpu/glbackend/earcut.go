package glbackend

import (
	"log"

	"github.com/rclancey/earcut"

	"github.com/irfansharif/fosphor/internal/geom"
)

// earClip triangulates a polygon with the earcut algorithm and returns the
// vertex indices of the triangles, three per triangle. Quads whose corners
// collapse yield no triangles.
func earClip(polygonPoints []geom.Point) []int {
	if len(polygonPoints) < 3 {
		log.Fatalf("Degenerate polygon (%d vertices < 3)", len(polygonPoints))
	}

	// Format: [x0, y0, x1, y1, ..., xn, yn]
	vertexCoords := make([]float64, len(polygonPoints)*2)
	for i, point := range polygonPoints {
		vertexCoords[i*2] = point.X
		vertexCoords[i*2+1] = point.Y
	}

	triangleIndices, err := earcut.Earcut(vertexCoords, nil /* holeIndices */, 2 /* dim */)
	if err != nil {
		log.Fatalf("Triangulation failed for %d-vertex polygon: %v", len(polygonPoints), err)
	}
	if len(triangleIndices)%3 != 0 {
		log.Fatalf("Invalid triangle count (indices: %d, not divisible by 3)", len(triangleIndices))
	}
	return triangleIndices
}
