package detect

import "github.com/facegate/facegate/internal/imaging"

// Region is a candidate face bounding box in edge-buffer coordinates.
type Region struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Size      int     `json:"size"`       // connected pixel count
	Density   float64 `json:"density"`    // Size / (Width*Height), in [0,1]
	FaceScore float64 `json:"face_score"` // in [0,1]
}

// Area returns Width * Height.
func (r Region) Area() int {
	return r.Width * r.Height
}

type point struct {
	x, y int
}

// GrowRegion flood-fills the 8-connected component around the seed,
// admitting pixels whose edge intensity meets threshold. It uses an explicit
// work stack rather than recursion so stack depth stays bounded for large
// buffers. All admission checks (bounds, visited, threshold) happen when a
// coordinate is popped; neighbors are pushed unconditionally.
//
// visited is indexed by y*width+x and is shared across a whole detection
// pass so no pixel is grown twice.
func GrowRegion(edges *imaging.Gray, visited []bool, seedX, seedY int, threshold uint8) Region {
	w, h := edges.Width, edges.Height

	minX, maxX := seedX, seedX
	minY, maxY := seedY, seedY
	size := 0

	stack := make([]point, 0, 256)
	stack = append(stack, point{seedX, seedY})

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.x < 0 || p.x >= w || p.y < 0 || p.y >= h {
			continue
		}
		idx := p.y*w + p.x
		if visited[idx] || edges.Pix[idx] < threshold {
			continue
		}
		visited[idx] = true

		size++
		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}

		stack = append(stack,
			point{p.x - 1, p.y - 1}, point{p.x, p.y - 1}, point{p.x + 1, p.y - 1},
			point{p.x - 1, p.y}, point{p.x + 1, p.y},
			point{p.x - 1, p.y + 1}, point{p.x, p.y + 1}, point{p.x + 1, p.y + 1},
		)
	}

	width := maxX - minX + 1
	height := maxY - minY + 1
	r := Region{X: minX, Y: minY, Width: width, Height: height, Size: size}
	if size > 0 {
		r.Density = float64(size) / float64(width*height)
	}
	return r
}
