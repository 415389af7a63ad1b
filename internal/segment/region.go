package segment

import (
	"fmt"
	"image/color"

	"github.com/ironsheep/image-filters-mcp/internal/raster"
)

// neighbors8 lists the 8-connected offsets as (dx, dy).
var neighbors8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// RegionResult is the outcome of region growing.
type RegionResult struct {
	// Image has every labeled pixel painted with its region color.
	Image *raster.Image

	// Labels holds the region id of every pixel.
	Labels *LabelGrid

	// Regions is the number of regions found.
	Regions int
}

// grower carries the scratch state of one RegionGrow call.
type grower struct {
	src       *raster.Image
	threshold int
	visited   []bool
	labels    *LabelGrid
	queue     []int
}

// grow runs a breadth-first fill from start. A dequeued pixel joins when its
// intensity is within threshold of the start pixel's. It reports whether any
// pixel joined.
func (g *grower) grow(start int, label int32) bool {
	w, h := g.src.Width, g.src.Height
	seed := g.src.Intensity(start * 4)
	grown := false

	g.queue = append(g.queue[:0], start)
	for head := 0; head < len(g.queue); head++ {
		p := g.queue[head]
		if g.visited[p] {
			continue
		}
		d := g.src.Intensity(p*4) - seed
		if d < -g.threshold || d > g.threshold {
			continue
		}
		g.visited[p] = true
		g.labels.Labels[p] = label
		grown = true

		x, y := p%w, p/w
		for _, n := range neighbors8 {
			nx, ny := x+n[0], y+n[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if q := ny*w + nx; !g.visited[q] {
				g.queue = append(g.queue, q)
			}
		}
	}
	return grown
}

// RegionGrow segments src by growing a region from (seedX, seedY) and then
// from every pixel still unvisited, in raster order.
//
// Parameters:
//   - src: the image to segment
//   - seedX, seedY: the first seed; it must lie inside src
//   - threshold: the largest intensity difference, 0 to 255, allowed within
//     a region
//
// Returns the labeled image and the region count, or ErrInvalidParam when
// the seed or threshold is out of range.
//
// # Algorithm
//
// Intensity is the rounded mean of R, G and B. Each region is compared with
// the intensity of the pixel it started from, and two pixels are in the same
// region only if they are 8-connected through members. Every pixel ends up in
// exactly one region; the output paints each region with LabelColor.
func RegionGrow(src *raster.Image, seedX, seedY, threshold int) (*RegionResult, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if !src.In(seedX, seedY) {
		return nil, fmt.Errorf("%w: seed (%d,%d) outside %dx%d image", ErrInvalidParam, seedX, seedY, src.Width, src.Height)
	}
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("%w: threshold must be in [0, 255], got %d", ErrInvalidParam, threshold)
	}

	n := src.Width * src.Height
	g := &grower{
		src:       src,
		threshold: threshold,
		visited:   make([]bool, n),
		labels:    NewLabelGrid(src.Width, src.Height),
	}

	label := int32(1)
	if g.grow(seedY*src.Width+seedX, label) {
		label++
	}
	for p := 0; p < n; p++ {
		if !g.visited[p] && g.grow(p, label) {
			label++
		}
	}

	dst := src.Clone()
	colors := make(map[int32]color.NRGBA)
	for p, l := range g.labels.Labels {
		if l <= 0 {
			continue
		}
		c, ok := colors[l]
		if !ok {
			c = LabelColor(l)
			colors[l] = c
		}
		dst.SetColor(p*4, c)
	}

	return &RegionResult{
		Image:   dst,
		Labels:  g.labels,
		Regions: int(label - 1),
	}, nil
}
