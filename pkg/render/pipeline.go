package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Target receives depth-tested pixel writes. Point must write c only when
// depth is within [0, 1] and nearer than what is stored at (x, y), and report
// whether it did.
//
// Targets used with DrawParallel see concurrent Point calls, but never two at
// once for the same pixel.
type Target interface {
	Clear()
	Point(x, y int, depth float64, c uint32) bool
	Width() int
	Height() int
}

var (
	// ErrIndexRange means an index refers past the end of the vertex array.
	ErrIndexRange = errors.New("index out of range")
	// ErrIndexStride means the index list is not a whole number of triangles.
	ErrIndexStride = errors.New("index count not a multiple of 3")
)

// ValidateIndices checks a triangle list against a vertex count. The pipeline
// trusts its inputs, so callers run this once when a mesh is loaded and treat
// a failure as fatal.
func ValidateIndices(vertexCount int, indices []uint32) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrIndexStride, len(indices))
	}
	for i, idx := range indices {
		if int64(idx) >= int64(vertexCount) {
			return fmt.Errorf("%w: indices[%d] = %d, %d vertices", ErrIndexRange, i, idx, vertexCount)
		}
	}
	return nil
}

// Stats counts what happened to one draw call.
type Stats struct {
	Triangles int
	Drawn     int
	Culled    [cullCount]int // indexed by Cull; Accepted stays 0
	Fragments int
	Written   int // fragments that passed the depth test
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Triangles += o.Triangles
	s.Drawn += o.Drawn
	for i := range s.Culled {
		s.Culled[i] += o.Culled[i]
	}
	s.Fragments += o.Fragments
	s.Written += o.Written
}

// Pipeline runs draw calls and keeps scratch buffers between them. The zero
// value is ready to use. A Pipeline is not safe for concurrent draws.
type Pipeline struct {
	// Workers is the number of screen bands DrawParallel splits a frame
	// into. Values below 2 draw sequentially.
	Workers int

	transformed []Vertex
	setups      []setup
	culled      [cullCount]int
	fragments   [][]Fragment
}

// NewPipeline creates a pipeline rasterizing across the given number of bands.
func NewPipeline(workers int) *Pipeline {
	return &Pipeline{Workers: workers}
}

// DrawObject transforms, rasterizes and shades one object into t. Indices are
// a flat triangle list into vertices and must have passed ValidateIndices.
func DrawObject(t Target, u Uniforms, vertices []Vertex, indices []uint32) Stats {
	var p Pipeline
	return p.Draw(t, u, vertices, indices)
}

// DrawObjectParallel is DrawObject split across workers screen bands.
func DrawObjectParallel(ctx context.Context, t Target, u Uniforms, vertices []Vertex, indices []uint32, workers int) (Stats, error) {
	p := Pipeline{Workers: workers}
	return p.DrawParallel(ctx, t, u, vertices, indices)
}

// Draw is DrawObject reusing p's buffers.
func (p *Pipeline) Draw(t Target, u Uniforms, vertices []Vertex, indices []uint32) Stats {
	p.prepare(t, &u, vertices, indices)

	stats := p.setupStats(len(indices) / 3)
	clip := Screen(&u)
	frags := p.fragmentBuffer(0)
	for i := range p.setups {
		frags = p.setups[i].scan(frags[:0], clip)
		stats.Fragments += len(frags)
		stats.Written += commit(t, frags)
	}
	p.fragments[0] = frags[:0]

	logDraw(&u, stats)
	return stats
}

// DrawParallel is Draw with the screen split into p.Workers horizontal bands,
// one goroutine each. Every band walks the triangles in order and owns its
// rows outright, so the result is identical to Draw without any locking.
// Cancelling ctx stops the bands between triangles.
func (p *Pipeline) DrawParallel(ctx context.Context, t Target, u Uniforms, vertices []Vertex, indices []uint32) (Stats, error) {
	fitTarget(&u, t)
	bands := min(p.Workers, u.ScreenHeight)
	if bands < 2 {
		return p.Draw(t, u, vertices, indices), ctx.Err()
	}
	p.prepare(t, &u, vertices, indices)

	stats := p.setupStats(len(indices) / 3)
	perBand := make([]Stats, bands)
	for b := range bands {
		p.fragmentBuffer(b)
	}

	g, ctx := errgroup.WithContext(ctx)
	for b := range bands {
		clip := band(u.ScreenWidth, u.ScreenHeight, bands, b)
		g.Go(func() error {
			frags := p.fragments[b]
			for i := range p.setups {
				if err := ctx.Err(); err != nil {
					return err
				}
				frags = p.setups[i].scan(frags[:0], clip)
				perBand[b].Fragments += len(frags)
				perBand[b].Written += commit(t, frags)
			}
			p.fragments[b] = frags[:0]
			return nil
		})
	}
	err := g.Wait()

	for _, s := range perBand {
		stats.Add(s)
	}
	logDraw(&u, stats)
	return stats, err
}

// prepare runs the vertex stage and triangle setup shared by both draw paths.
func (p *Pipeline) prepare(t Target, u *Uniforms, vertices []Vertex, indices []uint32) {
	fitTarget(u, t)
	p.transformed = TransformVertices(p.transformed, vertices, u)

	p.setups = p.setups[:0]
	p.culled = [cullCount]int{}
	for i := 0; i+2 < len(indices); i += 3 {
		a := &p.transformed[indices[i]]
		b := &p.transformed[indices[i+1]]
		c := &p.transformed[indices[i+2]]
		s, cull := prepare(a, b, c, u)
		p.culled[cull]++
		if cull == Accepted {
			p.setups = append(p.setups, s)
		}
	}
}

// fitTarget sizes the viewport to t when the caller left it unset.
func fitTarget(u *Uniforms, t Target) {
	if u.ScreenWidth == 0 && u.ScreenHeight == 0 {
		u.ScreenWidth, u.ScreenHeight = t.Width(), t.Height()
	}
}

func (p *Pipeline) setupStats(triangles int) Stats {
	s := Stats{Triangles: triangles, Drawn: len(p.setups), Culled: p.culled}
	s.Culled[Accepted] = 0
	return s
}

func (p *Pipeline) fragmentBuffer(i int) []Fragment {
	for len(p.fragments) <= i {
		p.fragments = append(p.fragments, nil)
	}
	return p.fragments[i]
}

// commit depth tests frags into t and returns how many were written.
func commit(t Target, frags []Fragment) int {
	n := 0
	for i := range frags {
		f := &frags[i]
		if t.Point(f.X, f.Y, f.Depth, f.Color.Hex()) {
			n++
		}
	}
	return n
}

// band is row range i of n equal horizontal strips covering a w x h screen.
func band(w, h, n, i int) image.Rectangle {
	return image.Rect(0, h*i/n, w, h*(i+1)/n)
}

func logDraw(u *Uniforms, s Stats) {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug("draw",
		slog.String("shader", u.Archetype().String()),
		slog.Int("triangles", s.Triangles),
		slog.Int("drawn", s.Drawn),
		slog.Int("backface", s.Culled[CullBackface]),
		slog.Int("offscreen", s.Culled[CullOffscreen]),
		slog.Int("depth", s.Culled[CullDepth]),
		slog.Int("degenerate", s.Culled[CullDegenerate]),
		slog.Int("written", s.Written),
	)
}
