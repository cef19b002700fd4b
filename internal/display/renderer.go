package display

import (
	"context"
	"log"
	"time"

	"github.com/jpillora/backoff"

	"github.com/fkcurrie/hub75-golang/internal/types"
)

// Renderer handles the refresh loop: it redraws the content at the
// configured interval and refreshes the panel in between, from a single
// goroutine so drawing never overlaps a scan.
type Renderer struct {
	matrix   types.Matrix
	content  Content
	interval time.Duration
	backoff  *backoff.Backoff
	frame    int
}

// NewRenderer creates a new renderer instance
func NewRenderer(matrix types.Matrix, content Content, cfg *types.RenderConfig) *Renderer {
	return &Renderer{
		matrix:   matrix,
		content:  content,
		interval: time.Duration(cfg.UpdateInterval) * time.Millisecond,
		backoff: &backoff.Backoff{
			Min:    time.Duration(cfg.BackoffMin) * time.Millisecond,
			Max:    time.Duration(cfg.BackoffMax) * time.Millisecond,
			Factor: 2,
		},
	}
}

// Frame returns the number of content updates drawn so far
func (r *Renderer) Frame() int {
	return r.frame
}

// Run refreshes the panel until ctx is cancelled. A scan in progress is
// always finished first. A failed refresh is logged and retried after a
// growing pause.
func (r *Renderer) Run(ctx context.Context) error {
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if last.IsZero() || time.Since(last) >= r.interval {
			r.update()
			last = time.Now()
		}

		if err := r.matrix.Display(); err != nil {
			wait := r.backoff.Duration()
			log.Printf("Failed to refresh panel: %v (retrying in %v)", err, wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}
		r.backoff.Reset()
	}
}

// update redraws the content into the frame buffer
func (r *Renderer) update() {
	r.matrix.Clear()
	if r.content != nil {
		r.content.Draw(Clip(r.matrix), r.frame)
	}
	r.frame++
}

// Blank clears the frame buffer and refreshes once so the panel goes dark
func (r *Renderer) Blank() error {
	r.matrix.Clear()
	return r.matrix.Display()
}
