/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package raster is a software rendering backend for the command stream:
// it keeps polyline buffers, rasterizes them with x/image/vector and
// exports PNG or JPEG images.
package raster

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"os"
	"slices"
	"sync"

	"sketchcanvas/internal/coords"
	"sketchcanvas/internal/domain"
	applog "sketchcanvas/internal/log"
	"sketchcanvas/internal/render"
)

// Options configure a Canvas.
type Options struct {
	// Width and Height are in device pixels.
	Width, Height int
	// Scaler maps text positions and font sizes to device pixels. Paths
	// arrive in device pixels already.
	Scaler     coords.Scaler
	Background color.Color
	// Source is drawn under the sketch when an export includes the image.
	Source image.Image
	// Dir is used for saves without a folder.
	Dir         string
	JPEGQuality int
	Logger      *slog.Logger
}

type buffer struct {
	id     string
	color  color.NRGBA
	width  float64
	points []domain.Point
	sealed bool
}

// Canvas implements render.Sink. Emit may be called from the session's
// goroutine while exports run in the background.
type Canvas struct {
	opts Options
	log  *slog.Logger

	mu      sync.Mutex
	buffers []*buffer
	current *buffer
	texts   []domain.CanvasText

	exports sync.WaitGroup
	results chan domain.ExportResult
	closed  bool
}

// ErrClosed is passed to TransferToBase64 callbacks issued after Close.
var ErrClosed = errors.New("raster: canvas closed")

var _ render.Sink = (*Canvas)(nil)

// New returns an empty canvas. Zero dimensions default to 1x1.
func New(opts Options) *Canvas {
	if opts.Width <= 0 {
		opts.Width = 1
	}
	if opts.Height <= 0 {
		opts.Height = 1
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	if opts.Dir == "" {
		opts.Dir = os.TempDir()
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 90
	}
	lg := opts.Logger
	if lg == nil {
		lg = applog.WithComponent("raster")
	}
	return &Canvas{opts: opts, log: lg, results: make(chan domain.ExportResult, 8)}
}

// Results delivers one ExportResult per save command.
func (c *Canvas) Results() <-chan domain.ExportResult { return c.results }

// Close waits for running exports and closes Results. Exports requested
// afterwards are refused; drawing commands are still applied.
func (c *Canvas) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	c.exports.Wait()
	close(c.results)
}

// Emit applies one command.
func (c *Canvas) Emit(cmd render.Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := cmd.(type) {
	case render.NewPath:
		c.remove(v.ID)
		col, err := domain.ParseColor(v.Color)
		if err != nil {
			c.log.Warn("bad stroke color", slog.String("path", v.ID), slog.String("err", err.Error()))
		}
		b := &buffer{id: v.ID, color: col, width: v.Width}
		c.buffers = append(c.buffers, b)
		c.current = b
	case render.AddPoint:
		if c.current == nil {
			c.log.Debug("addPoint without open path")
			return
		}
		c.current.points = append(c.current.points, domain.Point{X: v.X, Y: v.Y})
	case render.EndPath:
		if c.current != nil {
			c.current.sealed = true
			c.current = nil
		}
	case render.DeletePath:
		c.remove(v.ID)
	case render.Clear:
		c.buffers = nil
		c.current = nil
	case render.AddText:
		c.upsertText(v.Text)
	case render.UpdateText:
		c.upsertText(v.Text)
	case render.DeleteText:
		c.texts = slices.DeleteFunc(c.texts, func(t domain.CanvasText) bool { return t.ID == v.ID })
	case render.Save:
		if c.closed {
			c.log.Warn("save after close dropped", slog.String("file", v.Pref.Filename))
			return
		}
		c.startSave(v.Pref, c.snapshotLocked())
	case render.TransferToBase64:
		if c.closed {
			if v.Done != nil {
				go v.Done("", ErrClosed)
			}
			return
		}
		c.startBase64(v, c.snapshotLocked())
	default:
		c.log.Warn("unknown command", slog.String("name", cmd.Name()))
	}
}

func (c *Canvas) remove(id string) {
	c.buffers = slices.DeleteFunc(c.buffers, func(b *buffer) bool {
		if b.id != id {
			return false
		}
		if b == c.current {
			c.current = nil
		}
		return true
	})
}

func (c *Canvas) upsertText(t domain.CanvasText) {
	for i := range c.texts {
		if c.texts[i].ID == t.ID {
			c.texts[i] = t
			return
		}
	}
	c.texts = append(c.texts, t)
}

// Buffers lists buffer ids in draw order.
func (c *Canvas) Buffers() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, len(c.buffers))
	for i, b := range c.buffers {
		ids[i] = b.id
	}
	return ids
}

// Snapshot is an immutable copy of the canvas contents.
type Snapshot struct {
	Width, Height int
	Strokes       []Stroke
	Texts         []domain.CanvasText
}

// Stroke is one polyline in device pixels.
type Stroke struct {
	ID     string
	Color  color.NRGBA
	Width  float64
	Points []domain.Point
	Sealed bool
}

// Snapshot copies the current contents.
func (c *Canvas) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Canvas) snapshotLocked() Snapshot {
	s := Snapshot{Width: c.opts.Width, Height: c.opts.Height, Texts: slices.Clone(c.texts)}
	s.Strokes = make([]Stroke, len(c.buffers))
	for i, b := range c.buffers {
		s.Strokes[i] = Stroke{ID: b.id, Color: b.color, Width: b.width, Points: slices.Clone(b.points), Sealed: b.sealed}
	}
	return s
}
