/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"sketchcanvas/internal/coords"
	"sketchcanvas/internal/domain"
)

// discSteps is the polygon resolution of round joints and caps.
const discSteps = 16

// Layers selects what Render composites.
type Layers struct {
	Background  color.Color
	Transparent bool
	Source      image.Image
	Image       bool
	Text        bool
	Scaler      coords.Scaler
}

// Render draws snap onto a new image. Open buffers are drawn like sealed
// ones.
func Render(snap Snapshot, l Layers) *image.NRGBA {
	bg := l.Background
	if bg == nil {
		bg = color.White
	}
	if l.Transparent {
		bg = color.Transparent
	}
	dst := imaging.New(snap.Width, snap.Height, bg)
	if l.Image && l.Source != nil {
		dst = imaging.Overlay(dst, l.Source, image.Point{}, 1)
	}

	z := vector.NewRasterizer(snap.Width, snap.Height)
	for _, s := range snap.Strokes {
		if len(s.Points) == 0 {
			continue
		}
		z.Reset(snap.Width, snap.Height)
		stroke(z, s.Points, math.Max(s.Width, 1)/2)
		z.Draw(dst, dst.Bounds(), image.NewUniform(s.Color), image.Point{})
	}

	if l.Text {
		for _, t := range snap.Texts {
			drawText(dst, t, l.Scaler)
		}
	}
	return dst
}

// stroke adds a thick polyline to z: one quad per segment plus a disc at
// every vertex. All sub-paths share one orientation so overlaps saturate
// instead of cancelling.
func stroke(z *vector.Rasterizer, pts []domain.Point, hw float64) {
	for i := 1; i < len(pts); i++ {
		quad(z, pts[i-1], pts[i], hw)
	}
	for _, p := range pts {
		disc(z, p, hw)
	}
}

func quad(z *vector.Rasterizer, a, b domain.Point, hw float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	nx, ny := -dy/n*hw, dx/n*hw
	z.MoveTo(f32(a.X+nx), f32(a.Y+ny))
	z.LineTo(f32(b.X+nx), f32(b.Y+ny))
	z.LineTo(f32(b.X-nx), f32(b.Y-ny))
	z.LineTo(f32(a.X-nx), f32(a.Y-ny))
	z.ClosePath()
}

// disc winds with decreasing angle to match quad.
func disc(z *vector.Rasterizer, c domain.Point, r float64) {
	z.MoveTo(f32(c.X+r), f32(c.Y))
	for i := 1; i < discSteps; i++ {
		a := -float64(i) / discSteps * 2 * math.Pi
		z.LineTo(f32(c.X+r*math.Cos(a)), f32(c.Y+r*math.Sin(a)))
	}
	z.ClosePath()
}

func f32(v float64) float32 { return float32(v) }

// drawText renders t with the fixed 7x13 face. Style fields other than
// colours and position have no effect on this backend.
func drawText(dst draw.Image, t domain.CanvasText, sc coords.Scaler) {
	pos := sc.Device(t.Position)
	if t.Coordinate == "Ratio" {
		b := dst.Bounds()
		pos = domain.Point{X: t.Position.X * float64(b.Dx()), Y: t.Position.Y * float64(b.Dy())}
	}
	face := basicfont.Face7x13
	lines := strings.Split(t.Text, "\n")
	lineH := face.Metrics().Height.Ceil()

	if t.BackgroundColor != "" {
		if bg, err := domain.ParseColor(t.BackgroundColor); err == nil {
			w := 0
			for _, ln := range lines {
				w = max(w, font.MeasureString(face, ln).Ceil())
			}
			pad := int(sc.Width(t.Padding))
			r := image.Rect(int(pos.X)-pad, int(pos.Y)-pad, int(pos.X)+w+pad, int(pos.Y)+lineH*len(lines)+pad)
			draw.Draw(dst, r, image.NewUniform(bg), image.Point{}, draw.Over)
		}
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(domain.MustColor(t.FontColor)),
		Face: face,
	}
	for i, ln := range lines {
		d.Dot = fixed.P(int(pos.X), int(pos.Y)+face.Metrics().Ascent.Ceil()+i*lineH)
		d.DrawString(ln)
	}
}
