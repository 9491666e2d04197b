/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes vector renditions (PDF, SVG) of a sketch document.
package export

import (
	"image/color"

	"sketchcanvas/internal/coords"
	"sketchcanvas/internal/domain"
	"sketchcanvas/internal/tessellate"
	"sketchcanvas/internal/wire"
)

// DefaultSize is used for documents that carry no size.
var DefaultSize = domain.Size{Width: 800, Height: 600}

// Polyline is one stroke in document coordinates.
type Polyline struct {
	Color  color.NRGBA
	Width  float64
	Points []domain.Point
}

// pageSize is the document size or DefaultSize.
func pageSize(doc wire.Document) domain.Size {
	if doc.Size.Width <= 0 || doc.Size.Height <= 0 {
		return DefaultSize
	}
	return doc.Size
}

// Layout fits every path and shape of doc to its page size, in draw order:
// paths first, then shapes. Filled rectangles contribute their diagonals.
func Layout(doc wire.Document) []Polyline {
	page := pageSize(doc)
	out := make([]Polyline, 0, len(doc.Paths)+len(doc.Shapes))
	for _, p := range doc.Paths {
		pts := p.Path.Points()
		for i := range pts {
			pts[i] = coords.Identity.Rescale(pts[i], page, p.Size)
		}
		out = append(out, Polyline{Color: domain.MustColor(p.Path.Color), Width: strokeWidth(p.Path.Width), Points: pts})
	}
	for _, sh := range doc.Shapes {
		s := sh.Shape
		s.StartPoint = coords.Identity.Rescale(s.StartPoint, page, sh.Size)
		s.EndPoint = coords.Identity.Rescale(s.EndPoint, page, sh.Size)
		col, w := domain.MustColor(s.Color), strokeWidth(s.Width)
		for _, d := range tessellate.FillDiagonals(s) {
			out = append(out, Polyline{Color: col, Width: w, Points: []domain.Point{d[0], d[1]}})
		}
		if pts := tessellate.Tessellate(s); len(pts) > 0 {
			out = append(out, Polyline{Color: col, Width: w, Points: pts})
		}
	}
	return out
}

func strokeWidth(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}

// textOrigin resolves the top-left corner of t on a page.
func textOrigin(t domain.CanvasText, page domain.Size) domain.Point {
	if t.Coordinate == "Ratio" {
		return domain.Point{X: t.Position.X * page.Width, Y: t.Position.Y * page.Height}
	}
	return t.Position
}
