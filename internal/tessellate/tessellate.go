/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package tessellate turns two-point shape descriptors into the polylines a
// backend draws. All functions are total: degenerate shapes fall through the
// regular formulas.
package tessellate

import (
	"math"

	"sketchcanvas/internal/domain"
)

const (
	// StepsPerSide is the number of subdivisions walked on each rectangle side.
	StepsPerSide = 9
	// EllipseSteps is the number of angular steps around an ellipse. The
	// sequence includes both ends so it has EllipseSteps+1 points.
	EllipseSteps = 36
	// MaxArrowHead caps the length of each arrow head segment.
	MaxArrowHead = 20
	// arrowSpread is the angle between the shaft and each head segment.
	arrowSpread = math.Pi / 6
)

// Tessellate returns the ordered logical points for s.
func Tessellate(s domain.ShapeData) []domain.Point {
	switch s.Type {
	case domain.ShapeLine:
		return Line(s.StartPoint, s.EndPoint)
	case domain.ShapeRectangle:
		return Rectangle(s.StartPoint, s.EndPoint)
	case domain.ShapeCircle:
		return Ellipse(s.StartPoint, s.EndPoint)
	case domain.ShapeArrow:
		return Arrow(s.StartPoint, s.EndPoint)
	case domain.ShapeNone:
		return nil
	}
	return nil
}

// Line is the segment a-b.
func Line(a, b domain.Point) []domain.Point {
	return []domain.Point{a, b}
}

// Rectangle walks the normalized box top, right, bottom, left and closes it.
func Rectangle(a, b domain.Point) []domain.Point {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	w, h := maxX-minX, maxY-minY

	pts := make([]domain.Point, 0, 4*StepsPerSide+1)
	for i := 0; i < StepsPerSide; i++ {
		pts = append(pts, domain.Point{X: minX + w*float64(i)/StepsPerSide, Y: minY})
	}
	for i := 0; i < StepsPerSide; i++ {
		pts = append(pts, domain.Point{X: maxX, Y: minY + h*float64(i)/StepsPerSide})
	}
	for i := 0; i < StepsPerSide; i++ {
		pts = append(pts, domain.Point{X: maxX - w*float64(i)/StepsPerSide, Y: maxY})
	}
	for i := 0; i < StepsPerSide; i++ {
		pts = append(pts, domain.Point{X: minX, Y: maxY - h*float64(i)/StepsPerSide})
	}
	return append(pts, domain.Point{X: minX, Y: minY})
}

// Ellipse approximates the ellipse inscribed in the box a-b. The first and
// last points coincide.
func Ellipse(a, b domain.Point) []domain.Point {
	cx, cy := (a.X+b.X)/2, (a.Y+b.Y)/2
	rx, ry := math.Abs(b.X-a.X)/2, math.Abs(b.Y-a.Y)/2

	pts := make([]domain.Point, 0, EllipseSteps+1)
	for i := 0; i <= EllipseSteps; i++ {
		theta := float64(i) / EllipseSteps * 2 * math.Pi
		if i == EllipseSteps {
			// sin(2π) is not exactly zero in float64; close the loop on angle 0
			theta = 0
		}
		pts = append(pts, domain.Point{X: cx + rx*math.Cos(theta), Y: cy + ry*math.Sin(theta)})
	}
	return pts
}

// Arrow is the shaft a-b followed by a V head at b. The end point is
// revisited between the two head segments so one polyline draws both.
func Arrow(a, b domain.Point) []domain.Point {
	left, right := ArrowHead(a, b)
	return []domain.Point{a, b, b, left, b, right}
}

// ArrowHead returns the two head tips for an arrow a-b. Each head segment is
// min(MaxArrowHead, |ab|/3) long, so a zero-length arrow has a zero head.
func ArrowHead(a, b domain.Point) (left, right domain.Point) {
	dx, dy := b.X-a.X, b.Y-a.Y
	angle := math.Atan2(dy, dx)
	n := math.Min(MaxArrowHead, math.Hypot(dx, dy)/3)
	left = domain.Point{X: b.X - n*math.Cos(angle+arrowSpread), Y: b.Y - n*math.Sin(angle+arrowSpread)}
	right = domain.Point{X: b.X - n*math.Cos(angle-arrowSpread), Y: b.Y - n*math.Sin(angle-arrowSpread)}
	return left, right
}

// FillDiagonals returns the two corner-to-corner segments drawn for a filled
// rectangle. Any other shape, or an unfilled rectangle, has none.
func FillDiagonals(s domain.ShapeData) [][2]domain.Point {
	if s.Type != domain.ShapeRectangle || !s.Filled {
		return nil
	}
	a, b := s.StartPoint, s.EndPoint
	return [][2]domain.Point{
		{a, b},
		{{X: b.X, Y: a.Y}, {X: a.X, Y: b.Y}},
	}
}
