/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package hittest finds the text annotation under a tap using an estimated
// box per text. The estimate is coarse and does not measure glyphs.
package hittest

import (
	"unicode/utf16"

	"sketchcanvas/internal/domain"
)

const (
	// CharWidth is the advance of one character relative to the font size.
	CharWidth = 0.6
	// LineHeight is the height of one line relative to the font size.
	LineHeight = 1.2
)

// Box is the estimated hit area of a text.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Box) Contains(p domain.Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Bounds estimates the box of t: len(text)*size*CharWidth wide and
// size*LineHeight tall, grown by the padding on every side. The length
// counts UTF-16 code units, so characters outside the BMP count twice, as
// they do for JavaScript hosts.
func Bounds(t domain.CanvasText) Box {
	size := t.EffectiveFontSize()
	w := float64(textLen(t.Text)) * size * CharWidth
	h := size * LineHeight
	pad := t.Padding
	return Box{
		MinX: t.Position.X - pad,
		MinY: t.Position.Y - pad,
		MaxX: t.Position.X + w + pad,
		MaxY: t.Position.Y + h + pad,
	}
}

// HitTest returns the id of the first text whose box contains p. List order
// is z-order, so earlier texts win. Texts without an id report their index.
func HitTest(p domain.Point, texts []domain.CanvasText) (int64, bool) {
	for i, t := range texts {
		if !Bounds(t).Contains(p) {
			continue
		}
		if t.ID != 0 {
			return t.ID, true
		}
		return int64(i), true
	}
	return 0, false
}

func textLen(s string) int {
	return len(utf16.Encode([]rune(s)))
}
