/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package hittest

import (
	"testing"

	"sketchcanvas/internal/domain"
)

func TestHitTestHi(t *testing.T) {
	texts := []domain.CanvasText{{ID: 1, Text: "Hi", FontSize: 20, Position: domain.Point{}}}
	if id, ok := HitTest(domain.Point{X: 5, Y: 5}, texts); !ok || id != 1 {
		t.Fatalf("tap at (5,5) got %d %v want 1 true", id, ok)
	}
	if _, ok := HitTest(domain.Point{X: 50, Y: 50}, texts); ok {
		t.Fatalf("tap at (50,50) should miss")
	}
	b := Bounds(texts[0])
	if b.MaxX != 24 || b.MaxY != 24 {
		t.Fatalf("bounds got %+v want max 24x24", b)
	}
}

func TestHitTestOrderAndPadding(t *testing.T) {
	texts := []domain.CanvasText{
		{ID: 7, Text: "abc", Position: domain.Point{X: 100, Y: 100}},
		{ID: 8, Text: "under", FontSize: 30, Position: domain.Point{X: 90, Y: 90}, Padding: 5},
		{ID: 9, Text: "top", FontSize: 30, Position: domain.Point{X: 90, Y: 90}},
	}
	if id, _ := HitTest(domain.Point{X: 101, Y: 101}, texts); id != 7 {
		t.Fatalf("earliest text should win, got %d", id)
	}
	if id, ok := HitTest(domain.Point{X: 86, Y: 86}, texts); !ok || id != 8 {
		t.Fatalf("padding should extend the box, got %d %v", id, ok)
	}
}

func TestHitTestEmptyAndIndexFallback(t *testing.T) {
	if _, ok := HitTest(domain.Point{}, nil); ok {
		t.Fatalf("nil list should never hit")
	}
	texts := []domain.CanvasText{
		{ID: 3, Text: "x", Position: domain.Point{X: 500}},
		{Text: "anon", Position: domain.Point{}},
	}
	if id, ok := HitTest(domain.Point{X: 1, Y: 1}, texts); !ok || id != 1 {
		t.Fatalf("text without id should report index 1, got %d %v", id, ok)
	}
}

func TestBoundsCountsUTF16Units(t *testing.T) {
	// U+1F600 is one rune but two UTF-16 code units.
	emoji := Bounds(domain.CanvasText{Text: "\U0001F600", FontSize: 10})
	ascii := Bounds(domain.CanvasText{Text: "ab", FontSize: 10})
	if emoji != ascii {
		t.Fatalf("emoji box %+v should match two-letter box %+v", emoji, ascii)
	}
	if w := Bounds(domain.CanvasText{Text: "é", FontSize: 10}).MaxX; w != 6 {
		t.Fatalf("BMP character width got %v want 6", w)
	}
}
