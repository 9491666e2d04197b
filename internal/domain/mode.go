/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ShapeKind enumerates the parametric shapes.
type ShapeKind uint8

const (
	ShapeNone ShapeKind = iota
	ShapeLine
	ShapeRectangle
	ShapeCircle
	ShapeArrow
)

var shapeNames = [...]string{
	ShapeNone:      "none",
	ShapeLine:      "line",
	ShapeRectangle: "rectangle",
	ShapeCircle:    "circle",
	ShapeArrow:     "arrow",
}

func (k ShapeKind) String() string {
	if int(k) < len(shapeNames) {
		return shapeNames[k]
	}
	return fmt.Sprintf("ShapeKind(%d)", uint8(k))
}

// ParseShapeKind maps a wire name to a ShapeKind. Unknown names are an error.
func ParseShapeKind(s string) (ShapeKind, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for k, name := range shapeNames {
		if name == n {
			return ShapeKind(k), nil
		}
	}
	return ShapeNone, fmt.Errorf("unknown shape type %q", s)
}

func (k ShapeKind) MarshalText() ([]byte, error) {
	if int(k) >= len(shapeNames) {
		return nil, fmt.Errorf("invalid shape kind %d", uint8(k))
	}
	return []byte(shapeNames[k]), nil
}

func (k *ShapeKind) UnmarshalText(b []byte) error {
	v, err := ParseShapeKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ModeKind is the top-level drawing mode.
type ModeKind uint8

const (
	ModeDraw ModeKind = iota
	ModeShape
	ModeNone
)

// DrawMode selects what a gesture produces: a freehand stroke, one shape kind,
// or nothing. Shape is only meaningful when Kind is ModeShape.
type DrawMode struct {
	Kind  ModeKind
	Shape ShapeKind
}

var (
	Draw   = DrawMode{Kind: ModeDraw}
	NoDraw = DrawMode{Kind: ModeNone}
	Line   = ShapeMode(ShapeLine)
	Rect   = ShapeMode(ShapeRectangle)
	Circle = ShapeMode(ShapeCircle)
	Arrow  = ShapeMode(ShapeArrow)
)

// ErrUnknownDrawMode is returned by ParseDrawMode.
var ErrUnknownDrawMode = errors.New("unknown draw mode")

// ShapeMode returns the mode drawing shapes of kind k. ShapeNone maps to NoDraw.
func ShapeMode(k ShapeKind) DrawMode {
	if k == ShapeNone {
		return NoDraw
	}
	return DrawMode{Kind: ModeShape, Shape: k}
}

// ParseDrawMode accepts draw|line|rectangle|circle|arrow|none.
func ParseDrawMode(s string) (DrawMode, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	if n == "draw" {
		return Draw, nil
	}
	k, err := ParseShapeKind(n)
	if err != nil {
		return NoDraw, fmt.Errorf("%w: %q", ErrUnknownDrawMode, s)
	}
	return ShapeMode(k), nil
}

func (m DrawMode) String() string {
	switch m.Kind {
	case ModeDraw:
		return "draw"
	case ModeShape:
		return m.Shape.String()
	case ModeNone:
		return "none"
	}
	return fmt.Sprintf("DrawMode(%d)", uint8(m.Kind))
}
