/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package session

import "sketchcanvas/internal/domain"

// Event is a notification produced by a session transition. Callers decide
// how to deliver it.
type Event interface {
	Kind() string
}

// TextPlaced reports a tap while in pending-text mode.
type TextPlaced struct{ Position domain.Point }

// TextTapped reports a tap on an existing text.
type TextTapped struct{ ID int64 }

type StrokeStarted struct{ Point domain.Point }
type StrokeChanged struct{ Point domain.Point }
type StrokeEnded struct{ Path domain.Path }

type ShapeStarted struct{ Point domain.Point }
type ShapeChanged struct{ Shape domain.Shape }
type ShapeEnded struct{ Shape domain.Shape }

// ShapesChanged carries the committed shape count.
type ShapesChanged struct{ Count int }

// PathsChanged carries the path count reported by the backend.
type PathsChanged struct{ Count int }

// TextEditingComplete reports an added or updated text.
type TextEditingComplete struct{ Text domain.CanvasText }

// SketchSaved reports the outcome of an export.
type SketchSaved struct {
	Success bool
	Path    string
}

func (TextPlaced) Kind() string          { return "textPlaced" }
func (TextTapped) Kind() string          { return "textTapped" }
func (StrokeStarted) Kind() string       { return "strokeStarted" }
func (StrokeChanged) Kind() string       { return "strokeChanged" }
func (StrokeEnded) Kind() string         { return "strokeEnded" }
func (ShapeStarted) Kind() string        { return "shapeStarted" }
func (ShapeChanged) Kind() string        { return "shapeChanged" }
func (ShapeEnded) Kind() string          { return "shapeEnded" }
func (ShapesChanged) Kind() string       { return "shapesChanged" }
func (PathsChanged) Kind() string        { return "pathsChanged" }
func (TextEditingComplete) Kind() string { return "textEditingComplete" }
func (SketchSaved) Kind() string         { return "sketchSaved" }
