/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"sketchcanvas/internal/coords"
	"sketchcanvas/internal/domain"
	"sketchcanvas/internal/tessellate"
)

// Emitter writes commands to a Sink, converting logical coordinates and
// widths to device pixels on the way.
type Emitter struct {
	sink   Sink
	scaler coords.Scaler
}

// NewEmitter returns an Emitter. A nil sink discards.
func NewEmitter(sink Sink, scaler coords.Scaler) *Emitter {
	if sink == nil {
		sink = Discard
	}
	return &Emitter{sink: sink, scaler: scaler}
}

func (e *Emitter) Scaler() coords.Scaler { return e.scaler }

func (e *Emitter) SetScaler(s coords.Scaler) { e.scaler = s }

// NewPath starts buffer key with a logical stroke width.
func (e *Emitter) NewPath(key, color string, width float64) {
	e.sink.Emit(NewPath{ID: key, Color: color, Width: e.scaler.Width(width)})
}

// Point appends a logical point.
func (e *Emitter) Point(p domain.Point) {
	d := e.scaler.Device(p)
	e.sink.Emit(AddPoint{X: d.X, Y: d.Y})
}

// DevicePoint appends a point that is already in device pixels.
func (e *Emitter) DevicePoint(p domain.Point) {
	e.sink.Emit(AddPoint{X: p.X, Y: p.Y})
}

func (e *Emitter) EndPath()              { e.sink.Emit(EndPath{}) }
func (e *Emitter) DeletePath(key string) { e.sink.Emit(DeletePath{ID: key}) }
func (e *Emitter) Clear()                { e.sink.Emit(Clear{}) }

func (e *Emitter) AddText(t domain.CanvasText)    { e.sink.Emit(AddText{Text: t}) }
func (e *Emitter) UpdateText(t domain.CanvasText) { e.sink.Emit(UpdateText{Text: t}) }
func (e *Emitter) DeleteText(id int64)            { e.sink.Emit(DeleteText{ID: id}) }

func (e *Emitter) Save(p domain.SavePreference) { e.sink.Emit(Save{Pref: p}) }

func (e *Emitter) TransferToBase64(req ImageRequest, done func(string, error)) {
	e.sink.Emit(TransferToBase64{Request: req, Done: done})
}

// Polyline emits newPath followed by one addPoint per point. The buffer is
// left open.
func (e *Emitter) Polyline(key, color string, width float64, pts []domain.Point) {
	e.NewPath(key, color, width)
	for _, p := range pts {
		e.Point(p)
	}
}

// Shape draws s. Filled rectangle diagonals are drawn first as sealed
// buffers; the outline stays open under the shape's bare id until the
// gesture ends.
func (e *Emitter) Shape(s domain.ShapeData) {
	for i, d := range tessellate.FillDiagonals(s) {
		e.Polyline(DiagKey(s.ID, i), s.Color, s.Width, d[:])
		e.EndPath()
	}
	e.Polyline(Key(s.ID), s.Color, s.Width, tessellate.Tessellate(s))
}

// Redraw deletes the buffers RedrawKeys(s) names and draws s again.
func (e *Emitter) Redraw(s domain.ShapeData) {
	for _, k := range RedrawKeys(s) {
		e.DeletePath(k)
	}
	e.Shape(s)
}

// RemoveShape deletes a committed shape, including its diagonals.
func (e *Emitter) RemoveShape(s domain.ShapeData) {
	e.DeletePath(Key(s.ID))
	for i := range tessellate.FillDiagonals(s) {
		e.DeletePath(DiagKey(s.ID, i))
	}
}
