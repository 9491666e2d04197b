/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render defines the command stream sent to a rendering backend and
// the Emitter that produces it from logical geometry.
package render

import (
	"sketchcanvas/internal/domain"
)

// Command is one backend instruction. The concrete types below are the only
// implementations.
type Command interface {
	// Name is the backend command name.
	Name() string
}

// NewPath begins a polyline buffer. Width is in device pixels.
type NewPath struct {
	ID    string
	Color string
	Width float64
}

// AddPoint appends a device-pixel vertex to the current buffer.
type AddPoint struct {
	X, Y float64
}

// EndPath seals the current buffer.
type EndPath struct{}

// DeletePath drops a buffer by id. Unknown ids are ignored by backends.
type DeletePath struct {
	ID string
}

// Clear drops every buffer.
type Clear struct{}

// AddText inserts a text overlay.
type AddText struct {
	Text domain.CanvasText
}

// UpdateText replaces the overlay with the same id.
type UpdateText struct {
	Text domain.CanvasText
}

// DeleteText removes a text overlay.
type DeleteText struct {
	ID int64
}

// Save asks the backend to export the canvas to a file. Completion is
// reported asynchronously as a domain.ExportResult.
type Save struct {
	Pref domain.SavePreference
}

// ImageRequest selects what goes into an encoded image.
type ImageRequest struct {
	ImageType       domain.ImageType
	Transparent     bool
	IncludeImage    bool
	IncludeText     bool
	CropToImageSize bool
}

// TransferToBase64 asks the backend for an encoded image. Done is called
// once, possibly from another goroutine.
type TransferToBase64 struct {
	Request ImageRequest
	Done    func(data string, err error)
}

func (NewPath) Name() string          { return "newPath" }
func (AddPoint) Name() string         { return "addPoint" }
func (EndPath) Name() string          { return "endPath" }
func (DeletePath) Name() string       { return "deletePath" }
func (Clear) Name() string            { return "clear" }
func (AddText) Name() string          { return "addText" }
func (UpdateText) Name() string       { return "updateText" }
func (DeleteText) Name() string       { return "deleteText" }
func (Save) Name() string             { return "save" }
func (TransferToBase64) Name() string { return "transferToBase64" }

// Sink consumes commands in order. Emit must not block on rendering.
type Sink interface {
	Emit(Command)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Command)

func (f SinkFunc) Emit(c Command) { f(c) }

// Discard drops every command.
var Discard Sink = SinkFunc(func(Command) {})

// Tee fans commands out to several sinks in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(c Command) {
		for _, s := range sinks {
			s.Emit(c)
		}
	})
}

// Recorder keeps every command it receives.
type Recorder struct {
	Commands []Command
}

func (r *Recorder) Emit(c Command) { r.Commands = append(r.Commands, c) }

// Reset forgets recorded commands.
func (r *Recorder) Reset() { r.Commands = r.Commands[:0] }

// Names lists the recorded command names.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		out[i] = c.Name()
	}
	return out
}

// Deleted lists the ids of recorded DeletePath commands.
func (r *Recorder) Deleted() []string {
	var out []string
	for _, c := range r.Commands {
		if d, ok := c.(DeletePath); ok {
			out = append(out, d.ID)
		}
	}
	return out
}

// Points lists the recorded AddPoint vertices.
func (r *Recorder) Points() []domain.Point {
	var out []domain.Point
	for _, c := range r.Commands {
		if p, ok := c.(AddPoint); ok {
			out = append(out, domain.Point{X: p.X, Y: p.Y})
		}
	}
	return out
}
