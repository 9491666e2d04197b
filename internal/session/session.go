/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package session holds the drawing state of one sketch surface: committed
// paths and shapes, the stroke or shape being drawn, queued ingestion and the
// text list. Transitions emit render commands and return events.
//
// A Session is owned by one input source and is not safe for concurrent use.
package session

import (
	"log/slog"

	"sketchcanvas/internal/coords"
	"sketchcanvas/internal/domain"
	"sketchcanvas/internal/idgen"
	applog "sketchcanvas/internal/log"
	"sketchcanvas/internal/render"
)

// NoneID is returned by Undo when nothing could be undone.
const NoneID int64 = -1

const (
	DefaultStrokeColor = "#000000"
	DefaultStrokeWidth = 3
)

// Options configure a Session. Start from DefaultOptions.
type Options struct {
	Mode         domain.DrawMode
	Filled       bool
	StrokeColor  string
	StrokeWidth  float64
	TouchEnabled bool
	User         string
	PendingText  bool
	Scaler       coords.Scaler

	// Shapes are committed and drawn once the viewport is known.
	Shapes []domain.Shape
	Texts  []domain.CanvasText

	IDs       idgen.Generator
	Filenames func() string
	Logger    *slog.Logger
}

// DefaultOptions draws black 3px strokes with touch enabled.
func DefaultOptions() Options {
	return Options{
		Mode:         domain.Draw,
		StrokeColor:  DefaultStrokeColor,
		StrokeWidth:  DefaultStrokeWidth,
		TouchEnabled: true,
		Scaler:       coords.Identity,
	}
}

// Pointer is a gesture-down sample: the position relative to the view and
// the same position in page coordinates.
type Pointer struct {
	Location domain.Point
	Page     domain.Point
}

type gesture uint8

const (
	idle gesture = iota
	stroking
	shaping
)

// inProgress is the single slot for the stroke or shape being drawn.
type inProgress struct {
	state gesture
	path  domain.PathData
	shape domain.ShapeData
}

type Session struct {
	mode        domain.DrawMode
	filled      bool
	color       string
	width       float64
	touch       bool
	user        string
	pendingText bool

	emit      *render.Emitter
	ids       idgen.Generator
	filenames func() string
	log       *slog.Logger

	paths  []domain.Path
	shapes []domain.Shape
	active inProgress

	offset domain.Point
	size   domain.Size
	sized  bool

	pendingPaths  []domain.Path
	pendingShapes []domain.Shape

	texts    []domain.CanvasText
	selected int64
	hasSel   bool
}

// New binds a session to sink.
func New(sink render.Sink, opts Options) *Session {
	s := &Session{
		mode:        opts.Mode,
		filled:      opts.Filled,
		color:       opts.StrokeColor,
		width:       opts.StrokeWidth,
		touch:       opts.TouchEnabled,
		user:        opts.User,
		pendingText: opts.PendingText,
		emit:        render.NewEmitter(sink, opts.Scaler),
		ids:         opts.IDs,
		filenames:   opts.Filenames,
		log:         opts.Logger,
	}
	if s.ids == nil {
		s.ids = idgen.Default
	}
	if s.filenames == nil {
		s.filenames = idgen.Filename
	}
	if s.log == nil {
		s.log = applog.WithComponent("session")
	}
	if s.color == "" {
		s.color = DefaultStrokeColor
	}
	s.SetTexts(opts.Texts)
	for _, sh := range opts.Shapes {
		s.AddShape(sh)
	}
	return s
}

// Paths returns a copy of the committed paths.
func (s *Session) Paths() []domain.Path {
	return append([]domain.Path(nil), s.paths...)
}

// Shapes returns a copy of the committed shapes.
func (s *Session) Shapes() []domain.Shape {
	return append([]domain.Shape(nil), s.shapes...)
}

// Texts returns a copy of the current text list.
func (s *Session) Texts() []domain.CanvasText {
	return append([]domain.CanvasText(nil), s.texts...)
}

// Size is the last viewport size; ok is false before the first layout.
func (s *Session) Size() (domain.Size, bool) { return s.size, s.sized }

// Drawing reports whether a stroke or shape gesture is active.
func (s *Session) Drawing() bool { return s.active.state != idle }

// CurrentShape returns the shape being dragged, if any.
func (s *Session) CurrentShape() (domain.Shape, bool) {
	if s.active.state != shaping {
		return domain.Shape{}, false
	}
	return s.wrapShape(s.active.shape), true
}

// CurrentPath returns the stroke being drawn, if any.
func (s *Session) CurrentPath() (domain.PathData, bool) {
	if s.active.state != stroking {
		return domain.PathData{}, false
	}
	p := s.active.path
	p.Data = append([]string(nil), p.Data...)
	return p, true
}

func (s *Session) wrapShape(sh domain.ShapeData) domain.Shape {
	return domain.Shape{Drawer: s.user, Size: s.size, Shape: sh}
}

func (s *Session) Mode() domain.DrawMode { return s.mode }
func (s *Session) Filled() bool          { return s.filled }
func (s *Session) User() string          { return s.user }

func (s *Session) SetDrawMode(m domain.DrawMode) {
	s.log.Debug("draw mode", slog.String("mode", m.String()))
	s.mode = m
}

// SetFilled sets the fill flag for new shapes and for the shape being
// dragged. Redraws of that shape then delete the buffer set of the new fill
// state only.
func (s *Session) SetFilled(filled bool) {
	s.filled = filled
	if s.active.state == shaping && s.active.shape.Filled != filled {
		s.log.Debug("fill toggled mid-drag", slog.Int64("shape", s.active.shape.ID), slog.Bool("filled", filled))
		s.active.shape.Filled = filled
	}
}

func (s *Session) ToggleFilled() bool {
	s.SetFilled(!s.filled)
	return s.filled
}

func (s *Session) SetStrokeColor(c string)  { s.color = c }
func (s *Session) SetStrokeWidth(w float64) { s.width = w }
func (s *Session) SetTouchEnabled(on bool)  { s.touch = on }
func (s *Session) SetUser(u string)         { s.user = u }
func (s *Session) SetPendingText(on bool)   { s.pendingText = on }

// SetScaler changes the logical to device factor for later commands.
func (s *Session) SetScaler(sc coords.Scaler) { s.emit.SetScaler(sc) }
