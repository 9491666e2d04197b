/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package session

import (
	"log/slog"

	"sketchcanvas/internal/coords"
	"sketchcanvas/internal/domain"
	"sketchcanvas/internal/hittest"
	"sketchcanvas/internal/render"
)

// Start handles gesture-down.
//
// In pending-text mode the tap only reports a placement. Otherwise, with
// touch enabled, a tap on a text selects it. Failing that the current draw
// mode decides whether a stroke, a shape or nothing begins. A gesture left
// active by a suppressed End is replaced.
func (s *Session) Start(p Pointer) []Event {
	if s.pendingText {
		return []Event{TextPlaced{Position: p.Location}}
	}
	if !s.touch {
		return nil
	}
	if len(s.texts) > 0 {
		if id, ok := hittest.HitTest(p.Location, s.texts); ok {
			s.selected, s.hasSel = id, true
			return []Event{TextTapped{ID: id}}
		}
	}

	switch s.mode.Kind {
	case domain.ModeNone:
		return nil
	case domain.ModeDraw:
		s.offset = domain.Point{X: p.Page.X - p.Location.X, Y: p.Page.Y - p.Location.Y}
		pt := coords.Logical(p.Page, s.offset)
		path := domain.PathData{
			ID:    s.nextID(false),
			Color: s.color,
			Width: s.width,
			Data:  []string{domain.FormatPoint(pt)},
		}
		s.active = inProgress{state: stroking, path: path}
		s.emit.NewPath(render.Key(path.ID), path.Color, path.Width)
		s.emit.Point(pt)
		s.log.Debug("stroke start", slog.Int64("path", path.ID))
		return []Event{StrokeStarted{Point: pt}}
	case domain.ModeShape:
		s.offset = domain.Point{X: p.Page.X - p.Location.X, Y: p.Page.Y - p.Location.Y}
		pt := coords.Logical(p.Page, s.offset)
		shape := domain.ShapeData{
			ID:         s.nextID(s.mode.Shape == domain.ShapeRectangle),
			Type:       s.mode.Shape,
			Color:      s.color,
			Width:      s.width,
			Filled:     s.filled,
			StartPoint: pt,
			EndPoint:   pt,
		}
		s.active = inProgress{state: shaping, shape: shape}
		s.emit.Shape(shape)
		s.log.Debug("shape start", slog.Int64("shape", shape.ID), slog.String("type", shape.Type.String()))
		return []Event{ShapeStarted{Point: pt}}
	}
	return nil
}

// Move handles gesture-move with a page coordinate. A stroke only advances
// in draw mode and a shape only in a shape mode; after a mode change the
// active gesture waits until the mode matches again or the next Start
// replaces it.
func (s *Session) Move(page domain.Point) []Event {
	if !s.touch || !s.modeMatches() {
		return nil
	}
	pt := coords.Logical(page, s.offset)
	switch s.active.state {
	case stroking:
		s.active.path.Data = append(s.active.path.Data, domain.FormatPoint(pt))
		s.emit.Point(pt)
		return []Event{StrokeChanged{Point: pt}}
	case shaping:
		s.active.shape.EndPoint = pt
		s.emit.Redraw(s.active.shape)
		return []Event{ShapeChanged{Shape: s.wrapShape(s.active.shape)}}
	case idle:
	}
	return nil
}

// End handles gesture-up and commits the active stroke or shape under the
// same mode rule as Move.
func (s *Session) End() []Event {
	if !s.touch || !s.modeMatches() {
		return nil
	}
	switch s.active.state {
	case stroking:
		path := domain.Path{Drawer: s.user, Size: s.size, Path: s.active.path}
		s.active = inProgress{}
		s.paths = append(s.paths, path)
		s.emit.EndPath()
		s.log.Debug("stroke committed", slog.Int64("path", path.Path.ID), slog.Int("points", len(path.Path.Data)))
		return []Event{StrokeEnded{Path: path}}
	case shaping:
		shape := s.wrapShape(s.active.shape)
		s.active = inProgress{}
		s.shapes = append(s.shapes, shape)
		s.emit.EndPath()
		s.log.Debug("shape committed", slog.Int64("shape", shape.Shape.ID), slog.Int("shapes", len(s.shapes)))
		return []Event{ShapeEnded{Shape: shape}, ShapesChanged{Count: len(s.shapes)}}
	case idle:
	}
	return nil
}

// modeMatches reports whether the active gesture belongs to the current mode.
func (s *Session) modeMatches() bool {
	switch s.active.state {
	case stroking:
		return s.mode.Kind == domain.ModeDraw
	case shaping:
		return s.mode.Kind == domain.ModeShape
	case idle:
	}
	return false
}
