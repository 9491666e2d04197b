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
	"sketchcanvas/internal/render"
)

// SetViewport records the view size from a layout pass. The first call
// flushes paths and shapes queued by AddPath and AddShape.
func (s *Session) SetViewport(size domain.Size) {
	s.size = size
	first := !s.sized
	s.sized = true
	if !first {
		return
	}
	paths, shapes := s.pendingPaths, s.pendingShapes
	s.pendingPaths, s.pendingShapes = nil, nil
	if len(paths)+len(shapes) > 0 {
		s.log.Info("flushing queued ingestion", slog.Int("paths", len(paths)), slog.Int("shapes", len(shapes)))
	}
	for _, p := range paths {
		s.AddPath(p)
	}
	for _, sh := range shapes {
		s.AddShape(sh)
	}
}

// AddPath replays a path captured on another surface. Before the first
// SetViewport the path is queued. Points are rescaled from the sender's view
// size to local device pixels and malformed points are skipped. The buffer
// is left open. A path whose id is already known is ignored; the result
// reports whether p was taken.
func (s *Session) AddPath(p domain.Path) bool {
	if s.hasPath(p.Path.ID) {
		return false
	}
	if !s.sized {
		s.pendingPaths = append(s.pendingPaths, p)
		return true
	}
	s.paths = append(s.paths, p)

	sc := s.emit.Scaler()
	s.emit.NewPath(render.Key(p.Path.ID), p.Path.Color, p.Path.Width)
	skipped := 0
	for _, raw := range p.Path.Data {
		pt, ok := domain.ParsePoint(raw)
		if !ok {
			skipped++
			continue
		}
		s.emit.DevicePoint(sc.Rescale(pt, s.size, p.Size))
	}
	if skipped > 0 {
		s.log.Warn("skipped malformed points", slog.Int64("path", p.Path.ID), slog.Int("skipped", skipped))
	}
	return true
}

// AddShape replays a committed shape from another surface with the same
// queueing and de-duplication rules as AddPath. The drawn copy is rescaled
// to the local view; the committed entry keeps the sender's coordinates.
func (s *Session) AddShape(sh domain.Shape) bool {
	if s.hasShape(sh.Shape.ID) {
		return false
	}
	if !s.sized {
		s.pendingShapes = append(s.pendingShapes, sh)
		return true
	}
	s.shapes = append(s.shapes, sh)

	local := sh.Shape
	local.StartPoint = rescaleLogical(local.StartPoint, s.size, sh.Size)
	local.EndPoint = rescaleLogical(local.EndPoint, s.size, sh.Size)
	s.emit.Shape(local)
	s.emit.EndPath()
	return true
}

func rescaleLogical(p domain.Point, local, sender domain.Size) domain.Point {
	return coords.Identity.Rescale(p, local, sender)
}

func (s *Session) hasPath(id int64) bool {
	for _, p := range s.paths {
		if p.Path.ID == id {
			return true
		}
	}
	for _, p := range s.pendingPaths {
		if p.Path.ID == id {
			return true
		}
	}
	return false
}

func (s *Session) hasShape(id int64) bool {
	for _, sh := range s.shapes {
		if sh.Shape.ID == id {
			return true
		}
	}
	for _, sh := range s.pendingShapes {
		if sh.Shape.ID == id {
			return true
		}
	}
	return false
}
