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

	"sketchcanvas/internal/domain"
)

// maxIDAttempts bounds the draws from a generator that keeps colliding.
const maxIDAttempts = 1000

// rectKeySpan is how many numeric keys past its id an unfilled rectangle
// claims for its redraw buffers.
const rectKeySpan = 3

// nextID draws a path or shape id that is not used by any committed,
// queued or active entry. Unfilled rectangles address buffers id..id+3 by
// number, so those keys are kept apart from every other id as well; rect
// asks for an id whose whole span is free.
func (s *Session) nextID(rect bool) int64 {
	taken := s.takenIDs()
	var id int64
	for i := 0; i < maxIDAttempts; i++ {
		id = s.ids()
		if !taken[id] && (!rect || !spanTaken(taken, id)) {
			return id
		}
	}
	s.log.Warn("id generator keeps colliding", slog.Int64("id", id))
	return id
}

func spanTaken(taken map[int64]bool, id int64) bool {
	for k := int64(1); k <= rectKeySpan; k++ {
		if taken[id+k] {
			return true
		}
	}
	return false
}

// takenIDs lists every id a redraw could address: path and shape ids plus
// the numeric keys of rectangle spans.
func (s *Session) takenIDs() map[int64]bool {
	taken := make(map[int64]bool, len(s.paths)+len(s.shapes)+len(s.pendingPaths)+len(s.pendingShapes)+1)
	addShape := func(sh domain.ShapeData) {
		taken[sh.ID] = true
		if sh.Type == domain.ShapeRectangle {
			for k := int64(1); k <= rectKeySpan; k++ {
				taken[sh.ID+k] = true
			}
		}
	}
	for _, p := range s.paths {
		taken[p.Path.ID] = true
	}
	for _, p := range s.pendingPaths {
		taken[p.Path.ID] = true
	}
	for _, sh := range s.shapes {
		addShape(sh.Shape)
	}
	for _, sh := range s.pendingShapes {
		addShape(sh.Shape)
	}
	switch s.active.state {
	case stroking:
		taken[s.active.path.ID] = true
	case shaping:
		addShape(s.active.shape)
	case idle:
	}
	return taken
}

// nextTextID draws an id not used by another text.
func (s *Session) nextTextID() int64 {
	var id int64
	for i := 0; i < maxIDAttempts; i++ {
		id = s.ids()
		if !s.hasText(id) {
			return id
		}
	}
	s.log.Warn("id generator keeps colliding", slog.Int64("text", id))
	return id
}

func (s *Session) hasText(id int64) bool {
	for _, t := range s.texts {
		if t.ID == id {
			return true
		}
	}
	return false
}
