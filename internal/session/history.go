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

	"sketchcanvas/internal/render"
)

// Undo removes the most recent shape if there is one, otherwise the most
// recent path drawn by the current user. It returns the removed id or NoneID.
func (s *Session) Undo() (int64, []Event) {
	if n := len(s.shapes); n > 0 {
		last := s.shapes[n-1]
		s.shapes = s.shapes[:n-1]
		s.emit.RemoveShape(last.Shape)
		s.log.Debug("undo shape", slog.Int64("shape", last.Shape.ID))
		return last.Shape.ID, []Event{ShapesChanged{Count: len(s.shapes)}}
	}
	id := NoneID
	for _, p := range s.paths {
		if p.Drawer == s.user {
			id = p.Path.ID
		}
	}
	if id == NoneID {
		return NoneID, nil
	}
	s.DeletePath(id)
	s.log.Debug("undo path", slog.Int64("path", id))
	return id, nil
}

// DeletePath removes committed paths with id and tells the backend to drop
// the buffer. The command is sent even if no committed path matched.
func (s *Session) DeletePath(id int64) {
	kept := s.paths[:0]
	for _, p := range s.paths {
		if p.Path.ID != id {
			kept = append(kept, p)
		}
	}
	clear(s.paths[len(kept):])
	s.paths = kept
	s.emit.DeletePath(render.Key(id))
}

// Clear drops all committed content and any active gesture.
func (s *Session) Clear() {
	s.paths = nil
	s.shapes = nil
	s.active = inProgress{}
	s.selected, s.hasSel = 0, false
	s.emit.Clear()
	s.log.Debug("cleared")
}
