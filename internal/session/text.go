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

// SetTexts replaces the text list used for hit-testing. The caller keeps
// ownership of texts.
func (s *Session) SetTexts(texts []domain.CanvasText) {
	s.texts = append(s.texts[:0], texts...)
}

// SelectedText is the id of the last tapped text.
func (s *Session) SelectedText() (int64, bool) { return s.selected, s.hasSel }

// AddText assigns an id when t has none, sends it to the backend and appends
// it to the list.
func (s *Session) AddText(t domain.CanvasText) (int64, []Event) {
	if t.ID == 0 {
		t.ID = s.nextTextID()
	}
	s.emit.AddText(t)
	s.texts = append(s.texts, t)
	s.log.Debug("text added", slog.Int64("text", t.ID))
	return t.ID, []Event{TextEditingComplete{Text: t}}
}

// UpdateText replaces the text with the same id. Texts without an id are
// ignored.
func (s *Session) UpdateText(t domain.CanvasText) []Event {
	if t.ID == 0 {
		return nil
	}
	s.emit.UpdateText(t)
	for i := range s.texts {
		if s.texts[i].ID == t.ID {
			s.texts[i] = t
		}
	}
	return []Event{TextEditingComplete{Text: t}}
}

// DeleteText removes a text overlay.
func (s *Session) DeleteText(id int64) {
	s.emit.DeleteText(id)
	kept := s.texts[:0]
	for _, t := range s.texts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.texts = kept
	if s.hasSel && s.selected == id {
		s.selected, s.hasSel = 0, false
	}
}
