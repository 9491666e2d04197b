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
	"sketchcanvas/internal/render"
)

// DefaultSavePreference is used by Save(nil): an opaque PNG with image and
// text under a fresh file name.
func (s *Session) DefaultSavePreference() domain.SavePreference {
	return domain.SavePreference{
		ImageType:    domain.ImagePNG,
		Filename:     s.filenames(),
		IncludeImage: true,
		IncludeText:  true,
	}
}

// Save asks the backend to export. The result arrives later through
// HandleExportResult.
func (s *Session) Save(pref *domain.SavePreference) {
	p := s.DefaultSavePreference()
	if pref != nil {
		p = *pref
		if p.ImageType == "" {
			p.ImageType = domain.ImagePNG
		}
		if p.Filename == "" {
			p.Filename = s.filenames()
		}
	}
	s.log.Info("save requested", slog.String("type", string(p.ImageType)), slog.String("folder", p.Folder), slog.String("file", p.Filename))
	s.emit.Save(p)
}

// GetBase64 asks the backend for an encoded image delivered to done.
func (s *Session) GetBase64(req render.ImageRequest, done func(string, error)) {
	if req.ImageType == "" {
		req.ImageType = domain.ImagePNG
	}
	s.emit.TransferToBase64(req, done)
}

// HandleExportResult turns a backend export completion into an event.
func (s *Session) HandleExportResult(r domain.ExportResult) []Event {
	if !r.Success {
		s.log.Warn("export failed", slog.String("path", r.Path))
	}
	return []Event{SketchSaved{Success: r.Success, Path: r.Path}}
}

// HandlePathsUpdate turns a backend path count report into an event.
func (s *Session) HandlePathsUpdate(count int) []Event {
	return []Event{PathsChanged{Count: count}}
}
