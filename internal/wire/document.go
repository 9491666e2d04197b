/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package wire reads and writes sketch documents: the JSON form in which
// paths, shapes and texts captured elsewhere are handed to a session.
package wire

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"sketchcanvas/internal/domain"
	"sketchcanvas/internal/session"
)

// CurrentVersion is written by Encode.
const CurrentVersion = 1

//go:embed schema/document.schema.json
var schemaJSON []byte

// ErrInvalidDocument wraps every schema or decoding failure.
var ErrInvalidDocument = errors.New("invalid sketch document")

// Document is a self-contained sketch. Size is the view the content should
// be fitted to; zero means the consumer picks one.
type Document struct {
	Version int                 `json:"version,omitempty"`
	Size    domain.Size         `json:"size"`
	Paths   []domain.Path       `json:"paths,omitempty"`
	Shapes  []domain.Shape      `json:"shapes,omitempty"`
	Texts   []domain.CanvasText `json:"texts,omitempty"`
}

// Schema returns the JSON schema documents are validated against.
func Schema() []byte { return append([]byte(nil), schemaJSON...) }

// Validate checks data against the document schema.
func Validate(data []byte) error {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}

// Decode reads, validates and parses one document.
func Decode(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	if err := Validate(data); err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

// DecodeFile is Decode for a file on disk.
func DecodeFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc Document) error {
	if doc.Version == 0 {
		doc.Version = CurrentVersion
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// WriteFile encodes doc to path, creating parent directories.
func WriteFile(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	if err := Encode(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Snapshot captures the committed contents of s.
func Snapshot(s *session.Session) Document {
	size, _ := s.Size()
	return Document{
		Version: CurrentVersion,
		Size:    size,
		Paths:   s.Paths(),
		Shapes:  s.Shapes(),
		Texts:   s.Texts(),
	}
}

// Load ingests doc into s: texts replace the session's list, paths and
// shapes go through the regular de-duplicating ingestion.
func Load(s *session.Session, doc Document) (paths, shapes int) {
	s.SetTexts(doc.Texts)
	for _, p := range doc.Paths {
		if s.AddPath(p) {
			paths++
		}
	}
	for _, sh := range doc.Shapes {
		if s.AddShape(sh) {
			shapes++
		}
	}
	return paths, shapes
}
