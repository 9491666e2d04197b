/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"sketchcanvas/internal/wire"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// BatchOptions controls exporting one document to several formats.
//
// Files are written as <OutDir>/<Name>.<format>. An empty Name becomes
// "sketch". Formats overrides the preset's defaults.
type BatchOptions struct {
	Preset     PresetName
	Formats    []string // allowed: pdf, svg
	OutDir     string
	Name       string
	Background string
	Title      string
}

// BatchExport writes doc in every requested format and returns the paths.
func BatchExport(doc wire.Document, opt BatchOptions) ([]string, error) {
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	name := opt.Name
	if name == "" {
		name = "sketch"
	}

	var written []string
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		out := filepath.Join(opt.OutDir, name+"."+f)
		var err error
		switch f {
		case "pdf":
			err = ExportPDF(doc, out, PDFOptions{Title: opt.Title, Background: opt.Background})
		case "svg":
			err = ExportSVG(doc, out, SVGOptions{Background: presetBackground(opt)})
		default:
			return written, fmt.Errorf("unknown format: %s", f)
		}
		if err != nil {
			return written, fmt.Errorf("%s export: %w", f, err)
		}
		written = append(written, out)
	}
	return written, nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{"svg"}
	case PresetPrint:
		return []string{"pdf"}
	default:
		return []string{"pdf", "svg"}
	}
}

// presetBackground keeps web output transparent unless a colour is asked for.
func presetBackground(opt BatchOptions) string {
	if opt.Background != "" || opt.Preset == PresetWeb {
		return opt.Background
	}
	return "#ffffff"
}
