/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sketchcanvas/internal/domain"
	"sketchcanvas/internal/wire"
)

// SVGOptions controls SVG export.
type SVGOptions struct {
	Background string // empty keeps the canvas transparent
	NoText     bool
}

// WriteSVG renders doc as an SVG document.
func WriteSVG(w io.Writer, doc wire.Document, opt SVGOptions) error {
	page := pageSize(doc)
	var buf bytes.Buffer
	wf := func(format string, args ...any) {
		_, _ = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n", page.Width, page.Height, page.Width, page.Height)
	if opt.Background != "" {
		bg, err := domain.ParseColor(opt.Background)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", page.Width, page.Height, svgColor(bg))
	}

	for _, pl := range Layout(doc) {
		if len(pl.Points) == 0 {
			continue
		}
		if len(pl.Points) == 1 {
			p := pl.Points[0]
			wf("  <circle cx=\"%g\" cy=\"%g\" r=\"%g\" fill=\"%s\"%s/>\n", p.X, p.Y, pl.Width/2, svgColor(pl.Color), opacity("fill", pl.Color))
			continue
		}
		wf("  <polyline points=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%g\" stroke-linecap=\"round\" stroke-linejoin=\"round\"%s/>\n",
			svgPoints(pl.Points), svgColor(pl.Color), pl.Width, opacity("stroke", pl.Color))
	}

	if !opt.NoText {
		for _, t := range doc.Texts {
			size := t.EffectiveFontSize()
			o := textOrigin(t, page)
			c := domain.MustColor(t.FontColor)
			family := t.Font
			if family == "" {
				family = "Helvetica, Arial, sans-serif"
			}
			for i, ln := range strings.Split(t.Text, "\n") {
				wf("  <text x=\"%g\" y=\"%g\" font-family=\"%s\" font-size=\"%g\" fill=\"%s\">%s</text>\n",
					o.X, o.Y+size*(1+1.2*float64(i)), escAttr(family), size, svgColor(c), escText(ln))
			}
		}
	}
	wf("</svg>\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// ExportSVG writes doc to outPath.
func ExportSVG(doc wire.Document, outPath string, opt SVGOptions) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	var buf bytes.Buffer
	if err := WriteSVG(&buf, doc, opt); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func svgPoints(pts []domain.Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
	}
	return b.String()
}

func svgColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(attr string, c color.NRGBA) string {
	if c.A == 255 {
		return ""
	}
	return fmt.Sprintf(" %s-opacity=\"%g\"", attr, float64(c.A)/255)
}

func escAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "\"", "&quot;", "<", "&lt;", "\n", " ", "\r", "")
	return r.Replace(s)
}

func escText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
