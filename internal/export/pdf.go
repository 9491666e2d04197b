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
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"sketchcanvas/internal/domain"
	"sketchcanvas/internal/wire"
)

// PDFOptions controls PDF export. Units are points; one logical pixel maps
// to one point.
type PDFOptions struct {
	Title      string
	Author     string
	Background string // empty keeps the page blank
	NoText     bool
}

// ExportPDF writes doc as a single page PDF at outPath.
func ExportPDF(doc wire.Document, outPath string, opt PDFOptions) error {
	page := pageSize(doc)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	if opt.Author != "" {
		pdf.SetAuthor(opt.Author, true)
	}
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: page.Width, Ht: page.Height})

	if opt.Background != "" {
		bg, err := domain.ParseColor(opt.Background)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		setFillColor(pdf, bg)
		pdf.Rect(0, 0, page.Width, page.Height, "F")
	}

	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	for _, pl := range Layout(doc) {
		setDrawColor(pdf, pl.Color)
		pdf.SetLineWidth(pl.Width)
		drawPolyline(pdf, pl.Points, pl.Width)
	}

	if !opt.NoText {
		for _, t := range doc.Texts {
			size := t.EffectiveFontSize()
			c := domain.MustColor(t.FontColor)
			pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
			pdf.SetFont("Helvetica", fontStyle(t), size)
			o := textOrigin(t, page)
			for i, ln := range strings.Split(t.Text, "\n") {
				pdf.Text(o.X, o.Y+size*(1+1.2*float64(i)), ln)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// drawPolyline strokes pts; a single point becomes a dot.
func drawPolyline(pdf *gofpdf.Fpdf, pts []domain.Point, width float64) {
	switch len(pts) {
	case 0:
		return
	case 1:
		r, g, b := pdf.GetDrawColor()
		pdf.SetFillColor(r, g, b)
		pdf.Circle(pts[0].X, pts[0].Y, width/2, "F")
		return
	}
	pdf.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		pdf.LineTo(p.X, p.Y)
	}
	pdf.DrawPath("D")
}

func fontStyle(t domain.CanvasText) string {
	var s string
	if t.FontWeight == "bold" || t.FontWeight == "700" {
		s += "B"
	}
	if t.FontStyle == "italic" {
		s += "I"
	}
	if strings.Contains(t.TextDecorationLine, "underline") {
		s += "U"
	}
	return s
}

func setDrawColor(pdf *gofpdf.Fpdf, c color.NRGBA) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c color.NRGBA) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
