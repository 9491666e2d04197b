/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the data model shared by the session, the command
// emitter, the wire format and the exporters. JSON tags follow the field
// names used by existing sketch clients so that externally captured paths
// and shapes can be replayed without translation.

// Point is a position in logical (view) pixels unless stated otherwise.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the width/height of a view.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PathData is a freehand stroke. Data holds "x,y" pairs in logical pixels.
// It only grows while the stroke is active and is frozen once committed.
type PathData struct {
	ID    int64    `json:"id"`
	Color string   `json:"color,omitempty"`
	Width float64  `json:"width,omitempty"`
	Data  []string `json:"data"`
}

// ShapeData is a parametric shape defined by two control points.
// StartPoint is fixed at gesture start; EndPoint follows the pointer.
// Filled only affects rectangles.
type ShapeData struct {
	ID         int64     `json:"id"`
	Type       ShapeKind `json:"type"`
	Color      string    `json:"color,omitempty"`
	Width      float64   `json:"width,omitempty"`
	Filled     bool      `json:"filled,omitempty"`
	StartPoint Point     `json:"startPoint"`
	EndPoint   Point     `json:"endPoint"`
}

// Path is a committed stroke together with who drew it and the view size at
// capture time.
type Path struct {
	Drawer string   `json:"drawer,omitempty"`
	Size   Size     `json:"size"`
	Path   PathData `json:"path"`
}

// Shape is a committed shape, see Path.
type Shape struct {
	Drawer string    `json:"drawer,omitempty"`
	Size   Size      `json:"size"`
	Shape  ShapeData `json:"shape"`
}

// DefaultFontSize applies when a CanvasText has no font size.
const DefaultFontSize = 12

// CanvasText is a positioned text annotation. The list is owned by the caller;
// the engine reads positions for hit-testing and forwards records to the backend.
type CanvasText struct {
	ID                 int64   `json:"id,omitempty"`
	Text               string  `json:"text"`
	Font               string  `json:"font,omitempty"`
	FontSize           float64 `json:"fontSize,omitempty"`
	FontColor          string  `json:"fontColor,omitempty"`
	BackgroundColor    string  `json:"backgroundColor,omitempty"`
	Overlay            string  `json:"overlay,omitempty"` // TextOnSketch | SketchOnText
	Anchor             *Point  `json:"anchor,omitempty"`
	Position           Point   `json:"position"`
	Coordinate         string  `json:"coordinate,omitempty"` // Absolute | Ratio
	Alignment          string  `json:"alignment,omitempty"`  // Left | Center | Right
	LineHeightMultiple float64 `json:"lineHeightMultiple,omitempty"`
	FontWeight         string  `json:"fontWeight,omitempty"`
	FontStyle          string  `json:"fontStyle,omitempty"`
	TextDecorationLine string  `json:"textDecorationLine,omitempty"`
	BorderWidth        float64 `json:"borderWidth,omitempty"`
	BorderColor        string  `json:"borderColor,omitempty"`
	BorderRadius       float64 `json:"borderRadius,omitempty"`
	Padding            float64 `json:"padding,omitempty"`
	Rotation           float64 `json:"rotation,omitempty"`
	Editable           bool    `json:"editable,omitempty"`
}

// EffectiveFontSize returns FontSize or DefaultFontSize when unset.
func (t CanvasText) EffectiveFontSize() float64 {
	if t.FontSize <= 0 {
		return DefaultFontSize
	}
	return t.FontSize
}

// ImageType is the raster format requested on save.
type ImageType string

const (
	ImagePNG ImageType = "png"
	ImageJPG ImageType = "jpg"
)

// SavePreference describes an export request.
type SavePreference struct {
	ImageType       ImageType `json:"imageType" yaml:"image_type"`
	Folder          string    `json:"folder" yaml:"folder"`
	Filename        string    `json:"filename" yaml:"filename"`
	Transparent     bool      `json:"transparent" yaml:"transparent"`
	IncludeImage    bool      `json:"includeImage" yaml:"include_image"`
	IncludeText     bool      `json:"includeText" yaml:"include_text"`
	CropToImageSize bool      `json:"cropToImageSize" yaml:"crop_to_image_size"`
}

// ExportResult is reported by the backend when an export finishes.
type ExportResult struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
}
