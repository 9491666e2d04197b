/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package coords converts between logical (view) pixels and the device pixels
// the rendering backend works in.
package coords

import (
	"fmt"
	"math"
	"strings"

	"sketchcanvas/internal/domain"
)

// Platform selects how the scale factor is derived.
type Platform string

const (
	// PlatformIOS backends work in points; the scale is always 1.
	PlatformIOS Platform = "ios"
	// PlatformAndroid backends work in physical pixels; the scale is the
	// device pixel density.
	PlatformAndroid Platform = "android"
)

// ParsePlatform accepts ios or android, case-insensitive.
func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(strings.ToLower(strings.TrimSpace(s))); p {
	case PlatformIOS, PlatformAndroid:
		return p, nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// Scaler maps logical coordinates to device coordinates.
type Scaler struct {
	Scale float64
}

// Identity is a Scaler with scale 1.
var Identity = Scaler{Scale: 1}

// ForPlatform returns the Scaler for p. A non-positive density counts as 1.
func ForPlatform(p Platform, density float64) Scaler {
	if p == PlatformAndroid && density > 0 {
		return Scaler{Scale: density}
	}
	return Identity
}

// Round2 rounds v to two decimals, the precision of every logical coordinate
// exposed to callers.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Logical offset-corrects a page coordinate against the view origin.
func Logical(page, offset domain.Point) domain.Point {
	return domain.Point{X: Round2(page.X - offset.X), Y: Round2(page.Y - offset.Y)}
}

// Device scales a logical point.
func (s Scaler) Device(p domain.Point) domain.Point {
	return domain.Point{X: p.X * s.factor(), Y: p.Y * s.factor()}
}

// Width scales a stroke width. Unset widths stay 0.
func (s Scaler) Width(w float64) float64 {
	if w <= 0 {
		return 0
	}
	return w * s.factor()
}

// Rescale maps a point captured on a sender view to local device pixels.
// Each axis is scaled by local/sender; a zero sender dimension keeps the
// ratio at 1 for that axis. A zero local dimension collapses the axis to 0.
func (s Scaler) Rescale(p domain.Point, local, sender domain.Size) domain.Point {
	return domain.Point{
		X: Round2(p.X) * s.factor() * ratio(local.Width, sender.Width),
		Y: Round2(p.Y) * s.factor() * ratio(local.Height, sender.Height),
	}
}

func (s Scaler) factor() float64 {
	if s.Scale <= 0 {
		return 1
	}
	return s.Scale
}

func ratio(local, sender float64) float64 {
	if sender == 0 {
		return 1
	}
	return local / sender
}
