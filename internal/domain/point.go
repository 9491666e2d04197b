/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"math"
	"strconv"
	"strings"
)

// FormatPoint renders a logical point as "x,y" with two decimals.
func FormatPoint(p Point) string {
	return strconv.FormatFloat(p.X, 'f', 2, 64) + "," + strconv.FormatFloat(p.Y, 'f', 2, 64)
}

// ParsePoint parses an "x,y" pair. ok is false when either coordinate is
// missing or not a finite number.
func ParsePoint(s string) (Point, bool) {
	xs, ys, found := strings.Cut(s, ",")
	if !found {
		return Point{}, false
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return Point{}, false
	}
	// extra comma separated fields are ignored, only the first two count
	ys, _, _ = strings.Cut(ys, ",")
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// Points parses every well-formed entry of data and drops the rest.
func (p PathData) Points() []Point {
	out := make([]Point, 0, len(p.Data))
	for _, s := range p.Data {
		if pt, ok := ParsePoint(s); ok {
			out = append(out, pt)
		}
	}
	return out
}
