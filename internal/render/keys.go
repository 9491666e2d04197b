/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"strconv"

	"sketchcanvas/internal/domain"
)

// Buffer-id scheme used by shape redraws. Backends that were built against
// existing clients depend on these exact strings.

// fillLines is the number of horizontal and of vertical fill lines a filled
// rectangle may own.
const fillLines = 10

// Key is the buffer id of a path or shape.
func Key(id int64) string {
	return strconv.FormatInt(id, 10)
}

func suffixed(id int64, part string, i int) string {
	return Key(id) + part + strconv.Itoa(i)
}

// DiagKey is the buffer id of diagonal i of a filled rectangle.
func DiagKey(id int64, i int) string {
	return suffixed(id, "diag", i)
}

// RedrawKeys returns the buffer ids deleted before s is redrawn.
//
// A filled rectangle owns side0..3, diag0..1, hline1..10 and vline1..10.
// An unfilled rectangle owns the numeric ids id+0..id+3. Every other shape
// owns its bare id. The set follows the shape's current Filled value, so
// toggling fill mid-drag can leave buffers from the previous state behind.
func RedrawKeys(s domain.ShapeData) []string {
	if s.Type != domain.ShapeRectangle {
		return []string{Key(s.ID)}
	}
	if !s.Filled {
		keys := make([]string, 4)
		for i := range keys {
			keys[i] = Key(s.ID + int64(i))
		}
		return keys
	}
	keys := make([]string, 0, 4+2+2*fillLines)
	for i := 0; i < 4; i++ {
		keys = append(keys, suffixed(s.ID, "side", i))
	}
	for i := 0; i < 2; i++ {
		keys = append(keys, DiagKey(s.ID, i))
	}
	for i := 1; i <= fillLines; i++ {
		keys = append(keys, suffixed(s.ID, "hline", i))
	}
	for i := 1; i <= fillLines; i++ {
		keys = append(keys, suffixed(s.ID, "vline", i))
	}
	return keys
}
