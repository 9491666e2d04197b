/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package coords

import (
	"testing"

	"sketchcanvas/internal/domain"
)

func TestForPlatform(t *testing.T) {
	if s := ForPlatform(PlatformIOS, 3); s.Scale != 1 {
		t.Fatalf("ios scale got %v want 1", s.Scale)
	}
	if s := ForPlatform(PlatformAndroid, 2.625); s.Scale != 2.625 {
		t.Fatalf("android scale got %v want 2.625", s.Scale)
	}
	if s := ForPlatform(PlatformAndroid, 0); s.Scale != 1 {
		t.Fatalf("android without density got %v want 1", s.Scale)
	}
	if _, err := ParsePlatform("Windows"); err == nil {
		t.Fatalf("expected error for unknown platform")
	}
	if p, err := ParsePlatform(" Android "); err != nil || p != PlatformAndroid {
		t.Fatalf("got %v %v", p, err)
	}
}

func TestRound2AndLogical(t *testing.T) {
	if got := Round2(10.456); got != 10.46 {
		t.Fatalf("got %v want 10.46", got)
	}
	got := Logical(domain.Point{X: 110.333, Y: 45}, domain.Point{X: 100, Y: 20})
	if got != (domain.Point{X: 10.33, Y: 25}) {
		t.Fatalf("got %v", got)
	}
}

func TestDeviceAndWidth(t *testing.T) {
	s := Scaler{Scale: 2}
	if got := s.Device(domain.Point{X: 10, Y: 5.5}); got != (domain.Point{X: 20, Y: 11}) {
		t.Fatalf("device got %v", got)
	}
	if got := s.Width(3); got != 6 {
		t.Fatalf("width got %v want 6", got)
	}
	if got := s.Width(0); got != 0 {
		t.Fatalf("unset width got %v want 0", got)
	}
	if got := (Scaler{}).Device(domain.Point{X: 4, Y: 4}); got != (domain.Point{X: 4, Y: 4}) {
		t.Fatalf("zero scaler should act as identity, got %v", got)
	}
}

func TestRescale(t *testing.T) {
	s := Scaler{Scale: 2}
	local := domain.Size{Width: 200, Height: 100}
	sender := domain.Size{Width: 400, Height: 50}
	got := s.Rescale(domain.Point{X: 100.004, Y: 10}, local, sender)
	// x: 100.00*2*200/400, y: 10*2*100/50
	if got != (domain.Point{X: 100, Y: 40}) {
		t.Fatalf("got %v", got)
	}
	got = s.Rescale(domain.Point{X: 3, Y: 4}, local, domain.Size{})
	if got != (domain.Point{X: 6, Y: 8}) {
		t.Fatalf("zero sender size should keep ratio 1, got %v", got)
	}
}

func TestRescaleZeroLocalCollapsesAxis(t *testing.T) {
	got := Identity.Rescale(domain.Point{X: 3, Y: 4}, domain.Size{Width: 0, Height: 10}, domain.Size{Width: 5, Height: 5})
	if got != (domain.Point{X: 0, Y: 8}) {
		t.Fatalf("got %v want {0 8}", got)
	}
}
