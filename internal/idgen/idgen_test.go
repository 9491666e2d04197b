/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package idgen

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestCounterIsMonotonic(t *testing.T) {
	gen := Counter(5)
	for want := int64(5); want < 10; want++ {
		if got := gen(); got != want {
			t.Fatalf("got %d want %d", got, want)
		}
	}
}

func TestRandomRange(t *testing.T) {
	gen := Random()
	for i := 0; i < 1000; i++ {
		if v := gen(); v < 1 || v >= 1e8 {
			t.Fatalf("id %d out of range", v)
		}
	}
}

func TestUUIDPositiveAndDistinct(t *testing.T) {
	gen := UUID()
	seen := map[int64]bool{}
	for i := 0; i < 100; i++ {
		v := gen()
		if v <= 0 {
			t.Fatalf("id %d not positive", v)
		}
		if seen[v] {
			t.Fatalf("duplicate id %d", v)
		}
		seen[v] = true
	}
}

func TestFilenameIsUUID(t *testing.T) {
	if _, err := uuid.Parse(Filename()); err != nil {
		t.Fatalf("filename is not a uuid: %v", err)
	}
}

func TestUUIDFitsDoublePrecision(t *testing.T) {
	gen := UUID()
	for i := 0; i < 100; i++ {
		if v := gen(); v >= 1<<53 {
			t.Fatalf("id %d exceeds 2^53", v)
		}
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "counter", "Random", "uuid"} {
		gen, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if v := gen(); v <= 0 {
			t.Fatalf("ByName(%q) produced %d", name, v)
		}
	}
	if gen, _ := ByName("counter"); gen() != 1 {
		t.Fatalf("counter should start at 1")
	}
	if _, err := ByName("snowflake"); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("got %v want ErrUnknownStrategy", err)
	}
}
