/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package idgen provides the id strategies a session can be built with.
// Sessions take a Generator so that tests can use a deterministic counter.
package idgen

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces ids for paths, shapes and texts. Ids are positive.
type Generator func() int64

// Counter returns a Generator yielding start, start+1, ... It is safe for
// concurrent use so one counter can be shared process-wide.
func Counter(start int64) Generator {
	var n atomic.Int64
	n.Store(start - 1)
	return func() int64 {
		return n.Add(1)
	}
}

// Random returns ids in [1, 1e8), the range existing clients produce.
// Collisions are possible and callers must not rely on uniqueness.
func Random() Generator {
	return func() int64 {
		return 1 + rand.Int63n(1e8-1)
	}
}

// UUID derives a positive id from a random v4 UUID. Ids stay below 2^53 so
// JSON clients decoding numbers as doubles keep them exact.
func UUID() Generator {
	return func() int64 {
		u := uuid.New()
		v := int64(binary.BigEndian.Uint64(u[:8]) >> 11)
		if v == 0 {
			return 1
		}
		return v
	}
}

// Default is used when a session is built without a generator. Random
// wide ids keep locally drawn paths apart from those of collaborators.
var Default = UUID()

// ErrUnknownStrategy is returned by ByName.
var ErrUnknownStrategy = errors.New("unknown id strategy")

// ByName returns the generator for counter, random or uuid. An empty name
// selects Default.
func ByName(name string) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return Default, nil
	case "counter":
		return Counter(1), nil
	case "random":
		return Random(), nil
	case "uuid":
		return UUID(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Filename returns a fresh export file name without extension.
func Filename() string {
	return uuid.NewString()
}
