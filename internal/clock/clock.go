// Copyright 2024 The libbfio-go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package clock gives the rest of bfio an injectable notion of wall-clock
// time, so the timestamps in pool diagnostics (pool.Pool's admission and
// eviction log lines) can be tested deterministically instead of racing
// real time.
package clock

import "time"

// Clock is the minimal time source the rest of bfio depends on.
type Clock interface {
	Now() time.Time
}

// RealClock is a Clock backed by the real wall clock.
type RealClock struct{}

var _ Clock = RealClock{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
