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

package clock_test

import (
	"testing"
	"time"

	"github.com/libyal/libbfio-go/internal/clock"
	"github.com/stretchr/testify/assert"
)

func TestSimulatedClock_AdvanceTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := clock.NewSimulatedClock(start)
	assert.True(t, c.Now().Equal(start))

	c.AdvanceTime(time.Hour)
	assert.True(t, c.Now().Equal(start.Add(time.Hour)))
}

func TestSimulatedClock_SetTime(t *testing.T) {
	c := clock.NewSimulatedClock(time.Time{})
	target := time.Date(2025, 5, 5, 5, 5, 5, 0, time.UTC)
	c.SetTime(target)
	assert.True(t, c.Now().Equal(target))
}
