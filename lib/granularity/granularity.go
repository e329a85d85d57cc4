// Copyright 2022 Huawei Cloud Computing Technologies Co., Ltd.
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

// Package granularity defines the time-bucketing rules used by the query
// engine. A granularity aligns timestamps to bucket boundaries and converts
// bucket starts back to calendar time.
package granularity

import (
	"time"

	"github.com/narunarthy-invn/druid/lib/errno"
)

// Granularity is one time-bucketing rule. Timestamps are nanoseconds since
// the Unix epoch throughout the engine.
type Granularity struct {
	name string
	d    time.Duration
}

var (
	Second = Granularity{name: "1s", d: time.Second}
	Minute = Granularity{name: "1m", d: time.Minute}
	Hour   = Granularity{name: "1h", d: time.Hour}
	Day    = Granularity{name: "1d", d: 24 * time.Hour}
)

var byName = map[string]Granularity{
	"1s": Second,
	"1m": Minute,
	"1h": Hour,
	"1d": Day,
}

// ByDuration returns a granularity with an arbitrary bucket width.
func ByDuration(d time.Duration) Granularity {
	return Granularity{name: d.String(), d: d}
}

// Parse resolves a granularity from its text form, e.g. "1h".
func Parse(s string) (Granularity, error) {
	if g, ok := byName[s]; ok {
		return g, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return Granularity{}, errno.NewError(errno.UnknownGranularity, s)
	}
	return ByDuration(d), nil
}

func (g Granularity) Duration() time.Duration {
	return g.d
}

// Truncate returns the bucket start containing ns.
func (g Granularity) Truncate(ns int64) int64 {
	w := int64(g.d)
	r := ns % w
	if r < 0 {
		r += w
	}
	return ns - r
}

// Next returns the start of the bucket following the one containing ns.
func (g Granularity) Next(ns int64) int64 {
	return g.Truncate(ns) + int64(g.d)
}

// ToTime converts a bucket start to calendar time, UTC.
func (g Granularity) ToTime(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

func (g Granularity) String() string {
	return g.name
}

// IsZero reports whether g was never set.
func (g Granularity) IsZero() bool {
	return g.d == 0
}
