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

package granularity_test

import (
	"testing"
	"time"

	"github.com/narunarthy-invn/druid/lib/errno"
	"github.com/narunarthy-invn/druid/lib/granularity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	base := time.Date(2024, 5, 1, 13, 27, 45, 123, time.UTC).UnixNano()

	exp := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC).UnixNano()
	assert.Equal(t, exp, granularity.Hour.Truncate(base))
	assert.Equal(t, exp, granularity.Hour.Truncate(exp))

	assert.Equal(t, exp+int64(time.Hour), granularity.Hour.Next(base))
}

func TestTruncateNegative(t *testing.T) {
	// timestamps before the epoch still truncate downward
	ns := int64(-30 * time.Minute)
	assert.Equal(t, int64(-time.Hour), granularity.Hour.Truncate(ns))
}

func TestToTime(t *testing.T) {
	ns := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC).UnixNano()
	got := granularity.Hour.ToTime(ns)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, ns, got.UnixNano())
}

func TestParse(t *testing.T) {
	g, err := granularity.Parse("1h")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, g.Duration())

	g, err = granularity.Parse("90s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, g.Duration())

	_, err = granularity.Parse("huge")
	require.Error(t, err)
	assert.True(t, errno.Equal(err, errno.UnknownGranularity))

	_, err = granularity.Parse("-1h")
	assert.Error(t, err)
}

func TestIsZero(t *testing.T) {
	var g granularity.Granularity
	assert.True(t, g.IsZero())
	assert.False(t, granularity.Minute.IsZero())
}
