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

package segment

import (
	"encoding/binary"

	"github.com/narunarthy-invn/druid/engine/comm"
	"github.com/narunarthy-invn/druid/lib/errno"
	"github.com/narunarthy-invn/druid/lib/granularity"
)

// CreateBucketCursor groups the segment's rows inside tr into granularity
// buckets. Empty buckets are skipped; the cursor visits buckets in
// ascending-time order, matching the offsets it reports.
func (s *MemSegment) CreateBucketCursor(tr comm.TimeRange, gran granularity.Granularity) (comm.BucketCursor, error) {
	if tr.Min >= tr.Max {
		return nil, errno.NewError(errno.InvalidTimeRange, tr.Min, tr.Max)
	}
	if gran.IsZero() {
		return nil, errno.NewError(errno.InvalidGranularity, "unset")
	}

	ts, vs, err := s.readRange(tr)
	if err != nil {
		return nil, err
	}

	cur := &bucketCursor{segment: s.name}
	for i := 0; i < len(ts); {
		start := gran.Truncate(ts[i])
		next := gran.Next(ts[i])

		j := i
		for j < len(ts) && ts[j] < next {
			j++
		}

		cur.starts = append(cur.starts, start)
		cur.buckets = append(cur.buckets, vs[i:j])
		i = j
	}
	return cur, nil
}

type bucketCursor struct {
	segment string
	starts  []int64
	buckets [][]float64
	pos     int
}

func (c *bucketCursor) Advance() {
	if c.pos < len(c.buckets) {
		c.pos++
	}
}

func (c *bucketCursor) IsDone() bool {
	return c.pos >= len(c.buckets)
}

func (c *bucketCursor) ColumnValues() []float64 {
	if c.IsDone() {
		return nil
	}
	return c.buckets[c.pos]
}

func (c *bucketCursor) MakeBucketOffsets(order binary.ByteOrder) (*comm.BucketOffsets, error) {
	counts := make([]int32, len(c.buckets))
	for i, b := range c.buckets {
		counts[i] = int32(len(b))
	}

	offsets, err := comm.NewBucketOffsets(c.starts, counts, order)
	if err != nil {
		return nil, errno.NewError(errno.BucketOffsetsFail, err)
	}
	return offsets, nil
}

func (c *bucketCursor) Name() string {
	return "mem_segment_bucket_cursor"
}

func (c *bucketCursor) Close() error {
	c.starts = nil
	c.buckets = nil
	c.pos = 0
	return nil
}
