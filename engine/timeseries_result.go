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

package engine

import (
	"time"

	"github.com/narunarthy-invn/druid/engine/comm"
	"github.com/narunarthy-invn/druid/lib/bufferpool"
	"github.com/narunarthy-invn/druid/lib/errno"
	"github.com/narunarthy-invn/druid/lib/granularity"
	"github.com/narunarthy-invn/druid/lib/numberenc"
)

// Result is one timestamped aggregate value.
type Result struct {
	Time  time.Time
	Name  string
	Value float64
}

// ResultIterator yields Results in ascending bucket-time order. Next
// returns (nil, nil) once exhausted. Close always drains the remaining
// results before releasing the underlying buffer, so abandoning an
// iterator early never skips the finalization that a full traversal
// would have performed. Close is idempotent; Next after Close fails.
type ResultIterator interface {
	Next() (*Result, error)
	Close() error
}

// bufferResultIterator zips bucket-start timestamps with the flat float
// view of the kernel's output buffer, one Result per bucket.
type bufferResultIterator struct {
	gran       granularity.Granularity
	metricName string
	timestamps *numberenc.Int64Reader
	values     *numberenc.Float64Reader
	out        []byte
	closed     bool
}

func newBufferResultIterator(gran granularity.Granularity, metricName string, offsets *comm.BucketOffsets, out []byte, slotSize int) *bufferResultIterator {
	return &bufferResultIterator{
		gran:       gran,
		metricName: metricName,
		timestamps: offsets.TimestampReader(),
		values:     numberenc.NewFloat64Reader(out, offsets.Order(), slotSize),
		out:        out,
	}
}

func (it *bufferResultIterator) Next() (*Result, error) {
	if it.closed {
		return nil, errno.NewError(errno.ResultIteratorClosed)
	}
	if !it.timestamps.HasNext() || !it.values.HasNext() {
		return nil, nil
	}

	return &Result{
		Time:  it.gran.ToTime(it.timestamps.Next()),
		Name:  it.metricName,
		Value: it.values.Next(),
	}, nil
}

func (it *bufferResultIterator) Close() error {
	if it.closed {
		return nil
	}

	// full drain before the buffer goes back to the pool
	for it.timestamps.HasNext() && it.values.HasNext() {
		it.timestamps.Next()
		it.values.Next()
	}

	bufferpool.Put(it.out)
	it.out = nil
	it.closed = true
	return nil
}
