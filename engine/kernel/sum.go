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

package kernel

import (
	"encoding/binary"
	"math"

	"github.com/narunarthy-invn/druid/engine/comm"
	"github.com/narunarthy-invn/druid/lib/errno"
	"github.com/narunarthy-invn/druid/lib/numberenc"
)

// NewSumAggregation returns the CPU sum kernel: one float64 per bucket.
func NewSumAggregation(name string) *Aggregation {
	return NewKernelAggregation(name, binary.LittleEndian, numberenc.Float64SizeBytes, bindFloatKernel(sumBucket))
}

// NewCountAggregation returns the CPU count kernel: one float64 per bucket.
func NewCountAggregation(name string) *Aggregation {
	return NewKernelAggregation(name, binary.LittleEndian, numberenc.Float64SizeBytes, bindFloatKernel(countBucket))
}

func sumBucket(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

func countBucket(values []float64) float64 {
	return float64(len(values))
}

func bindFloatKernel(reduce func([]float64) float64) BindFunc {
	return func(agg *Aggregation, cursor comm.BucketCursor) (Aggregator, error) {
		return &floatKernel{
			name:     agg.Name(),
			order:    agg.ByteOrder(),
			slotSize: agg.MaxIntermediateSize(),
			cursor:   cursor,
			reduce:   reduce,
		}, nil
	}
}

// floatKernel reduces each bucket's float64 column to one float64. Input is
// staged flat; Run uses the per-bucket counts to delimit buckets, exactly
// as the cursor's offsets describe them.
type floatKernel struct {
	name     string
	order    binary.ByteOrder
	slotSize int
	cursor   comm.BucketCursor
	reduce   func([]float64) float64
	input    []float64
	released bool
}

func (k *floatKernel) CopyBucket() error {
	if k.released {
		return errno.NewError(errno.KernelReleased, k.name)
	}

	k.input = append(k.input, k.cursor.ColumnValues()...)
	return nil
}

func (k *floatKernel) Run(bucketCounts []int32, out []byte, offset int) error {
	if k.released {
		return errno.NewError(errno.KernelReleased, k.name)
	}

	need := offset + len(bucketCounts)*k.slotSize
	if len(out) < need {
		return errno.NewError(errno.ShortBufferSize, need, len(out))
	}

	pos := offset
	idx := 0
	for _, c := range bucketCounts {
		if idx+int(c) > len(k.input) {
			return errno.NewError(errno.BucketOffsetsMismatch, len(bucketCounts), len(k.input))
		}
		v := k.reduce(k.input[idx : idx+int(c)])
		idx += int(c)

		k.order.PutUint64(out[pos:], math.Float64bits(v))
		pos += k.slotSize
	}

	if idx != len(k.input) {
		return errno.NewError(errno.BucketOffsetsMismatch, len(bucketCounts), len(k.input))
	}
	return nil
}

func (k *floatKernel) Release() error {
	k.released = true
	k.input = nil
	return nil
}
