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

// Package kernel defines batch aggregation over native buffers. A kernel is
// fed one bucket at a time, then executed once for the whole batch, writing
// one fixed-size record per bucket into the output buffer.
package kernel

import (
	"encoding/binary"

	"github.com/narunarthy-invn/druid/engine/comm"
	"github.com/narunarthy-invn/druid/lib/errno"
)

// Aggregator is a kernel instance bound to one cursor.
//
// CopyBucket stages the cursor's current bucket into the kernel's input.
// Run executes once for all staged buckets, writing tightly packed records
// into out starting at offset, in the kernel's byte order. Release frees
// kernel resources; it is idempotent and must be called on every path.
type Aggregator interface {
	CopyBucket() error
	Run(bucketCounts []int32, out []byte, offset int) error
	Release() error
}

// BindFunc creates a kernel instance bound to cursor.
type BindFunc func(agg *Aggregation, cursor comm.BucketCursor) (Aggregator, error)

// Aggregation describes one requested aggregate. Whether it supports the
// batched-buffer protocol is declared at construction, not discovered by a
// type check.
type Aggregation struct {
	name                string
	kernelCapable       bool
	order               binary.ByteOrder
	maxIntermediateSize int
	bind                BindFunc
}

// NewKernelAggregation constructs a kernel-capable aggregation.
// maxIntermediateSize is the bytes the kernel writes per bucket.
func NewKernelAggregation(name string, order binary.ByteOrder, maxIntermediateSize int, bind BindFunc) *Aggregation {
	return &Aggregation{
		name:                name,
		kernelCapable:       true,
		order:               order,
		maxIntermediateSize: maxIntermediateSize,
		bind:                bind,
	}
}

// NewGenericAggregation constructs an aggregation served only by the
// generic engine.
func NewGenericAggregation(name string) *Aggregation {
	return &Aggregation{name: name}
}

func (a *Aggregation) Name() string {
	return a.name
}

func (a *Aggregation) KernelCapable() bool {
	return a.kernelCapable
}

func (a *Aggregation) ByteOrder() binary.ByteOrder {
	return a.order
}

func (a *Aggregation) MaxIntermediateSize() int {
	return a.maxIntermediateSize
}

// BindKernel yields a kernel instance bound to cursor.
func (a *Aggregation) BindKernel(cursor comm.BucketCursor) (Aggregator, error) {
	if !a.kernelCapable {
		return nil, errno.NewError(errno.AggregationNotKernelCapable, a.name)
	}

	agg, err := a.bind(a, cursor)
	if err != nil {
		return nil, errno.NewError(errno.KernelBindFail, a.name, err)
	}
	return agg, nil
}
