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

// Package comm holds the interfaces between the query engine and the
// segment storage layer.
package comm

import (
	"encoding/binary"
	"fmt"

	"github.com/narunarthy-invn/druid/lib/granularity"
)

// TimeRange is a half-open interval [Min, Max) of nanosecond timestamps.
type TimeRange struct {
	Min int64
	Max int64
}

func (tr TimeRange) Contains(ns int64) bool {
	return ns >= tr.Min && ns < tr.Max
}

func (tr TimeRange) String() string {
	return fmt.Sprintf("[%d, %d)", tr.Min, tr.Max)
}

// BucketCursor advances bucket-by-bucket through one interval's column data
// at a fixed granularity. The advancement sequence and the offsets returned
// by MakeBucketOffsets describe the same buckets in the same order.
type BucketCursor interface {
	Advance()
	IsDone() bool
	MakeBucketOffsets(order binary.ByteOrder) (*BucketOffsets, error)
	ColumnValues() []float64
	Name() string
	Close() error
}

// StorageAdapter is the generic entry to one segment's data. Concrete
// adapters may additionally implement BucketCursorAdapter.
type StorageAdapter interface {
	Name() string
}

// BucketCursorAdapter is the optional capability of adapters whose storage
// can serve bucket cursors.
type BucketCursorAdapter interface {
	StorageAdapter
	CreateBucketCursor(tr TimeRange, gran granularity.Granularity) (BucketCursor, error)
}

// BucketCursors asks adapter for the bucket-cursor capability.
func BucketCursors(adapter StorageAdapter) (BucketCursorAdapter, bool) {
	b, ok := adapter.(BucketCursorAdapter)
	return b, ok
}
