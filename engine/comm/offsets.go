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

package comm

import (
	"encoding/binary"

	"github.com/narunarthy-invn/druid/lib/errno"
	"github.com/narunarthy-invn/druid/lib/numberenc"
)

// BucketOffsets pairs bucket-start timestamps with per-bucket row counts,
// both encoded in the byte order the kernel asked for. Computed once per
// cursor; read-only afterward. Readers operate on the encoded regions, so
// iteration can never mutate the offsets.
type BucketOffsets struct {
	timestamps []byte
	counts     []int32
	order      binary.ByteOrder
}

// NewBucketOffsets encodes the given bucket starts and counts. Timestamps
// must be strictly ascending and match counts in length.
func NewBucketOffsets(timestamps []int64, counts []int32, order binary.ByteOrder) (*BucketOffsets, error) {
	if len(timestamps) != len(counts) {
		return nil, errno.NewError(errno.BucketOffsetsMismatch, len(timestamps), len(counts))
	}
	for i := 1; i < len(timestamps); i++ {
		if timestamps[i] <= timestamps[i-1] {
			return nil, errno.NewError(errno.TimestampOutOfOrder, timestamps[i], timestamps[i-1])
		}
	}

	return &BucketOffsets{
		timestamps: numberenc.MarshalInt64SliceAppend(nil, timestamps, order),
		counts:     append([]int32{}, counts...),
		order:      order,
	}, nil
}

// Len returns the bucket count.
func (o *BucketOffsets) Len() int {
	return len(o.counts)
}

// TimestampReader returns a fresh read-only iterator over the bucket starts.
func (o *BucketOffsets) TimestampReader() *numberenc.Int64Reader {
	return numberenc.NewInt64Reader(o.timestamps, o.order)
}

// Counts returns a copy of the per-bucket row counts.
func (o *BucketOffsets) Counts() []int32 {
	return append([]int32{}, o.counts...)
}

func (o *BucketOffsets) Order() binary.ByteOrder {
	return o.order
}
