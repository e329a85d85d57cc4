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

package numberenc

import (
	"encoding/binary"
)

// Int64Reader reads int64 values sequentially from an encoded region.
// The region is never written through the reader; iteration is read-only.
type Int64Reader struct {
	buf   []byte
	order binary.ByteOrder
}

func NewInt64Reader(buf []byte, order binary.ByteOrder) *Int64Reader {
	return &Int64Reader{buf: buf, order: order}
}

func (r *Int64Reader) HasNext() bool {
	return len(r.buf) >= Int64SizeBytes
}

func (r *Int64Reader) Next() int64 {
	v := UnmarshalInt64(r.buf, r.order)
	r.buf = r.buf[Int64SizeBytes:]
	return v
}

// Len returns the number of unread values.
func (r *Int64Reader) Len() int {
	return len(r.buf) / Int64SizeBytes
}

// Float64Reader reads one float64 per slot from an encoded region. A slot is
// slotSize bytes with the value at its start; slotSize >= 8. With
// slotSize == 8 the region is a tightly packed float64 sequence.
type Float64Reader struct {
	buf      []byte
	order    binary.ByteOrder
	slotSize int
}

func NewFloat64Reader(buf []byte, order binary.ByteOrder, slotSize int) *Float64Reader {
	if slotSize < Float64SizeBytes {
		slotSize = Float64SizeBytes
	}
	return &Float64Reader{buf: buf, order: order, slotSize: slotSize}
}

func (r *Float64Reader) HasNext() bool {
	return len(r.buf) >= r.slotSize
}

func (r *Float64Reader) Next() float64 {
	v := UnmarshalFloat64(r.buf, r.order)
	r.buf = r.buf[r.slotSize:]
	return v
}

// Len returns the number of unread slots.
func (r *Float64Reader) Len() int {
	return len(r.buf) / r.slotSize
}
