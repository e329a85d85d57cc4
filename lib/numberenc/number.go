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

// Package numberenc marshals numeric sequences into flat byte regions with
// an explicit byte order. Kernels consume these regions directly, so the
// order is always the one the kernel declares, never the host's.
package numberenc

import (
	"encoding/binary"
	"math"
)

const (
	Int32SizeBytes   = 4
	Int64SizeBytes   = 8
	Float64SizeBytes = 8
)

// MarshalUint64Append appends marshaled u to dst and returns the result.
func MarshalUint64Append(dst []byte, u uint64, order binary.ByteOrder) []byte {
	var b [Int64SizeBytes]byte
	order.PutUint64(b[:], u)
	return append(dst, b[:]...)
}

// UnmarshalUint64 returns unmarshaled uint64 from src.
func UnmarshalUint64(src []byte, order binary.ByteOrder) uint64 {
	return order.Uint64(src)
}

// MarshalInt64Append appends marshaled v to dst and returns the result.
func MarshalInt64Append(dst []byte, v int64, order binary.ByteOrder) []byte {
	return MarshalUint64Append(dst, uint64(v), order)
}

// UnmarshalInt64 returns unmarshaled int64 from src.
func UnmarshalInt64(src []byte, order binary.ByteOrder) int64 {
	return int64(order.Uint64(src))
}

// MarshalUint32Append appends marshaled u to dst and returns the result.
func MarshalUint32Append(dst []byte, u uint32, order binary.ByteOrder) []byte {
	var b [Int32SizeBytes]byte
	order.PutUint32(b[:], u)
	return append(dst, b[:]...)
}

// UnmarshalUint32 returns unmarshaled uint32 from src.
func UnmarshalUint32(src []byte, order binary.ByteOrder) uint32 {
	return order.Uint32(src)
}

// MarshalInt32Append appends marshaled v to dst and returns the result.
func MarshalInt32Append(dst []byte, v int32, order binary.ByteOrder) []byte {
	return MarshalUint32Append(dst, uint32(v), order)
}

// UnmarshalInt32 returns unmarshaled int32 from src.
func UnmarshalInt32(src []byte, order binary.ByteOrder) int32 {
	return int32(order.Uint32(src))
}

// MarshalFloat64Append appends marshaled f to dst and returns the result.
func MarshalFloat64Append(dst []byte, f float64, order binary.ByteOrder) []byte {
	return MarshalUint64Append(dst, math.Float64bits(f), order)
}

// UnmarshalFloat64 returns unmarshaled float64 from src.
func UnmarshalFloat64(src []byte, order binary.ByteOrder) float64 {
	return math.Float64frombits(order.Uint64(src))
}

// MarshalInt64SliceAppend appends marshaled vs to dst and returns the result.
func MarshalInt64SliceAppend(dst []byte, vs []int64, order binary.ByteOrder) []byte {
	vsLen := len(vs) * Int64SizeBytes
	preLen := len(dst)
	if cap(dst)-preLen < vsLen {
		dst = append(dst, make([]byte, vsLen)...)
		dst = dst[:preLen]
	}
	for i := range vs {
		dst = MarshalInt64Append(dst, vs[i], order)
	}
	return dst
}

// UnmarshalInt64Slice returns unmarshaled []int64 appended to dst.
func UnmarshalInt64Slice(src []byte, dst []int64, order binary.ByteOrder) []int64 {
	for len(src) >= Int64SizeBytes {
		dst = append(dst, UnmarshalInt64(src, order))
		src = src[Int64SizeBytes:]
	}
	return dst
}

// MarshalInt32SliceAppend appends marshaled vs to dst and returns the result.
func MarshalInt32SliceAppend(dst []byte, vs []int32, order binary.ByteOrder) []byte {
	vsLen := len(vs) * Int32SizeBytes
	preLen := len(dst)
	if cap(dst)-preLen < vsLen {
		dst = append(dst, make([]byte, vsLen)...)
		dst = dst[:preLen]
	}
	for i := range vs {
		dst = MarshalInt32Append(dst, vs[i], order)
	}
	return dst
}

// UnmarshalInt32Slice returns unmarshaled []int32 appended to dst.
func UnmarshalInt32Slice(src []byte, dst []int32, order binary.ByteOrder) []int32 {
	for len(src) >= Int32SizeBytes {
		dst = append(dst, UnmarshalInt32(src, order))
		src = src[Int32SizeBytes:]
	}
	return dst
}

// MarshalFloat64SliceAppend appends marshaled vs to dst and returns the result.
func MarshalFloat64SliceAppend(dst []byte, vs []float64, order binary.ByteOrder) []byte {
	vsLen := len(vs) * Float64SizeBytes
	preLen := len(dst)
	if cap(dst)-preLen < vsLen {
		dst = append(dst, make([]byte, vsLen)...)
		dst = dst[:preLen]
	}
	for i := range vs {
		dst = MarshalFloat64Append(dst, vs[i], order)
	}
	return dst
}

// UnmarshalFloat64Slice returns unmarshaled []float64 appended to dst.
func UnmarshalFloat64Slice(src []byte, dst []float64, order binary.ByteOrder) []float64 {
	for len(src) >= Float64SizeBytes {
		dst = append(dst, UnmarshalFloat64(src, order))
		src = src[Float64SizeBytes:]
	}
	return dst
}
