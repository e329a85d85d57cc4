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

package bufferpool_test

import (
	"testing"

	"github.com/narunarthy-invn/druid/lib/bufferpool"
	"github.com/stretchr/testify/assert"
)

func TestGetPut(t *testing.T) {
	b := bufferpool.Get()
	assert.Equal(t, 0, len(b))

	b = append(b, 1, 2, 3)
	bufferpool.Put(b)

	b = bufferpool.Get()
	assert.Equal(t, 0, len(b))
}

func TestResize(t *testing.T) {
	b := bufferpool.Resize(nil, 128)
	assert.Equal(t, 128, len(b))

	// shrink keeps the backing array
	b2 := bufferpool.Resize(b, 64)
	assert.Equal(t, 64, len(b2))
	assert.Equal(t, cap(b), cap(b2))

	// grow to an exact size
	b3 := bufferpool.Resize(b2, 1024)
	assert.Equal(t, 1024, len(b3))

	for _, v := range b3[64:] {
		assert.Equal(t, uint8(0), v)
	}
}

func TestPoolDefaultSize(t *testing.T) {
	p := bufferpool.NewByteBufferPool(16, 2, bufferpool.MaxLocalCacheLen)
	b := p.Get()
	assert.GreaterOrEqual(t, cap(b), 64)
	p.Put(b)
}
