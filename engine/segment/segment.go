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

// Package segment is an in-memory columnar segment. Rows are appended in
// timestamp order, sealed into compressed column blocks, and read back
// through bucket cursors.
package segment

import (
	"encoding/binary"

	"github.com/golang/snappy"
	"github.com/narunarthy-invn/druid/engine/comm"
	"github.com/narunarthy-invn/druid/lib/errno"
	"github.com/narunarthy-invn/druid/lib/logger"
	"github.com/narunarthy-invn/druid/lib/numberenc"
	"go.uber.org/zap"
)

const defaultBlockRows = 1024

// block holds one compressed chunk of the time and value columns.
type block struct {
	minTime int64
	maxTime int64
	rows    int
	times   []byte // snappy-compressed little-endian int64
	values  []byte // snappy-compressed little-endian float64
}

type MemSegment struct {
	name      string
	blockRows int
	sealed    bool

	// staging columns, dropped on seal
	times  []int64
	values []float64

	blocks []block
	lg     *logger.Logger
}

func NewMemSegment(name string) *MemSegment {
	return &MemSegment{
		name:      name,
		blockRows: defaultBlockRows,
		lg:        logger.NewLogger(errno.ModuleStorageEngine),
	}
}

func (s *MemSegment) Name() string {
	return s.name
}

// Append adds one row. Timestamps must not decrease.
func (s *MemSegment) Append(ts int64, v float64) error {
	if s.sealed {
		return errno.NewError(errno.SegmentSealed, s.name)
	}
	if n := len(s.times); n > 0 && ts < s.times[n-1] {
		return errno.NewError(errno.TimestampOutOfOrder, ts, s.times[n-1])
	}

	s.times = append(s.times, ts)
	s.values = append(s.values, v)
	return nil
}

// Seal compresses the staged columns into blocks. No writes afterward.
func (s *MemSegment) Seal() error {
	if s.sealed {
		return errno.NewError(errno.SegmentSealed, s.name)
	}

	for i := 0; i < len(s.times); i += s.blockRows {
		end := i + s.blockRows
		if end > len(s.times) {
			end = len(s.times)
		}

		s.blocks = append(s.blocks, block{
			minTime: s.times[i],
			maxTime: s.times[end-1],
			rows:    end - i,
			times:   snappy.Encode(nil, numberenc.MarshalInt64SliceAppend(nil, s.times[i:end], binary.LittleEndian)),
			values:  snappy.Encode(nil, numberenc.MarshalFloat64SliceAppend(nil, s.values[i:end], binary.LittleEndian)),
		})
	}

	s.lg.Debug("segment sealed",
		zap.String("segment", s.name),
		zap.Int("rows", len(s.times)),
		zap.Int("blocks", len(s.blocks)))

	s.times = nil
	s.values = nil
	s.sealed = true
	return nil
}

// readRange decodes all rows with timestamps inside tr, in order.
func (s *MemSegment) readRange(tr comm.TimeRange) ([]int64, []float64, error) {
	if !s.sealed {
		return nil, nil, errno.NewError(errno.SegmentNotSealed, s.name)
	}

	var ts []int64
	var vs []float64
	for i := range s.blocks {
		b := &s.blocks[i]
		if b.maxTime < tr.Min || b.minTime >= tr.Max {
			continue
		}

		rawTimes, err := snappy.Decode(nil, b.times)
		if err != nil {
			return nil, nil, errno.NewError(errno.BlockDecompressFail, i, err)
		}
		rawValues, err := snappy.Decode(nil, b.values)
		if err != nil {
			return nil, nil, errno.NewError(errno.BlockDecompressFail, i, err)
		}

		blockTimes := numberenc.UnmarshalInt64Slice(rawTimes, nil, binary.LittleEndian)
		blockValues := numberenc.UnmarshalFloat64Slice(rawValues, nil, binary.LittleEndian)
		for j, t := range blockTimes {
			if tr.Contains(t) {
				ts = append(ts, t)
				vs = append(vs, blockValues[j])
			}
		}
	}
	return ts, vs, nil
}
