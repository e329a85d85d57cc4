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
	"github.com/cockroachdb/errors"
	"github.com/narunarthy-invn/druid/engine/comm"
	"github.com/narunarthy-invn/druid/engine/kernel"
	"github.com/narunarthy-invn/druid/lib/bufferpool"
	"github.com/narunarthy-invn/druid/lib/config"
	"github.com/narunarthy-invn/druid/lib/errno"
	"github.com/narunarthy-invn/druid/lib/logger"
	"github.com/narunarthy-invn/druid/lib/statistics"
	"go.uber.org/zap"
)

// Engine processes one timeseries query against one storage adapter.
type Engine interface {
	Process(query *TimeseriesQuery, adapter comm.StorageAdapter) (ResultIterator, error)
}

// BufferQueryEngine serves kernel-capable single-aggregation queries with
// one batched kernel run over a native output buffer. Everything else is
// delegated unchanged to the fallback engine.
type BufferQueryEngine struct {
	fallback Engine
	conf     config.Query
	lg       *logger.Logger
	stat     *statistics.EngineStatistics
}

func NewBufferQueryEngine(fallback Engine, conf config.Query) *BufferQueryEngine {
	e := &BufferQueryEngine{
		fallback: fallback,
		conf:     conf,
		lg:       logger.NewLogger(errno.ModuleQueryEngine),
		stat:     statistics.EngineStat,
	}
	e.lg.Info("creating buffer query engine",
		zap.Bool("kernelEnabled", conf.KernelEnabled),
		zap.Int("maxBuckets", conf.MaxBuckets))
	return e
}

// kernelCapable reports whether every aggregation supports the batched
// buffer protocol. One incapable aggregation sends the whole query to the
// fallback; there is no partial acceleration.
func kernelCapable(aggregations []*kernel.Aggregation) bool {
	for _, agg := range aggregations {
		if !agg.KernelCapable() {
			return false
		}
	}
	return true
}

func (e *BufferQueryEngine) Process(query *TimeseriesQuery, adapter comm.StorageAdapter) (ResultIterator, error) {
	if e.conf.KernelEnabled && kernelCapable(query.Aggregations()) {
		if bucketAdapter, ok := comm.BucketCursors(adapter); ok {
			it, err := e.processKernel(query, bucketAdapter)
			if err != nil {
				e.stat.AddExecuteFailures(1)
				return nil, err
			}
			e.stat.AddKernelExecuted(1)
			return it, nil
		}
		e.lg.Debug("adapter has no bucket cursors, delegating",
			zap.String("adapter", adapter.Name()))
	}

	e.stat.AddFallbackExecuted(1)
	if e.fallback == nil {
		return nil, errno.NewError(errno.InternalError, "no fallback engine configured")
	}
	return e.fallback.Process(query, adapter)
}

// processKernel is the accelerated path. Eligibility was decided by the
// caller; a failure here propagates, it never degrades to the fallback.
func (e *BufferQueryEngine) processKernel(query *TimeseriesQuery, adapter comm.BucketCursorAdapter) (_ ResultIterator, err error) {
	intervals := query.Intervals()
	if len(intervals) != 1 {
		return nil, errno.NewError(errno.InvalidQueryIntervals, intervals)
	}

	aggregations := query.Aggregations()
	if len(aggregations) != 1 {
		return nil, errno.NewError(errno.InvalidAggregationCount, len(aggregations))
	}
	spec := aggregations[0]

	cursor, err := adapter.CreateBucketCursor(intervals[0], query.Granularity())
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.CombineErrors(err, cursor.Close())
	}()

	agg, err := spec.BindKernel(cursor)
	if err != nil {
		return nil, err
	}
	// exactly one release per execution, failure paths included
	released := false
	defer func() {
		if released {
			return
		}
		if rerr := agg.Release(); rerr != nil {
			err = errors.CombineErrors(err, errno.NewError(errno.KernelReleaseFail, rerr))
		}
	}()

	offsets, err := cursor.MakeBucketOffsets(spec.ByteOrder())
	if err != nil {
		return nil, err
	}

	bucketCount := offsets.Len()
	if bucketCount > e.conf.MaxBuckets {
		return nil, errno.NewError(errno.TooManyBuckets, bucketCount, e.conf.MaxBuckets)
	}

	out := bufferpool.Resize(bufferpool.Get(), spec.MaxIntermediateSize()*bucketCount)
	defer func() {
		if err != nil {
			bufferpool.Put(out)
		}
	}()

	for bucket := 0; !cursor.IsDone(); bucket++ {
		if err = agg.CopyBucket(); err != nil {
			return nil, errno.NewError(errno.KernelCopyFail, bucket, err)
		}
		cursor.Advance()
	}

	if err = agg.Run(offsets.Counts(), out, 0); err != nil {
		return nil, errno.NewError(errno.KernelRunFail, err)
	}

	released = true
	if err = agg.Release(); err != nil {
		return nil, errno.NewError(errno.KernelReleaseFail, err)
	}

	e.stat.AddBucketsProcessed(int64(bucketCount))
	e.lg.Debug("kernel run complete",
		zap.String("aggregation", spec.Name()),
		zap.Int("buckets", bucketCount),
		zap.Int("outputBytes", len(out)))

	return newBufferResultIterator(query.Granularity(), spec.Name(), offsets, out, spec.MaxIntermediateSize()), nil
}
