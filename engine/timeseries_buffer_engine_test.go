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

package engine_test

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/narunarthy-invn/druid/engine"
	"github.com/narunarthy-invn/druid/engine/comm"
	"github.com/narunarthy-invn/druid/engine/kernel"
	"github.com/narunarthy-invn/druid/engine/segment"
	"github.com/narunarthy-invn/druid/lib/config"
	"github.com/narunarthy-invn/druid/lib/errno"
	"github.com/narunarthy-invn/druid/lib/granularity"
	"github.com/narunarthy-invn/druid/lib/numberenc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).UnixNano()

// threeBucketSegment has hourly bucket sums 10, 6, 14 with row counts 5, 3, 7.
func threeBucketSegment(t *testing.T) *segment.MemSegment {
	t.Helper()
	seg := segment.NewMemSegment("seg-1")

	buckets := [][]float64{
		{1, 2, 3, 4, 0},
		{2, 2, 2},
		{2, 2, 2, 2, 2, 2, 2},
	}
	for i, values := range buckets {
		base := t0 + int64(i)*int64(time.Hour)
		for j, v := range values {
			require.NoError(t, seg.Append(base+int64(j)*int64(time.Minute), v))
		}
	}
	require.NoError(t, seg.Seal())
	return seg
}

func threeHourRange() comm.TimeRange {
	return comm.TimeRange{Min: t0, Max: t0 + 3*int64(time.Hour)}
}

type fallbackEngine struct {
	called  int
	query   *engine.TimeseriesQuery
	adapter comm.StorageAdapter
	result  engine.ResultIterator
}

func (f *fallbackEngine) Process(query *engine.TimeseriesQuery, adapter comm.StorageAdapter) (engine.ResultIterator, error) {
	f.called++
	f.query = query
	f.adapter = adapter
	return f.result, nil
}

type emptyIterator struct{}

func (emptyIterator) Next() (*engine.Result, error) { return nil, nil }
func (emptyIterator) Close() error                  { return nil }

func drain(t *testing.T, it engine.ResultIterator) []*engine.Result {
	t.Helper()
	var out []*engine.Result
	for {
		r, err := it.Next()
		require.NoError(t, err)
		if r == nil {
			break
		}
		out = append(out, r)
	}
	require.NoError(t, it.Close())
	return out
}

func TestKernelPathSumScenario(t *testing.T) {
	seg := threeBucketSegment(t)
	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		[]*kernel.Aggregation{kernel.NewSumAggregation("sum")},
	)
	require.NoError(t, err)

	fallback := &fallbackEngine{}
	e := engine.NewBufferQueryEngine(fallback, config.NewQuery())

	it, err := e.Process(query, seg)
	require.NoError(t, err)
	results := drain(t, it)

	assert.Equal(t, 0, fallback.called)
	require.Len(t, results, 3)

	expTimes := []int64{t0, t0 + int64(time.Hour), t0 + 2*int64(time.Hour)}
	expValues := []float64{10.0, 6.0, 14.0}
	for i, r := range results {
		assert.Equal(t, "sum", r.Name)
		assert.Equal(t, expTimes[i], r.Time.UnixNano())
		assert.Equal(t, expValues[i], r.Value)
		if i > 0 {
			assert.True(t, r.Time.After(results[i-1].Time))
		}
	}
}

func TestKernelPathIsIdempotent(t *testing.T) {
	seg := threeBucketSegment(t)
	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		[]*kernel.Aggregation{kernel.NewSumAggregation("sum")},
	)
	require.NoError(t, err)

	e := engine.NewBufferQueryEngine(&fallbackEngine{}, config.NewQuery())

	it, err := e.Process(query, seg)
	require.NoError(t, err)
	first := drain(t, it)

	it, err = e.Process(query, seg)
	require.NoError(t, err)
	second := drain(t, it)

	assert.Equal(t, first, second)
}

func TestFallbackOnIncapableAggregation(t *testing.T) {
	seg := threeBucketSegment(t)
	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		[]*kernel.Aggregation{
			kernel.NewSumAggregation("sum"),
			kernel.NewGenericAggregation("percentile"),
		},
	)
	require.NoError(t, err)

	fallback := &fallbackEngine{result: emptyIterator{}}
	e := engine.NewBufferQueryEngine(fallback, config.NewQuery())

	it, err := e.Process(query, seg)
	require.NoError(t, err)

	// the fallback's result comes back unmodified
	assert.Equal(t, fallback.result, it)
	assert.Equal(t, 1, fallback.called)
	assert.Equal(t, query, fallback.query)
	assert.Equal(t, comm.StorageAdapter(seg), fallback.adapter)
}

func TestFallbackWhenKernelDisabled(t *testing.T) {
	seg := threeBucketSegment(t)
	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		[]*kernel.Aggregation{kernel.NewSumAggregation("sum")},
	)
	require.NoError(t, err)

	conf := config.NewQuery()
	conf.KernelEnabled = false
	fallback := &fallbackEngine{result: emptyIterator{}}

	_, err = engine.NewBufferQueryEngine(fallback, conf).Process(query, seg)
	require.NoError(t, err)
	assert.Equal(t, 1, fallback.called)
}

type plainAdapter struct{}

func (plainAdapter) Name() string { return "plain" }

func TestFallbackWhenAdapterHasNoBucketCursors(t *testing.T) {
	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		[]*kernel.Aggregation{kernel.NewSumAggregation("sum")},
	)
	require.NoError(t, err)

	fallback := &fallbackEngine{result: emptyIterator{}}
	_, err = engine.NewBufferQueryEngine(fallback, config.NewQuery()).Process(query, plainAdapter{})
	require.NoError(t, err)
	assert.Equal(t, 1, fallback.called)
}

func TestNoFallbackConfigured(t *testing.T) {
	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		[]*kernel.Aggregation{kernel.NewGenericAggregation("p99")},
	)
	require.NoError(t, err)

	_, err = engine.NewBufferQueryEngine(nil, config.NewQuery()).Process(query, plainAdapter{})
	require.Error(t, err)
	assert.True(t, errno.Equal(err, errno.InternalError))
}

// countingAdapter counts cursor creations so tests can assert that
// precondition failures happen before any cursor is opened.
type countingAdapter struct {
	seg     *segment.MemSegment
	cursors int
}

func (a *countingAdapter) Name() string { return a.seg.Name() }

func (a *countingAdapter) CreateBucketCursor(tr comm.TimeRange, gran granularity.Granularity) (comm.BucketCursor, error) {
	a.cursors++
	return a.seg.CreateBucketCursor(tr, gran)
}

func TestMultipleIntervalsRejected(t *testing.T) {
	adapter := &countingAdapter{seg: threeBucketSegment(t)}

	hour := int64(time.Hour)
	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{
			{Min: t0, Max: t0 + hour},
			{Min: t0 + 2*hour, Max: t0 + 3*hour},
		},
		granularity.Hour,
		[]*kernel.Aggregation{kernel.NewSumAggregation("sum")},
	)
	require.NoError(t, err)

	_, err = engine.NewBufferQueryEngine(&fallbackEngine{}, config.NewQuery()).Process(query, adapter)
	require.Error(t, err)
	assert.True(t, errno.Equal(err, errno.InvalidQueryIntervals))
	assert.True(t, errno.IsInvalidArgument(err))
	assert.Equal(t, 0, adapter.cursors)
}

func TestMultipleAggregationsRejected(t *testing.T) {
	adapter := &countingAdapter{seg: threeBucketSegment(t)}

	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		[]*kernel.Aggregation{
			kernel.NewSumAggregation("sum"),
			kernel.NewCountAggregation("count"),
		},
	)
	require.NoError(t, err)

	_, err = engine.NewBufferQueryEngine(&fallbackEngine{}, config.NewQuery()).Process(query, adapter)
	require.Error(t, err)
	assert.True(t, errno.Equal(err, errno.InvalidAggregationCount))
	assert.Equal(t, 0, adapter.cursors)
}

func TestTooManyBuckets(t *testing.T) {
	seg := threeBucketSegment(t)
	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		[]*kernel.Aggregation{kernel.NewSumAggregation("sum")},
	)
	require.NoError(t, err)

	conf := config.NewQuery()
	conf.MaxBuckets = 2

	_, err = engine.NewBufferQueryEngine(&fallbackEngine{}, conf).Process(query, seg)
	require.Error(t, err)
	assert.True(t, errno.Equal(err, errno.TooManyBuckets))
}

// trackingAggregator injects kernel failures and counts effective releases.
type trackingAggregator struct {
	failCopy bool
	failRun  bool
	releases int
	released bool
}

func (a *trackingAggregator) CopyBucket() error {
	if a.failCopy {
		return errors.New("copy failed")
	}
	return nil
}

func (a *trackingAggregator) Run([]int32, []byte, int) error {
	if a.failRun {
		return errors.New("device lost")
	}
	return nil
}

func (a *trackingAggregator) Release() error {
	if !a.released {
		a.released = true
		a.releases++
	}
	return nil
}

func trackingAggregation(agg *trackingAggregator) *kernel.Aggregation {
	return kernel.NewKernelAggregation("tracked", binary.LittleEndian, numberenc.Float64SizeBytes,
		func(*kernel.Aggregation, comm.BucketCursor) (kernel.Aggregator, error) {
			return agg, nil
		})
}

func TestReleaseOnRunFailure(t *testing.T) {
	seg := threeBucketSegment(t)
	agg := &trackingAggregator{failRun: true}

	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		[]*kernel.Aggregation{trackingAggregation(agg)},
	)
	require.NoError(t, err)

	_, err = engine.NewBufferQueryEngine(&fallbackEngine{}, config.NewQuery()).Process(query, seg)
	require.Error(t, err)
	assert.True(t, errno.Equal(err, errno.KernelRunFail))
	assert.Equal(t, 1, agg.releases)
}

func TestReleaseOnCopyFailure(t *testing.T) {
	seg := threeBucketSegment(t)
	agg := &trackingAggregator{failCopy: true}

	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		[]*kernel.Aggregation{trackingAggregation(agg)},
	)
	require.NoError(t, err)

	_, err = engine.NewBufferQueryEngine(&fallbackEngine{}, config.NewQuery()).Process(query, seg)
	require.Error(t, err)
	assert.True(t, errno.Equal(err, errno.KernelCopyFail))
	assert.Equal(t, 1, agg.releases)
}

func TestReleaseOnSuccess(t *testing.T) {
	seg := threeBucketSegment(t)
	agg := &trackingAggregator{}

	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		[]*kernel.Aggregation{trackingAggregation(agg)},
	)
	require.NoError(t, err)

	it, err := engine.NewBufferQueryEngine(&fallbackEngine{}, config.NewQuery()).Process(query, seg)
	require.NoError(t, err)
	drain(t, it)

	assert.Equal(t, 1, agg.releases)
}

func TestBindFailurePropagates(t *testing.T) {
	seg := threeBucketSegment(t)

	spec := kernel.NewKernelAggregation("broken", binary.LittleEndian, numberenc.Float64SizeBytes,
		func(*kernel.Aggregation, comm.BucketCursor) (kernel.Aggregator, error) {
			return nil, errors.New("no device")
		})

	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		[]*kernel.Aggregation{spec},
	)
	require.NoError(t, err)

	_, err = engine.NewBufferQueryEngine(&fallbackEngine{}, config.NewQuery()).Process(query, seg)
	require.Error(t, err)
	assert.True(t, errno.Equal(err, errno.KernelBindFail))
}

func TestEmptyInterval(t *testing.T) {
	seg := segment.NewMemSegment("empty")
	require.NoError(t, seg.Seal())

	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		[]*kernel.Aggregation{kernel.NewSumAggregation("sum")},
	)
	require.NoError(t, err)

	it, err := engine.NewBufferQueryEngine(&fallbackEngine{}, config.NewQuery()).Process(query, seg)
	require.NoError(t, err)

	assert.Empty(t, drain(t, it))
}

func TestResultIteratorClose(t *testing.T) {
	seg := threeBucketSegment(t)
	query, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		[]*kernel.Aggregation{kernel.NewSumAggregation("sum")},
	)
	require.NoError(t, err)

	it, err := engine.NewBufferQueryEngine(&fallbackEngine{}, config.NewQuery()).Process(query, seg)
	require.NoError(t, err)

	// abandon after one result; Close drains the rest
	r, err := it.Next()
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 10.0, r.Value)

	require.NoError(t, it.Close())
	require.NoError(t, it.Close())

	_, err = it.Next()
	require.Error(t, err)
	assert.True(t, errno.Equal(err, errno.ResultIteratorClosed))
}

func TestQueryConstructorValidation(t *testing.T) {
	_, err := engine.NewTimeseriesQuery(
		[]comm.TimeRange{{Min: 10, Max: 5}},
		granularity.Hour,
		[]*kernel.Aggregation{kernel.NewSumAggregation("sum")},
	)
	require.Error(t, err)
	assert.True(t, errno.Equal(err, errno.InvalidTimeRange))

	_, err = engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		granularity.Hour,
		nil,
	)
	require.Error(t, err)
	assert.True(t, errno.Equal(err, errno.EmptyAggregations))

	var zero granularity.Granularity
	_, err = engine.NewTimeseriesQuery(
		[]comm.TimeRange{threeHourRange()},
		zero,
		[]*kernel.Aggregation{kernel.NewSumAggregation("sum")},
	)
	require.Error(t, err)
	assert.True(t, errno.Equal(err, errno.InvalidGranularity))
}
