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
	"github.com/narunarthy-invn/druid/engine/comm"
	"github.com/narunarthy-invn/druid/engine/kernel"
	"github.com/narunarthy-invn/druid/lib/errno"
	"github.com/narunarthy-invn/druid/lib/granularity"
)

// TimeseriesQuery is one immutable aggregation request: queried intervals,
// a granularity, and an ordered list of aggregations.
type TimeseriesQuery struct {
	intervals    []comm.TimeRange
	gran         granularity.Granularity
	aggregations []*kernel.Aggregation
}

func NewTimeseriesQuery(intervals []comm.TimeRange, gran granularity.Granularity, aggregations []*kernel.Aggregation) (*TimeseriesQuery, error) {
	if gran.IsZero() {
		return nil, errno.NewError(errno.InvalidGranularity, "unset")
	}
	if len(aggregations) == 0 {
		return nil, errno.NewError(errno.EmptyAggregations)
	}
	for _, tr := range intervals {
		if tr.Min >= tr.Max {
			return nil, errno.NewError(errno.InvalidTimeRange, tr.Min, tr.Max)
		}
	}

	return &TimeseriesQuery{
		intervals:    append([]comm.TimeRange{}, intervals...),
		gran:         gran,
		aggregations: append([]*kernel.Aggregation{}, aggregations...),
	}, nil
}

func (q *TimeseriesQuery) Intervals() []comm.TimeRange {
	return append([]comm.TimeRange{}, q.intervals...)
}

func (q *TimeseriesQuery) Granularity() granularity.Granularity {
	return q.gran
}

func (q *TimeseriesQuery) Aggregations() []*kernel.Aggregation {
	return append([]*kernel.Aggregation{}, q.aggregations...)
}
