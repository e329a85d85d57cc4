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

package statistics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineStatistics counts executions of the timeseries query engine.
// Counters only grow; Collect reports current totals.
type EngineStatistics struct {
	KernelExecuted   int64
	FallbackExecuted int64
	BucketsProcessed int64
	ExecuteFailures  int64
}

var EngineStat = &EngineStatistics{}

func (s *EngineStatistics) AddKernelExecuted(i int64) {
	atomic.AddInt64(&s.KernelExecuted, i)
}

func (s *EngineStatistics) AddFallbackExecuted(i int64) {
	atomic.AddInt64(&s.FallbackExecuted, i)
}

func (s *EngineStatistics) AddBucketsProcessed(i int64) {
	atomic.AddInt64(&s.BucketsProcessed, i)
}

func (s *EngineStatistics) AddExecuteFailures(i int64) {
	atomic.AddInt64(&s.ExecuteFailures, i)
}

const subsystem = "timeseries_engine"

func newDesc(name, help string) *prometheus.Desc {
	return prometheus.NewDesc(
		prometheus.BuildFQName("", subsystem, name),
		help,
		nil,
		nil,
	)
}

type EngineCollector struct {
	stat *EngineStatistics

	kernelExecuted   *prometheus.Desc
	fallbackExecuted *prometheus.Desc
	bucketsProcessed *prometheus.Desc
	executeFailures  *prometheus.Desc
}

func NewEngineCollector(stat *EngineStatistics) *EngineCollector {
	return &EngineCollector{
		stat:             stat,
		kernelExecuted:   newDesc("kernel_executed_total", "queries served by the buffer kernel path"),
		fallbackExecuted: newDesc("fallback_executed_total", "queries delegated to the generic engine"),
		bucketsProcessed: newDesc("buckets_processed_total", "time buckets aggregated by the kernel path"),
		executeFailures:  newDesc("execute_failures_total", "failed executions on the kernel path"),
	}
}

func (c *EngineCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.kernelExecuted
	ch <- c.fallbackExecuted
	ch <- c.bucketsProcessed
	ch <- c.executeFailures
}

func (c *EngineCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.kernelExecuted, prometheus.CounterValue,
		float64(atomic.LoadInt64(&c.stat.KernelExecuted)))
	ch <- prometheus.MustNewConstMetric(c.fallbackExecuted, prometheus.CounterValue,
		float64(atomic.LoadInt64(&c.stat.FallbackExecuted)))
	ch <- prometheus.MustNewConstMetric(c.bucketsProcessed, prometheus.CounterValue,
		float64(atomic.LoadInt64(&c.stat.BucketsProcessed)))
	ch <- prometheus.MustNewConstMetric(c.executeFailures, prometheus.CounterValue,
		float64(atomic.LoadInt64(&c.stat.ExecuteFailures)))
}
