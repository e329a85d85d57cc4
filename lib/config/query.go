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

package config

import (
	"github.com/narunarthy-invn/druid/lib/errno"
)

const (
	// DefaultMaxBuckets bounds the output buffer size of one accelerated
	// execution. 366 daily buckets is one year; hourly queries over a month
	// stay well below it.
	DefaultMaxBuckets = 100000

	// DefaultKernelEnabled controls whether the accelerated path is
	// considered at all. When disabled every query takes the fallback.
	DefaultKernelEnabled = true
)

type Query struct {
	MaxBuckets    int  `toml:"max-buckets"`
	KernelEnabled bool `toml:"kernel-enabled"`
}

// NewQuery returns a new instance of Query with defaults.
func NewQuery() Query {
	return Query{
		MaxBuckets:    DefaultMaxBuckets,
		KernelEnabled: DefaultKernelEnabled,
	}
}

// Validate validates that the configuration is acceptable.
func (c Query) Validate() error {
	if c.MaxBuckets <= 0 {
		return errno.NewError(errno.InvalidMaxBuckets, c.MaxBuckets)
	}

	return nil
}
