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

package errno

// common error codes
const (
	InternalError     = 9001
	InvalidDataType   = 9002
	RecoverPanic      = 9003
	InvalidBufferSize = 9005
	ShortBufferSize   = 9006

	// BuiltInError errors returned by built-in functions
	BuiltInError = 9007

	// ThirdPartyError errors returned by third-party packages
	ThirdPartyError = 9008

	ShortWrite = 9009
	ShortRead  = 9010
)

// query engine error codes
const (
	InvalidQueryIntervals   = 1101
	InvalidAggregationCount = 1102
	InvalidTimeRange        = 1103
	BucketOffsetsMismatch   = 1105
	ResultIteratorClosed    = 1106
	InvalidGranularity      = 1107
	TooManyBuckets          = 1108
	EmptyAggregations       = 1109
)

// storage engine error codes
const (
	BucketOffsetsFail      = 1202
	SegmentSealed          = 1203
	SegmentNotSealed       = 1204
	BlockDecompressFail    = 1205
	TimestampOutOfOrder    = 1206
)

// kernel error codes
const (
	AggregationNotKernelCapable = 1301
	KernelBindFail              = 1302
	KernelCopyFail              = 1303
	KernelRunFail               = 1304
	KernelReleaseFail           = 1305
	KernelReleased              = 1306
)

// config error codes
const (
	InvalidLogDir      = 1401
	UnknownGranularity = 1402
	InvalidMaxBuckets  = 1403
)
