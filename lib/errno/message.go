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

type Message struct {
	format string
	level  Level
	module Module
}

func newMessage(format string, module Module, level Level) *Message {
	return &Message{
		format: format,
		level:  level,
		module: module,
	}
}

func newNoticeMessage(format string, module Module) *Message {
	return newMessage(format, module, LevelNotice)
}

func newWarnMessage(format string, module Module) *Message {
	return newMessage(format, module, LevelWarn)
}

func newFatalMessage(format string, module Module) *Message {
	return newMessage(format, module, LevelFatal)
}

var unknownMessage = newNoticeMessage("unknown error", ModuleUnknown)

// When an error message is initialized, the level and module corresponding to the error code are bound
// If the module to which the error code belongs cannot be determined during initialization, set to ModuleUnknown
var messageMap = map[Errno]*Message{
	// common error codes
	InternalError:     newWarnMessage("%v", ModuleUnknown),
	InvalidDataType:   newWarnMessage("invalid data type, exp: %s, got: %s", ModuleUnknown),
	RecoverPanic:      newFatalMessage("runtime panic: %v", ModuleUnknown),
	InvalidBufferSize: newWarnMessage("invalid buffer size, expected %d; actual %d", ModuleUnknown),
	ShortBufferSize:   newWarnMessage("invalid buffer size, expected greater than %d; actual %d", ModuleUnknown),
	ShortWrite:        newWarnMessage("short write. succeeded in writing %d bytes, but expected %d bytes", ModuleUnknown),
	ShortRead:         newWarnMessage("short read. succeeded in reading %d bytes, but expected %d bytes", ModuleUnknown),

	// query engine error codes
	InvalidQueryIntervals:   newWarnMessage("buffer engine supports exactly one interval, got: %v", ModuleQueryEngine),
	InvalidAggregationCount: newWarnMessage("buffer engine supports exactly one aggregation, got: %d", ModuleQueryEngine),
	InvalidTimeRange:        newWarnMessage("invalid time range, start: %d, end: %d", ModuleQueryEngine),
	BucketOffsetsMismatch:   newWarnMessage("bucket offsets mismatch, timestamps: %d, counts: %d", ModuleQueryEngine),
	ResultIteratorClosed:    newWarnMessage("result iterator is closed", ModuleQueryEngine),
	InvalidGranularity:      newWarnMessage("invalid granularity: %s", ModuleQueryEngine),
	TooManyBuckets:          newWarnMessage("bucket count %d exceeds the limit %d", ModuleQueryEngine),
	EmptyAggregations:       newWarnMessage("query contains no aggregations", ModuleQueryEngine),

	// storage engine error codes
	BucketOffsetsFail:      newWarnMessage("failed to compute bucket offsets: %v", ModuleStorageEngine),
	SegmentSealed:          newWarnMessage("segment %s is sealed, no more writes", ModuleStorageEngine),
	SegmentNotSealed:       newWarnMessage("segment %s is not sealed, cannot read", ModuleStorageEngine),
	BlockDecompressFail:    newWarnMessage("failed to decompress column block %d: %v", ModuleStorageEngine),
	TimestampOutOfOrder:    newWarnMessage("timestamp %d is out of order, last: %d", ModuleStorageEngine),

	// kernel error codes
	AggregationNotKernelCapable: newWarnMessage("aggregation %s is not kernel capable", ModuleKernel),
	KernelBindFail:              newWarnMessage("failed to bind kernel for aggregation %s: %v", ModuleKernel),
	KernelCopyFail:              newWarnMessage("failed to stage bucket %d into kernel input: %v", ModuleKernel),
	KernelRunFail:               newWarnMessage("kernel run failed: %v", ModuleKernel),
	KernelReleaseFail:           newWarnMessage("failed to release kernel resources: %v", ModuleKernel),
	KernelReleased:              newWarnMessage("kernel %s is already released", ModuleKernel),

	// config error codes
	InvalidLogDir:      newFatalMessage("invalid log dir: %s", ModuleConfig),
	UnknownGranularity: newWarnMessage("unknown granularity: %s", ModuleConfig),
	InvalidMaxBuckets:  newWarnMessage("max-buckets must be positive, got: %d", ModuleConfig),
}
