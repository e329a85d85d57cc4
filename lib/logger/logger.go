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

package logger

import (
	"sync"

	"github.com/narunarthy-invn/druid/lib/errno"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a module-tagged view over the process-wide zap logger.
// Errors carry module and errno so grep on one module's failures works.
type Logger struct {
	module errno.Module
	fields []zap.Field
}

var loggerPool sync.Map

func NewLogger(module errno.Module) *Logger {
	l, ok := loggerPool.Load(module)
	if ok {
		log, _ := l.(*Logger)
		return log
	}
	// ignore concurrent situation, repeat store same module logger
	log := &Logger{module: module}
	loggerPool.Store(module, log)
	return log
}

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{
		module: l.module,
		fields: append(append([]zap.Field{}, l.fields...), fields...),
	}
}

func (l *Logger) SetModule(m errno.Module) {
	l.module = m
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	logger.Error(msg, l.rewriteFields(fields)...)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	logger.Info(msg, l.rewriteFields(fields)...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, l.rewriteFields(fields)...)
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	if level > zapcore.DebugLevel {
		return
	}
	logger.Debug(msg, l.rewriteFields(fields)...)
}

func (l *Logger) GetZapLogger() *zap.Logger {
	return logger
}

func (l *Logger) IsDebugLevel() bool {
	return level == zap.DebugLevel
}

func (l *Logger) rewriteFields(fields []zap.Field) []zap.Field {
	out := make([]zap.Field, 0, len(l.fields)+len(fields)+1)
	out = append(out, zap.Int8("module", int8(l.module)))
	out = append(out, l.fields...)

	for i := range fields {
		f := fields[i]
		if f.Key != "error" {
			out = append(out, f)
			continue
		}
		err, ok := f.Interface.(*errno.Error)
		if !ok {
			out = append(out, f)
			continue
		}
		out = append(out, f, zap.Uint16("errno", uint16(err.Errno())))
		if err.Level().LogStack() {
			out = append(out, zap.ByteString("stack", err.Stack()))
		}
	}
	return out
}
