/*
 * Copyright 2026 The FileRipper Team
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger configures the process-wide phuslu/log default logger
// from the engine's LOG_LEVEL/LOG_FORMAT tunables.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/phuslu/log"
)

// Init sets log.DefaultLogger from a level string (debug/info/warn/error)
// and a format string (json/console). Every package in this module logs
// through log.Info()/log.Error()/etc, which read the default logger, so
// this must run before anything else does.
func Init(level, format string) {
	parsed := parseLevel(level)

	switch strings.ToLower(format) {
	case "console":
		log.DefaultLogger = log.Logger{
			Level:      parsed,
			TimeFormat: "15:04:05.000",
			Writer: &log.ConsoleWriter{
				ColorOutput:    isTerminal(),
				QuoteString:    true,
				EndWithMessage: true,
				Writer:         os.Stdout,
			},
		}
	default:
		log.DefaultLogger = log.Logger{
			Level:      parsed,
			TimeFormat: time.RFC3339,
			Writer: &log.IOWriter{
				Writer: os.Stdout,
			},
		}
	}
}

func parseLevel(level string) log.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return log.DebugLevel
	case "WARN", "WARNING":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	case "FATAL":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

func isTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
