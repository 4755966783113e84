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

// Package config loads the environment-driven tunables the engine reads
// once at process start.
package config

import (
	"os"
	"strconv"
)

// Config holds every env-tunable the transfer engine consults.
type Config struct {
	FtpReaderBufferSize  int
	SftpReaderBufferSize int
	S3ReaderBufferSize   int
	S3WriterPartSize     int
	S3WriterWorkers      int
	ServiceAccountJSON   string
	LogLevel             string
	LogFormat            string
	HttpListenAddr       string
}

// Load reads the process environment into a Config, applying the
// defaults from the environment table.
func Load() Config {
	return Config{
		FtpReaderBufferSize:  envInt("FTP_READER_BUFFER_SIZE", 1024*1024),
		SftpReaderBufferSize: envInt("SFTP_READER_BUFFER_SIZE", 1024*1024),
		S3ReaderBufferSize:   envInt("S3_READER_BUFFER_SIZE", 1024*1024),
		S3WriterPartSize:     envInt("S3_WRITER_PART_SIZE", 10*1024*1024),
		S3WriterWorkers:      envInt("S3_WRITER_WORKERS", 4),
		ServiceAccountJSON:   os.Getenv("SERVICE_ACCOUNT_JSON"),
		LogLevel:             envString("LOG_LEVEL", "info"),
		LogFormat:            envString("LOG_FORMAT", "json"),
		HttpListenAddr:       envString("HTTP_LISTEN_ADDR", ":8080"),
	}
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envString(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
