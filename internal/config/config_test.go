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

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.FtpReaderBufferSize != 1024*1024 {
		t.Errorf("FtpReaderBufferSize = %d", cfg.FtpReaderBufferSize)
	}
	if cfg.SftpReaderBufferSize != 1024*1024 {
		t.Errorf("SftpReaderBufferSize = %d", cfg.SftpReaderBufferSize)
	}
	if cfg.S3ReaderBufferSize != 1024*1024 {
		t.Errorf("S3ReaderBufferSize = %d", cfg.S3ReaderBufferSize)
	}
	if cfg.S3WriterPartSize != 10*1024*1024 {
		t.Errorf("S3WriterPartSize = %d", cfg.S3WriterPartSize)
	}
	if cfg.S3WriterWorkers != 4 {
		t.Errorf("S3WriterWorkers = %d", cfg.S3WriterWorkers)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
	if cfg.HttpListenAddr != ":8080" {
		t.Errorf("HttpListenAddr = %q", cfg.HttpListenAddr)
	}
}

func TestLoadHonorsEnvOverrides(t *testing.T) {
	t.Setenv("S3_WRITER_WORKERS", "8")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.S3WriterWorkers != 8 {
		t.Errorf("S3WriterWorkers = %d, want 8", cfg.S3WriterWorkers)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadIgnoresInvalidIntOverride(t *testing.T) {
	t.Setenv("S3_WRITER_WORKERS", "not-a-number")

	cfg := Load()
	if cfg.S3WriterWorkers != 4 {
		t.Errorf("S3WriterWorkers = %d, want default 4 on invalid input", cfg.S3WriterWorkers)
	}
}
