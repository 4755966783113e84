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

// Package transfer pairs a reader and a writer endpoint over a bounded
// channel and reports the outcome of one job.
package transfer

import (
	"filetransfer/internal/config"
	"filetransfer/internal/secretcfg"
	"filetransfer/internal/stream"
	"filetransfer/internal/xerrors"
)

// newReader builds the StreamReader for a source secret. The secret
// discriminator is the only runtime type test; the rest is a plain
// constructor switch. cfg supplies the per-endpoint tunables loaded
// once at process start.
func newReader(secret secretcfg.Secret, cfg config.Config) (stream.StreamReader, error) {
	switch secret.Kind {
	case secretcfg.KindLocal, "":
		return stream.FileReader{}, nil
	case secretcfg.KindCursor:
		return stream.NewCursorReader(secret.Bytes), nil
	case secretcfg.KindFtp:
		return stream.FtpReader{Secret: secret, BufferSize: cfg.FtpReaderBufferSize}, nil
	case secretcfg.KindSftp:
		return stream.SftpReader{Secret: secret, BufferSize: cfg.SftpReaderBufferSize}, nil
	case secretcfg.KindS3:
		return stream.S3Reader{Secret: secret, BufferSize: cfg.S3ReaderBufferSize}, nil
	case secretcfg.KindGcs:
		return stream.GcsReader{Secret: secret, ServiceAccountJSON: cfg.ServiceAccountJSON}, nil
	case secretcfg.KindHttp:
		return stream.HttpReader{Secret: secret}, nil
	default:
		return nil, xerrors.New(xerrors.Configuration, "unsupported source secret type")
	}
}

// newWriter builds the StreamWriter for a destination secret. HTTP and
// Cursor are not valid destinations and are rejected here, at
// construction time, rather than once the write loop starts. cfg
// supplies the per-endpoint tunables loaded once at process start.
func newWriter(secret secretcfg.Secret, cfg config.Config) (stream.StreamWriter, error) {
	switch secret.Kind {
	case secretcfg.KindLocal, "":
		return stream.FileWriter{}, nil
	case secretcfg.KindFtp:
		return stream.FtpWriter{Secret: secret}, nil
	case secretcfg.KindSftp:
		return stream.SftpWriter{Secret: secret}, nil
	case secretcfg.KindS3:
		return stream.S3Writer{Secret: secret, PartSize: cfg.S3WriterPartSize, Workers: cfg.S3WriterWorkers}, nil
	case secretcfg.KindGcs:
		return stream.GcsWriter{Secret: secret, ServiceAccountJSON: cfg.ServiceAccountJSON}, nil
	case secretcfg.KindHttp:
		return nil, xerrors.New(xerrors.Configuration, "unsupported destination: http is a source-only endpoint")
	case secretcfg.KindCursor:
		return nil, xerrors.New(xerrors.Configuration, "unsupported destination: cursor is a source-only endpoint")
	default:
		return nil, xerrors.New(xerrors.Configuration, "unsupported destination secret type")
	}
}
