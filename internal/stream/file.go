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

package stream

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/phuslu/log"

	"filetransfer/internal/xerrors"
)

// LocalBufferSize is the chunk size used by FileReader and CursorReader,
// the non-network readers.
const LocalBufferSize = 30 * 1024

// FileReader streams a local file.
type FileReader struct{}

func (FileReader) ReadStream(ctx context.Context, path string, sender chan<- Message, cancel ReaderCancel) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, xerrors.Wrap(xerrors.Io, "opening local file "+path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, xerrors.Wrap(xerrors.Io, "statting local file "+path, err)
	}

	select {
	case sender <- NewSize(uint64(info.Size())):
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	return pumpReader(ctx, f, sender, cancel)
}

// pumpReader is the shared chunked read-and-send loop used by FileReader
// and CursorReader: it reads in LocalBufferSize chunks, polls cancel
// before each read, and sends the terminal frame on exit.
func pumpReader(ctx context.Context, r io.Reader, sender chan<- Message, cancel ReaderCancel) (uint64, error) {
	buf := make([]byte, LocalBufferSize)
	var total uint64

	for {
		if cancel.IsStopped() {
			if !trySend(ctx, sender, NewStop()) {
				log.Warn().Msg("reader send failed after cancellation observed, peer already gone")
			}
			return total, nil
		}

		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if !trySend(ctx, sender, NewData(chunk)) {
				if cancel.IsStopped() {
					log.Warn().Msg("reader send failed after cancellation observed, peer already gone")
					return total, nil
				}
				return total, xerrors.New(xerrors.Channel, "reader could not send data frame")
			}
			total += uint64(n)
		}
		if err != nil {
			if err == io.EOF {
				if !trySend(ctx, sender, NewEof()) {
					log.Warn().Msg("reader send of Eof failed, peer already gone")
				}
				return total, nil
			}
			return total, xerrors.Wrap(xerrors.Io, "reading stream", err)
		}
	}
}

// trySend sends msg on sender, returning false if the context was
// cancelled first.
func trySend(ctx context.Context, sender chan<- Message, msg Message) bool {
	select {
	case sender <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

// FileWriter commits frames to a local file, creating parent directories
// as needed.
type FileWriter struct{}

func (FileWriter) WriteStream(ctx context.Context, path string, receiver <-chan Message, job WriteJob) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return xerrors.Wrap(xerrors.Io, "creating parent directories for "+path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return xerrors.Wrap(xerrors.Io, "creating local file "+path, err)
	}
	defer f.Close()

	var size uint64
	var received uint64
	var prevPercent uint8

	for {
		if job.IsStopped() {
			return nil
		}

		select {
		case msg, ok := <-receiver:
			if !ok {
				return xerrors.New(xerrors.Channel, "writer channel closed before a terminal frame")
			}
			switch msg.Kind {
			case Size:
				size = msg.SizeValue
			case Data:
				if _, err := f.Write(msg.Bytes); err != nil {
					return xerrors.Wrap(xerrors.Io, "writing to local file "+path, err)
				}
				received += uint64(len(msg.Bytes))
				if size > 0 {
					percent := uint8(received * 100 / size)
					if percent > prevPercent {
						prevPercent = percent
						if err := job.Progress(percent); err != nil {
							log.Warn().Err(err).Msg("progress publish failed, continuing transfer")
						}
					}
				}
			case Eof:
				if err := f.Sync(); err != nil {
					return xerrors.Wrap(xerrors.Io, "flushing local file "+path, err)
				}
				return nil
			case Stop:
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
