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

import "context"

// ReaderCancel is the narrow port a reader polls between chunks. It is
// deliberately smaller than the job-bus handle so endpoints stay testable
// with a canned implementation.
type ReaderCancel interface {
	IsStopped() bool
}

// WriteJob is the narrow port a writer uses to report progress and to
// poll for cancellation.
type WriteJob interface {
	ReaderCancel
	// JobID identifies the job for logging and progress publication.
	JobID() string
	// Progress is called with a strictly increasing percentage in
	// [0, 100] whenever the writer's received byte count crosses a new
	// percent boundary.
	Progress(percent uint8) error
}

// StreamReader produces frames for one named object.
type StreamReader interface {
	// ReadStream drains bytes from path into sender, returning the
	// number of bytes produced. It must send Size first (when
	// determinable), then zero or more Data frames, then exactly one
	// terminal frame (Eof or Stop).
	ReadStream(ctx context.Context, path string, sender chan<- Message, cancel ReaderCancel) (uint64, error)
}

// StreamWriter consumes frames for one named object.
type StreamWriter interface {
	// WriteStream drains receiver until a terminal frame is observed,
	// committing bytes to path and reporting progress through job.
	WriteStream(ctx context.Context, path string, receiver <-chan Message, job WriteJob) error
}

// staticCancel is a ReaderCancel backed by a plain bool, useful for tests
// and for the probe sub-protocol's one-shot reads.
type staticCancel bool

func (s staticCancel) IsStopped() bool { return bool(s) }

// NeverStop is a ReaderCancel that never reports cancellation.
var NeverStop ReaderCancel = staticCancel(false)
