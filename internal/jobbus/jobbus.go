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

// Package jobbus defines the interfaces the transfer engine expects from
// its host framework, and the narrow adapters that bridge them to the
// stream package's notification ports. The host framework itself (its
// transport, its message broker) is outside this repo's scope.
package jobbus

import "filetransfer/internal/stream"

// Handle is supplied by the host job-bus: a stop-flag observer and a
// progress publisher. The job identifier is passed alongside it, not
// read from it.
type Handle interface {
	IsStopped() bool
	PublishProgress(jobID string, percent uint8) error
}

// readerCancel adapts a Handle to stream.ReaderCancel.
type readerCancel struct {
	handle Handle
}

func NewReaderCancel(handle Handle) stream.ReaderCancel {
	return readerCancel{handle: handle}
}

func (r readerCancel) IsStopped() bool {
	if r.handle == nil {
		return false
	}
	return r.handle.IsStopped()
}

// writeJob adapts a Handle to stream.WriteJob.
type writeJob struct {
	handle       Handle
	jobID        string
	emitProgress bool
}

func NewWriteJob(handle Handle, jobID string, emitProgress bool) stream.WriteJob {
	return &writeJob{handle: handle, jobID: jobID, emitProgress: emitProgress}
}

func (w *writeJob) JobID() string { return w.jobID }

func (w *writeJob) IsStopped() bool {
	if w.handle == nil {
		return false
	}
	return w.handle.IsStopped()
}

func (w *writeJob) Progress(percent uint8) error {
	if !w.emitProgress || w.handle == nil {
		return nil
	}
	return w.handle.PublishProgress(w.jobID, percent)
}
