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

package transfer

import (
	"context"
	"sync"

	"github.com/phuslu/log"

	"filetransfer/internal/config"
	"filetransfer/internal/jobbus"
	"filetransfer/internal/secretcfg"
	"filetransfer/internal/stream"
)

// Status is the user-visible outcome of one job.
type Status int

const (
	Completed Status = iota
	Stopped
	Error
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "Completed"
	case Stopped:
		return "Stopped"
	default:
		return "Error"
	}
}

// Result reports the outcome of one orchestrated transfer.
type Result struct {
	Status    Status
	Message   string
	BytesRead uint64
}

// Run constructs the reader and writer for one job, pairs them over a
// bounded channel, and joins both before reporting a final status. cfg
// is the process Config loaded once at startup and threaded down into
// whichever endpoint constructors the job's secrets resolve to.
func Run(ctx context.Context, jobID string, req secretcfg.TransferRequest, cfg config.Config, handle jobbus.Handle) Result {
	reader, err := newReader(req.Source(), cfg)
	if err != nil {
		return Result{Status: Error, Message: err.Error()}
	}
	writer, err := newWriter(req.Destination(), cfg)
	if err != nil {
		return Result{Status: Error, Message: err.Error()}
	}

	channel := make(chan stream.Message, stream.ChannelCapacity)
	cancel := jobbus.NewReaderCancel(handle)
	job := jobbus.NewWriteJob(handle, jobID, req.EmitProgress)

	var wg sync.WaitGroup
	wg.Add(2)

	var readErr, writeErr error
	var bytesRead uint64

	log.Info().Str("job_id", jobID).Str("source", req.SourcePath).Str("destination", req.DestinationPath).
		Msg("transfer started")

	go func() {
		defer wg.Done()
		defer close(channel)
		bytesRead, readErr = reader.ReadStream(ctx, req.SourcePath, channel, cancel)
	}()

	go func() {
		defer wg.Done()
		writeErr = writer.WriteStream(ctx, req.DestinationPath, channel, job)
	}()

	wg.Wait()

	result := finalResult(handle, readErr, writeErr, bytesRead)

	log.Info().Str("job_id", jobID).Str("status", result.Status.String()).Uint64("bytes", result.BytesRead).
		Msg("transfer finished")

	if result.Status == Completed && req.ProbeSecret != nil {
		if err := uploadProbe(ctx, jobID, req, cfg, result.BytesRead); err != nil {
			return Result{Status: Error, Message: "probe upload failed: " + err.Error()}
		}
	}

	return result
}

func finalResult(handle jobbus.Handle, readErr, writeErr error, bytesRead uint64) Result {
	if readErr != nil {
		return Result{Status: Error, Message: readErr.Error()}
	}
	if writeErr != nil {
		return Result{Status: Error, Message: writeErr.Error()}
	}
	if handle != nil && handle.IsStopped() {
		return Result{Status: Stopped, BytesRead: bytesRead}
	}
	return Result{Status: Completed, BytesRead: bytesRead}
}
