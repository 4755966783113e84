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

// Package multipart isolates the S3 multipart upload state machine from
// any concrete client, so it can be exercised with a stub in tests. It
// knows nothing about StreamMessage frames; callers feed it raw bytes.
package multipart

import (
	"context"
	"sort"
	"sync"

	"github.com/phuslu/log"
)

// CompletedPart is one finished part, as returned by UploadPart and
// consumed by CompleteMultipartUpload.
type CompletedPart struct {
	PartNumber int
	ETag       string
}

// Client is the narrow surface the engine needs from an S3-compatible
// object store. A test stub can implement this without any network
// dependency.
type Client interface {
	CreateMultipartUpload(ctx context.Context, bucket, key string) (uploadID string, err error)
	UploadPart(ctx context.Context, bucket, key, uploadID string, partNumber int, data []byte) (CompletedPart, error)
	CompleteMultipartUpload(ctx context.Context, bucket, key, uploadID string, parts []CompletedPart) error
	AbortMultipartUpload(ctx context.Context, bucket, key, uploadID string) error
}

// Engine uploads caller-supplied parts through a bounded worker pool,
// numbering them in dispatch order and reassembling completions by part
// number regardless of arrival order. It does not split or accumulate
// bytes itself; callers use PartSize to decide when a part is full.
type Engine struct {
	client Client
	bucket string
	key    string

	partSize int
	workers  int

	uploadID   string
	nextPart   int
	jobs       chan partJob
	wg         sync.WaitGroup
	mu         sync.Mutex
	parts      []CompletedPart
	firstErr   error
	started    bool
}

type partJob struct {
	number int
	data   []byte
}

// New builds a multipart engine. partSize and workers should come from
// S3_WRITER_PART_SIZE and S3_WRITER_WORKERS.
func New(client Client, bucket, key string, partSize, workers int) *Engine {
	if partSize <= 0 {
		partSize = 10 * 1024 * 1024
	}
	if workers <= 0 {
		workers = 4
	}
	return &Engine{
		client:   client,
		bucket:   bucket,
		key:      key,
		partSize: partSize,
		workers:  workers,
		nextPart: 1,
	}
}

// PartSize reports the configured part size, so callers know when to
// flush an accumulation buffer.
func (e *Engine) PartSize() int { return e.partSize }

// Start issues CreateMultipartUpload and spins up the worker pool. The
// job queue has a depth of one, so WritePart blocks once more than one
// part is queued behind the workers currently in flight, bounding memory
// per the dispatching-loop backpressure requirement.
func (e *Engine) Start(ctx context.Context) error {
	uploadID, err := e.client.CreateMultipartUpload(ctx, e.bucket, e.key)
	if err != nil {
		return err
	}
	e.uploadID = uploadID
	e.started = true
	e.jobs = make(chan partJob, 1)

	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.worker(ctx)
	}
	return nil
}

func (e *Engine) worker(ctx context.Context) {
	defer e.wg.Done()
	for job := range e.jobs {
		part, err := e.client.UploadPart(ctx, e.bucket, e.key, e.uploadID, job.number, job.data)
		e.mu.Lock()
		if err != nil {
			if e.firstErr == nil {
				e.firstErr = err
			}
		} else {
			e.parts = append(e.parts, part)
		}
		e.mu.Unlock()
	}
}

// WritePart dispatches one part's bytes to the worker pool, assigning
// the next monotonically increasing part number. It blocks while the
// queue already holds one undispatched job, providing backpressure.
func (e *Engine) WritePart(data []byte) {
	number := e.nextPart
	e.nextPart++
	e.jobs <- partJob{number: number, data: data}
}

// Finish flushes no further parts, waits for all in-flight uploads, and
// calls CompleteMultipartUpload with completions sorted by part number.
func (e *Engine) Finish(ctx context.Context) error {
	close(e.jobs)
	e.wg.Wait()

	e.mu.Lock()
	err := e.firstErr
	parts := append([]CompletedPart(nil), e.parts...)
	e.mu.Unlock()

	if err != nil {
		log.Error().Str("key", e.key).Err(err).Msg("multipart upload left abandoned after a part failed")
		return err
	}

	sort.Slice(parts, func(i, j int) bool { return parts[i].PartNumber < parts[j].PartNumber })
	return e.client.CompleteMultipartUpload(ctx, e.bucket, e.key, e.uploadID, parts)
}

// Abandon stops the worker pool without calling CompleteMultipartUpload,
// leaving the upload id abandoned on the remote side (see Design Notes
// Open Question 1: this engine does not auto-abort). Callers that want
// stricter cleanup can call AbortMultipartUpload on the client directly.
func (e *Engine) Abandon() {
	if !e.started {
		return
	}
	close(e.jobs)
	e.wg.Wait()
	log.Warn().Str("key", e.key).Str("upload_id", e.uploadID).Msg("multipart upload abandoned, not completed")
}
