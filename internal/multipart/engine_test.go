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

package multipart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

type stubClient struct {
	mu          sync.Mutex
	uploaded    map[int][]byte
	completed   bool
	completedAt []CompletedPart
	aborted     bool
	failPart    int
}

func newStubClient() *stubClient {
	return &stubClient{uploaded: map[int][]byte{}}
}

func (s *stubClient) CreateMultipartUpload(ctx context.Context, bucket, key string) (string, error) {
	return "upload-1", nil
}

func (s *stubClient) UploadPart(ctx context.Context, bucket, key, uploadID string, partNumber int, data []byte) (CompletedPart, error) {
	if partNumber == s.failPart {
		return CompletedPart{}, errors.New("simulated part failure")
	}
	s.mu.Lock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.uploaded[partNumber] = cp
	s.mu.Unlock()
	return CompletedPart{PartNumber: partNumber, ETag: fmt.Sprintf("etag-%d", partNumber)}, nil
}

func (s *stubClient) CompleteMultipartUpload(ctx context.Context, bucket, key, uploadID string, parts []CompletedPart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = true
	s.completedAt = parts
	return nil
}

func (s *stubClient) AbortMultipartUpload(ctx context.Context, bucket, key, uploadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aborted = true
	return nil
}

func TestEngineUploadsAndCompletesInOrder(t *testing.T) {
	client := newStubClient()
	engine := New(client, "bucket", "key", 0, 2)

	if err := engine.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for i := 0; i < 5; i++ {
		engine.WritePart([]byte{byte(i)})
	}

	if err := engine.Finish(context.Background()); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if !client.completed {
		t.Fatal("expected CompleteMultipartUpload to have been called")
	}
	for i, part := range client.completedAt {
		if part.PartNumber != i+1 {
			t.Fatalf("completedAt[%d].PartNumber = %d, want %d (parts must be sorted)", i, part.PartNumber, i+1)
		}
	}
}

func TestEngineFinishPropagatesFirstPartError(t *testing.T) {
	client := newStubClient()
	client.failPart = 2
	engine := New(client, "bucket", "key", 0, 1)

	if err := engine.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	engine.WritePart([]byte("a"))
	engine.WritePart([]byte("b"))

	err := engine.Finish(context.Background())
	if err == nil {
		t.Fatal("expected Finish to report the part failure")
	}
	if client.completed {
		t.Fatal("CompleteMultipartUpload must not be called after a part failure")
	}
}

func TestEngineDefaultsPartSizeAndWorkers(t *testing.T) {
	engine := New(newStubClient(), "b", "k", 0, 0)
	if engine.PartSize() != 10*1024*1024 {
		t.Fatalf("default PartSize = %d", engine.PartSize())
	}
	if engine.workers != 4 {
		t.Fatalf("default workers = %d", engine.workers)
	}
}

func TestEngineAbandonDoesNotComplete(t *testing.T) {
	client := newStubClient()
	engine := New(client, "bucket", "key", 0, 2)

	if err := engine.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	engine.WritePart([]byte("never finished"))
	engine.Abandon()

	if client.completed {
		t.Fatal("Abandon must not call CompleteMultipartUpload")
	}
	if client.aborted {
		t.Fatal("Abandon must not call AbortMultipartUpload either, per the leave-abandoned decision")
	}
}
