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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"filetransfer/internal/config"
	"filetransfer/internal/secretcfg"
)

type noopHandle struct{ stopped bool }

func (h *noopHandle) IsStopped() bool                     { return h.stopped }
func (h *noopHandle) PublishProgress(string, uint8) error { return nil }

func TestRunLocalToLocalCompletes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.bin")
	dst := filepath.Join(dir, "out.bin")

	payload := bytes.Repeat([]byte("z"), 5000)
	if err := os.WriteFile(src, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	req := secretcfg.TransferRequest{SourcePath: src, DestinationPath: dst, EmitProgress: true}
	result := Run(context.Background(), "job-1", req, config.Config{}, &noopHandle{})

	if result.Status != Completed {
		t.Fatalf("Status = %v, message = %q", result.Status, result.Message)
	}
	if result.BytesRead != uint64(len(payload)) {
		t.Fatalf("BytesRead = %d, want %d", result.BytesRead, len(payload))
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("destination content mismatch")
	}
}

func TestRunReportsStoppedWhenHandleIsStopped(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.bin")
	dst := filepath.Join(dir, "out.bin")
	if err := os.WriteFile(src, bytes.Repeat([]byte("q"), 2000), 0o644); err != nil {
		t.Fatal(err)
	}

	req := secretcfg.TransferRequest{SourcePath: src, DestinationPath: dst}
	result := Run(context.Background(), "job-2", req, config.Config{}, &noopHandle{stopped: true})

	if result.Status != Stopped {
		t.Fatalf("Status = %v, want Stopped", result.Status)
	}
}

func TestRunMissingSourceIsError(t *testing.T) {
	dir := t.TempDir()
	req := secretcfg.TransferRequest{
		SourcePath:      filepath.Join(dir, "does-not-exist.bin"),
		DestinationPath: filepath.Join(dir, "out.bin"),
	}
	result := Run(context.Background(), "job-3", req, config.Config{}, &noopHandle{})

	if result.Status != Error {
		t.Fatalf("Status = %v, want Error", result.Status)
	}
}

func TestRunRejectsHttpDestinationAtConstruction(t *testing.T) {
	req := secretcfg.TransferRequest{
		SourcePath:        "anything",
		DestinationPath:   "anything",
		DestinationSecret: &secretcfg.Secret{Kind: secretcfg.KindHttp},
	}
	result := Run(context.Background(), "job-4", req, config.Config{}, &noopHandle{})

	if result.Status != Error {
		t.Fatalf("Status = %v, want Error", result.Status)
	}
}
