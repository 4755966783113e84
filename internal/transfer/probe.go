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
	"encoding/json"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"filetransfer/internal/config"
	"filetransfer/internal/secretcfg"
	"filetransfer/internal/stream"
)

// fileInfo is the compact JSON document uploaded by the probe
// sub-protocol after a successful transfer.
type fileInfo struct {
	Filename string `json:"filename"`
	Size     uint64 `json:"size"`
	MimeType string `json:"mime_type"`
}

// sniffMimeType mirrors the upstream probe step's use of a content
// sniffer: for a Local source it reads the first 512 bytes and detects
// from content, otherwise it falls back to extension-based guessing.
func sniffMimeType(req secretcfg.TransferRequest) string {
	if req.Source().Kind == secretcfg.KindLocal || req.Source().Kind == "" {
		if f, err := os.Open(req.SourcePath); err == nil {
			defer f.Close()
			buf := make([]byte, 512)
			n, _ := f.Read(buf)
			if n > 0 {
				return http.DetectContentType(buf[:n])
			}
		}
	}
	if t := mime.TypeByExtension(filepath.Ext(req.SourcePath)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// uploadProbe computes FileInfo and uploads it through the same
// writer path as a normal transfer: a CursorReader feeding whatever
// writer the probe secret resolves to.
func uploadProbe(ctx context.Context, jobID string, req secretcfg.TransferRequest, cfg config.Config, size uint64) error {
	info := fileInfo{
		Filename: filepath.Base(req.SourcePath),
		Size:     size,
		MimeType: sniffMimeType(req),
	}

	payload, err := json.Marshal(info)
	if err != nil {
		return err
	}

	probePath := req.ProbePath
	if probePath == "" {
		probePath = "job/probe/"
	}
	destination := probePath + jobID + ".json"

	writer, err := newWriter(*req.ProbeSecret, cfg)
	if err != nil {
		return err
	}

	channel := make(chan stream.Message, stream.ChannelCapacity)
	reader := stream.NewCursorReader(payload)

	writeErrCh := make(chan error, 1)
	go func() {
		writeErrCh <- writer.WriteStream(ctx, destination, channel, probeWriteJob{})
	}()

	if _, err := reader.ReadStream(ctx, "", channel, stream.NeverStop); err != nil {
		close(channel)
		<-writeErrCh
		return err
	}
	close(channel)

	return <-writeErrCh
}

// probeWriteJob is a no-op WriteJob: the probe upload never reports
// progress and is never independently cancellable.
type probeWriteJob struct{}

func (probeWriteJob) JobID() string { return "probe" }
func (probeWriteJob) IsStopped() bool { return false }
func (probeWriteJob) Progress(uint8) error { return nil }
