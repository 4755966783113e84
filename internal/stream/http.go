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
	"fmt"
	"io"
	"net/http"
	"strings"

	"filetransfer/internal/secretcfg"
	"filetransfer/internal/xerrors"
)

// HttpReader issues one request and streams the response body. Source
// only, per the contract: HTTP is never a valid destination.
//
// Deviation: the body is read into memory in full and delivered as a
// single Data frame rather than being chunked like the other readers,
// which breaks the bounded-memory invariant for large responses. This
// mirrors the upstream reader's behavior and is preserved deliberately
// (see Design Notes Open Question 2) rather than silently fixed.
type HttpReader struct {
	Secret secretcfg.Secret
}

func (r HttpReader) ReadStream(ctx context.Context, objectPath string, sender chan<- Message, cancel ReaderCancel) (uint64, error) {
	endpoint := r.Secret.Endpoint
	if endpoint == "" {
		endpoint = objectPath
	}

	method := r.Secret.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if r.Secret.Body != "" {
		body = strings.NewReader(r.Secret.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return 0, xerrors.Wrap(xerrors.Configuration, "building HTTP request for "+endpoint, err)
	}
	for k, v := range r.Secret.Headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, xerrors.Wrap(xerrors.Connection, "performing HTTP request to "+endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, xerrors.New(xerrors.Protocol, fmt.Sprintf("bad request response: %d", resp.StatusCode))
	}

	if cancel.IsStopped() {
		if !trySend(ctx, sender, NewStop()) {
			return 0, nil
		}
		return 0, nil
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, xerrors.Wrap(xerrors.Io, "reading HTTP response body from "+endpoint, err)
	}

	if resp.ContentLength >= 0 {
		if !trySend(ctx, sender, NewSize(uint64(resp.ContentLength))) {
			return 0, ctx.Err()
		}
	} else {
		if !trySend(ctx, sender, NewSize(uint64(len(content)))) {
			return 0, ctx.Err()
		}
	}

	if len(content) > 0 {
		if !trySend(ctx, sender, NewData(content)) {
			return 0, xerrors.New(xerrors.Channel, "reader could not send data frame")
		}
	}

	if !trySend(ctx, sender, NewEof()) {
		return uint64(len(content)), nil
	}
	return uint64(len(content)), nil
}
