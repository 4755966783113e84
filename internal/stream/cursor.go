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
	"bytes"
	"context"
)

// CursorReader streams an in-memory byte slice, typically the probe
// sub-protocol's JSON payload.
type CursorReader struct {
	Content []byte
}

func NewCursorReader(content []byte) CursorReader {
	return CursorReader{Content: content}
}

func (c CursorReader) ReadStream(ctx context.Context, _ string, sender chan<- Message, cancel ReaderCancel) (uint64, error) {
	select {
	case sender <- NewSize(uint64(len(c.Content))):
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	return pumpReader(ctx, bytes.NewReader(c.Content), sender, cancel)
}
