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
	"testing"
)

func TestCursorReaderSendsSizeThenData(t *testing.T) {
	content := []byte(`{"filename":"a.bin","size":3,"mime_type":"application/octet-stream"}`)
	reader := NewCursorReader(content)
	channel := make(chan Message, ChannelCapacity)

	n, err := reader.ReadStream(context.Background(), "", channel, NeverStop)
	close(channel)
	if err != nil {
		t.Fatalf("ReadStream: %v", err)
	}
	if n != uint64(len(content)) {
		t.Fatalf("ReadStream returned %d, want %d", n, len(content))
	}

	first := <-channel
	if first.Kind != Size || first.SizeValue != uint64(len(content)) {
		t.Fatalf("first frame = %+v, want Size(%d)", first, len(content))
	}

	var got []byte
	for msg := range channel {
		if msg.Kind == Data {
			got = append(got, msg.Bytes...)
		}
	}
	if string(got) != string(content) {
		t.Fatalf("reassembled content = %q, want %q", got, content)
	}
}

func TestCursorReaderEmptyContentIsSizeZeroThenEof(t *testing.T) {
	reader := NewCursorReader(nil)
	channel := make(chan Message, ChannelCapacity)

	if _, err := reader.ReadStream(context.Background(), "", channel, NeverStop); err != nil {
		t.Fatalf("ReadStream: %v", err)
	}
	close(channel)

	var kinds []Kind
	for msg := range channel {
		kinds = append(kinds, msg.Kind)
	}
	if len(kinds) != 2 || kinds[0] != Size || kinds[1] != Eof {
		t.Fatalf("kinds = %v, want [Size Eof]", kinds)
	}
}
