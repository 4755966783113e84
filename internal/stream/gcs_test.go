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

	"filetransfer/internal/xerrors"
)

// These cover the first-frame dispatch contract without touching a real
// GCS client: the no-op and error branches return before any client is
// constructed, so they're reachable in isolation.

func TestGcsWriterEofFirstIsNoop(t *testing.T) {
	channel := make(chan Message, 1)
	channel <- NewEof()

	if err := (GcsWriter{}).WriteStream(context.Background(), "obj", channel, &stubJob{}); err != nil {
		t.Fatalf("WriteStream = %v, want nil", err)
	}
}

func TestGcsWriterStopFirstIsNoop(t *testing.T) {
	channel := make(chan Message, 1)
	channel <- NewStop()

	if err := (GcsWriter{}).WriteStream(context.Background(), "obj", channel, &stubJob{}); err != nil {
		t.Fatalf("WriteStream = %v, want nil", err)
	}
}

func TestGcsWriterDataFirstIsProtocolError(t *testing.T) {
	channel := make(chan Message, 1)
	channel <- NewData([]byte("oops"))

	err := (GcsWriter{}).WriteStream(context.Background(), "obj", channel, &stubJob{})
	if err == nil {
		t.Fatal("expected a protocol error")
	}
	if xerrors.KindOf(err) != xerrors.Protocol {
		t.Fatalf("KindOf = %v, want Protocol", xerrors.KindOf(err))
	}
	want := "GCS writer received an unexpected Data([111 111 112 115]) message, Size was expected"
	if got := err.Error(); got != "protocol_error: "+want {
		t.Fatalf("Error() = %q", got)
	}
}

func TestGcsWriterClosedChannelBeforeAnyFrame(t *testing.T) {
	channel := make(chan Message)
	close(channel)

	err := (GcsWriter{}).WriteStream(context.Background(), "obj", channel, &stubJob{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if xerrors.KindOf(err) != xerrors.Channel {
		t.Fatalf("KindOf = %v, want Channel", xerrors.KindOf(err))
	}
}
