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

import "testing"

func TestMessageConstructors(t *testing.T) {
	if m := NewSize(42); m.Kind != Size || m.SizeValue != 42 {
		t.Fatalf("NewSize = %+v", m)
	}
	if m := NewData([]byte("hi")); m.Kind != Data || string(m.Bytes) != "hi" {
		t.Fatalf("NewData = %+v", m)
	}
	if m := NewEof(); m.Kind != Eof {
		t.Fatalf("NewEof = %+v", m)
	}
	if m := NewStop(); m.Kind != Stop {
		t.Fatalf("NewStop = %+v", m)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{Size: "Size", Data: "Data", Eof: "Eof", Stop: "Stop", Kind(99): "Unknown"}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestNeverStopNeverStops(t *testing.T) {
	if NeverStop.IsStopped() {
		t.Fatal("NeverStop reported stopped")
	}
}
