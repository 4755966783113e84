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

// Package stream holds the frame type that flows between reader and
// writer endpoints, plus the endpoint implementations themselves.
package stream

// Kind tags a StreamMessage's payload.
type Kind int

const (
	// Size announces the total byte count; sent at most once, before
	// any Data frame.
	Size Kind = iota
	// Data carries a non-empty payload segment.
	Data
	// Eof marks a clean end of stream.
	Eof
	// Stop marks a cancelled end of stream.
	Stop
)

func (k Kind) String() string {
	switch k {
	case Size:
		return "Size"
	case Data:
		return "Data"
	case Eof:
		return "Eof"
	case Stop:
		return "Stop"
	default:
		return "Unknown"
	}
}

// Message is one frame on the channel between a reader and a writer.
// Exactly one of SizeValue/Bytes is meaningful depending on Kind.
type Message struct {
	Kind      Kind
	SizeValue uint64
	Bytes     []byte
}

// NewSize builds a Size frame.
func NewSize(n uint64) Message { return Message{Kind: Size, SizeValue: n} }

// NewData builds a Data frame. The caller must not mutate b afterwards.
func NewData(b []byte) Message { return Message{Kind: Data, Bytes: b} }

// NewEof builds an Eof frame.
func NewEof() Message { return Message{Kind: Eof} }

// NewStop builds a Stop frame.
func NewStop() Message { return Message{Kind: Stop} }

// Channel capacity shared by every orchestrated transfer.
const ChannelCapacity = 1000
