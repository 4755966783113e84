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

// Package xerrors gives the transfer engine a typed error taxonomy so
// callers can branch on failure class instead of matching strings.
package xerrors

import (
	"errors"
	"fmt"
)

// Kind classifies a transfer failure.
type Kind int

const (
	// Configuration covers missing/invalid secrets, missing path
	// parameters, and unsupported endpoint combinations.
	Configuration Kind = iota
	// Connection covers TCP/TLS/SSH failures and credential rejection.
	Connection
	// Protocol covers bad HTTP status, malformed FTP responses, and
	// unexpected frame sequences at a writer.
	Protocol
	// Io covers local filesystem errors and mid-stream read/write failures.
	Io
	// Channel covers send/receive failures on a closed channel not
	// explained by cooperative cancellation.
	Channel
	// RemoteObject covers S3/GCS head/get/put/complete failures.
	RemoteObject
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration_error"
	case Connection:
		return "connection_error"
	case Protocol:
		return "protocol_error"
	case Io:
		return "io_error"
	case Channel:
		return "channel_error"
	case RemoteObject:
		return "remote_object_error"
	default:
		return "unknown_error"
	}
}

// Error is a kind-tagged wrapper around an underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds a kind-tagged error with no underlying cause.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a kind-tagged error around an underlying cause.
func Wrap(kind Kind, message string, cause error) error {
	if cause == nil {
		return New(kind, message)
	}
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf reports the Kind of err, defaulting to Io when err was not
// produced by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Io
}
