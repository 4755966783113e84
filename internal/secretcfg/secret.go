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

// Package secretcfg decodes the JSON tagged union describing a transfer
// endpoint's credentials, and the job envelope that carries two of them.
package secretcfg

import (
	"encoding/json"
	"fmt"

	"filetransfer/internal/xerrors"
)

// Kind discriminates the Secret tagged union via the "type" JSON field.
type Kind string

const (
	KindLocal  Kind = "local"
	KindCursor Kind = "cursor"
	KindFtp    Kind = "ftp"
	KindSftp   Kind = "sftp"
	KindS3     Kind = "s3"
	KindGcs    Kind = "gcs"
	KindHttp   Kind = "http"
)

// Secret is the decoded form of every endpoint kind; only the fields
// relevant to Kind are populated. Flattening the union into one struct
// keeps endpoint construction a single switch rather than a type
// assertion per call site.
type Secret struct {
	Kind Kind

	// Cursor
	Bytes []byte

	// Ftp / Sftp
	Host      string
	Port      int
	TLS       bool
	User      string
	Pass      string
	Prefix    string
	KnownHost string

	// S3
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string

	// Gcs
	Credentials string

	// Http
	Method  string
	Headers map[string]string
	Body    string
}

// jsonSecret mirrors the wire encoding: one flat object with a "type"
// discriminator and per-kind optional fields, all in snake_case.
type jsonSecret struct {
	Type string `json:"type"`

	Bytes []byte `json:"bytes,omitempty"`

	Host      string `json:"host,omitempty"`
	Port      *int   `json:"port,omitempty"`
	TLS       bool   `json:"tls,omitempty"`
	User      string `json:"user,omitempty"`
	Pass      string `json:"pass,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	KnownHost string `json:"known_host,omitempty"`

	Endpoint  string `json:"endpoint,omitempty"`
	AccessKey string `json:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty"`
	Region    string `json:"region,omitempty"`
	Bucket    string `json:"bucket,omitempty"`

	Credentials string `json:"credentials,omitempty"`

	Method  string            `json:"method,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    string            `json:"body,omitempty"`
}

// UnmarshalJSON decodes the tagged union. A missing or empty "type"
// defaults to Local, matching the source's Default::default() == Local.
func (s *Secret) UnmarshalJSON(data []byte) error {
	var wire jsonSecret
	if err := json.Unmarshal(data, &wire); err != nil {
		return xerrors.Wrap(xerrors.Configuration, "decoding secret JSON", err)
	}

	kind := Kind(wire.Type)
	if kind == "" {
		kind = KindLocal
	}

	switch kind {
	case KindLocal, KindCursor, KindFtp, KindSftp, KindS3, KindGcs, KindHttp:
	default:
		return xerrors.New(xerrors.Configuration, fmt.Sprintf("unknown secret type %q", wire.Type))
	}

	port := 0
	if wire.Port != nil {
		port = *wire.Port
	}

	*s = Secret{
		Kind:        kind,
		Bytes:       wire.Bytes,
		Host:        wire.Host,
		Port:        port,
		TLS:         wire.TLS,
		User:        wire.User,
		Pass:        wire.Pass,
		Prefix:      wire.Prefix,
		KnownHost:   wire.KnownHost,
		Endpoint:    wire.Endpoint,
		AccessKey:   wire.AccessKey,
		SecretKey:   wire.SecretKey,
		Region:      wire.Region,
		Bucket:      wire.Bucket,
		Credentials: wire.Credentials,
		Method:      wire.Method,
		Headers:     wire.Headers,
		Body:        wire.Body,
	}

	if kind == KindFtp && s.Port == 0 {
		s.Port = 21
	}
	if kind == KindSftp && s.Port == 0 {
		s.Port = 22
	}
	if kind == KindHttp && s.Method == "" {
		s.Method = "GET"
	}

	return nil
}

// MarshalJSON re-encodes a Secret back into its wire form, the inverse
// of UnmarshalJSON.
func (s Secret) MarshalJSON() ([]byte, error) {
	wire := jsonSecret{
		Type:        string(s.Kind),
		Bytes:       s.Bytes,
		Host:        s.Host,
		TLS:         s.TLS,
		User:        s.User,
		Pass:        s.Pass,
		Prefix:      s.Prefix,
		KnownHost:   s.KnownHost,
		Endpoint:    s.Endpoint,
		AccessKey:   s.AccessKey,
		SecretKey:   s.SecretKey,
		Region:      s.Region,
		Bucket:      s.Bucket,
		Credentials: s.Credentials,
		Method:      s.Method,
		Headers:     s.Headers,
		Body:        s.Body,
	}
	if s.Port != 0 {
		wire.Port = &s.Port
	}
	return json.Marshal(wire)
}

// Local reports the zero-value default secret.
func Local() Secret { return Secret{Kind: KindLocal} }

// TransferRequest is one job: a source object to read and a destination
// object to write, each with its own (optional) secret.
type TransferRequest struct {
	SourcePath         string  `json:"source_path"`
	SourceSecret       *Secret `json:"source_secret,omitempty"`
	DestinationPath    string  `json:"destination_path"`
	DestinationSecret  *Secret `json:"destination_secret,omitempty"`
	EmitProgress       bool    `json:"emit_progress"`
	ProbePath          string  `json:"probe_path,omitempty"`
	ProbeSecret        *Secret `json:"probe_secret,omitempty"`
}

// resolvedSecret returns s if non-nil, else the Local default.
func resolvedSecret(s *Secret) Secret {
	if s == nil {
		return Local()
	}
	return *s
}

// Source returns the effective source secret, defaulting to Local.
func (r TransferRequest) Source() Secret { return resolvedSecret(r.SourceSecret) }

// Destination returns the effective destination secret, defaulting to Local.
func (r TransferRequest) Destination() Secret { return resolvedSecret(r.DestinationSecret) }

// UnmarshalJSON applies the emit_progress=true default from an absent
// field, since Go's zero value for bool would otherwise silently disable
// progress reporting.
func (r *TransferRequest) UnmarshalJSON(data []byte) error {
	type alias TransferRequest
	aux := struct {
		EmitProgress *bool `json:"emit_progress,omitempty"`
		*alias
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return xerrors.Wrap(xerrors.Configuration, "decoding transfer request JSON", err)
	}
	if aux.EmitProgress == nil {
		r.EmitProgress = true
	} else {
		r.EmitProgress = *aux.EmitProgress
	}
	return nil
}
