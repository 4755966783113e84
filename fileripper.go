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

// Package fileripper is the library's public surface: construct a
// Client, hand it a TransferRequest and a job-bus Handle, get back a
// Result.
package fileripper

import (
	"context"

	"filetransfer/internal/config"
	"filetransfer/internal/jobbus"
	"filetransfer/internal/secretcfg"
	"filetransfer/internal/transfer"
)

// Client is the main interface for the library. It loads Config once,
// at construction, and threads the same value into every Transfer call.
type Client struct {
	cfg config.Config
}

// NewClient creates a new FileRipper instance, loading Config from the
// process environment a single time.
func NewClient() *Client {
	return &Client{cfg: config.Load()}
}

// TransferRequest describes one job: a source object to read and a
// destination object to write.
type TransferRequest = secretcfg.TransferRequest

// Secret is the tagged union describing one endpoint's credentials.
type Secret = secretcfg.Secret

// JobHandle is what the caller's job-bus framework must supply: a
// stop-flag observer and a progress publisher.
type JobHandle = jobbus.Handle

// Status is the user-visible outcome of a transfer.
type Status = transfer.Status

const (
	Completed = transfer.Completed
	Stopped   = transfer.Stopped
	Error     = transfer.Error
)

// Result reports the outcome of one transfer.
type Result = transfer.Result

// Transfer runs one job: it streams source_path from the source secret
// to destination_path on the destination secret, reporting progress and
// honoring cancellation through handle.
func (c *Client) Transfer(ctx context.Context, jobID string, req TransferRequest, handle JobHandle) Result {
	return transfer.Run(ctx, jobID, req, c.cfg, handle)
}
