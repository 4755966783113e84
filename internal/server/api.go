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

// Package server is a minimal illustrative host for the transfer
// engine: it decodes a TransferRequest over HTTP, runs the orchestrator,
// and exposes progress/cancellation for that job. The job-bus framework
// proper — its transport, its broker, its retry policy — is outside this
// repo's scope; this is just enough of a host to exercise the core from
// the outside.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/phuslu/log"

	"filetransfer/internal/config"
	"filetransfer/internal/secretcfg"
	"filetransfer/internal/transfer"
)

// jobState is one in-flight or finished job's handle, implementing
// jobbus.Handle directly so it can be passed straight to transfer.Run.
type jobState struct {
	stopped atomic.Bool
	percent atomic.Uint32
	done    atomic.Bool
	result  transfer.Result
}

func (j *jobState) IsStopped() bool { return j.stopped.Load() }

func (j *jobState) PublishProgress(_ string, percent uint8) error {
	j.percent.Store(uint32(percent))
	return nil
}

// daemon holds the state shared across requests: the in-flight job
// table and the Config loaded once when the HTTP adapter started.
type daemon struct {
	cfg config.Config

	jobsMu sync.Mutex
	jobs   map[string]*jobState
}

// StartDaemon initializes the local REST API.
func StartDaemon(addr string) {
	log.Info().Str("addr", addr).Msg("starting job-bus HTTP adapter")

	d := &daemon{cfg: config.Load(), jobs: map[string]*jobState{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/transfer", d.handleTransfer)
	mux.HandleFunc("/api/stop", d.handleStop)
	mux.HandleFunc("/api/progress", d.handleProgress)

	log.Fatal().Err(http.ListenAndServe(addr, mux)).Msg("HTTP adapter stopped")
}

type transferBody struct {
	JobID   string                     `json:"job_id"`
	Request secretcfg.TransferRequest `json:"request"`
}

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (d *daemon) handleTransfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body transferBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendJSON(w, false, "invalid JSON body: "+err.Error(), nil)
		return
	}
	if body.JobID == "" {
		sendJSON(w, false, "job_id is required", nil)
		return
	}

	state := &jobState{}

	d.jobsMu.Lock()
	d.jobs[body.JobID] = state
	d.jobsMu.Unlock()

	go func() {
		result := transfer.Run(context.Background(), body.JobID, body.Request, d.cfg, state)
		state.result = result
		state.done.Store(true)
		log.Info().Str("job_id", body.JobID).Str("status", result.Status.String()).Msg("job finished")
	}()

	sendJSON(w, true, "accepted", nil)
}

func (d *daemon) handleStop(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("job_id")

	d.jobsMu.Lock()
	state, ok := d.jobs[jobID]
	d.jobsMu.Unlock()

	if !ok {
		sendJSON(w, false, "unknown job_id", nil)
		return
	}
	state.stopped.Store(true)
	sendJSON(w, true, "stop requested", nil)
}

type progressResponse struct {
	Percent uint8  `json:"percent"`
	Done    bool   `json:"done"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

func (d *daemon) handleProgress(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("job_id")

	d.jobsMu.Lock()
	state, ok := d.jobs[jobID]
	d.jobsMu.Unlock()

	if !ok {
		sendJSON(w, false, "unknown job_id", nil)
		return
	}

	resp := progressResponse{Percent: uint8(state.percent.Load()), Done: state.done.Load()}
	if resp.Done {
		resp.Status = state.result.Status.String()
		resp.Message = state.result.Message
	}

	sendJSON(w, true, "OK", resp)
}

func sendJSON(w http.ResponseWriter, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	json.NewEncoder(w).Encode(apiResponse{
		Success: success,
		Message: message,
		Data:    data,
	})
}
