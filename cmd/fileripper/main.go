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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/phuslu/log"

	fileripper "filetransfer"
	"filetransfer/internal/config"
	"filetransfer/internal/core"
	"filetransfer/internal/logger"
	"filetransfer/internal/server"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch os.Args[1] {
	case "start-server":
		addr := cfg.HttpListenAddr
		if len(os.Args) > 2 {
			addr = os.Args[2]
		}
		server.StartDaemon(addr)

	case "transfer":
		handleTransferCLI(os.Args)

	default:
		log.Error().Err(core.ErrUnknownCommand).Str("command", os.Args[1]).Msg("unrecognized command")
		printUsage()
		os.Exit(1)
	}
}

// handleTransferCLI reads a job file (a JSON-encoded TransferRequest)
// from args[2] and runs it to completion, logging progress as it goes.
func handleTransferCLI(args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: fileripper transfer <request.json> [job_id]")
		os.Exit(1)
	}

	raw, err := os.ReadFile(args[2])
	if err != nil {
		log.Fatal().Err(err).Str("path", args[2]).Msg("cannot read job file")
	}

	var req fileripper.TransferRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		log.Fatal().Err(err).Msg("invalid job file")
	}

	jobID := "cli-job"
	if len(args) > 3 {
		jobID = args[3]
	}

	client := fileripper.NewClient()
	handle := &cliHandle{}

	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				log.Info().Uint32("percent", handle.percent.Load()).Msg("transfer progress")
			}
		}
	}()

	start := time.Now()
	result := client.Transfer(ctx, jobID, req, handle)
	close(done)

	elapsed := time.Since(start).Round(time.Millisecond)

	switch result.Status {
	case fileripper.Completed:
		log.Info().Str("elapsed", elapsed.String()).Uint64("bytes", result.BytesRead).Msg("transfer completed")
	case fileripper.Stopped:
		log.Warn().Str("elapsed", elapsed.String()).Msg("transfer stopped")
	default:
		log.Error().Str("message", result.Message).Msg("transfer failed")
		os.Exit(1)
	}
}

// cliHandle is the job-bus Handle used when driving a transfer directly
// from the command line: it never requests a stop and just records the
// latest progress percentage for the ticker goroutine to print.
type cliHandle struct {
	percent atomic.Uint32
}

func (h *cliHandle) IsStopped() bool { return false }

func (h *cliHandle) PublishProgress(_ string, percent uint8) error {
	h.percent.Store(uint32(percent))
	return nil
}

func printUsage() {
	fmt.Println(`
Usage: fileripper [command] [args]

Commands:
  start-server [addr]            Start the job-bus HTTP adapter (default from HTTP_LISTEN_ADDR)
  transfer <request.json> [id]   Run one transfer job described by a JSON TransferRequest
`)
}
