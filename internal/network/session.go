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

package network

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/phuslu/log"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"filetransfer/internal/core"
)

// SftpSession holds the SSH connection state and the SFTP subsystem.
type SftpSession struct {
	Hostname   string
	Port       int
	User       string
	Password   string
	KnownHost  string // optional authorized-key line pinning the server's host key
	SshClient  *ssh.Client
	SftpClient *sftp.Client
}

func NewSession(host string, port int, user, password string) *SftpSession {
	return &SftpSession{
		Hostname: host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// hostKeyCallback returns a FixedHostKey callback when a known_host value
// was supplied, pinning the server's public key. Without one, it falls
// back to accept-and-log, since there is nothing to pin against.
func hostKeyCallback(knownHost string) ssh.HostKeyCallback {
	if knownHost != "" {
		if _, _, pubKey, _, _, err := ssh.ParseAuthorizedKey([]byte(knownHost)); err == nil {
			return ssh.FixedHostKey(pubKey)
		}
		log.Warn().Msg("known_host value could not be parsed as an authorized key, falling back to unpinned host key acceptance")
	}
	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		log.Warn().Str("hostname", hostname).Str("fingerprint", ssh.FingerprintSHA256(key)).
			Msg("accepting SSH host key without pinning, no known_host was supplied")
		return nil
	}
}

// Connect establishes the secure SSH tunnel.
func (s *SftpSession) Connect() error {
	address := fmt.Sprintf("%s:%d", s.Hostname, s.Port)
	log.Info().Str("address", address).Msg("initiating SSH handshake")

	config := &ssh.ClientConfig{
		User:            s.User,
		Auth:            []ssh.AuthMethod{ssh.Password(s.Password)},
		HostKeyCallback: hostKeyCallback(s.KnownHost),
		Timeout:         10 * time.Second,
	}

	client, err := ssh.Dial("tcp", address, config)
	if err != nil {
		log.Error().Str("address", address).Err(err).Msg("SSH handshake failed")
		// ssh.Dial wraps a failed net.Dial in *net.OpError before the SSH
		// handshake ever starts; anything else is a rejected handshake
		// (bad credentials, refused host key).
		var netErr *net.OpError
		if errors.As(err, &netErr) {
			return core.ErrHostUnreachable
		}
		return core.ErrAuthFailed
	}

	s.SshClient = client
	log.Info().Str("address", address).Msg("SSH channel authenticated and encrypted")

	return nil
}

// OpenSFTP initializes the SFTP subsystem on top of the SSH tunnel.
// This is distinct from Connect() because sometimes we just want Shell, not files.
func (s *SftpSession) OpenSFTP() error {
	if s.SshClient == nil {
		return core.ErrConnectionFailed
	}

	client, err := sftp.NewClient(s.SshClient)
	if err != nil {
		log.Error().Err(err).Msg("failed to open SFTP subsystem")
		return core.ErrConnectionFailed
	}

	s.SftpClient = client
	log.Info().Msg("SFTP subsystem active")
	return nil
}

// Close disconnects everything politely.
func (s *SftpSession) Close() {
	if s.SftpClient != nil {
		s.SftpClient.Close()
	}
	if s.SshClient != nil {
		s.SshClient.Close()
	}
}
