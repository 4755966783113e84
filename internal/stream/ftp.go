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
	"crypto/tls"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/phuslu/log"

	"filetransfer/internal/secretcfg"
	"filetransfer/internal/xerrors"
)

// defaultNetworkBufferSize is the chunk size used to regroup a network
// reader's stream when its Config-supplied BufferSize is unset.
const defaultNetworkBufferSize = 1024 * 1024

// bufferSizeOrDefault falls back to defaultNetworkBufferSize for readers
// whose BufferSize is unset, such as zero-value readers in tests or
// readers built from a zero Config.
func bufferSizeOrDefault(n int) int {
	if n > 0 {
		return n
	}
	return defaultNetworkBufferSize
}

// FtpReader connects, optionally upgrades to TLS, logs in, and streams
// one file from an FTP/FTPS server. BufferSize is threaded in from
// Config.FtpReaderBufferSize by the endpoint constructor.
type FtpReader struct {
	Secret     secretcfg.Secret
	BufferSize int
}

func dialFtp(secret secretcfg.Secret) (*ftp.ServerConn, error) {
	addr := fmt.Sprintf("%s:%d", secret.Host, secret.Port)

	var opts []ftp.DialOption
	opts = append(opts, ftp.DialWithTimeout(10*time.Second))
	if secret.TLS {
		opts = append(opts, ftp.DialWithExplicitTLS(&tls.Config{ServerName: secret.Host}))
	}

	conn, err := ftp.Dial(addr, opts...)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Connection, "dialing FTP server "+addr, err)
	}

	user, pass := secret.User, secret.Pass
	if user == "" {
		user, pass = "anonymous", "anonymous"
	}
	if err := conn.Login(user, pass); err != nil {
		conn.Quit()
		return nil, xerrors.Wrap(xerrors.Connection, "logging in to FTP server as "+user, err)
	}
	return conn, nil
}

func joinPrefix(prefix, p string) string {
	if prefix == "" {
		return p
	}
	return path.Join(prefix, p)
}

func (r FtpReader) ReadStream(ctx context.Context, objectPath string, sender chan<- Message, cancel ReaderCancel) (uint64, error) {
	conn, err := dialFtp(r.Secret)
	if err != nil {
		return 0, err
	}
	defer conn.Quit()

	full := joinPrefix(r.Secret.Prefix, objectPath)
	dir := path.Dir(full)
	name := path.Base(full)

	if err := conn.ChangeDir(dir); err != nil {
		return 0, xerrors.Wrap(xerrors.Connection, "changing to FTP directory "+dir, err)
	}

	if size, err := conn.FileSize(name); err == nil {
		select {
		case sender <- NewSize(uint64(size)):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	} else {
		log.Warn().Str("path", full).Err(err).Msg("FTP server did not report a file size, progress disabled")
	}

	resp, err := conn.Retr(name)
	if err != nil {
		return 0, xerrors.Wrap(xerrors.RemoteObject, "retrieving FTP object "+full, err)
	}
	defer resp.Close()

	return pumpNetworkReader(ctx, resp, sender, cancel, bufferSizeOrDefault(r.BufferSize))
}

// pumpNetworkReader is the chunked read-and-send loop shared by the
// network readers (FTP, SFTP, S3, GCS), which pass in their own buffer
// size instead of using the fixed local buffer.
func pumpNetworkReader(ctx context.Context, r io.Reader, sender chan<- Message, cancel ReaderCancel, bufferSize int) (uint64, error) {
	buf := make([]byte, bufferSize)
	var total uint64

	for {
		if cancel.IsStopped() {
			if !trySend(ctx, sender, NewStop()) {
				log.Warn().Msg("reader send failed after cancellation observed, peer already gone")
			}
			return total, nil
		}

		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if !trySend(ctx, sender, NewData(chunk)) {
				if cancel.IsStopped() {
					return total, nil
				}
				return total, xerrors.New(xerrors.Channel, "reader could not send data frame")
			}
			total += uint64(n)
		}
		if err != nil {
			if err == io.EOF {
				if !trySend(ctx, sender, NewEof()) {
					log.Warn().Msg("reader send of Eof failed, peer already gone")
				}
				return total, nil
			}
			return total, xerrors.Wrap(xerrors.Io, "reading network stream", err)
		}
	}
}

// FtpWriter streams one file to an FTP/FTPS server, creating the
// destination directory path one component at a time.
type FtpWriter struct {
	Secret secretcfg.Secret
}

func ensureFtpDir(conn *ftp.ServerConn, dir string) error {
	if dir == "" || dir == "." || dir == "/" {
		return nil
	}
	components := strings.Split(strings.Trim(dir, "/"), "/")
	cwd := "/"
	if err := conn.ChangeDir("/"); err != nil {
		return err
	}
	for _, component := range components {
		if component == "" {
			continue
		}
		cwd = path.Join(cwd, component)
		if err := conn.ChangeDir(component); err != nil {
			if mkErr := conn.MakeDir(component); mkErr != nil {
				return mkErr
			}
			if err := conn.ChangeDir(component); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w FtpWriter) WriteStream(ctx context.Context, objectPath string, receiver <-chan Message, job WriteJob) error {
	conn, err := dialFtp(w.Secret)
	if err != nil {
		return err
	}
	defer conn.Quit()

	full := joinPrefix(w.Secret.Prefix, objectPath)
	dir := path.Dir(full)
	name := path.Base(full)

	if err := ensureFtpDir(conn, dir); err != nil {
		return xerrors.Wrap(xerrors.Connection, "creating FTP directory path "+dir, err)
	}

	pr, pw := io.Pipe()
	storErr := make(chan error, 1)
	go func() {
		storErr <- conn.Stor(name, pr)
	}()

	var size uint64
	var received uint64
	var prevPercent uint8
	var terminal error

loop:
	for {
		if job.IsStopped() {
			pw.Close()
			<-storErr
			return nil
		}

		select {
		case msg, ok := <-receiver:
			if !ok {
				pw.CloseWithError(io.ErrClosedPipe)
				<-storErr
				return xerrors.New(xerrors.Channel, "writer channel closed before a terminal frame")
			}
			switch msg.Kind {
			case Size:
				size = msg.SizeValue
			case Data:
				if _, err := pw.Write(msg.Bytes); err != nil {
					terminal = xerrors.Wrap(xerrors.Io, "writing to FTP data connection", err)
					break loop
				}
				received += uint64(len(msg.Bytes))
				if size > 0 {
					percent := uint8(received * 100 / size)
					if percent > prevPercent {
						prevPercent = percent
						if err := job.Progress(percent); err != nil {
							log.Warn().Err(err).Msg("progress publish failed, continuing transfer")
						}
					}
				}
			case Eof:
				pw.Close()
				if err := <-storErr; err != nil {
					return xerrors.Wrap(xerrors.RemoteObject, "completing FTP upload "+full, err)
				}
				return nil
			case Stop:
				pw.Close()
				<-storErr
				return nil
			}
		case <-ctx.Done():
			pw.CloseWithError(ctx.Err())
			<-storErr
			return ctx.Err()
		}
	}

	pw.CloseWithError(terminal)
	<-storErr
	return terminal
}
