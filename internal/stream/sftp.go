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
	"path"

	"filetransfer/internal/network"
	"filetransfer/internal/secretcfg"
	"filetransfer/internal/xerrors"
)

func dialSftp(secret secretcfg.Secret) (*network.SftpSession, error) {
	session := network.NewSession(secret.Host, secret.Port, secret.User, secret.Pass)
	session.KnownHost = secret.KnownHost

	if err := session.Connect(); err != nil {
		return nil, xerrors.Wrap(xerrors.Connection, "connecting to SFTP server "+secret.Host, err)
	}
	if err := session.OpenSFTP(); err != nil {
		session.Close()
		return nil, xerrors.Wrap(xerrors.Connection, "opening SFTP subsystem on "+secret.Host, err)
	}
	return session, nil
}

// SftpReader streams one file over an SSH/SFTP session. BufferSize is
// threaded in from Config.SftpReaderBufferSize by the endpoint constructor.
type SftpReader struct {
	Secret     secretcfg.Secret
	BufferSize int
}

func (r SftpReader) ReadStream(ctx context.Context, objectPath string, sender chan<- Message, cancel ReaderCancel) (uint64, error) {
	session, err := dialSftp(r.Secret)
	if err != nil {
		return 0, err
	}
	defer session.Close()

	full := joinPrefix(r.Secret.Prefix, objectPath)

	stat, err := session.SftpClient.Stat(full)
	if err != nil {
		return 0, xerrors.Wrap(xerrors.RemoteObject, "statting SFTP object "+full, err)
	}

	select {
	case sender <- NewSize(uint64(stat.Size())):
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	f, err := session.SftpClient.Open(full)
	if err != nil {
		return 0, xerrors.Wrap(xerrors.RemoteObject, "opening SFTP object "+full, err)
	}
	defer f.Close()

	return pumpNetworkReader(ctx, f, sender, cancel, bufferSizeOrDefault(r.BufferSize))
}

// SftpWriter streams one file over an SSH/SFTP session.
type SftpWriter struct {
	Secret secretcfg.Secret
}

func (w SftpWriter) WriteStream(ctx context.Context, objectPath string, receiver <-chan Message, job WriteJob) error {
	session, err := dialSftp(w.Secret)
	if err != nil {
		return err
	}
	defer session.Close()

	full := joinPrefix(w.Secret.Prefix, objectPath)
	if err := session.SftpClient.MkdirAll(path.Dir(full)); err != nil {
		return xerrors.Wrap(xerrors.Connection, "creating SFTP directory path for "+full, err)
	}

	f, err := session.SftpClient.Create(full)
	if err != nil {
		return xerrors.Wrap(xerrors.RemoteObject, "creating SFTP object "+full, err)
	}
	defer f.Close()

	var size uint64
	var received uint64
	var prevPercent uint8

	for {
		if job.IsStopped() {
			return nil
		}

		select {
		case msg, ok := <-receiver:
			if !ok {
				return xerrors.New(xerrors.Channel, "writer channel closed before a terminal frame")
			}
			switch msg.Kind {
			case Size:
				size = msg.SizeValue
			case Data:
				if _, err := f.Write(msg.Bytes); err != nil {
					return xerrors.Wrap(xerrors.Io, "writing to SFTP object "+full, err)
				}
				received += uint64(len(msg.Bytes))
				if size > 0 {
					percent := uint8(received * 100 / size)
					if percent > prevPercent {
						prevPercent = percent
						_ = job.Progress(percent)
					}
				}
			case Eof:
				return nil
			case Stop:
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
