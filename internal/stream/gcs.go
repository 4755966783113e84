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
	"fmt"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"filetransfer/internal/secretcfg"
	"filetransfer/internal/xerrors"
)

// gcsChunkSize matches the 1 MiB network default used by the other
// remote readers after GCS's own chunked download API is re-grouped.
const gcsChunkSize = 1024 * 1024

// newGcsClient resolves credentials in order: the secret's own inline
// Credentials, then the process-wide fallback threaded in from
// Config.ServiceAccountJSON, then ambient application-default credentials.
func newGcsClient(ctx context.Context, secret secretcfg.Secret, serviceAccountJSON string) (*storage.Client, error) {
	creds := secret.Credentials
	if creds == "" {
		creds = serviceAccountJSON
	}

	if creds == "" {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.Connection, "building GCS client with ambient credentials", err)
		}
		return client, nil
	}

	// The core makes the decoded credentials available under the
	// conventional SERVICE_ACCOUNT_JSON name for any downstream tooling
	// that expects it there, then hands the same bytes to the client.
	os.Setenv("SERVICE_ACCOUNT_JSON", creds)

	client, err := storage.NewClient(ctx, option.WithCredentialsJSON([]byte(creds)))
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Connection, "building GCS client with supplied credentials", err)
	}
	return client, nil
}

// GcsReader streams one object from a Google Cloud Storage bucket.
// ServiceAccountJSON is threaded in from Config.ServiceAccountJSON by
// the endpoint constructor and used when the secret carries no inline
// credentials of its own.
type GcsReader struct {
	Secret             secretcfg.Secret
	ServiceAccountJSON string
}

func (r GcsReader) ReadStream(ctx context.Context, objectPath string, sender chan<- Message, cancel ReaderCancel) (uint64, error) {
	client, err := newGcsClient(ctx, r.Secret, r.ServiceAccountJSON)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	obj := client.Bucket(r.Secret.Bucket).Object(objectPath)

	attrs, err := obj.Attrs(ctx)
	if err != nil {
		return 0, xerrors.Wrap(xerrors.RemoteObject, "statting GCS object "+objectPath, err)
	}

	select {
	case sender <- NewSize(uint64(attrs.Size)):
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	rc, err := obj.NewReader(ctx)
	if err != nil {
		return 0, xerrors.Wrap(xerrors.RemoteObject, "opening GCS object "+objectPath, err)
	}
	defer rc.Close()

	return pumpNetworkReader(ctx, rc, sender, cancel, gcsChunkSize)
}

// GcsWriter streams one object to a Google Cloud Storage bucket. The
// first frame received must be Size, which opens the streamed write;
// Eof or Stop before Size is a no-op success (nothing was ever created);
// any other frame before Size is a protocol error. ServiceAccountJSON
// is threaded in from Config.ServiceAccountJSON by the endpoint
// constructor and used when the secret carries no inline credentials
// of its own.
type GcsWriter struct {
	Secret             secretcfg.Secret
	ServiceAccountJSON string
}

func (w GcsWriter) WriteStream(ctx context.Context, objectPath string, receiver <-chan Message, job WriteJob) error {
	first, ok := <-receiver
	if !ok {
		return xerrors.New(xerrors.Channel, "writer channel closed before a terminal frame")
	}

	switch first.Kind {
	case Eof, Stop:
		return nil
	case Size:
		// proceeds below; nothing has touched GCS yet.
	default:
		return xerrors.New(xerrors.Protocol, fmt.Sprintf("GCS writer received an unexpected %s(%v) message, Size was expected", first.Kind, first.Bytes))
	}

	client, err := newGcsClient(ctx, w.Secret, w.ServiceAccountJSON)
	if err != nil {
		return err
	}
	defer client.Close()

	size := first.SizeValue
	gcsObj := client.Bucket(w.Secret.Bucket).Object(objectPath)
	wc := gcsObj.NewWriter(ctx)

	var received uint64
	var prevPercent uint8

	for {
		if job.IsStopped() {
			wc.Close()
			return nil
		}

		select {
		case msg, ok := <-receiver:
			if !ok {
				wc.Close()
				return xerrors.New(xerrors.Channel, "writer channel closed before a terminal frame")
			}
			switch msg.Kind {
			case Data:
				if _, err := wc.Write(msg.Bytes); err != nil {
					return xerrors.Wrap(xerrors.Io, "writing to GCS object "+objectPath, err)
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
				if err := wc.Close(); err != nil {
					return xerrors.Wrap(xerrors.RemoteObject, "finalizing GCS object "+objectPath, err)
				}
				return nil
			case Stop:
				wc.Close()
				return nil
			}
		case <-ctx.Done():
			wc.Close()
			return ctx.Err()
		}
	}
}
