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
	"bytes"
	"context"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"filetransfer/internal/multipart"
	"filetransfer/internal/secretcfg"
	"filetransfer/internal/xerrors"
)

// defaultS3PartSize and defaultS3Workers back S3Writer when its
// Config-supplied PartSize/Workers are unset.
const (
	defaultS3PartSize = 10 * 1024 * 1024
	defaultS3Workers  = 4
)

func newMinioClient(secret secretcfg.Secret) (*minio.Client, error) {
	endpoint := secret.Endpoint
	if endpoint == "" {
		endpoint = "s3.amazonaws.com"
	}
	secure := !strings.HasPrefix(endpoint, "http://")
	endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(secret.AccessKey, secret.SecretKey, ""),
		Secure: secure,
		Region: secret.Region,
	})
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Connection, "building S3 client for "+endpoint, err)
	}
	return client, nil
}

// S3Reader streams one object from an S3-compatible bucket. BufferSize
// is threaded in from Config.S3ReaderBufferSize by the endpoint constructor.
type S3Reader struct {
	Secret     secretcfg.Secret
	BufferSize int
}

func (r S3Reader) ReadStream(ctx context.Context, objectPath string, sender chan<- Message, cancel ReaderCancel) (uint64, error) {
	client, err := newMinioClient(r.Secret)
	if err != nil {
		return 0, err
	}

	info, err := client.StatObject(ctx, r.Secret.Bucket, objectPath, minio.StatObjectOptions{})
	if err != nil {
		return 0, xerrors.Wrap(xerrors.RemoteObject, "statting S3 object "+objectPath, err)
	}

	select {
	case sender <- NewSize(uint64(info.Size)):
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	obj, err := client.GetObject(ctx, r.Secret.Bucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		return 0, xerrors.Wrap(xerrors.RemoteObject, "getting S3 object "+objectPath, err)
	}
	defer obj.Close()

	return pumpNetworkReader(ctx, obj, sender, cancel, bufferSizeOrDefault(r.BufferSize))
}

// S3Writer streams one object to an S3-compatible bucket. Every write
// goes through a multipart upload, even a single-part or empty body
// (which is uploaded as one empty part). PartSize and
// Workers are threaded in from Config.S3WriterPartSize/S3WriterWorkers
// by the endpoint constructor.
type S3Writer struct {
	Secret   secretcfg.Secret
	PartSize int
	Workers  int
}

// coreMultipartClient adapts minio.Core to the multipart.Client
// interface so the sub-engine stays ignorant of minio-go.
type coreMultipartClient struct {
	core *minio.Core
}

func (c coreMultipartClient) CreateMultipartUpload(ctx context.Context, bucket, key string) (string, error) {
	return c.core.NewMultipartUpload(ctx, bucket, key, minio.PutObjectOptions{})
}

func (c coreMultipartClient) UploadPart(ctx context.Context, bucket, key, uploadID string, partNumber int, data []byte) (multipart.CompletedPart, error) {
	part, err := c.core.PutObjectPart(ctx, bucket, key, uploadID, partNumber, bytes.NewReader(data), int64(len(data)), minio.PutObjectPartOptions{})
	if err != nil {
		return multipart.CompletedPart{}, err
	}
	return multipart.CompletedPart{PartNumber: part.PartNumber, ETag: part.ETag}, nil
}

func (c coreMultipartClient) CompleteMultipartUpload(ctx context.Context, bucket, key, uploadID string, parts []multipart.CompletedPart) error {
	completed := make([]minio.CompletePart, len(parts))
	for i, p := range parts {
		completed[i] = minio.CompletePart{PartNumber: p.PartNumber, ETag: p.ETag}
	}
	_, err := c.core.CompleteMultipartUpload(ctx, bucket, key, uploadID, completed, minio.PutObjectOptions{})
	return err
}

func (c coreMultipartClient) AbortMultipartUpload(ctx context.Context, bucket, key, uploadID string) error {
	return c.core.AbortMultipartUpload(ctx, bucket, key, uploadID)
}

func (w S3Writer) WriteStream(ctx context.Context, objectPath string, receiver <-chan Message, job WriteJob) error {
	client, err := newMinioClient(w.Secret)
	if err != nil {
		return err
	}

	core := &minio.Core{Client: client}
	partSize := w.PartSize
	if partSize <= 0 {
		partSize = defaultS3PartSize
	}
	workers := w.Workers
	if workers <= 0 {
		workers = defaultS3Workers
	}
	engine := multipart.New(coreMultipartClient{core: core}, w.Secret.Bucket, objectPath, partSize, workers)
	if err := engine.Start(ctx); err != nil {
		return xerrors.Wrap(xerrors.RemoteObject, "starting S3 multipart upload for "+objectPath, err)
	}

	var size uint64
	var received uint64
	var prevPercent uint8
	buf := &bytes.Buffer{}

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		chunk := make([]byte, buf.Len())
		copy(chunk, buf.Bytes())
		engine.WritePart(chunk)
		buf.Reset()
	}

	for {
		if job.IsStopped() {
			engine.Abandon()
			return nil
		}

		select {
		case msg, ok := <-receiver:
			if !ok {
				engine.Abandon()
				return xerrors.New(xerrors.Channel, "writer channel closed before a terminal frame")
			}
			switch msg.Kind {
			case Size:
				size = msg.SizeValue
			case Data:
				buf.Write(msg.Bytes)
				received += uint64(len(msg.Bytes))
				if size > 0 {
					percent := uint8(received * 100 / size)
					if percent > prevPercent {
						prevPercent = percent
						_ = job.Progress(percent)
					}
				}
				if buf.Len() >= engine.PartSize() {
					flush()
				}
			case Eof:
				flush()
				if received == 0 {
					engine.WritePart(nil) // empty body still needs one (empty) part
				}
				if err := engine.Finish(ctx); err != nil {
					return xerrors.Wrap(xerrors.RemoteObject, "completing S3 multipart upload for "+objectPath, err)
				}
				return nil
			case Stop:
				engine.Abandon()
				return nil
			}
		case <-ctx.Done():
			engine.Abandon()
			return ctx.Err()
		}
	}
}
