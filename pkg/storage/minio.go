package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioBlobStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Location  string
	UseSSL    bool
}

type MinioBlobStore struct {
	config MinioBlobStoreConfig
	client *minio.Client
}

var _ BlobStore = (*MinioBlobStore)(nil)

func NewMinioBlobStore(ctx context.Context, config MinioBlobStoreConfig) (store MinioBlobStore, err error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})

	if err != nil {
		return
	}

	exists, err := client.BucketExists(ctx, config.Bucket)
	if err != nil {
		return
	}

	if !exists {
		makeBucketOptions := minio.MakeBucketOptions{Region: config.Location}
		if err = client.MakeBucket(ctx, config.Bucket, makeBucketOptions); err != nil {
			return
		}
	}

	store = MinioBlobStore{
		config: config,
		client: client,
	}

	return
}

func (s *MinioBlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.config.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.convertToKnownError(err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, s.convertToKnownError(err)
	}

	return data, nil
}

func (s *MinioBlobStore) Write(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(
		ctx,
		s.config.Bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: http.DetectContentType(data)},
	)
	return err
}

func (s *MinioBlobStore) DeleteSubtree(ctx context.Context, prefix string) error {
	objects := s.client.ListObjects(ctx, s.config.Bucket, minio.ListObjectsOptions{
		Prefix:    strings.TrimSuffix(prefix, "/") + "/",
		Recursive: true,
	})

	for object := range objects {
		if object.Err != nil {
			return object.Err
		}

		if err := s.client.RemoveObject(ctx, s.config.Bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
			return err
		}
	}

	return nil
}

func (s *MinioBlobStore) ListTopLevel(ctx context.Context) ([]Entry, error) {
	objects := s.client.ListObjects(ctx, s.config.Bucket, minio.ListObjectsOptions{
		Recursive: false,
	})

	entries := make([]Entry, 0)
	for object := range objects {
		if object.Err != nil {
			return nil, object.Err
		}

		entries = append(entries, Entry{
			Path:  strings.TrimSuffix(object.Key, "/"),
			IsDir: strings.HasSuffix(object.Key, "/"),
		})
	}

	return entries, nil
}

func (s *MinioBlobStore) MimeTypeOf(ctx context.Context, key string) (string, error) {
	info, err := s.client.StatObject(ctx, s.config.Bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return "", s.convertToKnownError(err)
	}

	return info.ContentType, nil
}

func (s *MinioBlobStore) LastModifiedOf(ctx context.Context, key string) (time.Time, error) {
	info, err := s.client.StatObject(ctx, s.config.Bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return time.Time{}, s.convertToKnownError(err)
	}

	return info.LastModified, nil
}

func (s *MinioBlobStore) convertToKnownError(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrBlobNotFound
	}

	return err
}
