package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	// PublicBase overrides the default <scheme>://<endpoint>/<bucket> URL prefix.
	PublicBase string
	Allowed    []string
}

// S3 stores objects in any S3-compatible bucket.
type S3 struct {
	client *minio.Client
	cfg    S3Config
}

func NewS3(cfg S3Config) (*S3, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}
	if cfg.PublicBase == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		cfg.PublicBase = fmt.Sprintf("%s://%s/%s", scheme, strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket)
	}
	return &S3{client: client, cfg: cfg}, nil
}

func (s *S3) Upload(ctx context.Context, folder, fileName, contentType string, r io.Reader, size int64) (*Object, error) {
	folder, err := CleanFolder(folder, s.cfg.Allowed)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = -1
	}
	key := ObjectKey(folder, fileName, time.Now())

	info, err := s.client.PutObject(ctx, s.cfg.Bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return nil, fmt.Errorf("put object: %w", err)
	}
	return &Object{Key: key, URL: s.PublicURL(key), ContentType: contentType, Size: info.Size}, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{})
}

func (s *S3) PublicURL(key string) string {
	return joinURL(s.cfg.PublicBase, key)
}
