package artifact

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

type S3Store struct {
	client *minio.Client
	bucket string
	region string
	prefix string
	now    func() time.Time

	mu    sync.Mutex
	ready bool // бакет проверен; ошибки не запоминаем, следующий Save попробует снова
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Store{
		client: client,
		bucket: bucket,
		region: region,
		prefix: strings.Trim(strings.TrimSpace(cfg.Prefix), "/"),
		now:    time.Now,
	}, nil
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return err
		}
	}
	s.ready = true
	return nil
}

// objectKey: <prefix>/<yyyy>/<mm>/<unix-nano>-<name>, чтобы повторные скачивания не затирали друг друга
func (s *S3Store) objectKey(name string) string {
	t := s.now().UTC()
	key := fmt.Sprintf("%04d/%02d/%d-%s", t.Year(), int(t.Month()), t.UnixNano(), name)
	if s.prefix != "" {
		key = path.Join(s.prefix, key)
	}
	return key
}

func (s *S3Store) Save(ctx context.Context, name string, data []byte) (Object, error) {
	name, err := cleanName(name)
	if err != nil {
		return Object{}, err
	}
	if err := s.ensureBucket(ctx); err != nil {
		return Object{}, fmt.Errorf("ensure bucket: %w", err)
	}

	key := s.objectKey(name)
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:        "application/zip",
		ContentDisposition: fmt.Sprintf("attachment; filename=%s", name),
	})
	if err != nil {
		return Object{}, fmt.Errorf("put %s: %w", key, err)
	}
	return Object{
		Key:      info.Key,
		Size:     info.Size,
		SHA256:   checksum(data),
		Location: fmt.Sprintf("s3://%s/%s", s.bucket, info.Key),
	}, nil
}
