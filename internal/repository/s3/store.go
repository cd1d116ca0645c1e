package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/NordCoder/Uptimer/internal/domain/record"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const (
	ext         = ".json"
	noSuchKey   = "NoSuchKey"
	contentType = "application/json"
)

type Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

var _ record.Store = (*Store)(nil)

// Store keeps records as objects <category>/<id>.json in one bucket.
type Store struct {
	mc     *minio.Client
	bucket string
	log    *zap.Logger
}

func New(ctx context.Context, cfg Config, log *zap.Logger) (*Store, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	s := &Store{mc: mc, bucket: cfg.Bucket, log: log.With(zap.String("component", "s3.store"), zap.String("bucket", cfg.Bucket))}
	if err := s.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.mc.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if region == "" {
		region = "us-east-1"
	}
	if err := s.mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	s.log.Info("bucket created")
	return nil
}

func key(category, id string) (string, error) {
	for _, k := range []string{category, id} {
		if k == "" || strings.Contains(k, "/") {
			return "", fmt.Errorf("%w: %q", record.ErrInvalidKey, k)
		}
	}
	return category + "/" + id + ext, nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == noSuchKey
}

func (s *Store) List(ctx context.Context, category string) ([]string, error) {
	prefix := category + "/"
	ids := []string{}
	for obj := range s.mc.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s: %w", category, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if strings.Contains(name, "/") || !strings.HasSuffix(name, ext) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ext))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) Read(ctx context.Context, category, id string) (record.Record, error) {
	k, err := key(category, id)
	if err != nil {
		return nil, err
	}
	obj, err := s.mc.GetObject(ctx, s.bucket, k, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, record.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", k, err)
	}
	defer obj.Close()

	b, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, record.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", k, err)
	}
	var rec record.Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", k, err)
	}
	return rec, nil
}

func (s *Store) exists(ctx context.Context, k string) (bool, error) {
	_, err := s.mc.StatObject(ctx, s.bucket, k, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if isNoSuchKey(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", k, err)
}

func (s *Store) put(ctx context.Context, k string, rec record.Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", k, err)
	}
	_, err = s.mc.PutObject(ctx, s.bucket, k, bytes.NewReader(b), int64(len(b)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put %s: %w", k, err)
	}
	return nil
}

// Create is check-then-put; two concurrent creators of the same id may both succeed.
func (s *Store) Create(ctx context.Context, category, id string, rec record.Record) error {
	k, err := key(category, id)
	if err != nil {
		return err
	}
	ok, err := s.exists(ctx, k)
	if err != nil {
		return err
	}
	if ok {
		return record.ErrConflict
	}
	return s.put(ctx, k, rec)
}

func (s *Store) Update(ctx context.Context, category, id string, rec record.Record) error {
	k, err := key(category, id)
	if err != nil {
		return err
	}
	ok, err := s.exists(ctx, k)
	if err != nil {
		return err
	}
	if !ok {
		return record.ErrNotFound
	}
	return s.put(ctx, k, rec)
}

func (s *Store) Delete(ctx context.Context, category, id string) error {
	k, err := key(category, id)
	if err != nil {
		return err
	}
	ok, err := s.exists(ctx, k)
	if err != nil {
		return err
	}
	if !ok {
		return record.ErrNotFound
	}
	if err := s.mc.RemoveObject(ctx, s.bucket, k, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", k, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	_, err := s.mc.BucketExists(ctx, s.bucket)
	return err
}
