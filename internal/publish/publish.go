package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/specialistvlad/skilltree/internal/ctxlog"
)

// DefaultRegion is used when no region is configured.
const DefaultRegion = "us-east-1"

// ErrNotConfigured is returned by New when the configuration lacks an
// endpoint or a bucket.
var ErrNotConfigured = errors.New("object storage is not configured")

// Config describes the target bucket.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ConfigFromEnv reads the SKILLTREE_S3_* variables through getenv.
// SKILLTREE_S3_USE_SSL defaults to true.
func ConfigFromEnv(getenv func(string) string) Config {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	useSSL := true
	if raw := get("SKILLTREE_S3_USE_SSL"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			useSSL = v
		}
	}
	region := get("SKILLTREE_S3_REGION")
	if region == "" {
		region = DefaultRegion
	}

	return Config{
		Endpoint:  get("SKILLTREE_S3_ENDPOINT"),
		Region:    region,
		AccessKey: get("SKILLTREE_S3_ACCESS_KEY"),
		SecretKey: get("SKILLTREE_S3_SECRET_KEY"),
		Bucket:    get("SKILLTREE_S3_BUCKET"),
		UseSSL:    useSSL,
	}
}

// Enabled reports whether an endpoint and a bucket are set.
func (c Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// Publisher puts objects into a single bucket. The bucket is created on the
// first upload if it does not exist.
type Publisher struct {
	client *minio.Client
	bucket string
	region string

	mu    sync.Mutex
	ready bool
}

// New creates a publisher for cfg.
func New(cfg Config) (*Publisher, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("object storage access key and secret key are required")
	}
	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}
	return &Publisher{client: client, bucket: cfg.Bucket, region: region}, nil
}

// ensureBucket checks the bucket until it succeeds once. Failures are not
// remembered, so a later upload tries again.
func (p *Publisher) ensureBucket(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}

	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return err
	}
	if !exists {
		ctxlog.FromContext(ctx).Info("Creating bucket.", "bucket", p.bucket, "region", p.region)
		if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{Region: p.region}); err != nil {
			return err
		}
	}
	p.ready = true
	return nil
}

// Upload stores body under key and returns the "bucket/key" location.
func (p *Publisher) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}
	if err := p.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("failed to prepare bucket %s: %w", p.bucket, err)
	}

	info, err := p.client.PutObject(ctx, p.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", p.bucket, key, err)
	}

	ctxlog.FromContext(ctx).Info("Document published.", "bucket", info.Bucket, "key", info.Key, "size", info.Size)
	return p.bucket + "/" + key, nil
}
