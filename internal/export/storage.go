package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"study_assistant/internal/config"
	"study_assistant/internal/util"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Destination 导出文件的存放位置，Put 返回可直接打开的地址
type Destination interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
	Location(key string) string
}

// LocalDir 写入本地目录，地址为文件绝对路径
type LocalDir struct {
	Dir string
}

// Put 先写临时文件再重命名，半截文件不会出现在导出目录
func (d *LocalDir) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	dst := filepath.Join(d.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".export-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return d.Location(key), nil
}

func (d *LocalDir) Remove(_ context.Context, key string) error {
	return os.Remove(filepath.Join(d.Dir, filepath.FromSlash(key)))
}

func (d *LocalDir) Location(key string) string {
	dst := filepath.Join(d.Dir, filepath.FromSlash(key))
	if abs, err := filepath.Abs(dst); err == nil {
		return abs
	}
	return dst
}

// MinioBucket 导出到 MinIO，首次写入时确保桶存在
type MinioBucket struct {
	client *minio.Client
	bucket string

	once    sync.Once
	initErr error
}

func NewMinioBucket(cfg *config.StorageConfig) (*MinioBucket, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioBucket{client: client, bucket: cfg.MinioBucket}, nil
}

func (b *MinioBucket) ensureBucket(ctx context.Context) error {
	b.once.Do(func() {
		exists, err := b.client.BucketExists(ctx, b.bucket)
		if err != nil {
			b.initErr = fmt.Errorf("check bucket %s: %w", b.bucket, err)
			return
		}
		if !exists {
			if err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{}); err != nil {
				b.initErr = fmt.Errorf("create bucket %s: %w", b.bucket, err)
			}
		}
	})
	return b.initErr
}

func (b *MinioBucket) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if err := b.ensureBucket(ctx); err != nil {
		return "", err
	}
	_, err := b.client.PutObject(ctx, b.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return b.Location(key), nil
}

func (b *MinioBucket) Remove(ctx context.Context, key string) error {
	return b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{})
}

func (b *MinioBucket) Location(key string) string {
	return b.client.EndpointURL().String() + "/" + b.bucket + "/" + key
}

// OSSBucket 导出到阿里云 OSS
type OSSBucket struct {
	bucket   *oss.Bucket
	endpoint string
}

func NewOSSBucket(cfg *config.StorageConfig) (*OSSBucket, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSBucket{bucket: bucket, endpoint: cfg.OSSEndpoint}, nil
}

func (b *OSSBucket) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if err := b.bucket.PutObject(key, bytes.NewReader(body), oss.ContentType(contentType), oss.WithContext(ctx)); err != nil {
		return "", err
	}
	return b.Location(key), nil
}

func (b *OSSBucket) Remove(ctx context.Context, key string) error {
	return b.bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (b *OSSBucket) Location(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", b.bucket.BucketName, b.endpoint, key)
}

// NewDestination 按 export_type 选择导出位置，未知类型按本地目录处理
func NewDestination(cfg *config.StorageConfig) (Destination, error) {
	switch cfg.ExportType {
	case util.StorageMinio:
		d, err := NewMinioBucket(cfg)
		if err != nil {
			return nil, fmt.Errorf("create minio client: %w", err)
		}
		return d, nil
	case util.StorageOSS:
		d, err := NewOSSBucket(cfg)
		if err != nil {
			return nil, fmt.Errorf("create oss client: %w", err)
		}
		return d, nil
	default:
		return &LocalDir{Dir: cfg.LocalPath}, nil
	}
}
