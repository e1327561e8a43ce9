// Package s3 处理对象存储操作.
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yeisme/docvault/pkg/configs"
	nlog "github.com/yeisme/docvault/pkg/log"
)

// Client 包装 MinIO 客户端，绑定单个文档桶.
type Client struct {
	*minio.Client
	bucket string
}

// New 初始化 MinIO 客户端，若文档桶不存在则尝试创建.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().S3
	endpoint := cfg.Endpoint
	// 允许用户传完整 schema endpoint（http:// 或 https://）
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("docvault", configs.AppVersion)

	exists, err := cli.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.BucketName, err)
	}

	if !exists {
		if err := cli.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.BucketName, err)
		}

		nlog.Logger().Info().Str("bucket", cfg.BucketName).Msg("bucket created")
	}

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.BucketName).Msg("s3 connected")

	return &Client{Client: cli, bucket: cfg.BucketName}, nil
}

// Bucket 返回文档桶名称.
func (c *Client) Bucket() string {
	return c.bucket
}

// Put 上传对象到文档桶.
func (c *Client) Put(ctx context.Context, objectPath string, reader io.Reader, size int64, contentType string) (minio.UploadInfo, error) {
	return c.PutObject(ctx, c.bucket, objectPath, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
}

// Fetch 获取文档桶中的对象.
func (c *Client) Fetch(ctx context.Context, objectPath string) (*minio.Object, error) {
	return c.GetObject(ctx, c.bucket, objectPath, minio.GetObjectOptions{})
}

// Remove 删除文档桶中的对象.
func (c *Client) Remove(ctx context.Context, objectPath string) error {
	return c.RemoveObject(ctx, c.bucket, objectPath, minio.RemoveObjectOptions{})
}

// Stat 查询文档桶中的对象元信息.
func (c *Client) Stat(ctx context.Context, objectPath string) (minio.ObjectInfo, error) {
	return c.StatObject(ctx, c.bucket, objectPath, minio.StatObjectOptions{})
}

// PresignGet 生成对象的限时下载链接.
func (c *Client) PresignGet(ctx context.Context, objectPath string, expiry time.Duration, downloadName string) (*url.URL, error) {
	reqParams := url.Values{}
	if downloadName != "" {
		reqParams.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	}

	return c.PresignedGetObject(ctx, c.bucket, objectPath, expiry, reqParams)
}

// HealthCheck 简单的健康检查，通过列出桶来验证连接.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.ListBuckets(ctx)
	return err
}

// Close 关闭 S3 客户端连接（无实际操作，接口兼容）.
func (c *Client) Close() error {
	return nil
}

func (c *Client) GetConfig() configs.S3Config {
	return configs.GetConfig().S3
}
