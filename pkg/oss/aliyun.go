package oss

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// DefaultRoomPrefix 房间图片在 Bucket 中的默认目录
const DefaultRoomPrefix = "habitaciones"

// roomImageCacheControl 房间图片对象名唯一，可长期缓存
const roomImageCacheControl = "public, max-age=604800"

// AliyunConfig 阿里云 OSS 配置
type AliyunConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	BucketName      string
	Domain          string // 自定义域名（可选）
	Prefix          string // 房间图片目录，为空时使用 DefaultRoomPrefix
	PublicRead      bool   // 上传时设置对象为公共读
}

// roomBucket 房间图片用到的 Bucket 操作
type roomBucket interface {
	PutObject(objectKey string, reader io.Reader, options ...oss.Option) error
	DeleteObject(objectKey string, options ...oss.Option) error
}

// AliyunUploader 将房间图片保存到阿里云 OSS
type AliyunUploader struct {
	bucket roomBucket
	config *AliyunConfig
}

// NewAliyunUploader 创建阿里云 OSS 上传器
func NewAliyunUploader(config *AliyunConfig) (*AliyunUploader, error) {
	client, err := oss.New(config.Endpoint, config.AccessKeyID, config.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("create oss client: %w", err)
	}

	bucket, err := client.Bucket(config.BucketName)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", config.BucketName, err)
	}
	return newAliyunUploader(bucket, config), nil
}

func newAliyunUploader(bucket roomBucket, config *AliyunConfig) *AliyunUploader {
	if config.Prefix == "" {
		config.Prefix = DefaultRoomPrefix
	}
	return &AliyunUploader{bucket: bucket, config: config}
}

// Upload 保存房间图片，返回访问地址
func (u *AliyunUploader) Upload(ctx context.Context, objectKey string, reader io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	opts := []oss.Option{
		oss.ContentType(GetContentType(objectKey)),
		oss.CacheControl(roomImageCacheControl),
	}
	if u.config.PublicRead {
		opts = append(opts, oss.ObjectACL(oss.ACLPublicRead))
	}

	key := u.roomKey(objectKey)
	if err := u.bucket.PutObject(key, reader, opts...); err != nil {
		return "", fmt.Errorf("put room image %s: %w", key, err)
	}
	return u.GetURL(objectKey), nil
}

// Delete 删除房间图片，对象不存在时 OSS 同样返回成功
func (u *AliyunUploader) Delete(ctx context.Context, objectKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := u.roomKey(objectKey)
	if err := u.bucket.DeleteObject(key); err != nil {
		return fmt.Errorf("delete room image %s: %w", key, err)
	}
	return nil
}

// GetURL 房间图片访问地址；Endpoint 可带协议前缀
func (u *AliyunUploader) GetURL(objectKey string) string {
	key := u.roomKey(objectKey)
	if u.config.Domain != "" {
		return strings.TrimSuffix(u.config.Domain, "/") + "/" + key
	}

	host := strings.TrimPrefix(strings.TrimPrefix(u.config.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", u.config.BucketName, strings.TrimSuffix(host, "/"), key)
}

// roomKey 对象名只保留文件名部分，统一放在房间图片目录下
func (u *AliyunUploader) roomKey(objectKey string) string {
	prefix := strings.Trim(u.config.Prefix, "/")
	name := path.Base(objectKey)
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
