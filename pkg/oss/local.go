package oss

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalUploader 本地磁盘上传器
type LocalUploader struct {
	dir       string
	urlPrefix string
}

// NewLocalUploader 创建本地上传器，目录不存在时自动创建
func NewLocalUploader(dir, urlPrefix string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalUploader{dir: dir, urlPrefix: urlPrefix}, nil
}

// Upload 写入文件
func (u *LocalUploader) Upload(ctx context.Context, objectKey string, reader io.Reader) (string, error) {
	fullPath, err := u.fullPath(objectKey)
	if err != nil {
		return "", err
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", fullPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("write %s: %w", fullPath, err)
	}

	return u.GetURL(objectKey), nil
}

// Delete 删除文件，文件不存在时不报错
func (u *LocalUploader) Delete(ctx context.Context, objectKey string) error {
	fullPath, err := u.fullPath(objectKey)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// GetURL 获取文件 URL
func (u *LocalUploader) GetURL(objectKey string) string {
	return path.Join(u.urlPrefix, objectKey)
}

// fullPath 对象键只允许单层文件名
func (u *LocalUploader) fullPath(objectKey string) (string, error) {
	name := filepath.Base(objectKey)
	if name == "." || name == ".." || name != objectKey || strings.ContainsAny(objectKey, `/\`) {
		return "", fmt.Errorf("invalid object key %q", objectKey)
	}
	return filepath.Join(u.dir, name), nil
}
