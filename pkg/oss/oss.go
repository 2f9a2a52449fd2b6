// Package oss 房间图片存储
package oss

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Uploader 上传器接口
type Uploader interface {
	Upload(ctx context.Context, objectKey string, reader io.Reader) (string, error)
	Delete(ctx context.Context, objectKey string) error
	GetURL(objectKey string) string
}

// 允许上传的图片扩展名
var allowedImageExts = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

// ImageExt 返回小写扩展名（不含点）
func ImageExt(filename string) string {
	ext := path.Ext(filename)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// IsAllowedImage 是否为允许的图片类型
func IsAllowedImage(filename string) bool {
	return allowedImageExts[ImageExt(filename)]
}

// ImageName 根据房间号和原文件名生成唯一对象名
// 形如 habitacion-101-vista-mar-1a2b3c4d.jpg
func ImageName(numero, filename string) string {
	ext := ImageExt(filename)
	stem := strings.TrimSuffix(path.Base(filename), path.Ext(filename))

	base := slug.Make(fmt.Sprintf("habitacion %s %s", numero, stem))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	if ext == "" {
		return fmt.Sprintf("%s-%s", base, suffix)
	}
	return fmt.Sprintf("%s-%s.%s", base, suffix, ext)
}

// GetContentType 根据文件扩展名获取 Content-Type
func GetContentType(filename string) string {
	switch ImageExt(filename) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
