// Package qrcode 提供预订确认二维码生成
package qrcode

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// RecoveryLevel 纠错级别
type RecoveryLevel int

const (
	// Low 7% 纠错
	Low RecoveryLevel = iota
	// Medium 15% 纠错
	Medium
	// High 25% 纠错
	High
	// Highest 30% 纠错
	Highest
)

// Code 生成结果
type Code struct {
	Content string
	PNG     []byte
}

// DataURL 返回 data:image/png;base64 形式
func (c *Code) DataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(c.PNG)
}

// Generator 二维码生成器
type Generator struct {
	size          int
	recoveryLevel RecoveryLevel
}

// Option 生成器选项
type Option func(*Generator)

// WithSize 设置二维码尺寸（像素）
func WithSize(size int) Option {
	return func(g *Generator) {
		g.size = size
	}
}

// WithRecoveryLevel 设置纠错级别
func WithRecoveryLevel(level RecoveryLevel) Option {
	return func(g *Generator) {
		g.recoveryLevel = level
	}
}

// NewGenerator 创建二维码生成器
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		size:          256,
		recoveryLevel: Medium,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// toQRCodeLevel 转换纠错级别
func (g *Generator) toQRCodeLevel() qrcode.RecoveryLevel {
	switch g.recoveryLevel {
	case Low:
		return qrcode.Low
	case High:
		return qrcode.High
	case Highest:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// Encode 生成 PNG 二维码
func (g *Generator) Encode(content string) (*Code, error) {
	if content == "" {
		return nil, fmt.Errorf("qrcode content is empty")
	}
	data, err := qrcode.Encode(content, g.toQRCodeLevel(), g.size)
	if err != nil {
		return nil, fmt.Errorf("encode qrcode: %w", err)
	}
	return &Code{Content: content, PNG: data}, nil
}
