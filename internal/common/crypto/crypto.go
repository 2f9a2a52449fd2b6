// Package crypto 提供密码哈希和脱敏工具
package crypto

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher 密码哈希器
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher 创建密码哈希器，cost 非法时使用默认值
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash 对密码进行加盐哈希
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify 验证密码
func (h *PasswordHasher) Verify(password, hash string) bool {
	return VerifyPassword(password, hash)
}

// VerifyPassword 验证密码
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// MaskPhone 电话号码脱敏，保留末四位
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// MaskEmail 邮箱脱敏
func MaskEmail(email string) string {
	i := strings.IndexByte(email, '@')
	if i <= 2 {
		return email
	}
	return email[:2] + "***" + email[i:]
}
