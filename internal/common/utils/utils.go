// Package utils 提供通用工具函数
package utils

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// DateLayout 日期存储格式
const DateLayout = "2006-01-02"

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	sanitizeReplace = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "")
)

// MinPhoneDigits 电话号码清洗后的最小长度
const MinPhoneDigits = 7

// ValidateEmail 验证邮箱
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// CleanPhone 清洗电话号码，仅保留数字和开头的 +
func CleanPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidatePhone 验证电话号码
func ValidatePhone(phone string) bool {
	return len(CleanPhone(phone)) >= MinPhoneDigits
}

// Sanitize 去除 < > " ' 并去掉首尾空白
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(sanitizeReplace.Replace(text))
}

// IsBlank 判断字符串是否为空白
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}

// AnyBlank 判断是否存在空白字段
func AnyBlank(values ...string) bool {
	for _, v := range values {
		if IsBlank(v) {
			return true
		}
	}
	return false
}

// Today 返回今天的日期字符串
func Today() string {
	return FormatDate(time.Now())
}

// FormatDate 格式化日期
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate 解析 YYYY-MM-DD 日期
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
}

// MonthPrefix 返回 YYYY-MM 前缀，用于按月匹配日期字符串
func MonthPrefix(t time.Time) string {
	return t.Format("2006-01")
}

// DaysAgo 返回 n 天前的日期字符串
func DaysAgo(now time.Time, n int) string {
	return FormatDate(now.AddDate(0, 0, -n))
}

// MonthsAgo 返回 n 个月前的日期字符串
func MonthsAgo(now time.Time, n int) string {
	return FormatDate(now.AddDate(0, -n, 0))
}

// Contains 判断切片是否包含元素
func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// StringPtr 返回字符串指针
func StringPtr(s string) *string {
	return &s
}
