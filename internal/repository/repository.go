// Package repository 提供数据访问层
package repository

import (
	"strings"

	"github.com/dumeirei/hotel-management/internal/common/database"
)

// likeLower 返回小写子串匹配参数，配合 LOWER(col) LIKE ? 在 sqlite 与 postgres 上行为一致
func likeLower(term string) string {
	return database.Contains(strings.ToLower(term))
}
