// Package models 定义数据模型
package models

// All 返回需要迁移的全部模型，顺序即建表顺序
func All() []interface{} {
	return []interface{}{
		&Customer{},
		&User{},
		&Room{},
		&Reservation{},
		&Payment{},
		&OperationLog{},
	}
}
