package models

// User 员工账号
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"column:username;type:varchar(50);not null;uniqueIndex:idx_usuarios_username" json:"username"`
	Password string `gorm:"column:password;type:varchar(255);not null" json:"-"`
}

// TableName 表名
func (User) TableName() string {
	return "usuarios"
}
