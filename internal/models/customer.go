package models

// Customer 客户模型
type Customer struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Nombre         string `gorm:"column:nombre;type:varchar(150);not null;index" json:"nombre"`
	Identificacion string `gorm:"column:identificacion;type:varchar(50);not null;uniqueIndex:idx_clientes_identificacion,where:identificacion <> 'VISITANTE'" json:"identificacion"`
	Direccion      string `gorm:"column:direccion;type:varchar(255);not null;default:''" json:"direccion"`
	Correo         string `gorm:"column:correo;type:varchar(150);not null;default:''" json:"correo"`
	Telefono       string `gorm:"column:telefono;type:varchar(30);not null;default:''" json:"telefono"`
}

// TableName 表名
func (Customer) TableName() string {
	return "clientes"
}

// 快速预订生成的访客占位信息
const (
	VisitorIdentification = "VISITANTE"
	VisitorAddress        = "N/A"
)

// CustomerSearchField 客户列表筛选字段
type CustomerSearchField string

// CustomerSearchField 取值
const (
	CustomerFieldName           CustomerSearchField = "nombre"
	CustomerFieldIdentification CustomerSearchField = "identificacion"
	CustomerFieldEmail          CustomerSearchField = "correo"
	CustomerFieldPhone          CustomerSearchField = "telefono"
	CustomerFieldAll            CustomerSearchField = "todos"
)
