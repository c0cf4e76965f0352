package model

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a worker tracked by the attendance system.
type Employee struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code             string    `gorm:"column:codigo_empleado;type:varchar(50);uniqueIndex;not null" json:"codigo_empleado"`
	FirstName        string    `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	LastName         string    `gorm:"column:apellido;type:varchar(100);not null" json:"apellido"`
	Email            string    `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`
	Phone            string    `gorm:"column:telefono;type:varchar(50)" json:"telefono,omitempty"`
	Department       string    `gorm:"column:departamento;type:varchar(100)" json:"departamento,omitempty"`
	Role             string    `gorm:"column:cargo;type:varchar(100)" json:"cargo,omitempty"`
	WorkSite         string    `gorm:"column:punto_trabajo;type:varchar(100)" json:"punto_trabajo,omitempty"`
	LiquidatesSunday bool      `gorm:"column:liquida_dominical;default:false" json:"liquida_dominical"`
	RestDay          int       `gorm:"column:dia_descanso;default:6" json:"dia_descanso"`
	Active           bool      `gorm:"column:activo;default:true" json:"activo"`
	CreatedAt        time.Time `gorm:"column:created_at;default:now()" json:"created_at"`
}

// TableName pins the GORM table name to the original Spanish schema.
func (Employee) TableName() string {
	return "empleados"
}

// FullName joins given and family name the way every report formatter
// in the original system does: "nombre apellido".
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
