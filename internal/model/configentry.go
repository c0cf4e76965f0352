package model

// ConfigEntry is one row of the `configuracion` table: a key/value pair
// with a type tag, read by the service layer on every request that
// needs it; nothing is cached. Missing rate keys fall back to the
// defaults in calculation.RatesFromConfig.
type ConfigEntry struct {
	Key         string `gorm:"column:clave;type:varchar(100);primaryKey" json:"clave"`
	Value       string `gorm:"column:valor;type:text" json:"valor"`
	Description string `gorm:"column:descripcion;type:text" json:"descripcion,omitempty"`
	TypeTag     string `gorm:"column:tipo_dato;type:varchar(20)" json:"tipo_dato,omitempty"`
}

// TableName pins the GORM table name to the original Spanish schema.
func (ConfigEntry) TableName() string {
	return "configuracion"
}

// Known configuration keys (spec.md §3).
const (
	ConfigHourlyOrdinary      = "valor_hora_ordinaria"
	ConfigHourlyOvertimeDay   = "valor_hora_extra_diurna"
	ConfigHourlyOvertimeNight = "valor_hora_extra_nocturna"
)
