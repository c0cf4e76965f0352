package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventKind is the punch direction: an arrival or a departure scan.
type EventKind string

const (
	EventEntry EventKind = "ENTRADA"
	EventExit  EventKind = "SALIDA"
)

// Valid reports whether k is one of the two recognized event kinds.
func (k EventKind) Valid() bool {
	return k == EventEntry || k == EventExit
}

// PunchEvent (registro) is one ENTRY/EXIT scan at a time-tracking
// terminal. The live system appends these; the core only ever reads
// them.
type PunchEvent struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EmployeeID   uuid.UUID `gorm:"column:empleado_id;type:uuid;not null;index" json:"empleado_id"`
	EventKind    EventKind `gorm:"column:tipo_registro;type:varchar(10);not null" json:"tipo_registro"`
	WorkSite     string    `gorm:"column:punto_trabajo;type:varchar(100)" json:"punto_trabajo,omitempty"`
	Date         time.Time `gorm:"column:fecha_registro;type:date;not null;index" json:"fecha_registro"`
	TimeOfDay    time.Time `gorm:"column:hora_registro;type:time;not null" json:"hora_registro"`
	CreatedAt    time.Time `gorm:"column:timestamp_registro;default:now()" json:"timestamp_registro"`
	Confidence   *float64  `gorm:"column:confianza_reconocimiento" json:"confianza_reconocimiento,omitempty"`
	Observations *string   `gorm:"column:observaciones;type:text" json:"observaciones,omitempty"`
}

// TableName pins the GORM table name to the original Spanish schema.
func (PunchEvent) TableName() string {
	return "registros"
}

// IsForced reports whether the punch carries the original system's
// manual-override marker ("FORZADO") in its free-text note.
func (p PunchEvent) IsForced() bool {
	if p.Observations == nil {
		return false
	}
	return strings.Contains(strings.ToUpper(*p.Observations), "FORZADO")
}
