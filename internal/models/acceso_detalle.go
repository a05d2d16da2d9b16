package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movement types for the companion detail rows of an access record.
const (
	MovimientoIngreso = "INGRESO"
	MovimientoSalida  = "SALIDA"
)

// AccesoInstalacionDetalle is the movement row created alongside its parent
// access record: one INGRESO on creation, one SALIDA when the visit closes.
type AccesoInstalacionDetalle struct {
	OID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID             int64              `bson:"detalleID" json:"id"`
	AccesoID       int64              `bson:"accesoID" json:"accesoId"`
	TipoMovimiento string             `bson:"tipoMovimiento" json:"tipoMovimiento"`
	FechaHora      time.Time          `bson:"fechaHora" json:"fechaHora"`
	CreatedBy      string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
}
