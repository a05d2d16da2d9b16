package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sede is a physical site belonging to an Empresa.
type Sede struct {
	OID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID        int64              `bson:"sedeID" json:"id"`
	EmpresaID int64              `bson:"empresaID" json:"empresaId"`
	Nombre    string             `bson:"nombre" json:"nombre"`
	Direccion string             `bson:"direccion,omitempty" json:"direccion,omitempty"`
	Telefono  string             `bson:"telefono,omitempty" json:"telefono,omitempty"`
	Estado    string             `bson:"estado" json:"estado"` // ACTIVA, INACTIVA
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
