package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Empresa is a company/tenant of the system.
type Empresa struct {
	OID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID          int64              `bson:"empresaID" json:"id"`
	RazonSocial string             `bson:"razonSocial" json:"razonSocial"`
	RUC         string             `bson:"ruc" json:"ruc"`
	Direccion   string             `bson:"direccion,omitempty" json:"direccion,omitempty"`
	Telefono    string             `bson:"telefono,omitempty" json:"telefono,omitempty"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	LogoURL     string             `bson:"logoURL,omitempty" json:"logoUrl,omitempty"`
	Estado      string             `bson:"estado" json:"estado"` // ACTIVA, SUSPENDIDA, INACTIVA
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
