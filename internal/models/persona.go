package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Persona is an employee or registered person; the document number is the
// natural key the access module uses for history lookups.
type Persona struct {
	OID                primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID                 int64              `bson:"personaID" json:"id"`
	TipoDocIdentidadID int64              `bson:"tipoDocIdentidadID" json:"tipoDocIdentidadId"`
	NumeroDocumento    string             `bson:"numeroDocumento" json:"numeroDocumento"`
	Nombres            string             `bson:"nombres" json:"nombres"`
	ApellidoPaterno    string             `bson:"apellidoPaterno" json:"apellidoPaterno"`
	ApellidoMaterno    string             `bson:"apellidoMaterno,omitempty" json:"apellidoMaterno,omitempty"`
	EmpresaID          int64              `bson:"empresaID" json:"empresaId"`
	SedeID             *int64             `bson:"sedeID,omitempty" json:"sedeId,omitempty"`
	Cargo              string             `bson:"cargo,omitempty" json:"cargo,omitempty"`
	Email              string             `bson:"email,omitempty" json:"email,omitempty"`
	Telefono           string             `bson:"telefono,omitempty" json:"telefono,omitempty"`
	FotoURL            string             `bson:"fotoURL,omitempty" json:"fotoUrl,omitempty"`
	Estado             string             `bson:"estado" json:"estado"` // ACTIVO, CESADO
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NombreCompleto joins the name parts, skipping empty ones.
func (p Persona) NombreCompleto() string {
	parts := []string{}
	for _, s := range []string{p.Nombres, p.ApellidoPaterno, p.ApellidoMaterno} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, " ")
}
