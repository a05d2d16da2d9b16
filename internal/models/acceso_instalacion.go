package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Estado values derived from the departure timestamp.
const (
	EstadoDentro = "dentro"
	EstadoFuera  = "fuera"
)

// AccesoInstalacion is one visitor check-in, optionally closed by a check-out
// timestamp. The numeric ID is the public identifier used by the exit flow and
// the printed/scanned tickets; the Mongo ObjectID stays internal.
type AccesoInstalacion struct {
	OID                primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID                 int64              `bson:"accesoID" json:"id"`
	FechaHora          time.Time          `bson:"fechaHora" json:"fechaHora"`
	SedeID             int64              `bson:"sedeID" json:"sedeId"`
	EmpresaID          int64              `bson:"empresaID" json:"empresaId"`
	NumeroDocumento    string             `bson:"numeroDocumento" json:"numeroDocumento"`
	TipoDocIdentidadID int64              `bson:"tipoDocIdentidadID" json:"tipoDocIdentidadId"`
	NombrePersona      string             `bson:"nombrePersona" json:"nombrePersona"`

	TipoAccesoID  *int64 `bson:"tipoAccesoID,omitempty" json:"tipoAccesoId,omitempty"`
	MotivoID      *int64 `bson:"motivoID,omitempty" json:"motivoId,omitempty"`
	TipoPersonaID *int64 `bson:"tipoPersonaID,omitempty" json:"tipoPersonaId,omitempty"`

	VehiculoNroPlaca string `bson:"vehiculoNroPlaca,omitempty" json:"vehiculoNroPlaca,omitempty"`
	VehiculoMarca    string `bson:"vehiculoMarca,omitempty" json:"vehiculoMarca,omitempty"`
	VehiculoModelo   string `bson:"vehiculoModelo,omitempty" json:"vehiculoModelo,omitempty"`
	VehiculoColor    string `bson:"vehiculoColor,omitempty" json:"vehiculoColor,omitempty"`

	TipoEquipoID *int64 `bson:"tipoEquipoID,omitempty" json:"tipoEquipoId,omitempty"`
	EquipoMarca  string `bson:"equipoMarca,omitempty" json:"equipoMarca,omitempty"`
	EquipoSerie  string `bson:"equipoSerie,omitempty" json:"equipoSerie,omitempty"`

	PersonaFirmaDestinoVisitaID *int64 `bson:"personaFirmaDestinoVisitaID,omitempty" json:"personaFirmaDestinoVisitaId,omitempty"`
	NombreDestinoVisita         string `bson:"nombreDestinoVisita,omitempty" json:"nombreDestinoVisita,omitempty"`

	Observaciones        string `bson:"observaciones,omitempty" json:"observaciones,omitempty"`
	IncidenteResaltante  bool   `bson:"incidenteResaltante" json:"incidenteResaltante"`
	DescripcionIncidente string `bson:"descripcionIncidente,omitempty" json:"descripcionIncidente,omitempty"`

	// nil while the visitor is still on-site. This is the only state signal.
	FechaHoraSalidaDefinitiva *time.Time `bson:"fechaHoraSalidaDefinitiva,omitempty" json:"fechaHoraSalidaDefinitiva"`

	CreatedBy string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Estado reports "dentro" while no definitive departure has been recorded.
func (a AccesoInstalacion) Estado() string {
	if a.FechaHoraSalidaDefinitiva == nil {
		return EstadoDentro
	}
	return EstadoFuera
}
