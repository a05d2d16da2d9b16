package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Catalog collection names; each holds CatalogoItem documents and backs one
// dropdown in the admin frontend.
const (
	CatalogoTiposDocIdentidad = "tipos_doc_identidad"
	CatalogoTiposAcceso       = "tipos_acceso"
	CatalogoMotivos           = "motivos"
	CatalogoTiposPersona      = "tipos_persona"
	CatalogoTiposEquipo       = "tipos_equipo"
)

type CatalogoItem struct {
	OID    primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID     int64              `bson:"itemID" json:"id"`
	Nombre string             `bson:"nombre" json:"nombre"`
	Activo bool               `bson:"activo" json:"activo"`
}
