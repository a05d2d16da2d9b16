package models

// Usuario matches the document in MongoDB.
type Usuario struct {
	Email     string `bson:"email" json:"email"`
	Nombre    string `bson:"nombre" json:"nombre"`
	Password  string `bson:"password" json:"-"`
	Role      string `bson:"role" json:"role"` // superadmin, admin, vigilante, consulta
	EmpresaID int64  `bson:"empresaID,omitempty" json:"empresaId,omitempty"`
	Estado    string `bson:"estado" json:"estado"` // active, disabled
}
