package lookup

import "context"

// Advisory codes for a lookup that falls back to manual entry. Neither is a
// failure; the form just stays blank.
const (
	AvisoSinCoincidencia        = "SIN_COINCIDENCIA"
	AvisoDirectorioNoDisponible = "DIRECTORIO_NO_DISPONIBLE"
)

// Result is what the entry form pre-fills from. Encontrado=false leaves the
// identity fields empty; Aviso says why.
type Result struct {
	NumeroDocumento    string `json:"numeroDocumento"`
	Encontrado         bool   `json:"encontrado"`
	Aviso              string `json:"aviso,omitempty"`
	NombrePersona      string `json:"nombrePersona,omitempty"`
	TipoDocIdentidadID int64  `json:"tipoDocIdentidadId,omitempty"`
	TipoPersonaID      *int64 `json:"tipoPersonaId,omitempty"`
	EmpresaID          *int64 `json:"empresaId,omitempty"`
	MotivoID           *int64 `json:"motivoId,omitempty"`
}

// Autofill resolves a document number into form pre-fill data: identity from
// the directory, then classification from the visitor's prior access. The two
// lookups are independent; a history failure never rolls back the identity
// fields.
type Autofill struct {
	Directory VisitorDirectory
	History   AccessHistory
}

// Lookup never returns an error: a missing person and a transport failure
// both degrade to manual entry, with distinct advisory codes.
func (a *Autofill) Lookup(ctx context.Context, numeroDocumento string) Result {
	res := Result{NumeroDocumento: numeroDocumento}

	match, err := a.Directory.FindByDocumento(ctx, numeroDocumento)
	if err != nil {
		res.Aviso = AvisoDirectorioNoDisponible
		return res
	}
	if match == nil {
		res.Aviso = AvisoSinCoincidencia
		return res
	}

	res.Encontrado = true
	res.NombrePersona = match.Nombre
	res.TipoDocIdentidadID = match.TipoDocIdentidadID

	if a.History == nil {
		return res
	}
	prior, err := a.History.LastByDocumento(ctx, numeroDocumento)
	if err != nil || prior == nil {
		return res
	}
	res.TipoPersonaID = prior.TipoPersonaID
	res.EmpresaID = prior.EmpresaID
	res.MotivoID = prior.MotivoID
	return res
}
