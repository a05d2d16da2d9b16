package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	match *PersonaMatch
	err   error
}

func (f *fakeDirectory) FindByDocumento(ctx context.Context, numeroDocumento string) (*PersonaMatch, error) {
	return f.match, f.err
}

type fakeHistory struct {
	prior *PriorAccess
	err   error
}

func (f *fakeHistory) LastByDocumento(ctx context.Context, numeroDocumento string) (*PriorAccess, error) {
	return f.prior, f.err
}

func ptr(v int64) *int64 { return &v }

func TestAutofillNoMatchFallsBackToManualEntry(t *testing.T) {
	a := &Autofill{Directory: &fakeDirectory{}, History: &fakeHistory{}}

	res := a.Lookup(context.Background(), "87654321")

	assert.False(t, res.Encontrado)
	assert.Equal(t, AvisoSinCoincidencia, res.Aviso)
	assert.Equal(t, "87654321", res.NumeroDocumento)
	assert.Empty(t, res.NombrePersona)
	assert.Zero(t, res.TipoDocIdentidadID)
}

func TestAutofillDirectoryFailureIsAdvisoryNotError(t *testing.T) {
	a := &Autofill{
		Directory: &fakeDirectory{err: errors.New("connection refused")},
		History:   &fakeHistory{},
	}

	res := a.Lookup(context.Background(), "87654321")

	assert.False(t, res.Encontrado)
	assert.Equal(t, AvisoDirectorioNoDisponible, res.Aviso)
}

func TestAutofillFillsIdentityAndPriorClassification(t *testing.T) {
	a := &Autofill{
		Directory: &fakeDirectory{match: &PersonaMatch{
			NumeroDocumento:    "87654321",
			TipoDocIdentidadID: 1,
			Nombre:             "Carlos Rojas Mendoza",
		}},
		History: &fakeHistory{prior: &PriorAccess{
			TipoPersonaID: ptr(2),
			EmpresaID:     ptr(5),
			MotivoID:      ptr(3),
		}},
	}

	res := a.Lookup(context.Background(), "87654321")

	require.True(t, res.Encontrado)
	assert.Empty(t, res.Aviso)
	assert.Equal(t, "Carlos Rojas Mendoza", res.NombrePersona)
	assert.Equal(t, int64(1), res.TipoDocIdentidadID)
	require.NotNil(t, res.TipoPersonaID)
	assert.Equal(t, int64(2), *res.TipoPersonaID)
	require.NotNil(t, res.EmpresaID)
	assert.Equal(t, int64(5), *res.EmpresaID)
	require.NotNil(t, res.MotivoID)
	assert.Equal(t, int64(3), *res.MotivoID)
}

func TestAutofillHistoryFailureKeepsIdentityFields(t *testing.T) {
	match := &PersonaMatch{NumeroDocumento: "87654321", TipoDocIdentidadID: 1, Nombre: "Ana Torres"}

	for _, history := range []AccessHistory{
		&fakeHistory{err: errors.New("timeout")},
		&fakeHistory{}, // first visit, no prior access
		nil,
	} {
		a := &Autofill{Directory: &fakeDirectory{match: match}, History: history}
		res := a.Lookup(context.Background(), "87654321")

		assert.True(t, res.Encontrado)
		assert.Equal(t, "Ana Torres", res.NombrePersona)
		assert.Nil(t, res.TipoPersonaID)
		assert.Nil(t, res.EmpresaID)
		assert.Nil(t, res.MotivoID)
	}
}
