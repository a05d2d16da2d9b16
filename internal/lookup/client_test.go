package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFindByDocumento(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"numeroDocumento":"87654321","tipoDocIdentidadId":1,"nombreCompleto":"Carlos Rojas"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, StaticToken("secret-token"), time.Second)
	require.NoError(t, err)

	match, err := client.FindByDocumento(context.Background(), "87654321")
	require.NoError(t, err)
	require.NotNil(t, match)

	assert.Equal(t, "/personas/87654321", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "87654321", match.NumeroDocumento)
	assert.Equal(t, int64(1), match.TipoDocIdentidadID)
	assert.Equal(t, "Carlos Rojas", match.Nombre)
}

func TestClientFindByDocumentoNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, StaticToken("t"), time.Second)
	require.NoError(t, err)

	match, err := client.FindByDocumento(context.Background(), "00000000")
	assert.NoError(t, err)
	assert.Nil(t, match)
}

func TestClientFindByDocumentoServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, StaticToken("t"), time.Second)
	require.NoError(t, err)

	match, err := client.FindByDocumento(context.Background(), "87654321")
	assert.Nil(t, match)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "upstream unavailable")
}

func TestClientFindByDocumentoEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, StaticToken("t"), time.Second)
	require.NoError(t, err)

	match, err := client.FindByDocumento(context.Background(), "87654321")
	assert.NoError(t, err)
	assert.Nil(t, match)
}

func TestNewClientRejectsInvalidBaseURL(t *testing.T) {
	_, err := NewClient("not a url", StaticToken("t"), time.Second)
	assert.Error(t, err)
}
