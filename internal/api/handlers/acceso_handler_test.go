package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestAccesoUpdateFilterClosingMatchesOnlyOpenVisits(t *testing.T) {
	filter := accesoUpdateFilter(7, true)

	assert.Equal(t, int64(7), filter["accesoID"])
	// The departure field must be absent for the update to match, so a
	// second concurrent close finds nothing to update.
	assert.Equal(t, bson.M{"$exists": false}, filter["fechaHoraSalidaDefinitiva"])
}

func TestAccesoUpdateFilterPlainUpdateMatchesAnyState(t *testing.T) {
	filter := accesoUpdateFilter(7, false)

	assert.Equal(t, int64(7), filter["accesoID"])
	_, constrained := filter["fechaHoraSalidaDefinitiva"]
	assert.False(t, constrained, "a non-closing update must also reach departed records")
}
