package lookup

import (
	"context"

	"erp-admin-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// VisitorDirectory answers "who is this document number". A nil match with a
// nil error means nobody is registered under it.
type VisitorDirectory interface {
	FindByDocumento(ctx context.Context, numeroDocumento string) (*PersonaMatch, error)
}

// MongoDirectory resolves document numbers against the local personnel
// registry.
type MongoDirectory struct {
	DB *mongo.Database
}

func (d *MongoDirectory) FindByDocumento(ctx context.Context, numeroDocumento string) (*PersonaMatch, error) {
	var persona models.Persona
	err := d.DB.Collection("personas").
		FindOne(ctx, bson.M{"numeroDocumento": numeroDocumento}).
		Decode(&persona)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &PersonaMatch{
		NumeroDocumento:    persona.NumeroDocumento,
		TipoDocIdentidadID: persona.TipoDocIdentidadID,
		Nombre:             persona.NombreCompleto(),
	}, nil
}

// CompositeDirectory tries the local registry first and falls back to the
// external identity service for visitors not on payroll. Remote may be nil
// when no external service is configured.
type CompositeDirectory struct {
	Local  VisitorDirectory
	Remote VisitorDirectory
}

func (d *CompositeDirectory) FindByDocumento(ctx context.Context, numeroDocumento string) (*PersonaMatch, error) {
	if d.Local != nil {
		match, err := d.Local.FindByDocumento(ctx, numeroDocumento)
		if err != nil {
			return nil, err
		}
		if match != nil {
			return match, nil
		}
	}
	if d.Remote == nil {
		return nil, nil
	}
	return d.Remote.FindByDocumento(ctx, numeroDocumento)
}
