package lookup

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PriorAccess carries the classification fields of a visitor's most recent
// access record; the entry form pre-fills from them.
type PriorAccess struct {
	TipoPersonaID *int64 `json:"tipoPersonaId,omitempty"`
	EmpresaID     *int64 `json:"empresaId,omitempty"`
	MotivoID      *int64 `json:"motivoId,omitempty"`
}

// AccessHistory looks up a document number's most recent access record.
// A nil result with a nil error means the visitor has no history.
type AccessHistory interface {
	LastByDocumento(ctx context.Context, numeroDocumento string) (*PriorAccess, error)
}

// MongoHistory reads prior accesses from the acceso_instalacion collection.
type MongoHistory struct {
	DB *mongo.Database
}

func (h *MongoHistory) LastByDocumento(ctx context.Context, numeroDocumento string) (*PriorAccess, error) {
	var doc struct {
		TipoPersonaID *int64 `bson:"tipoPersonaID"`
		EmpresaID     *int64 `bson:"empresaID"`
		MotivoID      *int64 `bson:"motivoID"`
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "fechaHora", Value: -1}})
	err := h.DB.Collection("acceso_instalacion").
		FindOne(ctx, bson.M{"numeroDocumento": numeroDocumento}, opts).
		Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &PriorAccess{
		TipoPersonaID: doc.TipoPersonaID,
		EmpresaID:     doc.EmpresaID,
		MotivoID:      doc.MotivoID,
	}, nil
}
