package handlers

import (
	"context"
	"net/http"

	"erp-admin-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CatalogoHandler struct {
	DB *mongo.Database
}

// catalogos maps the URL segment to its collection.
var catalogos = map[string]string{
	"tipos-doc-identidad": models.CatalogoTiposDocIdentidad,
	"tipos-acceso":        models.CatalogoTiposAcceso,
	"motivos":             models.CatalogoMotivos,
	"tipos-persona":       models.CatalogoTiposPersona,
	"tipos-equipo":        models.CatalogoTiposEquipo,
}

// GetCatalogo lists the active items of one dropdown catalog.
func (h *CatalogoHandler) GetCatalogo(c *gin.Context) {
	collection, ok := catalogos[c.Param("nombre")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown catalog"})
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "itemID", Value: 1}})
	cursor, err := h.DB.Collection(collection).Find(context.Background(), bson.M{"activo": true}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query catalog"})
		return
	}
	defer cursor.Close(context.Background())

	var items []models.CatalogoItem
	if err = cursor.All(context.Background(), &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode catalog"})
		return
	}
	if items == nil {
		items = []models.CatalogoItem{}
	}

	c.JSON(http.StatusOK, items)
}
