package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"erp-admin-api-server/internal/database"
	"erp-admin-api-server/internal/models"
	"erp-admin-api-server/internal/s3"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EmpresaHandler struct {
	DB         *mongo.Database
	S3Uploader *s3.Uploader
}

type EmpresaRequest struct {
	RazonSocial string `json:"razonSocial" binding:"required"`
	RUC         string `json:"ruc" binding:"required"`
	Direccion   string `json:"direccion"`
	Telefono    string `json:"telefono"`
	Email       string `json:"email"`
}

// CreateEmpresa registers a new company. RUC must be unique.
func (h *EmpresaHandler) CreateEmpresa(c *gin.Context) {
	var req EmpresaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("empresas")

	count, err := collection.CountDocuments(context.Background(), bson.M{"ruc": req.RUC})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for company"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Company with this RUC already exists"})
		return
	}

	empresaID, err := database.NextSequence(context.Background(), h.DB, "empresas")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate company id"})
		return
	}

	newEmpresa := models.Empresa{
		ID:          empresaID,
		RazonSocial: req.RazonSocial,
		RUC:         req.RUC,
		Direccion:   req.Direccion,
		Telefono:    req.Telefono,
		Email:       req.Email,
		Estado:      "ACTIVA",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := collection.InsertOne(context.Background(), newEmpresa); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company"})
		return
	}

	c.JSON(http.StatusCreated, newEmpresa)
}

func (h *EmpresaHandler) GetAllEmpresas(c *gin.Context) {
	cursor, err := h.DB.Collection("empresas").Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query companies"})
		return
	}
	defer cursor.Close(context.Background())

	var empresas []models.Empresa
	if err = cursor.All(context.Background(), &empresas); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode companies"})
		return
	}
	if empresas == nil {
		empresas = []models.Empresa{}
	}

	c.JSON(http.StatusOK, empresas)
}

func (h *EmpresaHandler) GetEmpresaByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company id must be numeric"})
		return
	}

	var empresa models.Empresa
	err = h.DB.Collection("empresas").FindOne(context.Background(), bson.M{"empresaID": id}).Decode(&empresa)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve company"})
		}
		return
	}

	c.JSON(http.StatusOK, empresa)
}

func (h *EmpresaHandler) UpdateEmpresa(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company id must be numeric"})
		return
	}

	var req EmpresaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Empresa
	err = h.DB.Collection("empresas").FindOneAndUpdate(
		context.Background(),
		bson.M{"empresaID": id},
		bson.M{"$set": bson.M{
			"razonSocial": req.RazonSocial,
			"ruc":         req.RUC,
			"direccion":   req.Direccion,
			"telefono":    req.Telefono,
			"email":       req.Email,
			"updatedAt":   time.Now(),
		}},
		opts,
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *EmpresaHandler) DeleteEmpresa(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company id must be numeric"})
		return
	}

	result, err := h.DB.Collection("empresas").DeleteOne(context.Background(), bson.M{"empresaID": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete company"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted successfully"})
}

// UploadLogo stores the company logo in S3 and saves the resulting URL.
func (h *EmpresaHandler) UploadLogo(c *gin.Context) {
	if h.S3Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "File storage is not configured"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company id must be numeric"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file field is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	objectKey := fmt.Sprintf("logos/%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := h.S3Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload logo"})
		return
	}

	result, err := h.DB.Collection("empresas").UpdateOne(
		context.Background(),
		bson.M{"empresaID": id},
		bson.M{"$set": bson.M{"logoURL": url, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save logo URL"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logoUrl": url})
}
