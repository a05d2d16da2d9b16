package database

import (
	"context"
	"log"

	"erp-admin-api-server/internal/auth"
	"erp-admin-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedSuperAdmin creates the bootstrap superadmin account if missing.
func SeedSuperAdmin(db *mongo.Database) error {
	userCollection := db.Collection("usuarios")
	superAdminEmail := "superadmin@example.com"

	count, err := userCollection.CountDocuments(context.Background(), bson.M{"email": superAdminEmail})
	if err != nil {
		return err
	}

	if count > 0 {
		log.Println("Super admin already exists. Seeding skipped.")
		return nil
	}

	log.Println("Super admin not found. Seeding...")
	hashedPassword, err := auth.HashPassword("superadminpassword")
	if err != nil {
		return err
	}

	superAdmin := models.Usuario{
		Email:    superAdminEmail,
		Nombre:   "Super Admin",
		Password: hashedPassword,
		Role:     "superadmin",
		Estado:   "active",
	}

	_, err = userCollection.InsertOne(context.Background(), superAdmin)
	if err != nil {
		return err
	}

	log.Println("Super admin seeded successfully.")
	return nil
}

// SeedCatalogos populates the dropdown catalogs on first boot. Collections
// that already have documents are left alone.
func SeedCatalogos(db *mongo.Database) error {
	seeds := map[string][]string{
		models.CatalogoTiposDocIdentidad: {"DNI", "Carnet de Extranjería", "Pasaporte"},
		models.CatalogoTiposAcceso:       {"Peatonal", "Vehicular"},
		models.CatalogoMotivos:           {"Visita", "Reunión", "Entrega de mercadería", "Mantenimiento", "Otros"},
		models.CatalogoTiposPersona:      {"Visitante", "Proveedor", "Contratista", "Personal"},
		models.CatalogoTiposEquipo:       {"Laptop", "Tablet", "Cámara", "Herramienta"},
	}

	for collection, nombres := range seeds {
		coll := db.Collection(collection)
		count, err := coll.CountDocuments(context.Background(), bson.M{})
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		docs := make([]interface{}, 0, len(nombres))
		for i, nombre := range nombres {
			docs = append(docs, models.CatalogoItem{
				ID:     int64(i + 1),
				Nombre: nombre,
				Activo: true,
			})
		}
		if _, err := coll.InsertMany(context.Background(), docs); err != nil {
			return err
		}
		log.Printf("Catalog %s seeded with %d items", collection, len(docs))
	}
	return nil
}
