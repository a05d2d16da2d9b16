package routes

import (
	"erp-admin-api-server/config"
	"erp-admin-api-server/internal/api/handlers"
	"erp-admin-api-server/internal/api/middleware"
	"erp-admin-api-server/internal/lookup"
	"erp-admin-api-server/internal/s3"
	"erp-admin-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires the handlers to their routes. identityClient may be nil
// when no external identity service is configured; s3Uploader may be nil when
// file storage is not configured.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
	identityClient *lookup.Client,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.Origins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.Origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	directory := &lookup.CompositeDirectory{
		Local: &lookup.MongoDirectory{DB: db},
	}
	if identityClient != nil {
		directory.Remote = identityClient
	}
	history := &lookup.MongoHistory{DB: db}
	autofill := &lookup.Autofill{Directory: directory, History: history}

	userHandler := &handlers.UserHandler{DB: db}
	empresaHandler := &handlers.EmpresaHandler{DB: db, S3Uploader: s3Uploader}
	sedeHandler := &handlers.SedeHandler{DB: db}
	personaHandler := &handlers.PersonaHandler{DB: db, S3Uploader: s3Uploader, Directory: directory}
	cotizacionHandler := &handlers.CotizacionHandler{DB: db}
	catalogoHandler := &handlers.CatalogoHandler{DB: db}
	accesoHandler := &handlers.AccesoHandler{DB: db, Hub: wsHub, History: history}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Autofill: autofill}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
		}

		// Superadmin-only administration.
		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate())
		admin.Use(middleware.Authorize("superadmin"))
		{
			admin.POST("/users", userHandler.CreateUser)
		}

		// Master data management for admins.
		gestion := apiV1.Group("/")
		gestion.Use(middleware.Authenticate())
		gestion.Use(middleware.Authorize("admin", "superadmin"))
		{
			empresas := gestion.Group("/empresas")
			{
				empresas.POST("/", empresaHandler.CreateEmpresa)
				empresas.PUT("/:id", empresaHandler.UpdateEmpresa)
				empresas.DELETE("/:id", empresaHandler.DeleteEmpresa)
				empresas.POST("/:id/logo", empresaHandler.UploadLogo)
			}

			sedes := gestion.Group("/sedes")
			{
				sedes.POST("/", sedeHandler.CreateSede)
				sedes.PUT("/:id", sedeHandler.UpdateSede)
				sedes.DELETE("/:id", sedeHandler.DeleteSede)
			}

			personas := gestion.Group("/personas")
			{
				personas.POST("/", personaHandler.CreatePersona)
				personas.PUT("/:id", personaHandler.UpdatePersona)
				personas.DELETE("/:id", personaHandler.DeletePersona)
				personas.POST("/:id/foto", personaHandler.UploadFoto)
			}

			cotizaciones := gestion.Group("/cotizaciones")
			{
				cotizaciones.POST("/", cotizacionHandler.CreateCotizacion)
				cotizaciones.PUT("/:id/estado", cotizacionHandler.CambiarEstado)
				cotizaciones.DELETE("/:id", cotizacionHandler.DeleteCotizacion)
			}
		}

		// Day-to-day operations, including guard booths.
		operacion := apiV1.Group("/")
		operacion.Use(middleware.Authenticate())
		operacion.Use(middleware.Authorize("admin", "vigilante", "consulta", "superadmin"))
		{
			operacion.GET("/empresas", empresaHandler.GetAllEmpresas)
			operacion.GET("/empresas/:id", empresaHandler.GetEmpresaByID)
			operacion.GET("/sedes", sedeHandler.GetAllSedes)
			operacion.GET("/sedes/:id", sedeHandler.GetSedeByID)
			operacion.GET("/personas", personaHandler.GetAllPersonas)
			operacion.GET("/personas/buscar", personaHandler.BuscarPorDocumento)
			operacion.GET("/personas/:id", personaHandler.GetPersonaByID)
			operacion.GET("/cotizaciones", cotizacionHandler.GetAllCotizaciones)
			operacion.GET("/cotizaciones/:id", cotizacionHandler.GetCotizacionByID)
			operacion.GET("/catalogos/:nombre", catalogoHandler.GetCatalogo)

			accesos := operacion.Group("/acceso-instalacion")
			{
				accesos.GET("/", accesoHandler.GetAllAccesos)
				accesos.GET("/ultimo/:numeroDocumento", accesoHandler.GetUltimoPorDocumento)
				accesos.GET("/:id", accesoHandler.GetAccesoByID)
				accesos.GET("/:id/detalles", accesoHandler.GetDetallesByAcceso)

				registro := accesos.Group("/")
				registro.Use(middleware.Authorize("admin", "vigilante", "superadmin"))
				{
					registro.POST("/", accesoHandler.CreateAcceso)
					registro.POST("/scan", accesoHandler.ResolveScan)
					registro.PUT("/:id", accesoHandler.UpdateAcceso)
				}

				// Hard delete stays admin-gated.
				borrado := accesos.Group("/")
				borrado.Use(middleware.Authorize("admin", "superadmin"))
				{
					borrado.DELETE("/:id", accesoHandler.DeleteAcceso)
				}
			}
		}
	}

	return router
}
