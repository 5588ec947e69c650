package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jeandelest/Queen-Back-Office/internal/handlers"
	"github.com/jeandelest/Queen-Back-Office/internal/middleware"
	"github.com/jeandelest/Queen-Back-Office/internal/services"
	"github.com/jeandelest/Queen-Back-Office/internal/services/cache"
	"github.com/jeandelest/Queen-Back-Office/internal/services/excel"
)

// Dependencies are the services the HTTP layer is built on
type Dependencies struct {
	Integrator  handlers.ContextIntegrator
	Ingester    handlers.SampleIngester
	References  *services.ReferenceService
	Invalidator cache.Invalidator
	Files       *services.FileService

	JWTSecret string
	AdminRole string
}

// SetupRouter configures the Gin router with the ingestion and reference routes
func SetupRouter(deps Dependencies) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if deps.JWTSecret == "" {
		logrus.Warn("JWT_SECRET not set, every protected route will answer 401")
	}
	bearerTokenMiddleware := middleware.NewBearerTokenMiddleware(deps.JWTSecret, deps.AdminRole)

	integrationHandler := handlers.NewIntegrationHandler(deps.Integrator, deps.Invalidator, deps.Files, excel.NewReportService())
	sampleHandler := handlers.NewSampleHandler(deps.Ingester, deps.Files)
	referenceHandler := handlers.NewReferenceHandler(deps.References)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logrus.Info("Swagger UI endpoint registered at /swagger/index.html")

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		protected := api.Group("")
		protected.Use(bearerTokenMiddleware.BearerTokenAuthMiddleware())
		{
			nomenclatures := protected.Group("/nomenclatures")
			{
				nomenclatures.GET("/:id", referenceHandler.GetNomenclature)
			}

			questionnaires := protected.Group("/questionnaires")
			{
				questionnaires.GET("/:id", referenceHandler.GetQuestionnaire)
				questionnaires.GET("/:id/required-nomenclatures", referenceHandler.GetQuestionnaireNomenclatures)
				questionnaires.GET("/:id/metadata", referenceHandler.GetQuestionnaireMetadata)
			}

			campaigns := protected.Group("/campaigns")
			{
				campaigns.GET("/:id/metadata", referenceHandler.GetCampaignMetadata)
				campaigns.GET("/:id/required-nomenclatures", referenceHandler.GetCampaignNomenclatures)
				campaigns.GET("/:id/survey-units", referenceHandler.GetCampaignSurveyUnits)
			}

			// Admin routes (requires admin role)
			admin := protected.Group("/admin")
			admin.Use(bearerTokenMiddleware.RequireAdmin())
			{
				admin.POST("/campaign/context", integrationHandler.IntegrateContext)
				admin.POST("/campaign/samples", sampleHandler.IngestSample)
			}
		}
	}

	return r
}
