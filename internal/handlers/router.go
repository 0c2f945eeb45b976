package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/security"
	"github.com/workshopwise/marketplace-service/internal/services"
	"github.com/workshopwise/marketplace-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	workshopHandler     *WorkshopHandler
	registrationHandler *RegistrationHandler
	profileHandler      *ProfileHandler
	adminHandler        *AdminHandler
	authMiddleware      *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	tokenManager security.TokenManager,
) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), logger),
		workshopHandler:     NewWorkshopHandler(serviceManager.Workshop(), serviceManager.Export(), logger),
		registrationHandler: NewRegistrationHandler(serviceManager.Registration(), logger),
		profileHandler:      NewProfileHandler(serviceManager.Profile(), logger),
		adminHandler:        NewAdminHandler(serviceManager.Moderation(), logger),
		authMiddleware:      NewJWTAuthMiddleware(tokenManager),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Public routes, no authentication required
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/register-enterprise", hm.authHandler.RegisterEnterprise)
			auth.POST("/login", hm.authHandler.Login)
		}

		// Workshop catalog, visible to everyone
		v1.GET("/workshops", hm.workshopHandler.ListWorkshops)
		v1.GET("/workshops/:id", hm.workshopHandler.GetWorkshop)

		// Authenticated routes
		authenticated := v1.Group("")
		authenticated.Use(hm.authMiddleware.AuthMiddleware())
		{
			// Learner routes
			authenticated.POST("/workshops/:id/register", hm.authMiddleware.RequireRoleMiddleware(models.RoleUser), hm.registrationHandler.Register)
			authenticated.GET("/registrations/me", hm.authMiddleware.RequireRoleMiddleware(models.RoleUser), hm.registrationHandler.GetMine)
			authenticated.GET("/profile", hm.authMiddleware.RequireRoleMiddleware(models.RoleUser), hm.profileHandler.GetProfile)
			authenticated.PUT("/profile", hm.authMiddleware.RequireRoleMiddleware(models.RoleUser), hm.profileHandler.UpdateProfile)

			// Enterprise routes
			authenticated.POST("/workshops", hm.authMiddleware.RequireRoleMiddleware(models.RoleEnterprise), hm.workshopHandler.CreateWorkshop)
			authenticated.DELETE("/workshops/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleEnterprise), hm.workshopHandler.DeleteWorkshop)
			authenticated.GET("/enterprise/workshops", hm.authMiddleware.RequireRoleMiddleware(models.RoleEnterprise), hm.workshopHandler.GetOwnWorkshops)
			authenticated.GET("/workshops/:id/registrations", hm.authMiddleware.RequireRoleMiddleware(models.RoleEnterprise), hm.workshopHandler.GetWorkshopRegistrations)
			authenticated.GET("/workshops/:id/registrations/export", hm.authMiddleware.RequireRoleMiddleware(models.RoleEnterprise), hm.workshopHandler.ExportWorkshopRegistrations)

			// Admin routes
			admin := authenticated.Group("/admin")
			admin.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
			{
				admin.GET("/users", hm.adminHandler.ListUsers)
				admin.DELETE("/users/:id", hm.adminHandler.DeleteUser)

				admin.GET("/enterprises", hm.adminHandler.ListEnterprises)
				admin.PUT("/enterprises/:id/status", hm.adminHandler.UpdateEnterpriseStatus)
				admin.DELETE("/enterprises/:id", hm.adminHandler.DeleteEnterprise)

				admin.GET("/workshops", hm.adminHandler.ListWorkshops)
				admin.PUT("/workshops/:id/status", hm.adminHandler.UpdateWorkshopStatus)
				admin.DELETE("/workshops/:id", hm.adminHandler.DeleteWorkshop)

				admin.GET("/registrations", hm.adminHandler.ListRegistrations)
				admin.PUT("/registrations/:id/status", hm.adminHandler.UpdateRegistrationStatus)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "marketplace-service",
		})
	})
}
