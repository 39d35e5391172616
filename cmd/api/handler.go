package api

import (
	admindelivery "villagehub-backend/internal/admin/delivery"
	adminusecase "villagehub-backend/internal/admin/usecase"
	announcementdelivery "villagehub-backend/internal/announcement/delivery"
	announcementusecase "villagehub-backend/internal/announcement/usecase"
	assistantdelivery "villagehub-backend/internal/assistant/delivery"
	contactdelivery "villagehub-backend/internal/contact/delivery"
	contactusecase "villagehub-backend/internal/contact/usecase"
	devicedelivery "villagehub-backend/internal/device/delivery"
	devicerepo "villagehub-backend/internal/device/repository"
	gallerydelivery "villagehub-backend/internal/gallery/delivery"
	galleryusecase "villagehub-backend/internal/gallery/usecase"
	notificationdelivery "villagehub-backend/internal/notification/delivery"
	notificationusecase "villagehub-backend/internal/notification/usecase"
	profiledelivery "villagehub-backend/internal/profile/delivery"
	profileusecase "villagehub-backend/internal/profile/usecase"
	statsdelivery "villagehub-backend/internal/stats/delivery"
	statsrepo "villagehub-backend/internal/stats/repository"
	uploaddelivery "villagehub-backend/internal/upload/delivery"
	"villagehub-backend/pkg/config"
	"villagehub-backend/pkg/filehost"
	"villagehub-backend/pkg/gemini"
	"villagehub-backend/pkg/metrics"
	"villagehub-backend/pkg/sse"
	"villagehub-backend/pkg/ws"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	handlers Handlers
	metrics  *metrics.Provider
}

type Deps struct {
	AnnouncementUsecase announcementusecase.AnnouncementUsecase
	GalleryUsecase      galleryusecase.GalleryUsecase
	ContactUsecase      contactusecase.ContactUsecase
	ProfileUsecase      profileusecase.ProfileUsecase
	NotificationUsecase notificationusecase.NotificationUsecase
	AdminUsecase        adminusecase.AdminUsecase
	StatsRepo           statsrepo.StatsRepository
	DeviceRepo          devicerepo.TokenRepository
	GeminiService       *gemini.GeminiService
	FileHost            *filehost.Client
	Broker              *sse.Broker
	Relay               *ws.Relay
	Metrics             *metrics.Provider
	Config              *config.Config
}

func NewHandler(d Deps) *Handler {
	// Runtime config for the settings dialog
	InitRuntimeConfig("Our Village", "the village")

	return &Handler{
		metrics: d.Metrics,
		handlers: Handlers{
			Announcement: announcementdelivery.NewAnnouncementHandler(d.AnnouncementUsecase, d.Broker),
			Gallery:      gallerydelivery.NewGalleryHandler(d.GalleryUsecase, d.Broker),
			Contact:      contactdelivery.NewContactHandler(d.ContactUsecase, d.Broker),
			Profile:      profiledelivery.NewProfileHandler(d.ProfileUsecase),
			Stats:        statsdelivery.NewStatsHandler(d.StatsRepo),
			Device:       devicedelivery.NewTokenHandler(d.DeviceRepo),
			Notification: notificationdelivery.NewNotificationHandler(d.NotificationUsecase, d.Broker),
			Admin:        admindelivery.NewAdminHandler(d.AdminUsecase),
			Assistant:    assistantdelivery.NewAssistantHandler(d.GeminiService),
			Upload:       uploaddelivery.NewUploadHandler(d.FileHost, d.Config.MaxUploadBytes),
			Relay:        d.Relay,
		},
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	if h.metrics != nil {
		r.Use(h.metrics.Middleware())
	}

	SetupRoutes(r, h.handlers)

	return r.Run(addr)
}
