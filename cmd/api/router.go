package api

import (
	"net/http"

	admindelivery "villagehub-backend/internal/admin/delivery"
	announcementdelivery "villagehub-backend/internal/announcement/delivery"
	assistantdelivery "villagehub-backend/internal/assistant/delivery"
	contactdelivery "villagehub-backend/internal/contact/delivery"
	devicedelivery "villagehub-backend/internal/device/delivery"
	gallerydelivery "villagehub-backend/internal/gallery/delivery"
	notificationdelivery "villagehub-backend/internal/notification/delivery"
	profiledelivery "villagehub-backend/internal/profile/delivery"
	statsdelivery "villagehub-backend/internal/stats/delivery"
	uploaddelivery "villagehub-backend/internal/upload/delivery"
	"villagehub-backend/pkg/metrics"
	"villagehub-backend/pkg/ws"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Announcement *announcementdelivery.AnnouncementHandler
	Gallery      *gallerydelivery.GalleryHandler
	Contact      *contactdelivery.ContactHandler
	Profile      *profiledelivery.ProfileHandler
	Stats        *statsdelivery.StatsHandler
	Device       *devicedelivery.TokenHandler
	Notification *notificationdelivery.NotificationHandler
	Admin        *admindelivery.AdminHandler
	Assistant    *assistantdelivery.AssistantHandler
	Upload       *uploaddelivery.UploadHandler
	Relay        *ws.Relay
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Announcements
		announcements := api.Group("/announcements")
		{
			announcements.GET("", h.Announcement.List)
			announcements.POST("", h.Announcement.Create)
			announcements.GET("/stream", h.Announcement.Stream)
			announcements.DELETE("/:id", h.Announcement.Delete)
			announcements.POST("/:id/like", h.Announcement.ToggleLike)
			announcements.POST("/:id/comments", h.Announcement.AddComment)
			announcements.POST("/:id/comments/:commentId/replies", h.Announcement.AddReply)
			announcements.DELETE("/:id/comments/:commentId/replies/:replyId", h.Announcement.DeleteReply)
		}

		// Gallery
		gallery := api.Group("/gallery")
		{
			gallery.GET("", h.Gallery.List)
			gallery.POST("", h.Gallery.Create)
			gallery.GET("/stream", h.Gallery.Stream)
			gallery.DELETE("/:id", h.Gallery.Delete)
		}

		// Contact form
		contact := api.Group("/contact")
		{
			contact.GET("", h.Contact.List)
			contact.POST("", h.Contact.Create)
			contact.GET("/stream", h.Contact.Stream)
		}

		// User profiles
		profiles := api.Group("/profiles")
		{
			profiles.GET("", h.Profile.List)
			profiles.POST("", h.Profile.Upsert)
		}

		// Entry stats
		api.GET("/stats/entries", h.Stats.Get)
		api.POST("/stats/entries", h.Stats.Increment)

		// Push token registry
		push := api.Group("/push")
		{
			push.GET("", h.Device.List)
			push.POST("/register", h.Device.Register)
			push.DELETE("/:token", h.Device.Unregister)
		}

		// App notifications + direct dispatch
		notifications := api.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.POST("", h.Notification.Create)
			notifications.GET("/stream", h.Notification.Stream)
			notifications.PATCH("/:id/read", h.Notification.MarkRead)
		}
		api.POST("/messages/direct", h.Notification.DispatchDirect)

		// Admin gate (UI convenience, not an authorization boundary)
		admin := api.Group("/admin")
		{
			admin.POST("/login", h.Admin.Login)
			admin.GET("/verify", h.Admin.Verify)
		}

		// AI assistant
		assistant := api.Group("/assistant")
		{
			assistant.POST("/chat", h.Assistant.Chat)
			assistant.POST("/weather", h.Assistant.Weather)
		}

		// File upload proxy
		api.POST("/upload", h.Upload.Upload)

		// Announcement mirror relay (anchor for the clients' P2P fallback)
		api.GET("/ws", func(c *gin.Context) {
			h.Relay.Handler(c.Writer, c.Request)
		})

		// Settings routes (public) - Runtime configuration
		settings := api.Group("/settings")
		{
			settings.GET("/portal", GetPortalSettings)
			settings.PUT("/portal", UpdatePortalSettings)
		}
	}
}
