package main

import (
	api "villagehub-backend/cmd/api"
	adminusecase "villagehub-backend/internal/admin/usecase"
	announcementrepo "villagehub-backend/internal/announcement/repository"
	announcementusecase "villagehub-backend/internal/announcement/usecase"
	contactrepo "villagehub-backend/internal/contact/repository"
	contactusecase "villagehub-backend/internal/contact/usecase"
	devicerepo "villagehub-backend/internal/device/repository"
	galleryrepo "villagehub-backend/internal/gallery/repository"
	galleryusecase "villagehub-backend/internal/gallery/usecase"
	notificationrepo "villagehub-backend/internal/notification/repository"
	notificationusecase "villagehub-backend/internal/notification/usecase"
	profilerepo "villagehub-backend/internal/profile/repository"
	profileusecase "villagehub-backend/internal/profile/usecase"
	statsrepo "villagehub-backend/internal/stats/repository"
	"villagehub-backend/pkg/config"
	"villagehub-backend/pkg/expopush"
	"villagehub-backend/pkg/fcm"
	"villagehub-backend/pkg/filehost"
	"villagehub-backend/pkg/gemini"
	"villagehub-backend/pkg/metrics"
	"villagehub-backend/pkg/sse"
	"villagehub-backend/pkg/ws"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{
		FieldMap: log.FieldMap{log.FieldKeyMsg: "message"},
	})
	log.SetLevel(log.InfoLevel)

	// Load configuration
	cfg := config.Load()

	// Metrics
	metricsProvider := metrics.NewProvider()

	// SSE broker for the streaming endpoints
	broker := sse.NewBroker()
	broker.OnSubscriberChange(metricsProvider.SetSSEClients)

	// Initialize repositories (dependency injection)
	announcementRepository := announcementrepo.NewAnnouncementRepository(cfg.DataDir)
	galleryRepository := galleryrepo.NewGalleryRepository(cfg.DataDir)
	contactRepository := contactrepo.NewContactRepository(cfg.DataDir)
	profileRepository := profilerepo.NewProfileRepository(cfg.DataDir)
	statsRepository := statsrepo.NewStatsRepository(cfg.DataDir)
	deviceRepository := devicerepo.NewTokenRepository(cfg.DataDir)
	notificationRepository := notificationrepo.NewNotificationRepository(cfg.DataDir)

	// Initialize FCM client (optional, push works without it)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		var err error
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Warnf("Failed to initialize FCM client (push notifications disabled): %v", err)
			fcmClient = nil
		}
	} else {
		log.Info("No Firebase credentials configured, FCM disabled")
	}

	// Expo push client, the second delivery path
	expoClient := expopush.NewClient()

	// Gemini assistant (optional)
	var geminiService *gemini.GeminiService
	if cfg.GeminiApiKey != "" {
		geminiService = gemini.NewGeminiService(cfg.GeminiApiKey)
	} else {
		log.Warn("GEMINI_API_KEY not set, assistant endpoints disabled")
	}

	// File hosting upload proxy
	fileHost := filehost.NewClient(cfg.FileHostURL)

	// Initialize use cases (dependency injection)
	announcementUsecase := announcementusecase.NewAnnouncementUsecase(announcementRepository, broker)
	galleryUsecase := galleryusecase.NewGalleryUsecase(galleryRepository, broker, cfg.MaxUploadBytes)
	contactUsecase := contactusecase.NewContactUsecase(contactRepository, broker)
	profileUsecase := profileusecase.NewProfileUsecase(profileRepository)
	notificationUsecase := notificationusecase.NewNotificationUsecase(notificationRepository, deviceRepository, broker, fcmClient, expoClient, metricsProvider)
	adminUsecase := adminusecase.NewAdminUsecase(cfg)

	// Replies raise notifications for the comment author
	announcementUsecase.SetReplyNotifier(notificationUsecase)

	// Announcement mirror relay for the browsers' P2P fallback
	relay := ws.NewRelay()

	// Initialize HTTP handler
	handler := api.NewHandler(api.Deps{
		AnnouncementUsecase: announcementUsecase,
		GalleryUsecase:      galleryUsecase,
		ContactUsecase:      contactUsecase,
		ProfileUsecase:      profileUsecase,
		NotificationUsecase: notificationUsecase,
		AdminUsecase:        adminUsecase,
		StatsRepo:           statsRepository,
		DeviceRepo:          deviceRepository,
		GeminiService:       geminiService,
		FileHost:            fileHost,
		Broker:              broker,
		Relay:               relay,
		Metrics:             metricsProvider,
		Config:              cfg,
	})

	// Start server
	log.Infof("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
