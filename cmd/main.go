package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "swapyard/docs"
	"swapyard/pkg/chat"
	"swapyard/pkg/db"
	"swapyard/pkg/feed"
	"swapyard/pkg/likes"
	"swapyard/pkg/listings"
	"swapyard/pkg/matches"
	"swapyard/pkg/notifications"
	"swapyard/pkg/otp"
	"swapyard/pkg/places"
	"swapyard/pkg/push"
	"swapyard/pkg/sendemail"
	"swapyard/pkg/users"
)

// @title           Swapyard API
// @version         1.0
// @description     REST API for a peer-to-peer asset swapping marketplace - homes, cars and more

// @host      localhost:8080
// @BasePath  /

// @schemes   http https

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	pool := db.Connect()
	defer pool.Close()

	emailService := sendemail.NewEmailService()

	usersRepo := users.NewPostgresUserRepository(pool)
	usersService := users.NewUserService(usersRepo)
	usersHandler := users.NewUserHandler(usersService)

	listingsRepo := listings.NewPostgresListingRepository(pool)
	listingsService := listings.NewListingService(listingsRepo)
	listingsHandler := listings.NewListingHandler(listingsService, listings.NewImageURLBuilder(os.Getenv("IMAGE_BASE_URL")))

	feedService := feed.NewFeedService(listingsRepo, usersRepo)
	feedHandler := feed.NewFeedHandler(feedService)

	otpRepo := otp.NewPostgresOTPRepository(pool)
	otpService := otp.NewOTPService(otpRepo, usersRepo, emailService)
	otpHandler := otp.NewOTPHandler(otpService)

	// Realtime setup: one manager shared by chat and notifications
	chatManager := chat.NewConnectionManager()
	msgStore := chat.NewPostgresMessageStore(pool)
	chatHandler := chat.NewHandler(chatManager, msgStore)

	notifRepo := notifications.NewPostgresNotificationRepository(pool)
	notifService := notifications.NewNotificationService(notifRepo, chatManager)
	notifHandler := notifications.NewNotificationHandler(notifService)

	pushRepo := push.NewPostgresSubscriptionRepository(pool)
	pushHandler := push.NewPushHandler(pushRepo)

	// SNS fan-out is optional: without a region the service runs without push
	var pusher likes.PushSender
	if region := os.Getenv("AWS_REGION"); region != "" {
		publisher, err := push.NewPublisher(context.Background(), region, pushRepo)
		if err != nil {
			log.Fatalf("push publisher setup failed: %v", err)
		}
		pusher = publisher
	} else {
		log.Println("AWS_REGION not set, push notifications disabled")
	}

	matchesRepo := matches.NewPostgresMatchRepository(pool)
	matchesService := matches.NewMatchService(matchesRepo, listingsRepo)
	matchesHandler := matches.NewMatchHandler(matchesService)

	likesRepo := likes.NewPostgresLikeRepository(pool)
	likesService := likes.NewLikeService(likesRepo, listingsRepo, usersRepo, matchesRepo, notifService, emailService, pusher)
	likeState := likes.NewRedisLikeStateStore(connectRedis(), 30*24*time.Hour)
	likesHandler := likes.NewLikeHandler(likesService, likeState)

	placesClient := places.NewClient(os.Getenv("PLACES_API_BASE_URL"), os.Getenv("PLACES_API_KEY"))
	placesHandler := places.NewPlacesHandler(placesClient)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// CORS configuration
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins == "" {
		origins = []string{"*"}
	} else {
		parts := strings.Split(allowedOrigins, ",")
		origins = make([]string, 0, len(parts))
		for _, p := range parts {
			o := strings.TrimSpace(p)
			if o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) == 0 {
			origins = []string{"*"}
		}
	}

	allowCreds := strings.EqualFold(os.Getenv("CORS_ALLOW_CREDENTIALS"), "true")

	corsCfg := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCreds,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsCfg))

	usersHandler.RegisterRoutes(router)
	listingsHandler.RegisterRoutes(router)
	feedHandler.RegisterRoutes(router)
	otpHandler.RegisterRoutes(router)
	notifHandler.RegisterRoutes(router)
	pushHandler.RegisterRoutes(router)
	matchesHandler.RegisterRoutes(router)
	likesHandler.RegisterRoutes(router)
	placesHandler.RegisterRoutes(router)

	// WebSocket endpoint shared by chat messages and notification pushes
	router.GET("/ws", chatHandler.HandleWebSocketGin)
	router.GET("/chat/status", chatHandler.GetStatusGin)
	router.GET("/matches/:id/messages", chatHandler.GetMatchMessagesGin)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	settings := loadTLSSettingsFromEnv()
	if err := settings.Validate(); err != nil {
		log.Fatalf("TLS settings invalid: %v", err)
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		if settings.EnableTLS {
			port = "8443"
		} else {
			port = "8080"
		}
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		if !settings.EnableTLS {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("listen (HTTP): %v", err)
			}
			return
		}

		tlsConfig, err := buildTLSConfig(settings)
		if err != nil {
			log.Fatalf("TLS setup error: %v", err)
		}
		srv.TLSConfig = tlsConfig

		if err := srv.ListenAndServeTLS(settings.CertPath, settings.KeyPath); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen (TLS): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// connectRedis builds the client for the anonymous like-state store.
func connectRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// TLSSettings holds environment-driven TLS configuration.
type TLSSettings struct {
	EnableTLS bool
	CertPath  string
	KeyPath   string
	Env       string // "production" or "development"
}

// loadTLSSettingsFromEnv reads TLS settings from environment variables.
// Vars:
// - ENABLE_TLS: true/false
// - TLS_CERT_PATH / TLS_KEY_PATH: file paths to PEM cert/key
// - APP_ENV or ENV: "production" or "development"
func loadTLSSettingsFromEnv() TLSSettings {
	env := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	if env == "" {
		env = strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))
	}
	if env == "" {
		env = "development"
	}

	enableTLS := strings.EqualFold(os.Getenv("ENABLE_TLS"), "true")
	// Enforce TLS in production
	if env == "production" {
		enableTLS = true
	}

	return TLSSettings{
		EnableTLS: enableTLS,
		CertPath:  os.Getenv("TLS_CERT_PATH"),
		KeyPath:   os.Getenv("TLS_KEY_PATH"),
		Env:       env,
	}
}

// Validate ensures TLS settings are safe for the selected environment.
func (s TLSSettings) Validate() error {
	if s.EnableTLS && (s.CertPath == "" || s.KeyPath == "") {
		return fmt.Errorf("TLS_CERT_PATH and TLS_KEY_PATH are required when TLS is enabled")
	}
	return nil
}

func buildTLSConfig(s TLSSettings) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(s.CertPath, s.KeyPath)
	if err != nil {
		return nil, err
	}
	return &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}, nil
}
