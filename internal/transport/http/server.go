package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "socialnet/internal/app"
	"socialnet/internal/bootstrap"
	"socialnet/internal/cache"
	"socialnet/internal/platform/rabbitmq"
	"socialnet/internal/transport/http/handler"
	"socialnet/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.MaxMultipartMemory = app.Config.Upload.MaxSizeBytes

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	var guard appsvc.LoginGuard
	if app.Redis != nil {
		guard = cache.NewLoginGuard(
			app.Redis,
			app.Config.Redis.LoginMaxAttempts,
			time.Duration(app.Config.Redis.LoginWindowSeconds)*time.Second,
		)
	}
	var cleanup appsvc.FileCleanupPublisher
	if app.MQConn != nil {
		cleanup = rabbitmq.NewCleanupPublisher(app.MQConn, app.Config.RabbitMQ.FileCleanupQueue)
	}

	stores := app.Stores
	authService := appsvc.NewAuthService(
		stores.Users,
		guard,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	userService := appsvc.NewUserService(stores.Users, stores.Follows, stores.Publications, app.Avatars, cleanup)
	followService := appsvc.NewFollowService(stores.Users, stores.Follows)
	publicationService := appsvc.NewPublicationService(stores.Users, stores.Follows, stores.Publications, app.Media, cleanup)

	userHandler := handler.NewUserHandler(authService, userService)
	followHandler := handler.NewFollowHandler(followService)
	publicationHandler := handler.NewPublicationHandler(publicationService)

	auth := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	userGroup := router.Group("/user")
	userGroup.POST("/register", userHandler.Register)
	userGroup.POST("/login", userHandler.Login)
	userGroup.GET("/avatar/:file", userHandler.Avatar)
	userGroup.GET("/profile/:id", auth, userHandler.Profile)
	userGroup.GET("/list", auth, userHandler.List)
	userGroup.GET("/list/:page", auth, userHandler.List)
	userGroup.PUT("/update", auth, userHandler.Update)
	userGroup.POST("/upload", auth, userHandler.UploadAvatar)
	userGroup.GET("/counter", auth, userHandler.Counters)
	userGroup.GET("/counter/:id", auth, userHandler.Counters)

	followGroup := router.Group("/follow")
	followGroup.Use(auth)
	followGroup.POST("/follow", followHandler.Follow)
	followGroup.DELETE("/unfollow/:id", followHandler.Unfollow)
	followGroup.GET("/following", followHandler.Following)
	followGroup.GET("/following/:id", followHandler.Following)
	followGroup.GET("/following/:id/:page", followHandler.Following)
	followGroup.GET("/followers", followHandler.Followers)
	followGroup.GET("/followers/:id", followHandler.Followers)
	followGroup.GET("/followers/:id/:page", followHandler.Followers)

	publicationGroup := router.Group("/publication")
	publicationGroup.GET("/show-publication/:id", publicationHandler.Show)
	publicationGroup.GET("/media/:file", publicationHandler.Media)
	publicationGroup.POST("/new-publication", auth, publicationHandler.Create)
	publicationGroup.DELETE("/delete-publication/:id", auth, publicationHandler.Delete)
	publicationGroup.GET("/publications-user/:id", auth, publicationHandler.ListByUser)
	publicationGroup.GET("/publications-user/:id/:page", auth, publicationHandler.ListByUser)
	publicationGroup.POST("/upload-media/:id", auth, publicationHandler.UploadMedia)
	publicationGroup.GET("/feed", auth, publicationHandler.Feed)
	publicationGroup.GET("/feed/:page", auth, publicationHandler.Feed)

	return router
}
