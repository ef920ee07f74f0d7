// Package api contains all endpoints available
package api

import (
	"context"
	"fmt"
	"time"

	"newshub/news-api/db"
	"newshub/news-api/middleware"
	"newshub/news-api/oauth"
	"newshub/news-api/security"
	"newshub/news-api/service"
	"newshub/news-api/storage"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB        *gorm.DB
	Router    *gin.Engine
	Argon     *security.ArgonHash
	Store     storage.Store
	Providers *oauth.Registry
}

func NewRouter() (*API, error) {
	a := &API{}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = db

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	auth := middleware.NewBearerAuthMiddleware(db)
	session := middleware.NewSessionAuthMiddleware(db)
	maxUploadSize := viper.GetInt64("upload.max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat			-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	apiAuth := main.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/register		-> Registers a new user and returns a bearer token
		apiAuth.POST("/register", a.AuthRegister)

		// POST /api/auth/login			-> Logs in a user and returns a bearer token
		apiAuth.POST("/login", a.AuthLogin)

		// POST /api/auth/logout		-> Revokes the presented token
		apiAuth.POST("/logout", auth, a.AuthLogout)

		// GET /api/auth/me			-> Returns the authenticated user
		apiAuth.GET("/me", auth, a.AuthMe)

		// POST /api/auth/refresh-token		-> Issues an extra token for the current user
		apiAuth.POST("/refresh-token", auth, a.AuthRefreshToken)
	}

	news := main.Group("/news")
	{
		// GET /api/news			-> Paginated articles, newest first
		news.GET("", cacheFor(30), a.NewsList)

		// GET /api/news/category/:id		-> Paginated articles of one category
		news.GET("/category/:id", cacheFor(30), a.NewsByCategory)

		// GET /api/news/:id			-> A single article
		news.GET("/:id", a.NewsFetch)

		// POST /api/news			-> Creates an article with an optional image
		news.POST("", auth, middleware.BodySizeLimiter(maxUploadSize+1<<20), a.NewsCreate)

		// PUT /api/news/:id			-> Updates an article, replacing its image if a new one is sent
		news.PUT("/:id", auth, middleware.BodySizeLimiter(maxUploadSize+1<<20), a.NewsUpdate)

		// DELETE /api/news/:id			-> Deletes an article and releases its image
		news.DELETE("/:id", auth, a.NewsDelete)
	}

	categories := main.Group("/categories", middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/categories			-> Paginated categories
		categories.GET("", a.CategoryList)

		// GET /api/categories/:id		-> A single category with its articles
		categories.GET("/:id", a.CategoryFetch)

		// POST /api/categories			-> Creates a category
		categories.POST("", auth, a.CategoryCreate)

		// PUT /api/categories/:id		-> Updates a category
		categories.PUT("/:id", auth, a.CategoryUpdate)

		// DELETE /api/categories/:id		-> Deletes a category unless articles reference it
		categories.DELETE("/:id", auth, a.CategoryDelete)
	}

	web := router.Group("", middleware.BodySizeLimiter(1<<20))
	{
		// POST /register			-> Web form registration, starts a session
		web.POST("/register", a.WebRegister)

		// POST /login				-> Web form login, starts a fresh session
		web.POST("/login", a.WebLogin)

		// POST /logout				-> Destroys the session and rotates the CSRF cookie
		web.POST("/logout", session, a.WebLogout)

		// POST /forgot-password		-> Requests a reset link
		web.POST("/forgot-password", a.WebForgotPassword)

		// GET /reset-password/:token		-> Landing point of the emailed link
		web.GET("/reset-password/:token", a.WebResetPasswordForm)

		// POST /reset-password			-> Consumes a reset token
		web.POST("/reset-password", a.WebResetPassword)

		// GET /auth/:provider			-> Redirects to the provider's consent screen
		web.GET("/auth/:provider", a.OAuthRedirect)

		// GET /auth/:provider/callback		-> Reconciles the callback and logs the user in
		web.GET("/auth/:provider/callback", a.OAuthCallback)

		// POST /auth/disconnect/:provider	-> Unlinks a provider from the account
		web.POST("/auth/disconnect/:provider", session, a.OAuthDisconnect)

		// GET /dashboard			-> Summary for the signed-in user
		web.GET("/dashboard", session, a.Dashboard)
	}

	if viper.GetString("storage.type") == "local" {
		router.Static("/news-images", viper.GetString("storage.local_path"))
	}

	a.Argon = security.New()

	st, err := storage.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image storage, %w", err)
	}
	a.Store = st

	providers, err := oauth.NewRegistryFromConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OAuth providers, %w", err)
	}
	a.Providers = providers

	service.CredentialCleanup(time.Minute*time.Duration(viper.GetInt("app.cleanup_interval_minutes")), db)

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
