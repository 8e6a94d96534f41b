package router

import (
	"net/http"
	"time"

	"github.com/Vineet-Sharma1927/InkSight/internal/analyzer"
	"github.com/Vineet-Sharma1927/InkSight/internal/config"
	"github.com/Vineet-Sharma1927/InkSight/internal/handlers"
	"github.com/Vineet-Sharma1927/InkSight/internal/session"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
}

func Setup(log *zap.Logger, manager *session.Manager, an analyzer.Analyzer, tables func() []analyzer.TableInfo) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("inksight", store))

	// Sessions must be initialized before CSRF can use them.
	router.Use(CSRFProtection())

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			c.Abort()
			return
		}
	})

	// Handlers and routes
	captureHandler := handlers.NewCaptureHandler(log, manager)
	navigationHandler := handlers.NewNavigationHandler(log, manager)
	analyzeHandler := handlers.NewAnalyzeHandler(log, an, tables)
	patientsHandler := handlers.NewPatientsHandler(log)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 60,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	captureRoutes := router.Group("/session")
	{
		captureRoutes.GET("", captureHandler.State)
		captureRoutes.POST("/slots", captureHandler.AddSlot)
		captureRoutes.DELETE("/slots/:id", captureHandler.RemoveSlot)
		captureRoutes.PUT("/slots/:id", captureHandler.UpdateSlot)
		captureRoutes.POST("/slots/:id/toggle", captureHandler.ToggleCode)
		captureRoutes.POST("/slots/:id/analyze", limiter, captureHandler.AnalyzeSlot)
		captureRoutes.POST("/slots/:id/record", captureHandler.RecordSlot)
		captureRoutes.POST("/advance", captureHandler.Advance)
		captureRoutes.PUT("/metadata", captureHandler.UpdateMetadata)
		captureRoutes.POST("/submit", limiter, captureHandler.Submit)

		captureRoutes.POST("/navigate", navigationHandler.Intent)
		captureRoutes.POST("/navigate/resolve", navigationHandler.Resolve)
		captureRoutes.GET("/navigate/beforeunload", navigationHandler.BeforeUnload)
	}

	router.POST("/analyze-response", limiter, analyzeHandler.Analyze)
	router.GET("/tables-info", analyzeHandler.TablesInfo)

	patientRoutes := router.Group("/patients")
	{
		patientRoutes.GET("", patientsHandler.List)
		patientRoutes.GET("/:id", patientsHandler.Get)
		patientRoutes.PUT("/:id/responses", patientsHandler.UpdateResponses)
	}

	return router
}
