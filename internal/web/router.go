package web

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewEngine builds the gin engine with request logging through zap.
func NewEngine(logger *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	return engine
}

// RegisterRoutes binds the page controllers and the static assets.
func RegisterRoutes(engine *gin.Engine, h *Handlers) {
	engine.GET("/", h.Homepage)
	engine.GET("/business-jobs-list", h.BusinessJobsList)
	engine.GET("/log-in", h.LogIn)
	engine.GET("/log-in/applicant", h.LogInApplicant)
	engine.GET("/log-in/business", h.LogInBusiness)
	engine.GET("/job-details", h.JobDetails)
	engine.GET("/api/geocode", h.Geocode)
	engine.Static("/static", "./static")
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("handled request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()))
	}
}
