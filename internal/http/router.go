package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dsa-tutor/internal/identity"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	provider identity.Provider,
	authH *AuthHandler,
	articleH *ArticleHandler,
	progressH *ProgressHandler,
	assistH *AssistHandler,
	adminH *AdminHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	// El frontend chequea salud en la raíz antes de cada flujo.
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := r.Group("/api/users")
	users.POST("/signup", authH.SignUp)
	users.POST("/login", authH.Login)
	users.POST("/resend-verification", authH.ResendVerification)

	// Cada ruta protegida re-valida el token contra el proveedor.
	protected := users.Group("")
	protected.Use(AuthMiddleware(logger, provider))
	protected.GET("/articles", articleH.ListArticles)
	protected.GET("/articles/:id/questions", articleH.RelatedQuestions)
	protected.POST("/questions/:id/mark-read", progressH.MarkRead)
	protected.GET("/user/progress", progressH.Overview)

	ai := r.Group("/api/ai")
	ai.Use(AuthMiddleware(logger, provider))
	ai.POST("/assist", assistH.Ask)
	ai.GET("/history", assistH.History)

	admin := r.Group("/api/admin")
	admin.Use(AuthMiddleware(logger, provider), RequireAdmin())
	admin.POST("/articles", adminH.CreateArticle)
	admin.PUT("/articles/:id", adminH.UpdateArticle)
	admin.DELETE("/articles/:id", adminH.DeleteArticle)
	admin.GET("/users", adminH.ListUsers)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
