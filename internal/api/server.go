package api

import (
	"fmt"
	"net/http"

	"feedbackboard/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Server wraps the web server.
type Server struct {
	handler *Handler
	router  *gin.Engine
}

// NewServer creates a new server and wires up every route.
func NewServer(db *gorm.DB, sessions *session.Manager) *Server {
	handler := NewHandler(db, sessions)

	registerFormValidations()

	// Use gin.New() instead of gin.Default() so the logger can be customized
	router := gin.New()
	router.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		// Skip logging for the scrape endpoint
		if param.Path == "/metrics" {
			return ""
		}
		return fmt.Sprintf("[%s] %s %s %d %s %s \"%s\" %s\n",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.ClientIP,
			param.Method,
			param.StatusCode,
			param.Latency,
			param.Path,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(Metrics())
	router.Use(SessionIdentity(sessions))

	router.SetHTMLTemplate(pageTemplates())

	router.GET("/", handler.Home)
	router.GET("/register", handler.ShowRegister)
	router.POST("/register", handler.Register)
	router.GET("/login", handler.ShowLogin)
	router.POST("/login", handler.Login)
	router.POST("/logout", handler.Logout)
	router.GET("/secret", handler.Secret)

	router.GET("/user", handler.UserHome)
	router.GET("/user/:username", handler.ViewUser)
	router.POST("/user/:username/update", handler.UpdateProfile)
	router.POST("/user/:username/delete", handler.DeleteUser)
	router.GET("/user/:username/feedback/add", handler.ShowAddFeedback)
	router.POST("/user/:username/feedback/add", handler.AddFeedback)

	router.GET("/feedback/:id/update", handler.ShowUpdateFeedback)
	router.POST("/feedback/:id/update", handler.UpdateFeedback)
	router.POST("/feedback/:id/delete", handler.DeleteFeedback)

	router.GET("/healthz", handler.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Server{
		handler: handler,
		router:  router,
	}
}

// GetRouter returns the router.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
