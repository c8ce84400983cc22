// Package server exposes the graph engine over a thin REST surface. It owns
// no logic beyond request binding and mapping the engine's error taxonomy to
// HTTP status codes.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"friendgraph/internal/social"
	"friendgraph/internal/user"
	"friendgraph/pkg/apperr"
)

// Server wires the graph service into a gin router
type Server struct {
	svc    *social.Service
	logger *zap.Logger
}

// New creates a server over the given graph service
func New(svc *social.Service, log *zap.Logger) *Server {
	return &Server{svc: svc, logger: log}
}

// Router builds the HTTP routing table
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(s.logger))
	router.Use(gin.Recovery())
	router.Use(cors())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/users", s.listUsers)
		api.POST("/users", s.createUser)
		api.GET("/users/:id", s.getUser)
		api.PUT("/users/:id", s.updateUser)
		api.DELETE("/users/:id", s.deleteUser)
		api.POST("/users/:id/link", s.linkUsers)
		api.POST("/users/:id/unlink", s.unlinkUsers)
		api.GET("/graph", s.getGraph)
	}

	return router
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.svc.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, http.StatusOK, users)
}

func (s *Server) getUser(c *gin.Context) {
	u, err := s.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

type createUserRequest struct {
	Username *string  `json:"username"`
	Age      *int     `json:"age"`
	Hobbies  []string `json:"hobbies"`
}

func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperr.NewValidation("body", err.Error()))
		return
	}
	if req.Username == nil || req.Age == nil {
		s.fail(c, apperr.NewValidation("body", "username and age are required"))
		return
	}

	u, err := s.svc.Create(c.Request.Context(), *req.Username, *req.Age, req.Hobbies)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}

func (s *Server) updateUser(c *gin.Context) {
	var upd user.Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		s.fail(c, apperr.NewValidation("body", err.Error()))
		return
	}

	u, err := s.svc.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

func (s *Server) deleteUser(c *gin.Context) {
	if err := s.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}

type friendRequest struct {
	FriendID string `json:"friendId" binding:"required"`
}

func (s *Server) linkUsers(c *gin.Context) {
	var req friendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperr.NewValidation("friendId", "friendId is required"))
		return
	}

	u, f, err := s.svc.Link(c.Request.Context(), c.Param("id"), req.FriendID)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"user": u, "friend": f})
}

func (s *Server) unlinkUsers(c *gin.Context) {
	var req friendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperr.NewValidation("friendId", "friendId is required"))
		return
	}

	u, f, err := s.svc.Unlink(c.Request.Context(), c.Param("id"), req.FriendID)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"user": u, "friend": f})
}

func (s *Server) getGraph(c *gin.Context) {
	graph, err := s.svc.Project(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, http.StatusOK, graph)
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// fail maps the engine's error taxonomy onto HTTP status codes; the three
// caller-fault kinds stay distinguishable, everything else is a 500
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.TypeOf(err) {
	case apperr.ErrorTypeValidation:
		status = http.StatusBadRequest
	case apperr.ErrorTypeNotFound:
		status = http.StatusNotFound
	case apperr.ErrorTypeConflict:
		status = http.StatusConflict
	default:
		s.logger.Error("Request failed", zap.Error(err))
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

// requestLogger is a custom logger middleware for Gin
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// cors allows the visualizer frontend to call the API from another origin
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
