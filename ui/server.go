// Package ui exposes the HTTP surface: the conversion API and the embedded
// dashboard.
package ui

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"analytico/adapters/excel"
	"analytico/internal/config"
	"analytico/internal/preprocess"
)

// Server represents the web server for the Analytico UI and API.
type Server struct {
	router    *gin.Engine
	pipeline  *preprocess.Pipeline
	writer    *excel.Writer
	templates *template.Template
}

// NewServer creates a server wired from configuration. Every request builds
// its own tables and models; the server itself holds no per-request state.
func NewServer(cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router: gin.Default(),
		pipeline: &preprocess.Pipeline{
			KNeighbors:   cfg.Pipeline.KNeighbors,
			IQRThreshold: cfg.Pipeline.IQRThreshold,
		},
		writer: &excel.Writer{IQRThreshold: cfg.Pipeline.IQRThreshold},
	}

	if err := s.loadTemplates(); err != nil {
		return nil, err
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.GET("/", s.handleWelcome)
	s.router.POST("/csv_to_excel_with_description/", s.handleCSVToExcel)

	dash := s.router.Group("/dash")
	dash.GET("/", s.handleDashIndex)
	dash.POST("/upload", s.handleDashUpload)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server on the given port and blocks.
func (s *Server) Run(port string) error {
	return s.router.Run(":" + port)
}
