// Package webapp is the hosting layer around the detection engine: an
// HTML check form, a JSON API and a privacy page. It supplies one input
// string per request and renders one Verdict; all detection logic lives
// in the shopdetect package.
package webapp

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quantumwebs/shopdetect/internal/config"
	"github.com/quantumwebs/shopdetect/shopdetect"
)

//go:embed templates/*.html
var templateFS embed.FS

// NewRouter creates a configured Gin engine with all routes and
// middleware.
//
// Middleware chain:
//
//	Global:     Recovery → Logger
//	Detection:  RateLimit (per client IP)
//
// The health endpoint stays outside rate limiting so monitoring probes
// always work.
func NewRouter(det *shopdetect.Detector, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.GET("/", Index())
	r.GET("/privacy", Privacy())
	r.GET("/healthz", Health(startTime))

	limited := r.Group("")
	limited.Use(RateLimit(cfg.RateLimit))
	limited.POST("/", Check(det))
	limited.POST("/api/v1/detect", DetectJSON(det))

	return r
}
