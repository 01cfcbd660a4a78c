package webapp

import (
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weppos/publicsuffix-go/publicsuffix"

	"github.com/quantumwebs/shopdetect/shopdetect"
)

// Index renders the empty check form.
func Index() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{"InputValue": ""})
	}
}

// Check runs one detection for the submitted site URL and renders the
// result page.
func Check(det *shopdetect.Detector) gin.HandlerFunc {
	return func(c *gin.Context) {
		input := strings.TrimSpace(c.PostForm("site_url"))
		slog.Info("check started", "input", input, "clientIP", c.ClientIP())

		start := time.Now()
		verdict := det.Detect(c.Request.Context(), input)
		elapsed := time.Since(start)

		slog.Info("check finished",
			"input", input,
			"isShopify", verdict.IsShopify,
			"confidence", verdict.Confidence.String(),
			"elapsedMs", elapsed.Milliseconds(),
		)

		c.HTML(http.StatusOK, "index.html", gin.H{
			"InputValue": input,
			"Verdict":    verdict,
			"Confidence": verdict.Confidence.String(),
			"ApexDomain": apexDomain(verdict.ResolvedURL),
			"ElapsedMs":  elapsed.Milliseconds(),
		})
	}
}

type detectRequest struct {
	URL string `json:"url" binding:"required"`
}

type detectResponse struct {
	*shopdetect.Verdict
	ApexDomain string `json:"apex_domain,omitempty"`
	ElapsedMs  int64  `json:"elapsed_ms"`
}

// DetectJSON is POST /api/v1/detect for programmatic callers.
func DetectJSON(det *shopdetect.Detector) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req detectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		start := time.Now()
		verdict := det.Detect(c.Request.Context(), req.URL)

		c.JSON(http.StatusOK, detectResponse{
			Verdict:    verdict,
			ApexDomain: apexDomain(verdict.ResolvedURL),
			ElapsedMs:  time.Since(start).Milliseconds(),
		})
	}
}

// Privacy serves the static privacy notice.
func Privacy() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"CompanyName":  "Shopify Detector",
			"ContactEmail": "quantumwebs.official@gmail.com",
			"LastUpdated":  time.Now().Format("2006-01-02"),
		})
	}
}

// Health reports liveness and uptime.
func Health(startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(startTime).Round(time.Second).String(),
		})
	}
}

// apexDomain reduces the resolved host to its registrable domain via
// the public suffix list. Empty when there is no resolved URL or the
// host has no registrable domain (IP literals, single labels).
func apexDomain(resolvedURL string) string {
	if resolvedURL == "" {
		return ""
	}
	u, err := url.Parse(resolvedURL)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if net.ParseIP(host) != nil {
		return ""
	}
	domain, err := publicsuffix.Domain(host)
	if err != nil {
		return ""
	}
	return domain
}
