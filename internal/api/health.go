package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/growwgate/internal/domain/dto"
)

// PingFunc checks one backing dependency.
type PingFunc func(ctx context.Context) error

// HealthHandler provides the root status page plus liveness and readiness endpoints.
//
// Responsibilities:
//   - /: service status and whether API credentials and a session token are present.
//   - /healthz: basic liveness probe (always 200).
//   - /readyz: readiness probe; pings every configured dependency (Redis, Postgres).
type HealthHandler struct {
	tokens TokenManager
	pings  map[string]PingFunc
}

// NewHealthHandler builds a HealthHandler. pings may be nil or empty.
func NewHealthHandler(tokens TokenManager, pings map[string]PingFunc) *HealthHandler {
	return &HealthHandler{tokens: tokens, pings: pings}
}

// Register mounts /, /healthz and /readyz on r.
func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/", h.Root)
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
}

// Root godoc
// @Summary      Service status
// @Description  Reports whether the API credentials are configured and a session token is held
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.RootResponse
// @Router       / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	st := h.tokens.Status()
	c.JSON(http.StatusOK, dto.RootResponse{
		Status:            "ok",
		Message:           "Groww Stock Data API is running",
		CredentialsLoaded: st.APIKeyLoaded && st.APISecretLoaded,
		APIKeyLoaded:      st.APIKeyLoaded,
		APISecretLoaded:   st.APISecretLoaded,
		ClientInitialized: st.TokenExists,
	})
}

// Liveness godoc
// @Summary      Liveness probe
// @Description  Always returns OK if the service is running
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness godoc
// @Summary      Readiness probe
// @Description  Returns ready if every configured dependency answers a ping
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.pings))
	for name := range h.pings {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]string, len(names))
	ready := true
	for _, name := range names {
		ping := h.pings[name]
		if ping == nil {
			continue
		}
		if err := ping(ctx); err != nil {
			checks[name] = err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}
