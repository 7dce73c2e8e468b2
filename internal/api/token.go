package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/growwgate/internal/domain/dto"
	"github.com/guttosm/growwgate/internal/domain/models"
	"github.com/guttosm/growwgate/internal/middleware"
	"github.com/guttosm/growwgate/internal/token"
)

// TokenManager is the slice of token.Manager the HTTP layer needs.
type TokenManager interface {
	Status() token.Status
	Regenerate(ctx context.Context, trigger models.RefreshTrigger) (string, error)
	IssuedOn() string
	Now() time.Time
}

// RefreshHistory lists recent refresh attempts.
type RefreshHistory interface {
	Recent(ctx context.Context, limit int) ([]models.RefreshEvent, error)
}

var errHistoryDisabled = errors.New("refresh history requires POSTGRES_DSN")

// TokenHandler exposes token diagnostics and the manual refresh.
type TokenHandler struct {
	tokens  TokenManager
	history RefreshHistory
}

// NewTokenHandler constructs a TokenHandler. history may be nil.
func NewTokenHandler(tokens TokenManager, history RefreshHistory) *TokenHandler {
	return &TokenHandler{tokens: tokens, history: history}
}

// GetStatus godoc
// @Summary      Token status
// @Description  Reports whether a session token exists, when it was issued and when the next rotation happens
// @Tags         token
// @Produce      json
// @Success      200  {object}  dto.TokenStatusResponse
// @Router       /token-status [get]
func (h *TokenHandler) GetStatus(c *gin.Context) {
	st := h.tokens.Status()

	resp := dto.TokenStatusResponse{
		TokenExists:      st.TokenExists,
		CurrentTime:      st.Now.Format(time.RFC3339),
		NextRefreshTime:  st.NextRefresh.Format(time.RFC3339),
		ShouldRegenerate: st.ShouldRegenerate,
		CredentialsStatus: dto.CredentialsStatus{
			APIKeyLoaded:    st.APIKeyLoaded,
			APISecretLoaded: st.APISecretLoaded,
		},
	}
	if st.IssuedOn != "" {
		issued := st.IssuedOn
		resp.TokenGeneratedDate = &issued
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary      Force token refresh
// @Description  Exchanges the configured API key and secret for a new session token
// @Tags         token
// @Produce      json
// @Success      200  {object}  dto.RefreshTokenResponse
// @Failure      500  {object}  dto.ErrorResponse  "Missing credentials or upstream rejection"
// @Router       /refresh-token [post]
func (h *TokenHandler) Refresh(c *gin.Context) {
	if _, err := h.tokens.Regenerate(c.Request.Context(), models.TriggerManual); err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "Error refreshing token", err)
		return
	}
	c.JSON(http.StatusOK, dto.RefreshTokenResponse{
		Message:            "Token refreshed successfully",
		Timestamp:          h.tokens.Now().Format(time.RFC3339),
		TokenGeneratedDate: h.tokens.IssuedOn(),
	})
}

// History godoc
// @Summary      Token refresh history
// @Description  Lists recent token regeneration attempts, newest first
// @Tags         token
// @Produce      json
// @Param        limit  query     int  false  "Maximum rows (default 20, max 200)"
// @Success      200    {array}   models.RefreshEvent
// @Failure      400    {object}  dto.ErrorResponse  "Invalid limit"
// @Failure      404    {object}  dto.ErrorResponse  "History not configured"
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /token-history [get]
func (h *TokenHandler) History(c *gin.Context) {
	if h.history == nil {
		middleware.AbortWithError(c, http.StatusNotFound, "Refresh history not available", errHistoryDisabled)
		return
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			middleware.AbortWithError(c, http.StatusBadRequest, "limit must be a non-negative integer", err)
			return
		}
		limit = n
	}

	events, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "Error reading refresh history", err)
		return
	}
	c.JSON(http.StatusOK, events)
}
