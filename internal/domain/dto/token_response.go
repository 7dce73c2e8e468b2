package dto

// CredentialsStatus reports which API secrets are configured (never their values).
type CredentialsStatus struct {
	APIKeyLoaded    bool `json:"api_key_loaded"`
	APISecretLoaded bool `json:"api_secret_loaded"`
}

// TokenStatusResponse is returned by GET /token-status.
type TokenStatusResponse struct {
	TokenExists        bool              `json:"token_exists"`
	TokenGeneratedDate *string           `json:"token_generated_date" example:"2025-01-02"`
	CurrentTime        string            `json:"current_time" example:"2025-01-02T10:00:00+05:30"`
	NextRefreshTime    string            `json:"next_refresh_time" example:"2025-01-03T03:30:00+05:30"`
	ShouldRegenerate   bool              `json:"should_regenerate"`
	CredentialsStatus  CredentialsStatus `json:"credentials_status"`
}

// RefreshTokenResponse is returned by POST /refresh-token.
type RefreshTokenResponse struct {
	Message            string `json:"message" example:"Token refreshed successfully"`
	Timestamp          string `json:"timestamp" example:"2025-01-02T10:00:00+05:30"`
	TokenGeneratedDate string `json:"token_generated_date" example:"2025-01-02"`
}

// RootResponse is returned by GET /.
type RootResponse struct {
	Status            string `json:"status" example:"ok"`
	Message           string `json:"message" example:"Groww Stock Data API is running"`
	CredentialsLoaded bool   `json:"credentials_loaded"`
	APIKeyLoaded      bool   `json:"api_key_loaded"`
	APISecretLoaded   bool   `json:"api_secret_loaded"`
	ClientInitialized bool   `json:"client_initialized"`
}
