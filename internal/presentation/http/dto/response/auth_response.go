package response

import (
	"time"

	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
)

// LoginResponse carries the session token. Token duplicates AccessToken for
// dashboards that read the shorter name.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	Token       string       `json:"token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *entity.User `json:"user"`
}
