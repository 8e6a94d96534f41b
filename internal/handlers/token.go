package handlers

import (
	"github.com/Vineet-Sharma1927/InkSight/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionTokenKey = "capture_token"

// SessionToken returns the stable random token identifying this browser's
// capture session, creating one on first contact. The token keys the
// in-memory controller, so one browser always talks to one state machine.
func SessionToken(c *gin.Context) string {
	sess := sessions.Default(c)
	if token, ok := sess.Get(sessionTokenKey).(string); ok && token != "" {
		return token
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		// crypto/rand failing is not recoverable at request level.
		panic("failed to generate session token")
	}
	sess.Set(sessionTokenKey, token)
	if err := sess.Save(); err != nil {
		panic("failed to save session")
	}
	return token
}
