package handlers

import (
	"net/http"

	"github.com/Vineet-Sharma1927/InkSight/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NavigationHandler exposes the unsaved-changes guard to the page shell.
// The shell reports navigation intents here before following a link, and
// asks whether the browser-native unload prompt should be armed.
type NavigationHandler struct {
	log     *zap.Logger
	manager *session.Manager
}

func NewNavigationHandler(log *zap.Logger, manager *session.Manager) *NavigationHandler {
	return &NavigationHandler{log: log, manager: manager}
}

type navigateForm struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Intent arbitrates an in-app navigation attempt.
func (h *NavigationHandler) Intent(c *gin.Context) {
	_, guard := h.manager.Get(SessionToken(c))

	var form navigateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	decision := guard.Decide(form.From, form.To)
	resp := gin.H{"decision": decision}
	if decision == session.DecisionAsk {
		resp["message"] = guard.Message()
	}
	c.JSON(http.StatusOK, resp)
}

type resolveForm struct {
	Leave bool `json:"leave"`
}

// Resolve settles a pending confirmation: leave returns the parked
// destination for the shell to navigate to, stay discards it.
func (h *NavigationHandler) Resolve(c *gin.Context) {
	_, guard := h.manager.Get(SessionToken(c))

	var form resolveForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	dest, ok := guard.Resolve(form.Leave)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"navigate": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"navigate": true, "destination": dest})
}

// BeforeUnload reports whether the browser should warn before unloading.
func (h *NavigationHandler) BeforeUnload(c *gin.Context) {
	_, guard := h.manager.Get(SessionToken(c))
	c.JSON(http.StatusOK, gin.H{
		"warn":    guard.BeforeUnload(),
		"message": guard.Message(),
	})
}
