package api

import (
	"net/http"

	reqdto "marketcart/internal/handler/dto/request"
	resdto "marketcart/internal/handler/dto/response"
	"marketcart/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionCommands commands.SessionCommands
}

func NewSessionHandler(sessionCommands commands.SessionCommands) *SessionHandler {
	return &SessionHandler{
		sessionCommands: sessionCommands,
	}
}

// @Summary Start session
// @Description Issue a fresh anonymous cart session token
// @Tags sessions
// @Produce json
// @Success 201 {object} resdto.SessionResponse
// @Failure 500 {object} map[string]string
// @Router /sessions [post]
func (h *SessionHandler) Start(c *gin.Context) {
	sessionID, err := h.sessionCommands.Start(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusCreated, resdto.SessionResponse{SessionID: sessionID})
}

// @Summary Resume session
// @Description Supersede a previously issued token and start a new session; reservations held by the old cart are released
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body reqdto.ResumeSessionRequest false "Prior session token, if any"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sessions/resume [post]
func (h *SessionHandler) Resume(c *gin.Context) {
	var req reqdto.ResumeSessionRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	sessionID, err := h.sessionCommands.ResumeOrSupersede(c.Request.Context(), req.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusCreated, resdto.SessionResponse{SessionID: sessionID})
}
