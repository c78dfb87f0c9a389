package delivery

import (
	"net/http"
	"strconv"

	authdto "stravarace-backend/internal/auth/dto"
	"stravarace-backend/internal/auth/usecase"
	"stravarace-backend/pkg/apperr"
	"stravarace-backend/pkg/strava"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUsecase  usecase.AuthUsecase
	tokens       usecase.AccessTokenProvider
	stravaClient *strava.Client
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, tokens usecase.AccessTokenProvider, stravaClient *strava.Client) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		tokens:       tokens,
		stravaClient: stravaClient,
	}
}

func (h *AuthHandler) StravaSignIn(c *gin.Context) {
	var req authdto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	resp, err := h.authUsecase.StravaSignIn(c.Request.Context(), &req)
	if err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentUser(c))
}

// GetUser checks the user exists locally and returns the live athlete profile
// pulled from Strava with the caller's credential.
func (h *AuthHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	accessToken, err := h.tokens.GetValidAccessToken(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	athlete, err := h.stravaClient.GetAthlete(c.Request.Context(), accessToken)
	if err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, athlete)
}

// GetStarredSegments lists the authenticated user's starred segments, the
// usual candidates when assembling an event.
func (h *AuthHandler) GetStarredSegments(c *gin.Context) {
	user := CurrentUser(c)

	accessToken, err := h.tokens.GetValidAccessToken(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	segments, err := h.stravaClient.GetStarredSegments(c.Request.Context(), accessToken)
	if err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"segments": segments})
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if CurrentUser(c).ID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "can only delete your own account"})
		return
	}

	if err := h.authUsecase.DeleteUser(id); err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
