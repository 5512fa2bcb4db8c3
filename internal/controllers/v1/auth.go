package v1

import (
	"net/http"
	"time"

	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required" example:"Jane Doe"`
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

type Login struct {
	Token     string      `json:"token" example:"2f5b7a5e3f8c4d0e9b1a6c7d8e9f0a1b"` // The bearer token for the Authorization header
	TokenType string      `json:"tokenType" example:"bearer"`                       // Always "bearer"
	ExpiresAt time.Time   `json:"expiresAt" example:"2024-06-19T14:30:00Z"`         // The time the session ends
	User      models.User `json:"user"`                                             // The user that logged in
}

type LoginResponse struct {
	Data Login `json:"data"`
}

type UserResponse struct {
	Data models.User `json:"data"`
}

// RegisterAuthRoutes registers the routes for registration and sessions
// with the RouterGroup that is passed.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", co.OptionsRegister)
	r.POST("/register", co.Register)

	r.OPTIONS("/login", co.OptionsLogin)
	r.POST("/login", co.Login)

	authenticated := r.Group("", co.Auth.Middleware())
	authenticated.OPTIONS("/logout", co.OptionsLogout)
	authenticated.POST("/logout", co.Logout)
	authenticated.OPTIONS("/me", co.OptionsMe)
	authenticated.GET("/me", co.GetMe)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/register [options]
func (co Controller) OptionsRegister(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/login [options]
func (co Controller) OptionsLogin(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Security		BearerAuth
// @Router			/v1/auth/logout [options]
func (co Controller) OptionsLogout(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Security		BearerAuth
// @Router			/v1/auth/me [options]
func (co Controller) OptionsMe(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Register
// @Description	Creates a new user
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201		{object}	UserResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			user	body		RegisterInput	true	"User"
// @Router			/v1/auth/register [post]
func (co Controller) Register(c *gin.Context) {
	var input RegisterInput
	if err := httputil.BindData(c, &input); err != nil {
		handleError(c, err)
		return
	}

	user, err := co.Auth.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{Data: user})
}

// @Summary		Login
// @Description	Starts a new session. The token is used as bearer token for all other endpoints.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	LoginResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		401			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			credentials	body		LoginInput	true	"Credentials"
// @Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var input LoginInput
	if err := httputil.BindData(c, &input); err != nil {
		handleError(c, err)
		return
	}

	session, user, err := co.Auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Data: Login{
		Token:     session.Token,
		TokenType: "bearer",
		ExpiresAt: session.ExpiresAt,
		User:      user,
	}})
}

// @Summary		Logout
// @Description	Ends the session the request is authenticated with
// @Tags			Auth
// @Success		204
// @Failure		401	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Router			/v1/auth/logout [post]
func (co Controller) Logout(c *gin.Context) {
	if err := co.Auth.Logout(c.Request.Context(), auth.SessionToken(c)); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Current user
// @Description	Returns the authenticated user
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Router			/v1/auth/me [get]
func (co Controller) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, UserResponse{Data: auth.CurrentUser(c)})
}
