package handler

import (
	"errors"
	"net/http"

	"github.com/duccv/shop-admin/internal/constant"
	"github.com/duccv/shop-admin/internal/middleware"
	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/internal/service"
	"github.com/duccv/shop-admin/internal/validation"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchanges admin credentials for a session token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		model.LoginRequest	true	"Credentials"
//	@Success		200		{object}	response.ResponseData{data=model.LoginResponse}
//	@Failure		400		{object}	response.ResponseData
//	@Failure		401		{object}	response.ResponseData
//	@Failure		500		{object}	response.ResponseData
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req, ok := validation.Body[model.LoginRequest](c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, constant.INVALID_REQUEST)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, constant.INVALID_CREDENTIALS)
		return
	}
	if err != nil {
		internalError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, constant.SUCCESS.WithData(model.LoginResponse{
		User:      res.User,
		Token:     res.Token,
		ExpiresIn: res.ExpiresIn,
	}, nil))
}

// Me godoc
//
//	@Summary		Current session
//	@Description	Returns the claims of the presented bearer token
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	response.ResponseData{data=model.AdminClaims}
//	@Failure		401	{object}	response.ResponseData
//	@Router			/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, constant.UNAUTHORIZED)
		return
	}
	c.JSON(http.StatusOK, constant.SUCCESS.WithData(model.AdminClaimsFrom(claims), nil))
}
