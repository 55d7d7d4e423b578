package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/application"
	"github.com/oksasatya/go-videotube/internal/interface/middleware"
	"github.com/oksasatya/go-videotube/pkg/helpers"
	"github.com/oksasatya/go-videotube/pkg/response"
)

type UserHandler struct {
	Svc     UserUseCases
	Cookies *helpers.CookieManager
	Uploads Uploads
	Logger  *logrus.Logger
}

func NewUserHandler(svc UserUseCases, cookies *helpers.CookieManager, uploads Uploads, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Cookies: cookies, Uploads: uploads, Logger: logger}
}

type registerRequest struct {
	Username string `form:"username" binding:"required,username"`
	Email    string `form:"email" binding:"required,email"`
	FullName string `form:"fullName" binding:"required,max=100"`
	Password string `form:"password" binding:"required,pwd"`
	Bio      string `form:"bio" binding:"max=500"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,pwd"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type updateDetailsRequest struct {
	FullName *string `json:"fullName" binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Bio      *string `json:"bio" binding:"omitempty,max=500"`
}

type sessionResponse struct {
	User         any    `json:"user,omitempty"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (h *UserHandler) Register(c *gin.Context) {
	if err := h.Uploads.Parse(c); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}
	files, err := h.Uploads.Stage(c, "avatar", "coverImage")
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	p, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   req.Password,
		Bio:        req.Bio,
		Avatar:     files["avatar"],
		CoverImage: files["coverImage"],
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "user registered successfully")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	t := res.Tokens
	h.Cookies.SetPair(c, t.AccessToken, t.AccessTokenExpiry, t.RefreshToken, t.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, sessionResponse{User: res.User, AccessToken: t.AccessToken, RefreshToken: t.RefreshToken}, "user logged in successfully")
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{}, "user logged out")
}

// Refresh accepts the refresh token from its cookie or from a JSON body.
func (h *UserHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(helpers.RefreshCookie)
	if token == "" {
		var req refreshRequest
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, sessionResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, "access token refreshed")
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	err := h.Svc.ChangePassword(c.Request.Context(), middleware.UserID(c), req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "password changed successfully")
}

func (h *UserHandler) CurrentUser(c *gin.Context) {
	p, err := h.Svc.CurrentUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "user fetched successfully")
}

func (h *UserHandler) UpdateDetails(c *gin.Context) {
	var req updateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	p, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.UserID(c), application.UpdateProfileInput{
		FullName: req.FullName,
		Email:    req.Email,
		Bio:      req.Bio,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "account details updated successfully")
}

func (h *UserHandler) UpdateImages(c *gin.Context) {
	files, err := h.Uploads.Stage(c, "avatar", "coverImage")
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	p, err := h.Svc.UpdateImages(c.Request.Context(), middleware.UserID(c), files["avatar"], files["coverImage"])
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "images updated successfully")
}

func (h *UserHandler) ChannelProfile(c *gin.Context) {
	p, err := h.Svc.ChannelProfile(c.Request.Context(), middleware.UserID(c), c.Param("username"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "user channel fetched successfully")
}

func (h *UserHandler) WatchHistory(c *gin.Context) {
	list, err := h.Svc.WatchHistory(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "watch history fetched successfully")
}
