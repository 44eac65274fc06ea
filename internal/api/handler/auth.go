package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/oauth"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/response"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	stateStore  *oauth.StateStore
}

func NewAuthHandler(authService *service.AuthService, stateStore *oauth.StateStore) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		stateStore:  stateStore,
	}
}

// Register 用户注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrUsernameExists):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "注册成功，请查收验证邮件", resp)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.AuthError(c, err.Error())
		case errors.Is(err, service.ErrEmailNotVerified):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "登录成功", resp)
}

// VerifyEmail 验证邮箱
// POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.VerifyEmail(req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidVerifyCode):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "邮箱验证成功", resp)
}

// GithubAuth 跳转 GitHub 授权页
// GET /api/v1/auth/github
func (h *AuthHandler) GithubAuth(c *gin.Context) {
	state := c.Query("state")
	if h.stateStore != nil {
		generated, err := h.stateStore.GenerateState(c.Request.Context(), c.Query("redirect_uri"))
		if err != nil {
			response.ServerError(c, "")
			return
		}
		state = generated
	}

	url := h.authService.GetGithubAuthURL(state)
	c.Redirect(307, url)
}

// GithubCallback GitHub OAuth 回调
// GET /api/v1/auth/github/callback
func (h *AuthHandler) GithubCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.ParamError(c, "缺少授权码")
		return
	}

	if h.stateStore != nil {
		if _, err := h.stateStore.ValidateState(c.Request.Context(), c.Query("state")); err != nil {
			response.ParamError(c, "state 校验失败")
			return
		}
	}

	resp, err := h.authService.GithubCallback(c.Request.Context(), code)
	if err != nil {
		response.ServerError(c, "GitHub 登录失败")
		return
	}

	response.SuccessWithMessage(c, "登录成功", resp)
}
