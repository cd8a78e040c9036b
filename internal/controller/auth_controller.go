package controller

import (
	"net/http"

	"skilltree_backend/internal/config"
	"skilltree_backend/internal/model"
	"skilltree_backend/internal/service"
	"skilltree_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	Config      *config.Config
}

func NewAuthController(authService *service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{
		AuthService: authService,
		Config:      cfg,
	}
}

// RegisterRequest 注册请求
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest 登录请求
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProviderSessionRequest 第三方会话换取请求
// swagger:model ProviderSessionRequest
type ProviderSessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

func userPayload(user *model.User) gin.H {
	return gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"picture": user.Picture,
		"xp":      user.XP,
		"level":   user.Level,
		"isAdmin": user.Admin,
	}
}

// Register godoc
// @Summary 注册新用户
// @Description 邮箱密码注册，成功返回令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "注册信息"
// @Success 200 {object} util.Response{data=object} "注册成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": result.Token, "user": userPayload(result.User)})
}

// Login godoc
// @Summary 用户登录
// @Description 邮箱密码登录，成功返回令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=object} "登录成功"
// @Failure 401 {object} util.Response "凭证无效"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": result.Token, "user": userPayload(result.User)})
}

// ProviderSession godoc
// @Summary 第三方会话换取
// @Description 用一次性 session_id 向身份提供方换取会话，成功后种下会话 cookie
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body ProviderSessionRequest true "一次性会话ID"
// @Success 200 {object} util.Response{data=object} "换取成功"
// @Failure 400 {object} util.Response "session_id 缺失或无效"
// @Failure 502 {object} util.Response "身份提供方不可用"
// @Router /api/auth/oauth/session [post]
func (c *AuthController) ProviderSession(ctx *gin.Context) {
	var req ProviderSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, session, err := c.AuthService.ExchangeProviderSession(ctx.Request.Context(), req.SessionID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	maxAge := int(c.Config.Session.ExpireTime.Seconds())
	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.SetCookie(c.Config.Session.CookieName, session.SessionToken, maxAge, "/", "", true, true)

	util.Success(ctx, userPayload(user))
}

// Logout godoc
// @Summary 退出登录
// @Description 删除服务端会话并清除 cookie，没有会话也返回成功
// @Tags 认证
// @Produce  json
// @Success 200 {object} util.Response "退出成功"
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if cookie, err := ctx.Cookie(c.Config.Session.CookieName); err == nil {
		if err := c.AuthService.Logout(cookie); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}
	ctx.SetCookie(c.Config.Session.CookieName, "", -1, "/", "", true, true)
	util.Success(ctx, gin.H{"message": "Logged out"})
}

// Me godoc
// @Summary 当前用户信息
// @Tags 认证
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object} "用户信息"
// @Failure 401 {object} util.Response "未认证"
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, userPayload(user))
}
