package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/inventory/internal/application/user"
	"github.com/xiebiao/inventory/internal/interface/http/dto"
	"github.com/xiebiao/inventory/internal/interface/http/middleware"
	"github.com/xiebiao/inventory/pkg/jwt"
	"github.com/xiebiao/inventory/pkg/response"
)

// UserHandler 用户HTTP处理器
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
	loginUseCase    *appuser.LoginUseCase
	logoutUseCase   *appuser.LogoutUseCase
	profileUseCase  *appuser.ProfileUseCase
	jwtManager      *jwt.Manager
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	profileUseCase *appuser.ProfileUseCase,
	jwtManager *jwt.Manager,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
		profileUseCase:  profileUseCase,
		jwtManager:      jwtManager,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  创建新用户账号
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=dto.UserResponse}
// @Failure      400 {object} response.Response "参数错误/用户名或邮箱已存在"
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.UserResponse{
		ID:       result.ID,
		Username: result.Username,
		Email:    result.Email,
	})
}

// Login 用户登录
// @Summary      用户登录
// @Description  用户名密码登录，返回JWT Token对
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "密码错误"
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Username: req.Username,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Logout 用户登出
// @Summary      用户登出
// @Description  删除会话并将当前Token加入黑名单
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	// 提取当前Token(认证中间件已验证过格式)
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")

	if err := h.logoutUseCase.Execute(c.Request.Context(), userID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetProfile 获取当前用户资料
// @Summary      获取当前用户资料
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.profileUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.UserResponse{
		ID:       result.ID,
		Username: result.Username,
		Email:    result.Email,
	})
}

// UpdateProfile 更新当前用户资料
// @Summary      更新当前用户资料
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateProfileRequest true "资料"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.profileUseCase.UpdateEmail(c.Request.Context(), userID, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.UserResponse{
		ID:       result.ID,
		Username: result.Username,
		Email:    result.Email,
	})
}

// ChangePassword 修改密码
// @Summary      修改密码
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ChangePasswordRequest true "新旧密码"
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response "旧密码错误"
// @Router       /api/v1/users/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	if err := h.profileUseCase.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// RefreshToken 刷新Access Token
// @Summary      刷新Token
// @Description  用Refresh Token换取新的Access Token
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshTokenRequest true "Refresh Token"
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response "Token无效或已过期"
// @Router       /api/v1/users/refresh [post]
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	accessToken, err := h.jwtManager.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"access_token": accessToken})
}
