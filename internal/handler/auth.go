package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/user/learnly/internal/middleware"
	"github.com/user/learnly/internal/utils"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "注册信息不完整或格式错误")
		return
	}

	// 邮箱和用户名查重
	if existing, err := h.Repos.User.FindByEmail(req.Email); err != nil {
		utils.InternalServerError(c, "")
		return
	} else if existing != nil {
		utils.BadRequest(c, "邮箱已被注册")
		return
	}
	if existing, err := h.Repos.User.FindByUsername(req.Username); err != nil {
		utils.InternalServerError(c, "")
		return
	} else if existing != nil {
		utils.BadRequest(c, "用户名已被占用")
		return
	}

	user, err := h.Repos.User.Create(req.Email, req.Username, req.Password)
	if err != nil {
		log.Printf("[Auth] 创建用户失败: %v", err)
		utils.InternalServerError(c, "注册失败")
		return
	}

	h.issueToken(c, user.ID, user.Email, user.Role)
	utils.Success(c, user)
}

// Login 登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "登录信息不完整")
		return
	}

	user, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil || !h.Repos.User.CheckPassword(user, req.Password) {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	token := h.issueToken(c, user.ID, user.Email, user.Role)
	utils.Success(c, gin.H{
		"user":  user,
		"token": token,
	})
}

// Logout 退出登录
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	utils.SuccessWithMessage(c, "已退出登录", nil)
}

// Me 当前用户信息及集合快照
func (h *Handler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.Repos.User.FindByID(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.Unauthorized(c, "")
		return
	}

	collections, err := h.Library.Collections(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"user":        user,
		"collections": collections,
	})
}

// ProfileRequest 更新资料请求
type ProfileRequest struct {
	Name  string `json:"name" binding:"required,max=64"`
	Job   string `json:"job" binding:"max=64"`
	Image string `json:"image" binding:"max=512"`
}

// UpdateProfile 更新资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "昵称不能为空")
		return
	}

	if err := h.Repos.User.UpdateProfile(userID, req.Name, req.Job, req.Image); err != nil {
		log.Printf("[Auth] 更新资料失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	user, err := h.Repos.User.FindByID(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, user)
}

// PasswordRequest 修改密码请求
type PasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// UpdatePassword 修改密码，必须先验证旧密码
func (h *Handler) UpdatePassword(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "新密码至少 6 位")
		return
	}

	user, err := h.Repos.User.FindByID(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil || !h.Repos.User.CheckPassword(user, req.OldPassword) {
		utils.Unauthorized(c, "旧密码错误")
		return
	}

	if err := h.Repos.User.UpdatePassword(userID, req.NewPassword); err != nil {
		log.Printf("[Auth] 修改密码失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "密码已更新", nil)
}

// issueToken 签发 Token 并写入 Cookie
func (h *Handler) issueToken(c *gin.Context, userID int, email, role string) string {
	token, err := middleware.GenerateToken(userID, email, role, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		log.Printf("[Auth] 生成 Token 失败: %v", err)
		return ""
	}
	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)
	return token
}
