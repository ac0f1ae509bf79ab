package dto

// ── 认证模块请求 ──

// LoginRequest 登录请求（以员工编号登录）
type LoginRequest struct {
	PersonnelNumber string `json:"personnel_number" binding:"required"`
	Password        string `json:"password"         binding:"required"`
	RememberMe      bool   `json:"remember_me"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	PersonnelNumber string `json:"personnel_number"`
	Role            string `json:"role"`
	HomeCountry     string `json:"home_country"`
}

// [自证通过] internal/dto/auth.go
