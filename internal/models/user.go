package models

import "time"

// User roles
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	TeacherID    string    `json:"teacher_id,omitempty"` // set for TEACHER accounts only
	FullName     string    `json:"full_name"`
	IsActive     bool      `json:"is_active"`
	TOTPSecret   string    `json:"-"`
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
}

type CreateTeacherAccountRequest struct {
	TeacherID string `json:"teacher_id" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	FullName  string `json:"full_name" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type TOTPSetupResponse struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"` // data URI, base64 PNG
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

type VerifyOTPRequest struct {
	TempToken string `json:"temp_token" validate:"required"`
	Code      string `json:"code" validate:"required,len=6"`
}

type EnableOTPRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

type AuthResponse struct {
	Token       string `json:"token,omitempty"`
	TempToken   string `json:"temp_token,omitempty"` // issued when 2FA verification is pending
	RequiresOTP bool   `json:"requires_otp,omitempty"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	TeacherID   string `json:"teacher_id,omitempty"`
	FullName    string `json:"full_name"`
	Message     string `json:"message"`
}
