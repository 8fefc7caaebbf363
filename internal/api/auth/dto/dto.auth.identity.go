package authdto

import (
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
)

// SignupInput đầu vào đăng ký tài khoản. Role rỗng thì mặc định là candidate.
type SignupInput struct {
	Name     string `json:"name" validate:"required,max=120,no_xss"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,role"`
}

// SigninInput đầu vào đăng nhập bằng email + mật khẩu.
type SigninInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SigninOutput token phiên và thông tin tài khoản công khai.
type SigninOutput struct {
	Token string           `json:"token"`
	User  *models.Identity `json:"user"`
}
