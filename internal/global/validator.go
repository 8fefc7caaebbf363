package global

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	// Lỗi validate trả về theo tên json của field
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("role", validateRole)
}

// validateNoXSS chặn các pattern script phổ biến trong text tự do (tiêu đề, mô tả job, cover letter)
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
		"<object",
		"<embed",
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateRole chỉ chấp nhận các vai trò hệ thống hỗ trợ
func validateRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "hr", "candidate", "admin":
		return true
	}
	return false
}

// ValidationDetails chuyển lỗi validator thành map field -> rule để trả về client
func ValidationDetails(err error) map[string]string {
	details := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		details["_"] = err.Error()
		return details
	}
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
