package common

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	StatusOK      = 200 // Thành công
	StatusCreated = 201 // Tạo mới thành công

	StatusBadRequest      = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized    = 401 // Chưa xác thực
	StatusForbidden       = 403 // Không có quyền truy cập
	StatusNotFound        = 404 // Không tìm thấy tài nguyên
	StatusConflict        = 409 // Xung đột dữ liệu / đã xử lý
	StatusGone            = 410 // Đã hết hạn truy cập
	StatusTooManyRequests = 429 // Quá nhiều yêu cầu

	StatusInternalServerError = 500 // Lỗi server
	StatusBadGateway          = 502 // Dịch vụ AI trả lỗi
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
	StatusGatewayTimeout      = 504 // Dịch vụ AI timeout
)

// Response Messages
const (
	MsgSuccess = "Operation successful"
	MsgCreated = "Created successfully"

	MsgTokenMissing    = "Missing authentication token"
	MsgTokenInvalid    = "Invalid authentication token"
	MsgValidationError = "Invalid input data"
	MsgNotFound        = "Resource not found"
	MsgInternalError   = "Internal server error"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: AUTH_001)
	Category    string // Phân loại lỗi (ví dụ: Authentication)
	SubCategory string // Phân loại con (ví dụ: Token)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Thiếu hoặc sai token",
	}

	ErrCodeAuthCredentials = ErrorCode{
		Code:        "AUTH_002",
		Category:    "Authentication",
		SubCategory: "Credentials",
		Description: "Sai thông tin đăng nhập",
	}

	// Authorization Errors
	ErrCodeAuthRole = ErrorCode{
		Code:        "AUTH_003",
		Category:    "Authorization",
		SubCategory: "Role",
		Description: "Vai trò không được phép thực hiện thao tác",
	}

	ErrCodeAuthOwnership = ErrorCode{
		Code:        "AUTH_004",
		Category:    "Authorization",
		SubCategory: "Ownership",
		Description: "Tài nguyên thuộc về người khác",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Lỗi dữ liệu đầu vào",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Lỗi định dạng dữ liệu",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Lỗi cơ sở dữ liệu chung",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Lỗi kết nối cơ sở dữ liệu",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Lỗi truy vấn dữ liệu",
	}

	ErrCodeDatabaseDuplicate = ErrorCode{
		Code:        "DB_003",
		Category:    "Database",
		SubCategory: "Duplicate",
		Description: "Vi phạm unique index",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusinessDuplicate = ErrorCode{
		Code:        "BIZ_001",
		Category:    "Business",
		SubCategory: "Duplicate",
		Description: "Bản ghi nghiệp vụ đã tồn tại",
	}

	ErrCodeBusinessProcessed = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "State",
		Description: "Thao tác đã được xử lý hoặc trạng thái không cho phép",
	}

	ErrCodeBusinessExpired = ErrorCode{
		Code:        "BIZ_003",
		Category:    "Business",
		SubCategory: "Deadline",
		Description: "Đã quá hạn truy cập",
	}

	// Upstream Errors (AI_xxx)
	ErrCodeUpstreamResponse = ErrorCode{
		Code:        "AI_001",
		Category:    "Upstream",
		SubCategory: "Response",
		Description: "Dịch vụ AI trả về lỗi hoặc dữ liệu sai định dạng",
	}

	ErrCodeUpstreamUnreachable = ErrorCode{
		Code:        "AI_002",
		Category:    "Upstream",
		SubCategory: "Transport",
		Description: "Không kết nối được dịch vụ AI",
	}

	ErrCodeUpstreamTimeout = ErrorCode{
		Code:        "AI_003",
		Category:    "Upstream",
		SubCategory: "Timeout",
		Description: "Dịch vụ AI không phản hồi kịp",
	}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is so khớp theo mã lỗi và message, hỗ trợ errors.Is với các lỗi mẫu bên dưới
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code.Code == t.Code.Code && e.Message == t.Message
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// WithDetails trả về bản sao của lỗi mẫu kèm details
func WithDetails(err error, details any) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	cp := *e
	cp.Details = details
	return &cp
}

// Custom errors
var (
	// Authentication
	ErrTokenMissing       = NewError(ErrCodeAuthToken, MsgTokenMissing, StatusUnauthorized, nil)
	ErrTokenInvalid       = NewError(ErrCodeAuthToken, MsgTokenInvalid, StatusUnauthorized, nil)
	ErrInvalidCredentials = NewError(ErrCodeAuthCredentials, "Invalid email or password", StatusUnauthorized, nil)

	// Authorization
	ErrForbiddenRole  = NewError(ErrCodeAuthRole, "No access granted", StatusForbidden, nil)
	ErrNotJobOwner    = NewError(ErrCodeAuthOwnership, "Job posting belongs to another HR", StatusForbidden, nil)
	ErrNotApplicant   = NewError(ErrCodeAuthOwnership, "Application belongs to another candidate", StatusForbidden, nil)
	ErrAdminExists    = NewError(ErrCodeBusinessDuplicate, "An admin account already exists", StatusConflict, nil)
	ErrEmailTaken     = NewError(ErrCodeBusinessDuplicate, "Email is already registered", StatusConflict, nil)
	ErrAlreadyApplied = NewError(ErrCodeBusinessDuplicate, "You have already applied for this job", StatusConflict, nil)

	// Validation
	ErrInvalidInput  = NewError(ErrCodeValidationInput, MsgValidationError, StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Invalid data format", StatusBadRequest, nil)

	// Database
	ErrNotFound  = NewError(ErrCodeDatabaseQuery, MsgNotFound, StatusNotFound, nil)
	ErrDuplicate = NewError(ErrCodeDatabaseDuplicate, "Record already exists", StatusConflict, nil)

	// Pipeline state
	ErrAlreadySelected   = NewError(ErrCodeBusinessProcessed, "Already selected", StatusConflict, nil)
	ErrNotSelected       = NewError(ErrCodeBusinessProcessed, "Candidate was not selected for interview, so cannot be rejected from interview", StatusConflict, nil)
	ErrAlreadySubmitted  = NewError(ErrCodeBusinessProcessed, "You have already submitted your answers", StatusConflict, nil)
	ErrInvitationRevoked = NewError(ErrCodeBusinessProcessed, "Test invitation has been withdrawn", StatusConflict, nil)
	ErrIllegalTransition = NewError(ErrCodeBusinessProcessed, "Operation not allowed at the current pipeline stage", StatusConflict, nil)
	ErrTestExpired       = NewError(ErrCodeBusinessExpired, "Test access deadline has passed", StatusGone, nil)
	ErrInvitationExpired = NewError(ErrCodeBusinessExpired, "Invitation link has expired", StatusGone, nil)
	ErrUpstreamResponse  = NewError(ErrCodeUpstreamResponse, "AI service returned an unsuccessful response", StatusBadGateway, nil)
	ErrUpstreamDown      = NewError(ErrCodeUpstreamUnreachable, "AI service is unreachable", StatusBadGateway, nil)
	ErrUpstreamTimeout   = NewError(ErrCodeUpstreamTimeout, "AI service timed out", StatusGatewayTimeout, nil)
	ErrInternal          = NewError(ErrCodeInternalServer, MsgInternalError, StatusInternalServerError, nil)
	ErrMongoConnection   = NewError(ErrCodeDatabaseConnection, "MongoDB connection error", StatusServiceUnavailable, nil)
	ErrMongoTimeout      = NewError(ErrCodeDatabaseConnection, "MongoDB operation timed out", StatusServiceUnavailable, nil)
	ErrMongoWrite        = NewError(ErrCodeDatabase, "MongoDB write error", StatusInternalServerError, nil)
	ErrMongoQuery        = NewError(ErrCodeDatabaseQuery, "MongoDB query error", StatusInternalServerError, nil)
)

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Lỗi đã được phân loại thì giữ nguyên
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return ErrMongoTimeout
	case mongo.IsNetworkError(err):
		return ErrMongoConnection
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return NewError(ErrCodeDatabaseQuery, "MongoDB query error", StatusInternalServerError, cmdErr.Message)
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		return ErrMongoWrite
	}

	// Không xác định được thì trả về lỗi hệ thống chung
	return NewError(ErrCodeDatabase, "Database error", StatusInternalServerError, err.Error())
}

// StatusOf trả về HTTP status của lỗi, mặc định 500
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.StatusCode != 0 {
		return e.StatusCode
	}
	return StatusInternalServerError
}
