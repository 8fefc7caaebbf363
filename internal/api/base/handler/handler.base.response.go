package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/global"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandlerWrapper bọc handler với recover, panic được trả về client dưới dạng lỗi SYS_001.
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("panic", r).Error("❌ [HANDLER] Panic recovered")
			debug.PrintStack()
			err = HandleErrorResponse(c, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Unexpected server error: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}

// HandleErrorResponse trả về error response theo format chuẩn
func HandleErrorResponse(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		if customErr.StatusCode >= common.StatusInternalServerError {
			logger.WithRequest(c).WithError(err).WithField("code", customErr.Code.Code).Error("❌ [HANDLER] Request failed")
		}
		return JSONResponse(c, customErr.StatusCode, fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"details": customErr.Details,
			"status":  "error",
		})
	}

	logger.WithRequest(c).WithError(err).Error("❌ [HANDLER] Unclassified error")
	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": common.MsgInternalError,
		"status":  "error",
	})
}

// HandleResponse trả lỗi nếu err != nil, ngược lại trả data với status 200
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	return HandleResponseWithStatus(c, common.StatusOK, common.MsgSuccess, data, err)
}

// HandleResponseWithStatus giống HandleResponse nhưng cho phép chọn status và message
func HandleResponseWithStatus(c fiber.Ctx, status int, message string, data interface{}, err error) error {
	if err != nil {
		return HandleErrorResponse(c, err)
	}
	return JSONResponse(c, status, fiber.Map{
		"code":    status,
		"message": message,
		"data":    data,
		"status":  "success",
	})
}

// ParseRequestBody bind JSON body và validate theo tag `validate`
func ParseRequestBody(c fiber.Ctx, input interface{}) error {
	if err := c.Bind().Body(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, "Request body is not valid JSON", common.StatusBadRequest, err.Error())
	}
	return ValidateInput(input)
}

// ValidateInput validate struct theo tag `validate`, chi tiết lỗi trả về theo tên json
func ValidateInput(input interface{}) error {
	if global.Validate == nil {
		global.InitValidator()
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.WithDetails(common.ErrInvalidInput, global.ValidationDetails(err))
	}
	return nil
}

// ParseObjectIDParam đọc path param dạng ObjectID
func ParseObjectIDParam(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	raw := c.Params(name)
	if raw == "" {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationInput, fmt.Sprintf("Missing %s", name), common.StatusBadRequest, nil)
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("%s is not a valid id", name), common.StatusBadRequest, raw)
	}
	return id, nil
}
