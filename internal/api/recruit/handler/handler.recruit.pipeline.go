package recruithdl

import (
	"context"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	basehdl "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/base/handler"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/middleware"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// decision một quyết định của HR trên hồ sơ (JID, CID)
type decision func(ctx context.Context, caller authmodels.CallerContext, jobID, applicationID primitive.ObjectID) (interface{}, error)

func (h *RecruitHandler) handleDecision(c fiber.Ctx, fn decision) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		jobID, err := basehdl.ParseObjectIDParam(c, "JID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		applicationID, err := basehdl.ParseObjectIDParam(c, "CID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		result, err := fn(c.Context(), caller, jobID, applicationID)
		return basehdl.HandleResponse(c, result, err)
	})
}

// HandleSelectResume chọn hồ sơ làm bài test
func (h *RecruitHandler) HandleSelectResume(c fiber.Ctx) error {
	return h.handleDecision(c, func(ctx context.Context, caller authmodels.CallerContext, jobID, applicationID primitive.ObjectID) (interface{}, error) {
		return h.svc.SelectForTest(ctx, caller, jobID, applicationID)
	})
}

// HandleRejectResume loại hồ sơ khỏi vòng test
func (h *RecruitHandler) HandleRejectResume(c fiber.Ctx) error {
	return h.handleDecision(c, func(ctx context.Context, caller authmodels.CallerContext, jobID, applicationID primitive.ObjectID) (interface{}, error) {
		return h.svc.RejectForTest(ctx, caller, jobID, applicationID)
	})
}

// HandleSelectInterview mời phỏng vấn
func (h *RecruitHandler) HandleSelectInterview(c fiber.Ctx) error {
	return h.handleDecision(c, func(ctx context.Context, caller authmodels.CallerContext, jobID, applicationID primitive.ObjectID) (interface{}, error) {
		return h.svc.SelectForInterview(ctx, caller, jobID, applicationID)
	})
}

// HandleRejectInterview loại sau phỏng vấn
func (h *RecruitHandler) HandleRejectInterview(c fiber.Ctx) error {
	return h.handleDecision(c, func(ctx context.Context, caller authmodels.CallerContext, jobID, applicationID primitive.ObjectID) (interface{}, error) {
		return h.svc.RejectFromInterview(ctx, caller, jobID, applicationID)
	})
}

// HandleHRReport HR xem report của một hồ sơ
func (h *RecruitHandler) HandleHRReport(c fiber.Ctx) error {
	return h.handleDecision(c, func(ctx context.Context, caller authmodels.CallerContext, jobID, applicationID primitive.ObjectID) (interface{}, error) {
		return h.svc.HRReport(ctx, caller, jobID, applicationID)
	})
}

// HandleEmailHistory nhật ký thông báo của một hồ sơ
func (h *RecruitHandler) HandleEmailHistory(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		applicationID, err := basehdl.ParseObjectIDParam(c, "CID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		history, err := h.svc.EmailHistory(c.Context(), caller, applicationID)
		return basehdl.HandleResponse(c, history, err)
	})
}
