package recruithdl

import (
	basehdl "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/base/handler"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/middleware"
	recruitdto "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/dto"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"

	"github.com/gofiber/fiber/v3"
)

// HandleShowTest ứng viên đã đăng nhập xem đề của job
func (h *RecruitHandler) HandleShowTest(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		jobID, err := basehdl.ParseObjectIDParam(c, "JID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		out, err := h.svc.ShowTest(c.Context(), caller, jobID)
		return basehdl.HandleResponse(c, out, err)
	})
}

// HandleSubmitTest ứng viên đã đăng nhập nộp bài
func (h *RecruitHandler) HandleSubmitTest(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		jobID, err := basehdl.ParseObjectIDParam(c, "JID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		var input recruitdto.SubmitInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		out, err := h.svc.SubmitTest(c.Context(), caller, jobID, &input)
		return basehdl.HandleResponse(c, out, err)
	})
}

// HandleShowInvite xem đề qua link /test/invite/:CID/:JID, không cần đăng nhập
func (h *RecruitHandler) HandleShowInvite(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		applicationID, err := basehdl.ParseObjectIDParam(c, "CID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		jobID, err := basehdl.ParseObjectIDParam(c, "JID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		out, err := h.svc.ShowTestByIDs(c.Context(), applicationID, jobID)
		return basehdl.HandleResponse(c, out, err)
	})
}

// HandleSubmitInvite nộp bài qua link /test/invite/:CID/:JID/submit
func (h *RecruitHandler) HandleSubmitInvite(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		applicationID, err := basehdl.ParseObjectIDParam(c, "CID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		jobID, err := basehdl.ParseObjectIDParam(c, "JID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		var input recruitdto.SubmitInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		out, err := h.svc.SubmitTestByIDs(c.Context(), applicationID, jobID, &input)
		return basehdl.HandleResponse(c, out, err)
	})
}

// HandleShowLink xem đề qua link ký /test/link/:token
func (h *RecruitHandler) HandleShowLink(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		out, err := h.svc.ShowTestByToken(c.Context(), c.Params("token"))
		return basehdl.HandleResponse(c, out, err)
	})
}

// HandleSubmitLink nộp bài qua link ký
func (h *RecruitHandler) HandleSubmitLink(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		token := c.Params("token")
		if token == "" {
			return basehdl.HandleErrorResponse(c, common.ErrTokenMissing)
		}
		var input recruitdto.SubmitInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		out, err := h.svc.SubmitTestByToken(c.Context(), token, &input)
		return basehdl.HandleResponse(c, out, err)
	})
}

// HandleMyReport ứng viên xem report của mình
func (h *RecruitHandler) HandleMyReport(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		jobID, err := basehdl.ParseObjectIDParam(c, "JID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		out, err := h.svc.MyReport(c.Context(), caller, jobID)
		return basehdl.HandleResponse(c, out, err)
	})
}
