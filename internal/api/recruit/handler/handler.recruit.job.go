package recruithdl

import (
	"io"
	"path/filepath"
	"strings"

	basehdl "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/base/handler"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/middleware"
	recruitdto "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/dto"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/utility"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleCreateJob HR tạo tin tuyển dụng
func (h *RecruitHandler) HandleCreateJob(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		var input recruitdto.JobCreateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		job, err := h.svc.CreateJob(c.Context(), caller, &input)
		return basehdl.HandleResponseWithStatus(c, common.StatusCreated, common.MsgCreated, job, err)
	})
}

// HandleListMyJobs job của HR đang đăng nhập
func (h *RecruitHandler) HandleListMyJobs(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		jobs, err := h.svc.ListMyJobs(c.Context(), caller)
		return basehdl.HandleResponse(c, jobs, err)
	})
}

// HandleListAllJobs toàn bộ job cho ứng viên
func (h *RecruitHandler) HandleListAllJobs(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		jobs, err := h.svc.ListAllJobs(c.Context(), caller)
		return basehdl.HandleResponse(c, jobs, err)
	})
}

// HandleCheckApplication ứng viên đã nộp hồ sơ cho job chưa
func (h *RecruitHandler) HandleCheckApplication(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		jobID, err := basehdl.ParseObjectIDParam(c, "JID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		status, err := h.svc.CheckApplication(c.Context(), caller, jobID)
		return basehdl.HandleResponse(c, status, err)
	})
}

// HandleApply ứng viên nộp CV (multipart, field resume bắt buộc là PDF)
func (h *RecruitHandler) HandleApply(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		jobID, err := basehdl.ParseObjectIDParam(c, "JID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		input, err := readResume(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		logger.WithRequest(c).WithFields(logrus.Fields{
			"job_id":      jobID.Hex(),
			"resume_size": utility.FormatBytes(uint64(len(input.Resume))),
		}).Debug("[RECRUIT] Resume received")
		app, err := h.svc.Apply(c.Context(), caller, jobID, input)
		return basehdl.HandleResponseWithStatus(c, common.StatusCreated, common.MsgCreated, app, err)
	})
}

func readResume(c fiber.Ctx) (*recruitdto.ApplyInput, error) {
	header, err := c.FormFile("resume")
	if err != nil || header.Size == 0 {
		return nil, common.WithDetails(common.ErrInvalidInput, map[string]string{"resume": "required"})
	}
	contentType := header.Header.Get(fiber.HeaderContentType)
	if !isPDF(contentType, header.Filename) {
		return nil, common.NewError(common.ErrCodeValidationInput, "Only PDF resumes are accepted", common.StatusBadRequest, map[string]string{"resume": "pdf"})
	}

	file, err := header.Open()
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Cannot read uploaded resume", common.StatusBadRequest, err.Error())
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Cannot read uploaded resume", common.StatusBadRequest, err.Error())
	}
	if len(data) == 0 {
		return nil, common.WithDetails(common.ErrInvalidInput, map[string]string{"resume": "required"})
	}

	return &recruitdto.ApplyInput{
		Resume:      data,
		ContentType: "application/pdf",
		FileName:    header.Filename,
		CoverLetter: c.FormValue("coverLetter"),
	}, nil
}

func isPDF(contentType, fileName string) bool {
	if strings.HasPrefix(strings.ToLower(contentType), "application/pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(fileName), ".pdf")
}

// HandleListApplications danh sách hồ sơ của job
func (h *RecruitHandler) HandleListApplications(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		jobID, err := basehdl.ParseObjectIDParam(c, "JID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		rows, err := h.svc.ListApplications(c.Context(), caller, jobID)
		return basehdl.HandleResponse(c, rows, err)
	})
}

// HandleListTested hồ sơ đã làm test và có điểm
func (h *RecruitHandler) HandleListTested(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		jobID, err := basehdl.ParseObjectIDParam(c, "JID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		rows, err := h.svc.ListTestedApplications(c.Context(), caller, jobID)
		return basehdl.HandleResponse(c, rows, err)
	})
}

// HandleListSelected hồ sơ đã được mời phỏng vấn
func (h *RecruitHandler) HandleListSelected(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		jobID, err := basehdl.ParseObjectIDParam(c, "JID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		rows, err := h.svc.ListInterviewSelected(c.Context(), caller, jobID)
		return basehdl.HandleResponse(c, rows, err)
	})
}

// HandleExport tải file xlsx danh sách ứng viên
func (h *RecruitHandler) HandleExport(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		jobID, err := basehdl.ParseObjectIDParam(c, "JID")
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		data, fileName, err := h.svc.ExportApplications(c.Context(), caller, jobID)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		c.Attachment(fileName)
		c.Set(fiber.HeaderContentType, xlsxContentType)
		return c.Status(common.StatusOK).Send(data)
	})
}
