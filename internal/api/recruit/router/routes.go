// Package router đăng ký các route thuộc domain recruit: /jd, /test, /report.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/middleware"
	recruithdl "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/handler"
	recruitsvc "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/service"
	apirouter "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/router"
)

// Register trả về RegisterFunc của domain recruit trên Service dùng chung
func Register(svc *recruitsvc.Service) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		if svc == nil {
			return fmt.Errorf("recruit service is not initialized")
		}
		h := recruithdl.NewRecruitHandlerWithService(svc)
		RegisterWithHandler(v1, h, middleware.AuthMiddleware(authmodels.RoleHR), middleware.AuthMiddleware(authmodels.RoleCandidate))
		return nil
	}
}

// RegisterWithHandler đăng ký route recruit với handler và middleware phân quyền có sẵn
func RegisterWithHandler(v1 fiber.Router, h *recruithdl.RecruitHandler, hrOnly, candidateOnly fiber.Handler) {
	hr := []fiber.Handler{hrOnly}
	candidate := []fiber.Handler{candidateOnly}

	// Job posting & hồ sơ
	apirouter.RegisterRouteWithMiddleware(v1, "/jd", "POST", "/add-jd/form", hr, h.HandleCreateJob)
	apirouter.RegisterRouteWithMiddleware(v1, "/jd", "GET", "/getJD", hr, h.HandleListMyJobs)
	apirouter.RegisterRouteWithMiddleware(v1, "/jd", "GET", "/getAllJobs", candidate, h.HandleListAllJobs)
	apirouter.RegisterRouteWithMiddleware(v1, "/jd", "GET", "/check-application/:JID", candidate, h.HandleCheckApplication)
	apirouter.RegisterRouteWithMiddleware(v1, "/jd", "POST", "/apply/:JID", candidate, h.HandleApply)
	apirouter.RegisterRouteWithMiddleware(v1, "/jd", "GET", "/applications/tested/:JID", hr, h.HandleListTested)
	apirouter.RegisterRouteWithMiddleware(v1, "/jd", "GET", "/applications/:JID/export", hr, h.HandleExport)
	apirouter.RegisterRouteWithMiddleware(v1, "/jd", "GET", "/applications/:JID", hr, h.HandleListApplications)
	apirouter.RegisterRouteWithMiddleware(v1, "/jd", "GET", "/selected-candidates/:JID", hr, h.HandleListSelected)
	apirouter.RegisterRouteWithMiddleware(v1, "/jd", "POST", "/select-resume/:JID/:CID", hr, h.HandleSelectResume)
	apirouter.RegisterRouteWithMiddleware(v1, "/jd", "POST", "/reject-resume/:JID/:CID", hr, h.HandleRejectResume)

	// Bài test
	apirouter.RegisterRouteWithMiddleware(v1, "/test", "GET", "/show/:JID", candidate, h.HandleShowTest)
	apirouter.RegisterRouteWithMiddleware(v1, "/test", "POST", "/submit/:JID", candidate, h.HandleSubmitTest)
	apirouter.RegisterRouteWithMiddleware(v1, "/test", "GET", "/invite/:CID/:JID", nil, h.HandleShowInvite)
	apirouter.RegisterRouteWithMiddleware(v1, "/test", "POST", "/invite/:CID/:JID/submit", nil, h.HandleSubmitInvite)
	apirouter.RegisterRouteWithMiddleware(v1, "/test", "GET", "/link/:token", nil, h.HandleShowLink)
	apirouter.RegisterRouteWithMiddleware(v1, "/test", "POST", "/link/:token/submit", nil, h.HandleSubmitLink)

	// Report & phỏng vấn. my-report và emails phải đứng trước /:CID/:JID
	apirouter.RegisterRouteWithMiddleware(v1, "/report", "GET", "/my-report/:JID", candidate, h.HandleMyReport)
	apirouter.RegisterRouteWithMiddleware(v1, "/report", "GET", "/emails/:CID", hr, h.HandleEmailHistory)
	apirouter.RegisterRouteWithMiddleware(v1, "/report", "GET", "/:CID/:JID", hr, h.HandleHRReport)
	apirouter.RegisterRouteWithMiddleware(v1, "/report", "POST", "/select/:JID/:CID", hr, h.HandleSelectInterview)
	apirouter.RegisterRouteWithMiddleware(v1, "/report", "POST", "/reject/:JID/:CID", hr, h.HandleRejectInterview)
}
