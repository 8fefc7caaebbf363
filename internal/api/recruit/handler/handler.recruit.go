// Package recruithdl xử lý HTTP cho domain recruit: job, hồ sơ, bài test, report, phỏng vấn.
package recruithdl

import (
	"fmt"

	authsvc "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/service"
	recruitsvc "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/service"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/aiclient"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/global"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/metrics"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/notification"
)

// RecruitHandler nhận request, gọi recruitsvc.Service với CallerContext lấy từ middleware
type RecruitHandler struct {
	svc *recruitsvc.Service
}

// NewRecruitService tạo recruitsvc.Service từ các collection đã đăng ký và cấu hình server.
// Handler và worker chấm lại dùng chung một Service.
func NewRecruitService(ai aiclient.Client, notifier *notification.Notifier, m *metrics.Metrics) (*recruitsvc.Service, error) {
	cfg := global.MongoDB_ServerConfig
	if cfg == nil {
		return nil, fmt.Errorf("server config is not loaded")
	}

	applications, err := recruitsvc.NewApplicationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create application service: %v", err)
	}
	jobs, err := recruitsvc.NewJobService()
	if err != nil {
		return nil, fmt.Errorf("failed to create job service: %v", err)
	}
	tests, err := recruitsvc.NewTestService()
	if err != nil {
		return nil, fmt.Errorf("failed to create test service: %v", err)
	}
	reports, err := recruitsvc.NewReportService()
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %v", err)
	}
	identities, err := authsvc.NewIdentityService()
	if err != nil {
		return nil, fmt.Errorf("failed to create identity service: %v", err)
	}
	profiles, err := authsvc.NewHRProfileService()
	if err != nil {
		return nil, fmt.Errorf("failed to create hr profile service: %v", err)
	}

	return recruitsvc.NewService(recruitsvc.Dependencies{
		Applications: applications,
		Jobs:         jobs,
		Tests:        tests,
		Reports:      reports,
		Identities:   identities,
		Profiles:     profiles,
		AI:           ai,
		Notifier:     notifier,
		Metrics:      m,
	}, recruitsvc.Options{
		TestWindow:    cfg.TestWindow(),
		BareLinks:     cfg.TestLinkBareIDs,
		FrontendURL:   cfg.FrontendURL,
		ResumePreview: cfg.ResumeTextPreview,
		LinkSecret:    cfg.LinkSecret(),
	}), nil
}

// NewRecruitHandlerWithService tạo RecruitHandler với service có sẵn
func NewRecruitHandlerWithService(svc *recruitsvc.Service) *RecruitHandler {
	return &RecruitHandler{svc: svc}
}
