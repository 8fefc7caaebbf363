package recruitsvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	authsvc "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/service"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/aiclient"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/metrics"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/notification"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dependencies các store và client mà Service cần
type Dependencies struct {
	Applications ApplicationStore
	Jobs         JobStore
	Tests        TestStore
	Reports      ReportStore
	Identities   authsvc.IdentityStore
	Profiles     authsvc.HRProfileStore
	Guard        *authsvc.Guard // nil thì tạo từ Identities, Profiles, Jobs
	AI           aiclient.Client
	Notifier     *notification.Notifier
	Metrics      *metrics.Metrics
}

// Options tham số vận hành
type Options struct {
	TestWindow    time.Duration
	BareLinks     bool
	FrontendURL   string
	ResumePreview int
	LinkSecret    string
}

// Service điều phối pipeline tuyển dụng. Mỗi thao tác chạy guard trước khi ghi hay gọi AI.
type Service struct {
	applications ApplicationStore
	jobs         JobStore
	tests        TestStore
	reports      ReportStore
	identities   authsvc.IdentityStore
	profiles     authsvc.HRProfileStore
	guard        *authsvc.Guard
	ai           aiclient.Client
	notifier     *notification.Notifier
	metrics      *metrics.Metrics
	invitations  *InvitationSigner
	opts         Options
	now          func() time.Time
}

// NewService tạo Service
func NewService(deps Dependencies, opts Options) *Service {
	if opts.TestWindow <= 0 {
		opts.TestWindow = 72 * time.Hour
	}
	if opts.ResumePreview <= 0 {
		opts.ResumePreview = 300
	}
	opts.FrontendURL = strings.TrimRight(opts.FrontendURL, "/")

	guard := deps.Guard
	if guard == nil {
		guard = authsvc.NewGuard(deps.Identities, deps.Profiles, deps.Jobs)
	}
	s := &Service{
		applications: deps.Applications,
		jobs:         deps.Jobs,
		tests:        deps.Tests,
		reports:      deps.Reports,
		identities:   deps.Identities,
		profiles:     deps.Profiles,
		guard:        guard,
		ai:           deps.AI,
		notifier:     deps.Notifier,
		metrics:      deps.Metrics,
		opts:         opts,
		now:          time.Now,
	}
	s.invitations = NewInvitationSigner(opts.LinkSecret, func() time.Time { return s.now() })
	return s
}

// Invitations trả về bộ ký link mời
func (s *Service) Invitations() *InvitationSigner {
	return s.invitations
}

// ownedApplication guard của mọi thao tác HR trên một hồ sơ: role hr, sở hữu job, hồ sơ thuộc job
func (s *Service) ownedApplication(ctx context.Context, caller authmodels.CallerContext, jobID, applicationID primitive.ObjectID) (*authmodels.HRProfile, *models.CandidateApplication, error) {
	profile, err := s.guard.RequireHR(ctx, caller)
	if err != nil {
		return nil, nil, err
	}
	if err := s.guard.RequireOwnership(ctx, profile.ID, jobID); err != nil {
		return nil, nil, err
	}
	app, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}
	if app.JobPostingID != jobID {
		return nil, nil, common.ErrNotFound
	}
	return profile, app, nil
}

// ownedJob guard của thao tác HR trên một job
func (s *Service) ownedJob(ctx context.Context, caller authmodels.CallerContext, jobID primitive.ObjectID) (*authmodels.HRProfile, *models.JobPosting, error) {
	profile, err := s.guard.RequireHR(ctx, caller)
	if err != nil {
		return nil, nil, err
	}
	if err := s.guard.RequireOwnership(ctx, profile.ID, jobID); err != nil {
		return nil, nil, err
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	return profile, job, nil
}

// recipient tên và email của ứng viên, rỗng nếu không đọc được (thông báo là best-effort)
func (s *Service) recipient(ctx context.Context, identityID primitive.ObjectID) (name, email string) {
	identity, err := s.identities.FindByID(ctx, identityID)
	if err != nil {
		return "", ""
	}
	return identity.Name, identity.Email
}

func (s *Service) notify(ctx context.Context, app *models.CandidateApplication, kind notification.EmailType, subject, body string) {
	if s.notifier == nil {
		return
	}
	name, email := s.recipient(ctx, app.IdentityID)
	if name != "" {
		body = fmt.Sprintf("<p>Dear %s,</p>%s", name, body)
	}
	s.notifier.Notify(ctx, notification.Message{
		ApplicationID: app.ID,
		Recipient:     email,
		Type:          kind,
		Subject:       subject,
		Body:          body,
	})
}

func boolPtr(v bool) *bool { return &v }

func stringPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }
