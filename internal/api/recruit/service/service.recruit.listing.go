package recruitsvc

import (
	"context"
	"fmt"
	"sort"
	"time"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	recruitdto "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/dto"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/utility"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// ListApplications tất cả hồ sơ của job
func (s *Service) ListApplications(ctx context.Context, caller authmodels.CallerContext, jobID primitive.ObjectID) ([]recruitdto.ApplicantRow, error) {
	return s.listApplicants(ctx, caller, jobID, ApplicationFilter{})
}

// ListTestedApplications hồ sơ đã được chọn test và đã có điểm test
func (s *Service) ListTestedApplications(ctx context.Context, caller authmodels.CallerContext, jobID primitive.ObjectID) ([]recruitdto.ApplicantRow, error) {
	return s.listApplicants(ctx, caller, jobID, ApplicationFilter{EligibleForTest: boolPtr(true), HasTestScore: true})
}

// ListInterviewSelected hồ sơ đã được mời phỏng vấn
func (s *Service) ListInterviewSelected(ctx context.Context, caller authmodels.CallerContext, jobID primitive.ObjectID) ([]recruitdto.ApplicantRow, error) {
	return s.listApplicants(ctx, caller, jobID, ApplicationFilter{EligibleForInterview: boolPtr(true)})
}

// listApplicants đọc hồ sơ rồi lấy song song tài khoản ứng viên và bài test để ghép thành dòng
func (s *Service) listApplicants(ctx context.Context, caller authmodels.CallerContext, jobID primitive.ObjectID, filter ApplicationFilter) ([]recruitdto.ApplicantRow, error) {
	if _, _, err := s.ownedJob(ctx, caller, jobID); err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByJob(ctx, jobID, filter)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return []recruitdto.ApplicantRow{}, nil
	}

	identityIDs := make([]primitive.ObjectID, 0, len(apps))
	applicationIDs := make([]primitive.ObjectID, 0, len(apps))
	for _, app := range apps {
		identityIDs = append(identityIDs, app.IdentityID)
		applicationIDs = append(applicationIDs, app.ID)
	}

	identities := map[primitive.ObjectID]authmodels.Identity{}
	tests := map[primitive.ObjectID]models.TestState{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.identities.FindManyByIDs(gctx, identityIDs)
		if err != nil {
			return err
		}
		for _, identity := range found {
			identities[identity.ID] = identity
		}
		return nil
	})
	g.Go(func() error {
		found, err := s.tests.FindManyByApplications(gctx, applicationIDs)
		if err != nil {
			return err
		}
		for _, test := range found {
			tests[test.CandidateApplicationID] = test.State
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]recruitdto.ApplicantRow, 0, len(apps))
	for _, app := range apps {
		identity := identities[app.IdentityID]
		rows = append(rows, recruitdto.ApplicantRow{
			ApplicationID:          app.ID.Hex(),
			IdentityID:             app.IdentityID.Hex(),
			CandidateName:          identity.Name,
			Email:                  identity.Email,
			Phone:                  identity.Phone,
			Resume:                 utility.DataURI(app.Resume.ContentType, app.Resume.Data),
			ResumeFileName:         app.Resume.FileName,
			ResumeTextPreview:      utility.Truncate(app.ResumeText, s.opts.ResumePreview),
			CoverLetter:            app.CoverLetter,
			ResumeMatchScore:       app.ResumeMatchScore,
			IsEligibleForTest:      app.IsEligibleForTest,
			IsEligibleForInterview: app.IsEligibleForInterview,
			TestScore:              app.TestScore,
			TestState:              string(tests[app.ID]),
			Stage:                  string(app.Stage),
			AppliedAt:              app.CreatedAt,
		})
	}
	return rows, nil
}

var exportHeader = []interface{}{
	"Rank", "Candidate", "Email", "Phone", "Resume Match Score", "Stage",
	"Eligible For Test", "Test Score", "Eligible For Interview", "Applied At",
}

// ExportApplications file xlsx danh sách ứng viên, xếp theo điểm CV giảm dần
func (s *Service) ExportApplications(ctx context.Context, caller authmodels.CallerContext, jobID primitive.ObjectID) ([]byte, string, error) {
	rows, err := s.ListApplications(ctx, caller, jobID)
	if err != nil {
		return nil, "", err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return scoreOf(rows[i].ResumeMatchScore) > scoreOf(rows[j].ResumeMatchScore)
	})

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Applicants"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", exportError(err)
	}
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, "", exportError(err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, "", exportError(err)
	}
	if err := f.SetCellStyle(sheet, "A1", "J1", style); err != nil {
		return nil, "", exportError(err)
	}
	if err := f.SetColWidth(sheet, "A", "J", 20); err != nil {
		return nil, "", exportError(err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", exportError(err)
		}
		values := []interface{}{
			i + 1,
			row.CandidateName,
			row.Email,
			row.Phone,
			optionalScore(row.ResumeMatchScore),
			row.Stage,
			row.IsEligibleForTest,
			optionalScore(row.TestScore),
			row.IsEligibleForInterview,
			time.UnixMilli(row.AppliedAt).UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, "", exportError(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", exportError(err)
	}
	return buf.Bytes(), fmt.Sprintf("applicants-%s.xlsx", jobID.Hex()), nil
}

func scoreOf(score *float64) float64 {
	if score == nil {
		return -1
	}
	return *score
}

func optionalScore(score *float64) interface{} {
	if score == nil {
		return ""
	}
	return *score
}

func exportError(err error) error {
	return common.NewError(common.ErrCodeInternalServer, "Cannot build applicants export", common.StatusInternalServerError, err.Error())
}
