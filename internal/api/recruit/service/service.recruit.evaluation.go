package recruitsvc

import (
	"context"
	"time"

	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"

	"github.com/sirupsen/logrus"
)

// RetryPendingEvaluations chấm lại các bài dừng ở answers_submitted lâu hơn olderThan.
// Report đã lưu mà chưa đóng bài thì chỉ đóng bài, không gọi lại AI. Trả về số bài đã chấm xong.
func (s *Service) RetryPendingEvaluations(ctx context.Context, olderThan time.Duration, limit int) (int, error) {
	cutoff := s.now().Add(-olderThan).UnixMilli()
	pending, err := s.tests.ListPendingEvaluation(ctx, cutoff, int64(limit))
	if err != nil {
		return 0, err
	}

	done := 0
	for i := range pending {
		if ctx.Err() != nil {
			break
		}
		test := &pending[i]
		log := logger.WithContext(ctx).WithFields(logrus.Fields{
			"module":         "recruit",
			"application_id": test.CandidateApplicationID.Hex(),
			"test_id":        test.ID.Hex(),
		})

		app, err := s.applications.FindByID(ctx, test.CandidateApplicationID)
		if err != nil {
			log.WithError(err).Warn("❌ [RECRUIT] Pending test has no application")
			continue
		}

		// Lời mời đã rút sau khi lưu câu trả lời thì không chấm, chọn lại sẽ chấm tiếp
		if !app.IsEligibleForTest || app.Stage == models.StageRejectedAtScreening {
			log.Debug("[RECRUIT] Skip pending test, invitation withdrawn")
			continue
		}

		if report, err := s.reports.FindByApplication(ctx, app.ID); err == nil && report.TestInstanceID == test.ID {
			if err := s.finishEvaluation(ctx, app, test, report.Score, report.ReportText); err != nil {
				log.WithError(err).Warn("❌ [RECRUIT] Cannot finish stored evaluation")
				continue
			}
			done++
			continue
		}

		if _, err := s.evaluate(ctx, app, test); err != nil {
			log.WithError(err).Warn("❌ [RECRUIT] Evaluation retry failed")
			continue
		}
		done++
	}
	return done, nil
}
