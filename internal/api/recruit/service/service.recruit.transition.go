package recruitsvc

import (
	"context"
	"errors"

	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/metrics"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Số lần đọc lại khi stage đổi giữa lúc đọc và lúc ghi
const maxTransitionAttempts = 3

// transitionSpec mô tả một lần chuyển giai đoạn có điều kiện
type transitionSpec struct {
	event    models.Event
	cond     ApplicationCondition // cờ cần thỏa, Stages được điền theo bản đọc
	change   ApplicationChange
	conflict error // trả về khi cond không thỏa

	// target sửa stage đích (vd. chọn lại dùng bài test cũ)
	target func(current, next models.Stage) models.Stage
	// lenient: sự kiện không hợp lệ ở stage hiện tại thì giữ stage, vẫn ghi change
	lenient bool
}

// transition đọc hồ sơ, tính stage kế tiếp rồi ghi có điều kiện trên stage vừa đọc.
// Trả về hồ sơ sau khi ghi và stage trước khi ghi.
func (s *Service) transition(ctx context.Context, applicationID primitive.ObjectID, spec transitionSpec) (*models.CandidateApplication, models.Stage, error) {
	event := string(spec.event)
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		current, err := s.applications.FindByID(ctx, applicationID)
		if err != nil {
			return nil, "", err
		}
		if !spec.cond.Holds(current) {
			s.metrics.Transition(event, metrics.OutcomeConflict)
			return nil, current.Stage, spec.conflict
		}

		next, err := models.NextStage(current.Stage, spec.event)
		if err != nil {
			if !spec.lenient {
				s.metrics.Transition(event, metrics.OutcomeConflict)
				return nil, current.Stage, err
			}
			next = current.Stage
		}
		if spec.target != nil {
			next = spec.target(current.Stage, next)
		}

		change := spec.change
		if next != current.Stage {
			stage := next
			change.Stage = &stage
			change.History = &models.StageRecord{
				From:  current.Stage,
				To:    next,
				Event: spec.event,
				At:    s.now().UnixMilli(),
			}
		}
		cond := spec.cond
		cond.Stages = []models.Stage{current.Stage}

		updated, err := s.applications.CompareAndSwap(ctx, applicationID, cond, change)
		if errors.Is(err, ErrConditionFailed) {
			continue
		}
		if err != nil {
			s.metrics.Transition(event, metrics.OutcomeError)
			return nil, current.Stage, err
		}

		s.metrics.Transition(event, metrics.OutcomeOK)
		logger.WithContext(ctx).WithFields(logrus.Fields{
			"module":         "recruit",
			"application_id": applicationID.Hex(),
			"job_id":         updated.JobPostingID.Hex(),
			"event":          event,
			"from_stage":     string(current.Stage),
			"to_stage":       string(updated.Stage),
		}).Info("✅ [PIPELINE] Stage transition")
		return updated, current.Stage, nil
	}

	s.metrics.Transition(event, metrics.OutcomeConflict)
	if spec.conflict != nil {
		return nil, "", spec.conflict
	}
	return nil, "", common.ErrIllegalTransition
}
