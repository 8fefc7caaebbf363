package models

import (
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
)

// Stage giai đoạn tường minh của hồ sơ trong pipeline tuyển dụng
type Stage string

const (
	StageApplied             Stage = "applied"
	StageScreened            Stage = "screened"
	StageTestInvited         Stage = "test_invited"
	StageTestSubmitted       Stage = "test_submitted"
	StageTestEvaluated       Stage = "test_evaluated"
	StageInterviewInvited    Stage = "interview_invited"
	StageRejectedAtScreening Stage = "rejected_at_screening"
	StageRejectedAtInterview Stage = "rejected_at_interview"
)

// Event sự kiện làm hồ sơ chuyển giai đoạn
type Event string

const (
	EventScored            Event = "scored"
	EventTestSelected      Event = "test_selected"
	EventTestRejected      Event = "test_rejected"
	EventTestSubmitted     Event = "test_submitted"
	EventTestEvaluated     Event = "test_evaluated"
	EventInterviewSelected Event = "interview_selected"
	EventInterviewRejected Event = "interview_rejected"

	// EventSelectionReverted chỉ xuất hiện trong stageHistory khi chọn test bị hoàn tác
	EventSelectionReverted Event = "selection_reverted"
)

// IsInterviewStage true với các giai đoạn phỏng vấn. Các sự kiện của vòng test không làm đổi các giai đoạn này.
func (s Stage) IsInterviewStage() bool {
	return s == StageInterviewInvited || s == StageRejectedAtInterview
}

// NextStage bảng chuyển giai đoạn thuần. Sự kiện không hợp lệ trả về lỗi, stage giữ nguyên.
func NextStage(stage Stage, event Event) (Stage, error) {
	switch event {
	case EventScored:
		if stage == StageApplied {
			return StageScreened, nil
		}
		return stage, common.ErrIllegalTransition

	case EventTestSelected:
		switch {
		case stage.IsInterviewStage():
			return stage, nil
		case stage == StageApplied, stage == StageScreened, stage == StageRejectedAtScreening:
			return StageTestInvited, nil
		}
		return stage, common.ErrAlreadySelected

	case EventTestRejected:
		if stage.IsInterviewStage() {
			return stage, nil
		}
		return StageRejectedAtScreening, nil

	case EventTestSubmitted:
		switch {
		case stage.IsInterviewStage():
			return stage, nil
		case stage == StageTestInvited:
			return StageTestSubmitted, nil
		case stage == StageRejectedAtScreening:
			return stage, common.ErrInvitationRevoked
		case stage == StageTestSubmitted, stage == StageTestEvaluated:
			return stage, common.ErrAlreadySubmitted
		}
		return stage, common.ErrIllegalTransition

	case EventTestEvaluated:
		switch {
		case stage.IsInterviewStage(), stage == StageRejectedAtScreening:
			return stage, nil
		case stage == StageTestSubmitted:
			return StageTestEvaluated, nil
		}
		return stage, common.ErrIllegalTransition

	case EventInterviewSelected:
		if stage == StageInterviewInvited {
			return stage, common.ErrAlreadySelected
		}
		return StageInterviewInvited, nil

	case EventInterviewRejected:
		if stage == StageInterviewInvited {
			return StageRejectedAtInterview, nil
		}
		return stage, common.ErrNotSelected
	}
	return stage, common.ErrIllegalTransition
}

// StageForTestState giai đoạn tương ứng khi dùng lại một bài test đã có (chọn lại sau khi bị loại)
func StageForTestState(state TestState) Stage {
	switch state {
	case TestStateAnswersSubmitted:
		return StageTestSubmitted
	case TestStateEvaluated:
		return StageTestEvaluated
	}
	return StageTestInvited
}
