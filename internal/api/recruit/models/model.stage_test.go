package models

import (
	"errors"
	"testing"

	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"

	"github.com/stretchr/testify/assert"
)

func TestNextStage(t *testing.T) {
	cases := []struct {
		name  string
		from  Stage
		event Event
		want  Stage
		err   error
	}{
		{"scored from applied", StageApplied, EventScored, StageScreened, nil},
		{"scored twice", StageScreened, EventScored, StageScreened, common.ErrIllegalTransition},
		{"select screened", StageScreened, EventTestSelected, StageTestInvited, nil},
		{"select unscored", StageApplied, EventTestSelected, StageTestInvited, nil},
		{"reselect after reject", StageRejectedAtScreening, EventTestSelected, StageTestInvited, nil},
		{"select twice", StageTestInvited, EventTestSelected, StageTestInvited, common.ErrAlreadySelected},
		{"select keeps interview stage", StageInterviewInvited, EventTestSelected, StageInterviewInvited, nil},
		{"reject invited", StageTestInvited, EventTestRejected, StageRejectedAtScreening, nil},
		{"reject evaluated", StageTestEvaluated, EventTestRejected, StageRejectedAtScreening, nil},
		{"reject idempotent", StageRejectedAtScreening, EventTestRejected, StageRejectedAtScreening, nil},
		{"reject keeps interview stage", StageRejectedAtInterview, EventTestRejected, StageRejectedAtInterview, nil},
		{"submit invited", StageTestInvited, EventTestSubmitted, StageTestSubmitted, nil},
		{"submit after withdrawal", StageRejectedAtScreening, EventTestSubmitted, StageRejectedAtScreening, common.ErrInvitationRevoked},
		{"submit twice", StageTestSubmitted, EventTestSubmitted, StageTestSubmitted, common.ErrAlreadySubmitted},
		{"submit without invitation", StageScreened, EventTestSubmitted, StageScreened, common.ErrIllegalTransition},
		{"submit while interview invited", StageInterviewInvited, EventTestSubmitted, StageInterviewInvited, nil},
		{"evaluate submitted", StageTestSubmitted, EventTestEvaluated, StageTestEvaluated, nil},
		{"evaluate after late reject", StageRejectedAtScreening, EventTestEvaluated, StageRejectedAtScreening, nil},
		{"evaluate without submission", StageTestInvited, EventTestEvaluated, StageTestInvited, common.ErrIllegalTransition},
		{"interview from evaluated", StageTestEvaluated, EventInterviewSelected, StageInterviewInvited, nil},
		{"interview without test", StageScreened, EventInterviewSelected, StageInterviewInvited, nil},
		{"interview twice", StageInterviewInvited, EventInterviewSelected, StageInterviewInvited, common.ErrAlreadySelected},
		{"interview reject", StageInterviewInvited, EventInterviewRejected, StageRejectedAtInterview, nil},
		{"interview reject not selected", StageTestEvaluated, EventInterviewRejected, StageTestEvaluated, common.ErrNotSelected},
		{"unknown event", StageApplied, Event("other"), StageApplied, common.ErrIllegalTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextStage(tc.from, tc.event)
			assert.Equal(t, tc.want, got)
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tc.err), "got %v", err)
			}
		})
	}
}

func TestStageForTestState(t *testing.T) {
	assert.Equal(t, StageTestInvited, StageForTestState(TestStateCreated))
	assert.Equal(t, StageTestSubmitted, StageForTestState(TestStateAnswersSubmitted))
	assert.Equal(t, StageTestEvaluated, StageForTestState(TestStateEvaluated))
}

func TestQuestionSetWithoutAnswers(t *testing.T) {
	q := QuestionSet{
		MCQs:       []MCQ{{Question: "2+2?", Options: []string{"3", "4"}, Answer: "4"}},
		Pseudocode: []string{"reverse a list"},
		Theory:     []string{"what is a mutex"},
	}
	stripped := q.WithoutAnswers()
	assert.Empty(t, stripped.MCQs[0].Answer)
	assert.Equal(t, []string{"3", "4"}, stripped.MCQs[0].Options)
	assert.Equal(t, "4", q.MCQs[0].Answer)

	stripped.MCQs[0].Options[0] = "changed"
	assert.Equal(t, "3", q.MCQs[0].Options[0])
}

func TestAnswersIsEmpty(t *testing.T) {
	assert.True(t, Answers{}.IsEmpty())
	assert.True(t, Answers{MCQs: []string{}, Pseudocode: []string{}, Theory: []string{}}.IsEmpty())
	assert.False(t, Answers{Theory: []string{"x"}}.IsEmpty())
}
