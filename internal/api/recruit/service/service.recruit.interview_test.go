package recruitsvc

import (
	"testing"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestInterviewSelectAndReject(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate := f.identity(authmodels.RoleCandidate)
	app := f.apply(candidate, job, 0.6)

	selected, err := f.svc.SelectForInterview(f.ctx, hr, job.ID, app.ID)
	require.NoError(t, err)
	assert.True(t, selected.IsEligibleForInterview)
	assert.Equal(t, models.StageInterviewInvited, selected.Stage)
	assert.Equal(t, []primitive.ObjectID{app.ID}, f.profileOf(hr).InterviewSelectedCandidateIDs)

	_, err = f.svc.SelectForInterview(f.ctx, hr, job.ID, app.ID)
	assert.ErrorIs(t, err, common.ErrAlreadySelected)

	rejected, err := f.svc.RejectFromInterview(f.ctx, hr, job.ID, app.ID)
	require.NoError(t, err)
	assert.False(t, rejected.IsEligibleForInterview)
	assert.Equal(t, models.StageRejectedAtInterview, rejected.Stage)

	_, err = f.svc.RejectFromInterview(f.ctx, hr, job.ID, app.ID)
	assert.ErrorIs(t, err, common.ErrNotSelected)
}

func TestInterviewRejectWithoutSelection(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate := f.identity(authmodels.RoleCandidate)
	app := f.apply(candidate, job, 0.6)

	_, err := f.svc.RejectFromInterview(f.ctx, hr, job.ID, app.ID)
	assert.ErrorIs(t, err, common.ErrNotSelected)
	assert.Equal(t, models.StageScreened, f.apps.get(app.ID).Stage)
}

func TestInterviewStageIsStickyForTestEvents(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate, sel := f.selected(hr, job)

	_, err := f.svc.SelectForInterview(f.ctx, hr, job.ID, sel.Application.ID)
	require.NoError(t, err)

	f.expectEvaluate(70)
	_, err = f.svc.SubmitTest(f.ctx, candidate, job.ID, sampleAnswers())
	require.NoError(t, err)

	app := f.apps.get(sel.Application.ID)
	assert.Equal(t, models.StageInterviewInvited, app.Stage)
	require.NotNil(t, app.TestScore)
	assert.Equal(t, 70.0, *app.TestScore)
}

func TestInterviewRequiresOwner(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	otherHR := f.identity(authmodels.RoleHR)
	candidate := f.identity(authmodels.RoleCandidate)
	app := f.apply(candidate, job, 0.6)

	_, err := f.svc.SelectForInterview(f.ctx, otherHR, job.ID, app.ID)
	assert.ErrorIs(t, err, common.ErrNotJobOwner)
	_, err = f.svc.RejectFromInterview(f.ctx, candidate, job.ID, app.ID)
	assert.ErrorIs(t, err, common.ErrForbiddenRole)
	assert.False(t, f.apps.get(app.ID).IsEligibleForInterview)
}

func TestInterviewSelectByCandidateIsForbidden(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate := f.identity(authmodels.RoleCandidate)
	app := f.apply(candidate, job, 0.6)

	_, err := f.svc.SelectForInterview(f.ctx, candidate, job.ID, app.ID)
	assert.ErrorIs(t, err, common.ErrForbiddenRole)

	stored := f.apps.get(app.ID)
	assert.False(t, stored.IsEligibleForInterview)
	assert.Equal(t, models.StageScreened, stored.Stage)
	assert.Empty(t, f.profileOf(hr).InterviewSelectedCandidateIDs)
}
