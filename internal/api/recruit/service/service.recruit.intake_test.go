package recruitsvc

import (
	"testing"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	recruitdto "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/dto"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

func TestApplyScoresResume(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate := f.identity(authmodels.RoleCandidate)

	app := f.apply(candidate, job, 0.82)

	assert.Equal(t, models.StageScreened, app.Stage)
	require.NotNil(t, app.ResumeMatchScore)
	assert.InDelta(t, 0.82, *app.ResumeMatchScore, 1e-9)
	assert.Equal(t, "Seven years of Go and MongoDB", app.ResumeText)
	assert.False(t, app.IsEligibleForTest)
	require.Len(t, app.StageHistory, 1)
	assert.Equal(t, models.StageRecord{From: models.StageApplied, To: models.StageScreened, Event: models.EventScored, At: f.now.UnixMilli()}, app.StageHistory[0])

	stored, err := f.jobs.FindByID(f.ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{app.ID}, stored.AppliedCandidateIDs)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TransitionCounter(string(models.EventScored), metrics.OutcomeOK)))
}

func TestApplyDuplicateIsRejectedWithoutScoring(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate := f.identity(authmodels.RoleCandidate)
	f.apply(candidate, job, 0.5)

	// ScoreResume chỉ được kỳ vọng một lần, lần gọi thứ hai sẽ làm gomock fail
	_, err := f.svc.Apply(f.ctx, candidate, job.ID, &recruitdto.ApplyInput{Resume: []byte("%PDF-again")})
	assert.ErrorIs(t, err, common.ErrAlreadyApplied)
	assert.Equal(t, 1, f.apps.count())
}

func TestApplyScorerFailureKeepsApplication(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate := f.identity(authmodels.RoleCandidate)

	f.ai.EXPECT().ScoreResume(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, common.ErrUpstreamTimeout)
	_, err := f.svc.Apply(f.ctx, candidate, job.ID, &recruitdto.ApplyInput{Resume: []byte("%PDF-resume")})
	require.ErrorIs(t, err, common.ErrUpstreamTimeout)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	details, ok := appErr.Details.(map[string]interface{})
	require.True(t, ok)
	rawID, ok := details["applicationId"].(string)
	require.True(t, ok)

	id, err := primitive.ObjectIDFromHex(rawID)
	require.NoError(t, err)
	stored := f.apps.get(id)
	assert.Equal(t, models.StageApplied, stored.Stage)
	assert.Nil(t, stored.ResumeMatchScore)
}

func TestApplyRequiresCandidateRole(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)

	_, err := f.svc.Apply(f.ctx, hr, job.ID, &recruitdto.ApplyInput{Resume: []byte("%PDF-resume")})
	assert.ErrorIs(t, err, common.ErrForbiddenRole)

	ghost := authmodels.CallerContext{IdentityID: primitive.NewObjectID(), Role: authmodels.RoleCandidate}
	_, err = f.svc.Apply(f.ctx, ghost, job.ID, &recruitdto.ApplyInput{Resume: []byte("%PDF-resume")})
	assert.ErrorIs(t, err, common.ErrForbiddenRole)
	assert.Equal(t, 0, f.apps.count())
}

func TestApplyUnknownJob(t *testing.T) {
	f := newFixture(t)
	candidate := f.identity(authmodels.RoleCandidate)

	_, err := f.svc.Apply(f.ctx, candidate, primitive.NewObjectID(), &recruitdto.ApplyInput{Resume: []byte("%PDF-resume")})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestApplyEmptyResume(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate := f.identity(authmodels.RoleCandidate)

	_, err := f.svc.Apply(f.ctx, candidate, job.ID, &recruitdto.ApplyInput{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestCheckApplication(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate := f.identity(authmodels.RoleCandidate)

	status, err := f.svc.CheckApplication(f.ctx, candidate, job.ID)
	require.NoError(t, err)
	assert.False(t, status.Applied)

	app := f.apply(candidate, job, 0.4)
	status, err = f.svc.CheckApplication(f.ctx, candidate, job.ID)
	require.NoError(t, err)
	assert.True(t, status.Applied)
	assert.Equal(t, app.ID.Hex(), status.ApplicationID)
	assert.Equal(t, string(models.StageScreened), status.Stage)
}
