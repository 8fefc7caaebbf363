package recruitsvc

import (
	"strings"
	"sync"
	"testing"
	"time"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/metrics"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/notification"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

func TestSelectForTestCreatesTestAndInvites(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate := f.identity(authmodels.RoleCandidate)
	app := f.apply(candidate, job, 0.9)

	f.ai.EXPECT().GenerateTest(gomock.Any(), "Seven years of Go and MongoDB", job.Description()).Return(sampleQuestions(), nil)
	out, err := f.svc.SelectForTest(f.ctx, hr, job.ID, app.ID)
	require.NoError(t, err)

	assert.True(t, out.Application.IsEligibleForTest)
	assert.Equal(t, models.StageTestInvited, out.Application.Stage)
	assert.Equal(t, f.now.Add(time.Hour).UnixMilli(), out.Test.AccessDeadline)
	assert.True(t, strings.HasPrefix(out.InvitationLink, "http://front.test/test/link/"))
	assert.Equal(t, "http://front.test/test/invite/"+app.ID.Hex()+"/"+job.ID.Hex(), out.BareLink)

	token := strings.TrimPrefix(out.InvitationLink, "http://front.test/test/link/")
	appID, jobID, err := f.svc.Invitations().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, app.ID, appID)
	assert.Equal(t, job.ID, jobID)

	test, err := f.tests.FindByApplication(f.ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TestStateCreated, test.State)
	assert.Equal(t, out.Test.ID, test.ID.Hex())
	assert.Equal(t, "nil", test.Questions.MCQs[0].Answer)

	assert.Equal(t, []primitive.ObjectID{app.ID}, f.profileOf(hr).TestSelectedCandidateIDs)
	invites := f.audits.ofType(notification.EmailTestSchedule)
	require.Len(t, invites, 1)
	assert.Contains(t, invites[0].Message, out.InvitationLink)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TransitionCounter(string(models.EventTestSelected), metrics.OutcomeOK)))
}

func TestSelectForTestTwiceIsConflict(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	_, first := f.selected(hr, job)

	_, err := f.svc.SelectForTest(f.ctx, hr, job.ID, first.Application.ID)
	assert.ErrorIs(t, err, common.ErrAlreadySelected)
	assert.Equal(t, 1, f.tests.count())
	assert.Len(t, f.audits.ofType(notification.EmailTestSchedule), 1)
}

func TestSelectForTestConcurrentSingleWinner(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate := f.identity(authmodels.RoleCandidate)
	app := f.apply(candidate, job, 0.6)
	f.expectGenerate(1)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.SelectForTest(f.ctx, hr, job.ID, app.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else if assert.ErrorIs(t, err, common.ErrAlreadySelected) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, 1, f.tests.count())
}

func TestSelectForTestGeneratorFailureReverts(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate := f.identity(authmodels.RoleCandidate)
	app := f.apply(candidate, job, 0.6)

	f.ai.EXPECT().GenerateTest(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, common.ErrUpstreamDown)
	_, err := f.svc.SelectForTest(f.ctx, hr, job.ID, app.ID)
	require.ErrorIs(t, err, common.ErrUpstreamDown)

	stored := f.apps.get(app.ID)
	assert.False(t, stored.IsEligibleForTest)
	assert.Equal(t, models.StageScreened, stored.Stage)
	last := stored.StageHistory[len(stored.StageHistory)-1]
	assert.Equal(t, models.EventSelectionReverted, last.Event)
	assert.Equal(t, 0, f.tests.count())
	assert.Empty(t, f.profileOf(hr).TestSelectedCandidateIDs)

	// lần chọn sau thành công bình thường
	f.expectGenerate(1)
	out, err := f.svc.SelectForTest(f.ctx, hr, job.ID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageTestInvited, out.Application.Stage)
}

func TestSelectForTestGuards(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	otherHR := f.identity(authmodels.RoleHR)
	otherJob := f.job(otherHR)
	candidate := f.identity(authmodels.RoleCandidate)
	app := f.apply(candidate, job, 0.6)

	_, err := f.svc.SelectForTest(f.ctx, otherHR, job.ID, app.ID)
	assert.ErrorIs(t, err, common.ErrNotJobOwner)

	_, err = f.svc.SelectForTest(f.ctx, otherHR, otherJob.ID, app.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = f.svc.SelectForTest(f.ctx, candidate, job.ID, app.ID)
	assert.ErrorIs(t, err, common.ErrForbiddenRole)

	_, err = f.svc.SelectForTest(f.ctx, hr, primitive.NewObjectID(), app.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	stored := f.apps.get(app.ID)
	assert.False(t, stored.IsEligibleForTest)
	assert.Equal(t, models.StageScreened, stored.Stage)
	assert.Equal(t, 0, f.tests.count())
}

func TestRejectForTestIsIdempotent(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	_, sel := f.selected(hr, job)
	appID := sel.Application.ID

	first, err := f.svc.RejectForTest(f.ctx, hr, job.ID, appID)
	require.NoError(t, err)
	assert.False(t, first.IsEligibleForTest)
	assert.Equal(t, models.StageRejectedAtScreening, first.Stage)
	assert.Empty(t, f.profileOf(hr).TestSelectedCandidateIDs)

	second, err := f.svc.RejectForTest(f.ctx, hr, job.ID, appID)
	require.NoError(t, err)
	assert.Equal(t, first.Stage, second.Stage)
	assert.Equal(t, first.IsEligibleForTest, second.IsEligibleForTest)
	assert.Len(t, second.StageHistory, len(first.StageHistory))
	assert.Len(t, f.audits.ofType(notification.EmailHRDecision), 1)
}

func TestReselectionReusesExistingTest(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	_, sel := f.selected(hr, job)
	appID := sel.Application.ID

	_, err := f.svc.RejectForTest(f.ctx, hr, job.ID, appID)
	require.NoError(t, err)

	f.now = f.now.Add(30 * time.Minute)
	// không kỳ vọng GenerateTest: bài cũ được dùng lại
	again, err := f.svc.SelectForTest(f.ctx, hr, job.ID, appID)
	require.NoError(t, err)
	assert.Equal(t, sel.Test.ID, again.Test.ID)
	assert.Equal(t, models.StageTestInvited, again.Application.Stage)
	assert.Equal(t, f.now.Add(time.Hour).UnixMilli(), again.Test.AccessDeadline)
	assert.Equal(t, 1, f.tests.count())
}

func TestReselectionAfterEvaluationRestoresEvaluatedStage(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate, sel := f.selected(hr, job)
	f.expectEvaluate(77)
	_, err := f.svc.SubmitTest(f.ctx, candidate, job.ID, sampleAnswers())
	require.NoError(t, err)

	_, err = f.svc.RejectForTest(f.ctx, hr, job.ID, sel.Application.ID)
	require.NoError(t, err)

	again, err := f.svc.SelectForTest(f.ctx, hr, job.ID, sel.Application.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageTestEvaluated, again.Application.Stage)
	assert.True(t, again.Application.IsEligibleForTest)
}

func TestRejectForTestKeepsInterviewStage(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate := f.identity(authmodels.RoleCandidate)
	app := f.apply(candidate, job, 0.6)

	_, err := f.svc.SelectForInterview(f.ctx, hr, job.ID, app.ID)
	require.NoError(t, err)

	rejected, err := f.svc.RejectForTest(f.ctx, hr, job.ID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageInterviewInvited, rejected.Stage)
	assert.False(t, rejected.IsEligibleForTest)
	assert.True(t, rejected.IsEligibleForInterview)
}
