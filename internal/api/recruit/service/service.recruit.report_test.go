package recruitsvc

import (
	"encoding/base64"
	"testing"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportsAfterEvaluation(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	candidate, sel := f.selected(hr, job)

	_, err := f.svc.MyReport(f.ctx, candidate, job.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	f.expectEvaluate(88)
	_, err = f.svc.SubmitTest(f.ctx, candidate, job.ID, sampleAnswers())
	require.NoError(t, err)

	mine, err := f.svc.MyReport(f.ctx, candidate, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solid fundamentals", mine.ReportText)
	assert.Equal(t, 88.0, mine.TestScore)
	pdf, err := base64.StdEncoding.DecodeString(mine.ReportPDFBase64)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-report"), pdf)

	forHR, err := f.svc.HRReport(f.ctx, hr, job.ID, sel.Application.ID)
	require.NoError(t, err)
	assert.Equal(t, mine, forHR)

	otherHR := f.identity(authmodels.RoleHR)
	_, err = f.svc.HRReport(f.ctx, otherHR, job.ID, sel.Application.ID)
	assert.ErrorIs(t, err, common.ErrNotJobOwner)
}

func TestEmailHistoryForOwner(t *testing.T) {
	f := newFixture(t)
	hr := f.identity(authmodels.RoleHR)
	job := f.job(hr)
	_, sel := f.selected(hr, job)
	_, err := f.svc.RejectForTest(f.ctx, hr, job.ID, sel.Application.ID)
	require.NoError(t, err)

	history, err := f.svc.EmailHistory(f.ctx, hr, sel.Application.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, notification.EmailTestSchedule, history[0].Type)
	assert.Equal(t, notification.EmailHRDecision, history[1].Type)

	otherHR := f.identity(authmodels.RoleHR)
	_, err = f.svc.EmailHistory(f.ctx, otherHR, sel.Application.ID)
	assert.ErrorIs(t, err, common.ErrNotJobOwner)
}
