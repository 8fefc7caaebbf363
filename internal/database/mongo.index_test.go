package database

import (
	"testing"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func specByName(t *testing.T, specs []IndexSpec, name string) IndexSpec {
	t.Helper()
	for _, spec := range specs {
		if spec.Name == name {
			return spec
		}
	}
	require.Failf(t, "index not found", "no index %q in %v", name, specs)
	return IndexSpec{}
}

func TestApplicationIndexes(t *testing.T) {
	specs, err := IndexSpecsFromModel(models.CandidateApplication{})
	require.NoError(t, err)

	// một hồ sơ cho mỗi cặp (ứng viên, job)
	pair := specByName(t, specs, "identity_job_unique")
	assert.True(t, pair.Unique)
	assert.Equal(t, bson.D{{Key: "identityId", Value: 1}, {Key: "jobPostingId", Value: 1}}, pair.Keys)

	byJob := specByName(t, specs, "jobPostingId_single")
	assert.False(t, byJob.Unique)
	assert.Equal(t, bson.D{{Key: "jobPostingId", Value: 1}}, byJob.Keys)
}

func TestReportIndexes(t *testing.T) {
	specs, err := IndexSpecsFromModel(&models.TestReport{})
	require.NoError(t, err)

	perTest := specByName(t, specs, "testInstanceId_unique")
	assert.True(t, perTest.Unique)
	assert.Equal(t, bson.D{{Key: "testInstanceId", Value: 1}}, perTest.Keys)
}

func TestTestInstanceIndexes(t *testing.T) {
	specs, err := IndexSpecsFromModel(models.TestInstance{})
	require.NoError(t, err)

	perApp := specByName(t, specs, "candidateApplicationId_unique")
	assert.True(t, perApp.Unique)

	lookup := specByName(t, specs, "identity_job")
	assert.False(t, lookup.Unique)
	assert.Equal(t, bson.D{{Key: "identityId", Value: 1}, {Key: "jobPostingId", Value: 1}}, lookup.Keys)

	pending := specByName(t, specs, "state_submitted")
	assert.Equal(t, bson.D{{Key: "state", Value: 1}, {Key: "submittedAt", Value: 1}}, pending.Keys)
}

func TestIdentityEmailIsUnique(t *testing.T) {
	specs, err := IndexSpecsFromModel(authmodels.Identity{})
	require.NoError(t, err)
	assert.True(t, specByName(t, specs, "email_unique").Unique)
}

func TestIndexSpecsFromModelTags(t *testing.T) {
	type sample struct {
		Code    string `bson:"code" index:"unique,sparse"`
		Created int64  `bson:"created" index:"single:-1;ttl:60"`
		Skipped string `bson:"-" index:"unique"`
		Plain   string `bson:"plain"`
	}
	specs, err := IndexSpecsFromModel(sample{})
	require.NoError(t, err)
	require.Len(t, specs, 3)

	code := specByName(t, specs, "code_unique")
	assert.True(t, code.Unique)
	assert.True(t, code.Sparse)

	assert.Equal(t, bson.D{{Key: "created", Value: -1}}, specByName(t, specs, "created_single").Keys)
	ttl := specByName(t, specs, "created_ttl")
	require.NotNil(t, ttl.TTL)
	assert.Equal(t, int32(60), *ttl.TTL)

	_, err = IndexSpecsFromModel("not a struct")
	assert.Error(t, err)

	type badTTL struct {
		At int64 `bson:"at" index:"ttl:soon"`
	}
	_, err = IndexSpecsFromModel(badTTL{})
	assert.Error(t, err)
}
