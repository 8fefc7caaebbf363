package authsvc

import (
	"context"
	"errors"
	"sync"

	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memIdentities struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.Identity
}

func newMemIdentities() *memIdentities {
	return &memIdentities{items: map[primitive.ObjectID]models.Identity{}}
}

func (m *memIdentities) Insert(_ context.Context, identity models.Identity) (*models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity.Email = NormalizeEmail(identity.Email)
	for _, existing := range m.items {
		if existing.Email == identity.Email {
			return nil, common.ErrEmailTaken
		}
	}
	identity.ID = primitive.NewObjectID()
	m.items[identity.ID] = identity
	return &identity, nil
}

func (m *memIdentities) FindByID(_ context.Context, id primitive.ObjectID) (*models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &identity, nil
}

func (m *memIdentities) FindByEmail(_ context.Context, email string) (*models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, identity := range m.items {
		if identity.Email == NormalizeEmail(email) {
			found := identity
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memIdentities) FindManyByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Identity{}
	for _, id := range ids {
		if identity, ok := m.items[id]; ok {
			out = append(out, identity)
		}
	}
	return out, nil
}

func (m *memIdentities) ExistsRole(_ context.Context, role models.Role) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, identity := range m.items {
		if identity.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (m *memIdentities) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *memIdentities) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

type memProfiles struct {
	mu       sync.Mutex
	items    map[primitive.ObjectID]models.HRProfile
	failNext bool
}

func newMemProfiles() *memProfiles {
	return &memProfiles{items: map[primitive.ObjectID]models.HRProfile{}}
}

func (m *memProfiles) Insert(_ context.Context, profile models.HRProfile) (*models.HRProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		m.failNext = false
		return nil, common.ErrMongoConnection
	}
	profile.ID = primitive.NewObjectID()
	m.items[profile.ID] = profile
	return &profile, nil
}

func (m *memProfiles) FindByIdentity(_ context.Context, identityID primitive.ObjectID) (*models.HRProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, profile := range m.items {
		if profile.IdentityID == identityID {
			found := profile
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memProfiles) AddToList(context.Context, primitive.ObjectID, models.HRList, primitive.ObjectID) error {
	return nil
}

func (m *memProfiles) RemoveFromList(context.Context, primitive.ObjectID, models.HRList, primitive.ObjectID) error {
	return nil
}

type staticOwners map[primitive.ObjectID]primitive.ObjectID

func (s staticOwners) JobOwner(_ context.Context, jobID primitive.ObjectID) (primitive.ObjectID, error) {
	owner, ok := s[jobID]
	if !ok {
		return primitive.NilObjectID, common.ErrNotFound
	}
	return owner, nil
}

type brokenOwners struct{}

func (brokenOwners) JobOwner(context.Context, primitive.ObjectID) (primitive.ObjectID, error) {
	return primitive.NilObjectID, errors.New("connection reset")
}
