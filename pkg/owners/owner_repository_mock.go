package owners

import (
	"context"
	"errors"
)

// MockOwnerRepository keeps owners in memory for tests
type MockOwnerRepository struct {
	Owners []*Owner
}

// Add adds an owner
func (r *MockOwnerRepository) Add(ctx context.Context, owner *Owner) error {
	r.Owners = append(r.Owners, owner)
	return nil
}

// FindByID finds an owner by ID
func (r *MockOwnerRepository) FindByID(ctx context.Context, id string) (*Owner, error) {
	for _, owner := range r.Owners {
		if owner.ID.Hex() == id {
			return owner, nil
		}
	}

	return nil, errors.New("owner not found")
}

// FindByGoogleStateToken finds an owner by its Google state token
func (r *MockOwnerRepository) FindByGoogleStateToken(ctx context.Context, stateToken string) (*Owner, error) {
	for _, owner := range r.Owners {
		if owner.GoogleCalendarConnection.StateToken == stateToken {
			return owner, nil
		}
	}

	return nil, errors.New("owner not found")
}

// Update updates an owner
func (r *MockOwnerRepository) Update(ctx context.Context, owner *Owner) error {
	for i, existing := range r.Owners {
		if existing.ID == owner.ID {
			r.Owners[i] = owner
			return nil
		}
	}

	return errors.New("owner not found")
}

// Remove removes an owner
func (r *MockOwnerRepository) Remove(ctx context.Context, id string) error {
	for i, o := range r.Owners {
		if o.ID.Hex() == id {
			r.Owners = append(r.Owners[:i], r.Owners[i+1:]...)
			return nil
		}
	}

	return errors.New("owner not found")
}
