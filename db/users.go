package db

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"civicsense/types"
)

// CreateUser writes a new account. Fails if the document already exists.
func (s *Store) CreateUser(ctx context.Context, u *types.User) error {
	_, err := s.client.Collection(usersCollection).Doc(u.ID).Create(ctx, u)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user %s already exists", u.ID)
		}
		return fmt.Errorf("failed to create user document: %w", err)
	}
	return nil
}

// GetUserByEmail looks an account up by email for login.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	docs, err := s.client.Collection(usersCollection).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}

	var u types.User
	if err := docs[0].DataTo(&u); err != nil {
		return nil, fmt.Errorf("error decoding user: %w", err)
	}
	u.ID = docs[0].Ref.ID
	return &u, nil
}
