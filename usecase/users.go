package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"quicknotes/model"
	"quicknotes/repository"
	"quicknotes/utils"
)

type UserService struct {
	Users UserStore
	Cache UserCache // optional
	Now   func() time.Time
}

func NewUserService(users UserStore, cache UserCache) *UserService {
	return &UserService{Users: users, Cache: cache, Now: time.Now}
}

// Authenticate finds the user with the email or creates one. A blank name
// defaults to the part of the email before '@'.
func (s *UserService) Authenticate(ctx context.Context, email, name string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	user, err := s.Users.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	user = &model.User{
		UserID:    utils.NewID(),
		Email:     email,
		Name:      name,
		CreatedAt: s.now(),
	}
	if err := s.Users.AddUser(ctx, user); err != nil {
		// Lost a race with a concurrent first login for the same address.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return s.Users.FindUserByEmail(ctx, email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.cacheUser(ctx, user)
	return user, nil
}

// FindUser resolves a session user id. Unknown ids yield ErrUnauthenticated.
func (s *UserService) FindUser(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	if s.Cache != nil {
		cached, err := s.Cache.GetUser(ctx, userID)
		if err != nil {
			log.Printf("User cache lookup failed for %s: %v", userID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.Users.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	s.cacheUser(ctx, user)
	return user, nil
}

func (s *UserService) cacheUser(ctx context.Context, user *model.User) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.SetUser(ctx, user); err != nil {
		log.Printf("Warning: failed to cache user %s: %v", user.UserID, err)
	}
}

func (s *UserService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
