package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"storefront/pkg/common/domain"
	"storefront/pkg/domain/model"
)

const msgAddAllFields = "Please add all fields"

type UserInput struct {
	ID     string    `validate:"required"`
	Name   string    `validate:"required"`
	Email  string    `validate:"required,email"`
	Photo  string    `validate:"required"`
	Gender string    `validate:"required,oneof=male female"`
	DOB    time.Time `validate:"required"`
}

type UserService interface {
	// Register returns the stored user and whether it was created by this call.
	Register(ctx context.Context, input UserInput) (*model.User, bool, error)
	AllUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

func NewUserService(repo model.UserRepository, cache Cache, dispatcher domain.EventDispatcher) UserService {
	return &userService{
		repo:        repo,
		invalidator: NewCacheInvalidator(cache),
		dispatcher:  dispatcher,
		validate:    validator.New(),
	}
}

type userService struct {
	repo        model.UserRepository
	invalidator CacheInvalidator
	dispatcher  domain.EventDispatcher
	validate    *validator.Validate
}

func (s *userService) Register(ctx context.Context, input UserInput) (*model.User, bool, error) {
	if input.ID != "" {
		existing, err := s.repo.FindByID(ctx, input.ID)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, model.ErrUserNotFound) {
			return nil, false, err
		}
	}

	if err := s.validate.Struct(input); err != nil {
		return nil, false, model.NewValidationError(msgAddAllFields)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:        input.ID,
		Name:      input.Name,
		Email:     input.Email,
		Photo:     input.Photo,
		Role:      model.RoleUser,
		Gender:    model.Gender(input.Gender),
		DOB:       input.DOB,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, false, err
	}

	if err := s.invalidator.Invalidate(Invalidation{Admin: true}); err != nil {
		return nil, false, err
	}

	dispatch(s.dispatcher, model.UserRegistered{UserID: user.ID, Email: user.Email, Name: user.Name})
	return user, true, nil
}

func (s *userService) AllUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.Find(ctx, model.Query{})
}

func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.invalidator.Invalidate(Invalidation{Admin: true}); err != nil {
		return err
	}
	dispatch(s.dispatcher, model.UserDeleted{UserID: id})
	return nil
}
