package memory

import (
	"context"
	"strings"
	"sync"

	"storefront/pkg/domain/model"
)

func NewUserRepository() model.UserRepository {
	return &userRepository{users: newCollection[model.User](userField, nil)}
}

type userRepository struct {
	mu    sync.Mutex
	users *collection[model.User]
}

func userField(u model.User, field string) (interface{}, bool) {
	switch field {
	case model.FieldID:
		return u.ID, true
	case model.FieldGender:
		return string(u.Gender), true
	case model.FieldRole:
		return string(u.Role), true
	case model.FieldCreatedAt:
		return u.CreatedAt, true
	case model.FieldName:
		return u.Name, true
	}
	return nil, false
}

func (r *userRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, err := r.users.all(nil)
	if err != nil {
		return err
	}
	for _, u := range existing {
		if strings.EqualFold(u.Email, user.Email) {
			return model.ErrEmailTaken
		}
	}
	r.users.insert(user.ID, *user)
	return nil
}

func (r *userRepository) Delete(_ context.Context, id string) error {
	if !r.users.remove(id) {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	user, ok := r.users.get(id)
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &user, nil
}

func (r *userRepository) Find(_ context.Context, query model.Query) ([]model.User, error) {
	return r.users.find(query)
}

func (r *userRepository) Count(_ context.Context, filter model.Filter) (int64, error) {
	return r.users.count(filter)
}
