package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"storefront/pkg/domain/model"
)

const selectUsers = `SELECT id, name, email, photo, role, gender, dob, created_at, updated_at FROM users`

var userColumns = columns{
	model.FieldID:        "id",
	model.FieldName:      "name",
	model.FieldGender:    "gender",
	model.FieldRole:      "role",
	model.FieldCreatedAt: "created_at",
}

type userRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Photo     string    `db:"photo"`
	Role      string    `db:"role"`
	Gender    string    `db:"gender"`
	DOB       time.Time `db:"dob"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r userRow) toModel() model.User {
	return model.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Photo:     r.Photo,
		Role:      model.Role(r.Role),
		Gender:    model.Gender(r.Gender),
		DOB:       r.DOB,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewUserRepository(db *sqlx.DB) model.UserRepository {
	return &userRepository{db: db}
}

type userRepository struct {
	db *sqlx.DB
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (id, name, email, photo, role, gender, dob, created_at, updated_at)
		VALUES (:id, :name, :email, :photo, :role, :gender, :dob, :created_at, :updated_at)`,
		userRow{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Photo:     u.Photo,
			Role:      string(u.Role),
			Gender:    string(u.Gender),
			DOB:       u.DOB,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	if isDuplicate(err) {
		return model.ErrEmailTaken
	}
	return errors.Wrap(err, "insert user")
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	return affected(res, model.ErrUserNotFound)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, selectUsers+` WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select user")
	}
	user := row.toModel()
	return &user, nil
}

func (r *userRepository) Find(ctx context.Context, query model.Query) ([]model.User, error) {
	stmt, args, err := userColumns.query(selectUsers, query)
	if err != nil {
		return nil, err
	}
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		return nil, errors.Wrap(err, "select users")
	}
	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, filter model.Filter) (int64, error) {
	return count(ctx, r.db, "users", userColumns, filter)
}
