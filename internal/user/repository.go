package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
	"github.com/saulo-duarte/quizard-lambda/internal/query"
)

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(ctx context.Context, u *User) error
	GetOne(ctx context.Context, filters query.Filters) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, opts query.Options) ([]User, error)
	Update(ctx context.Context, u *User, changes map[string]interface{}) error

	CreateRefreshToken(ctx context.Context, t *RefreshToken) error
	GetRefreshToken(ctx context.Context, id uuid.UUID) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id uuid.UUID) error
	RevokeAllRefreshTokens(ctx context.Context, userID int64) error
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(ctx context.Context, u *User) error {
	return query.Create(ctx, r.db, u)
}

func (r *userRepository) GetOne(ctx context.Context, filters query.Filters) (*User, error) {
	return query.GetOne[User](ctx, r.db, filters)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	return query.GetOne[User](ctx, r.db, query.Filters{"id": id})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return query.GetOne[User](ctx, r.db, query.Filters{"email": email})
}

func (r *userRepository) List(ctx context.Context, opts query.Options) ([]User, error) {
	return query.GetMany[User](ctx, r.db, opts)
}

func (r *userRepository) Update(ctx context.Context, u *User, changes map[string]interface{}) error {
	return query.UpdateOne(ctx, r.db, u, changes)
}

func (r *userRepository) CreateRefreshToken(ctx context.Context, t *RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *userRepository) GetRefreshToken(ctx context.Context, id uuid.UUID) (*RefreshToken, error) {
	return query.GetOne[RefreshToken](ctx, r.db, query.Filters{"id": id})
}

func (r *userRepository) RevokeRefreshToken(ctx context.Context, id uuid.UUID) error {
	_, err := query.UpdateMany[RefreshToken](ctx, r.db, query.Filters{"id": id}, map[string]interface{}{"revoked": true})
	return err
}

func (r *userRepository) RevokeAllRefreshTokens(ctx context.Context, userID int64) error {
	if userID == 0 {
		return fmt.Errorf("user id: %w", apperror.ErrInvalid)
	}
	_, err := query.UpdateMany[RefreshToken](ctx, r.db, query.Filters{"user_id": userID, "revoked": false}, map[string]interface{}{"revoked": true})
	return err
}
