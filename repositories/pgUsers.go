package repositories

import (
	"context"
	"time"

	"marketplace-server/db"
	"marketplace-server/entities"
)

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) Create(ctx context.Context, user *entities.User) error {
	return translate(r.db.GetDB().WithContext(ctx).Create(user).Error)
}

func (r *userPgRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userPgRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userPgRepository) GetAll(ctx context.Context) ([]entities.User, error) {
	var users []entities.User
	err := r.db.GetDB().WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, translate(err)
}

func (r *userPgRepository) Update(ctx context.Context, user *entities.User) error {
	user.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return translate(r.db.GetDB().WithContext(ctx).Save(user).Error)
}

func (r *userPgRepository) UpdateToken(ctx context.Context, id, token string) error {
	res := r.db.GetDB().WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"token":      token,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	return affected(res)
}

func (r *userPgRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.GetDB().WithContext(ctx).Where("id = ?", id).Delete(&entities.User{}))
}
