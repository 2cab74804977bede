package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"marketplace-server/auth"
	"marketplace-server/entities"
	"marketplace-server/repositories"
)

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(user *entities.User) (string, error)
	Verify(token string) (string, error)
}

type UserUseCase struct {
	repo   repositories.UserRepository
	hasher auth.PasswordHasher
	tokens TokenService
}

func NewUserUseCase(repo repositories.UserRepository, hasher auth.PasswordHasher, tokens TokenService) *UserUseCase {
	return &UserUseCase{repo: repo, hasher: hasher, tokens: tokens}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates the user and logs them in, returning the stored user and
// a fresh bearer token.
func (uc *UserUseCase) Register(ctx context.Context, in RegisterInput) (*entities.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, "", fmt.Errorf("%w: first_name and last_name are required", ErrValidation)
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &entities.User{
		Email:     email,
		Password:  hash,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := uc.issue(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks the password and replaces the user's stored token.
func (uc *UserUseCase) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: username or password is missing", ErrValidation)
	}

	user, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidLogin
		}
		return "", err
	}

	ok, err := uc.hasher.Compare(password, user.Password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidLogin
	}
	return uc.issue(ctx, user)
}

func (uc *UserUseCase) issue(ctx context.Context, user *entities.User) (string, error) {
	token, err := uc.tokens.Issue(user)
	if err != nil {
		return "", err
	}
	if err := uc.repo.UpdateToken(ctx, user.ID, token); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	user.Token = token
	return token, nil
}

// Logout clears the stored token so it no longer authenticates.
func (uc *UserUseCase) Logout(ctx context.Context, userID string) error {
	return uc.repo.UpdateToken(ctx, userID, "")
}

// Authenticate resolves a bearer token to its user. The token must still be
// the one stored for the user, so logging out or in again revokes it.
func (uc *UserUseCase) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	userID, err := uc.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Token != token {
		return nil, ErrRevoked
	}
	return user, nil
}

// VerifySession returns the id of the user a still-valid token belongs to.
func (uc *UserUseCase) VerifySession(ctx context.Context, token string) (string, error) {
	user, err := uc.Authenticate(ctx, token)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*entities.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	return uc.repo.GetByID(ctx, id)
}

func (uc *UserUseCase) GetAllUsers(ctx context.Context) ([]entities.User, error) {
	return uc.repo.GetAll(ctx)
}

// UpdateUser merges the non-empty name fields into the stored user.
func (uc *UserUseCase) UpdateUser(ctx context.Context, id string, changes entities.User) (*entities.User, error) {
	existing, err := uc.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.FirstName != "" {
		existing.FirstName = strings.TrimSpace(changes.FirstName)
	}
	if changes.LastName != "" {
		existing.LastName = strings.TrimSpace(changes.LastName)
	}

	if err := uc.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *UserUseCase) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	return uc.repo.Delete(ctx, id)
}
