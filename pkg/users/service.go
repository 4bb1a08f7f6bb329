package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	CreateUser(ctx context.Context, name, email, password, profilePhotoURL string) (User, error)
	UpdateUser(ctx context.Context, u User) (User, error)
	DeleteUser(ctx context.Context, uuid string) error
	GetUserByUUID(ctx context.Context, uuid string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context, page, limit int) ([]User, int64, error)
	Login(ctx context.Context, email, password string) (User, error)
	UpgradeToPremium(ctx context.Context, uuid, plan string) error
}

type userService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) CreateUser(ctx context.Context, name, email, password, profilePhotoURL string) (User, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	u := User{
		UUID:            uuid.New().String(),
		Name:            name,
		Email:           email,
		ProfilePhotoURL: profilePhotoURL,
	}

	created, err := s.repo.CreateUser(ctx, u, string(hashBytes))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Soft-deleted accounts keep their email row; re-registering
			// with the same address revives the account.
			if revived, rerr := s.repo.ReviveUserByEmail(ctx, email, u, string(hashBytes)); rerr == nil {
				return revived, nil
			}
			return User{}, errors.New("user exists with that email")
		}
		return User{}, err
	}
	return created, nil
}

func (s *userService) UpdateUser(ctx context.Context, u User) (User, error) {
	if (u.Latitude == nil) != (u.Longitude == nil) {
		return User{}, errors.New("latitude and longitude must be provided together")
	}
	return s.repo.UpdateUser(ctx, u)
}

func (s *userService) DeleteUser(ctx context.Context, uuid string) error {
	return s.repo.DeleteUser(ctx, uuid)
}

func (s *userService) GetUserByUUID(ctx context.Context, uuid string) (User, error) {
	return s.repo.GetUserByUUID(ctx, uuid)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.ListUsers(ctx, limit, offset)
}

func (s *userService) Login(ctx context.Context, email, password string) (User, error) {
	userUUID, hash, err := s.repo.GetUserAuthByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, errors.New("invalid credentials")
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return User{}, errors.New("invalid credentials")
	}

	return s.repo.GetUserByUUID(ctx, userUUID)
}

func (s *userService) UpgradeToPremium(ctx context.Context, uuid, plan string) error {
	if plan == "" {
		plan = "monthly"
	}
	return s.repo.SetPremium(ctx, uuid, plan)
}
