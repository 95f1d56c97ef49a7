package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/senyabanana/shift-market/internal/models"
	"github.com/senyabanana/shift-market/internal/repository"
	"github.com/senyabanana/shift-market/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserService struct {
	Repo   repository.UserRepository
	dbPool *pgxpool.Pool
}

// NewUserService создаёт новый экземпляр UserService.
func NewUserService(repo repository.UserRepository, dbPool *pgxpool.Pool) *UserService {
	return &UserService{Repo: repo, dbPool: dbPool}
}

// RegisterUser регистрирует пользователя с уникальным номером телефона.
func (s *UserService) RegisterUser(ctx context.Context, userReq models.UserRequest) (*models.User, error) {
	if userReq.Phone == "" || userReq.Name == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields: phone or name")
	}
	if userReq.Role != models.Organizer && userReq.Role != models.Participant {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "role must be organizer or participant")
	}

	taken, err := utils.CheckPhoneTaken(ctx, s.dbPool, userReq.Phone)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if taken {
		return nil, models.NewErrorResponse(http.StatusConflict, "phone number is already registered")
	}
	return s.Repo.CreateUser(ctx, userReq)
}

// GetUserByPhone находит пользователя по номеру телефона.
func (s *UserService) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	if phone == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required query parameter: phone")
	}
	user, err := s.Repo.GetUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, models.NewNotFoundResponse("user not found")
		}
		return nil, err
	}
	return user, nil
}

// DeductCredit списывает один кредит пользователя.
func (s *UserService) DeductCredit(ctx context.Context, userId string) (*models.User, error) {
	if userId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required path parameter: userId")
	}
	user, err := s.Repo.DeductCredit(ctx, userId)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, models.NewNotFoundResponse("user not found")
		}
		return nil, err
	}
	return user, nil
}

// AddCredits начисляет пользователю кредиты.
func (s *UserService) AddCredits(ctx context.Context, userId string, amount int) (*models.User, error) {
	if userId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required path parameter: userId")
	}
	if amount <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "amount must be a positive integer")
	}
	user, err := s.Repo.AddCredits(ctx, userId, amount)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, models.NewNotFoundResponse("user not found")
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser удаляет учётную запись.
func (s *UserService) DeleteUser(ctx context.Context, userId string) error {
	if userId == "" {
		return models.NewErrorResponse(http.StatusBadRequest, "missing required path parameter: userId")
	}
	err := s.Repo.DeleteUser(ctx, userId)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.NewNotFoundResponse("user not found")
		}
		return err
	}
	return nil
}
