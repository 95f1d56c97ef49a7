package repository

import (
	"context"
	"errors"
	"time"

	"github.com/senyabanana/shift-market/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository - интерфейс для работы с пользователями и их кредитами.
type UserRepository interface {
	CreateUser(ctx context.Context, userReq models.UserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, userId string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	DeductCredit(ctx context.Context, userId string) (*models.User, error)
	AddCredits(ctx context.Context, userId string, amount int) (*models.User, error)
	DeleteUser(ctx context.Context, userId string) error
}

// PostgresUserRepository - реализация UserRepository для базы данных.
type PostgresUserRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresUserRepository создаёт новый экземпляр PostgresUserRepository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

const userColumns = `id, phone, name, role, credits, created_at`

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Phone, &u.Name, &u.Role, &u.Credits, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser регистрирует нового пользователя со стартовыми кредитами по роли.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, userReq models.UserRequest) (*models.User, error) {
	credits := models.ParticipantStartCredits
	if userReq.Role == models.Organizer {
		credits = models.OrganizerStartCredits
	}

	newUser := models.User{
		ID:        uuid.New().String(),
		Phone:     userReq.Phone,
		Name:      userReq.Name,
		Role:      userReq.Role,
		Credits:   credits,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.DB.Exec(ctx, `
       INSERT INTO users (id, phone, name, role, credits, created_at)
       VALUES ($1, $2, $3, $4, $5, $6)
   `,
		newUser.ID,
		newUser.Phone,
		newUser.Name,
		newUser.Role,
		newUser.Credits,
		newUser.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &newUser, nil
}

// GetUserByID возвращает пользователя по ID.
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, userId string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.DB.QueryRow(ctx, query, userId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUserByPhone возвращает пользователя по номеру телефона.
func (r *PostgresUserRepository) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1`
	user, err := scanUser(r.DB.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeductCredit списывает один кредит, не опускаясь ниже нуля.
func (r *PostgresUserRepository) DeductCredit(ctx context.Context, userId string) (*models.User, error) {
	query := `UPDATE users SET credits = GREATEST(credits - 1, 0) WHERE id = $1 RETURNING ` + userColumns
	user, err := scanUser(r.DB.QueryRow(ctx, query, userId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// AddCredits начисляет пользователю указанное число кредитов.
func (r *PostgresUserRepository) AddCredits(ctx context.Context, userId string, amount int) (*models.User, error) {
	query := `UPDATE users SET credits = credits + $1 WHERE id = $2 RETURNING ` + userColumns
	user, err := scanUser(r.DB.QueryRow(ctx, query, amount, userId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser удаляет учётную запись пользователя.
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, userId string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id = $1`, userId)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
