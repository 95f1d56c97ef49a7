package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/shift-market/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// TenderRepository - интерфейс для работы с тендерами и их приглашениями.
type TenderRepository interface {
	GetTenders(ctx context.Context, limit, offset int, statuses []string) ([]models.Tender, error)
	GetAllTenders(ctx context.Context) ([]models.Tender, error)
	GetTenderByID(ctx context.Context, tenderId string) (*models.Tender, error)
	CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error)
	GetTenderStatus(ctx context.Context, tenderId string) (models.TenderStatus, error)
	CloseTender(ctx context.Context, tenderId string) (*models.Tender, error)
	ApplyInviteDecision(ctx context.Context, tenderId, userId string, status models.InviteStatus) (*models.Tender, error)
}

// PostgresTenderRepository - реализация TenderRepository для базы данных.
type PostgresTenderRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresTenderRepository создаёт новый экземпляр PostgresTenderRepository.
func NewPostgresTenderRepository(db *pgxpool.Pool) *PostgresTenderRepository {
	return &PostgresTenderRepository{DB: db}
}

const tenderColumns = `id, organizer_id, title, COALESCE(description, ''), location, date, start_time, end_time, pay, quota, status, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTender(row rowScanner) (*models.Tender, error) {
	var t models.Tender
	err := row.Scan(
		&t.ID,
		&t.OrganizerID,
		&t.Title,
		&t.Description,
		&t.Location,
		&t.Date,
		&t.StartTime,
		&t.EndTime,
		&t.Pay,
		&t.Quota,
		&t.Status,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// loadInvites возвращает приглашения тендера в порядке добавления.
func (r *PostgresTenderRepository) loadInvites(ctx context.Context, tenderId string) ([]models.Invite, error) {
	query := `SELECT user_id, user_name, user_phone, status, is_guest, updated_at
	          FROM invites WHERE tender_id = $1 ORDER BY position`
	rows, err := r.DB.Query(ctx, query, tenderId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []models.Invite
	for rows.Next() {
		var invite models.Invite
		if err := rows.Scan(
			&invite.UserID,
			&invite.UserName,
			&invite.UserPhone,
			&invite.Status,
			&invite.IsGuest,
			&invite.UpdatedAt); err != nil {
			return nil, err
		}
		invites = append(invites, invite)
	}
	return invites, rows.Err()
}

// GetTenders возвращает список тендеров с приглашениями, новые первыми.
func (r *PostgresTenderRepository) GetTenders(ctx context.Context, limit, offset int, statuses []string) ([]models.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tenders`
	var filters []string
	var args []interface{}
	argIndex := 1

	if len(statuses) > 0 {
		filters = append(filters, fmt.Sprintf("status = ANY($%d)", argIndex))
		args = append(args, pq.Array(statuses))
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	return r.queryTenders(ctx, query, args...)
}

// GetAllTenders возвращает все тендеры с приглашениями, новые первыми.
func (r *PostgresTenderRepository) GetAllTenders(ctx context.Context) ([]models.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tenders ORDER BY created_at DESC`
	return r.queryTenders(ctx, query)
}

func (r *PostgresTenderRepository) queryTenders(ctx context.Context, query string, args ...interface{}) ([]models.Tender, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenders []models.Tender
	for rows.Next() {
		tender, err := scanTender(rows)
		if err != nil {
			return nil, err
		}
		tenders = append(tenders, *tender)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tenders {
		invites, err := r.loadInvites(ctx, tenders[i].ID)
		if err != nil {
			return nil, err
		}
		tenders[i].Invites = invites
	}
	return tenders, nil
}

// GetTenderByID возвращает тендер с приглашениями по ID.
func (r *PostgresTenderRepository) GetTenderByID(ctx context.Context, tenderId string) (*models.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tenders WHERE id = $1`
	tender, err := scanTender(r.DB.QueryRow(ctx, query, tenderId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenderNotFound
		}
		return nil, err
	}

	invites, err := r.loadInvites(ctx, tenderId)
	if err != nil {
		return nil, err
	}
	tender.Invites = invites
	return tender, nil
}

// CreateTender создает новый тендер вместе с приглашениями в одной транзакции.
func (r *PostgresTenderRepository) CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error) {
	now := time.Now().UTC()
	newTender := models.Tender{
		ID:          uuid.New().String(),
		OrganizerID: tenderReq.OrganizerID,
		Title:       tenderReq.Title,
		Description: tenderReq.Description,
		Location:    tenderReq.Location,
		Date:        tenderReq.Date,
		StartTime:   tenderReq.StartTime,
		EndTime:     tenderReq.EndTime,
		Pay:         tenderReq.Pay,
		Quota:       tenderReq.Quota,
		Status:      models.OpenTender,
		CreatedAt:   now,
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
       INSERT INTO tenders (id, organizer_id, title, description, location, date, start_time, end_time, pay, quota, status, created_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
   `,
		newTender.ID,
		newTender.OrganizerID,
		newTender.Title,
		newTender.Description,
		newTender.Location,
		newTender.Date,
		newTender.StartTime,
		newTender.EndTime,
		newTender.Pay,
		newTender.Quota,
		newTender.Status,
		newTender.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tender: %w", err)
	}

	for position, inviteReq := range tenderReq.Invites {
		var userId *string
		if inviteReq.UserID != "" {
			userId = &inviteReq.UserID
		}
		invite := models.Invite{
			UserID:    userId,
			UserName:  inviteReq.UserName,
			UserPhone: inviteReq.UserPhone,
			Status:    models.PendingInvite,
			IsGuest:   userId == nil,
			UpdatedAt: now,
		}
		_, err = tx.Exec(ctx, `
           INSERT INTO invites (tender_id, user_id, user_name, user_phone, status, is_guest, position, updated_at)
           VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
       `,
			newTender.ID,
			invite.UserID,
			invite.UserName,
			invite.UserPhone,
			invite.Status,
			invite.IsGuest,
			position,
			invite.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert invite: %w", err)
		}
		newTender.Invites = append(newTender.Invites, invite)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &newTender, nil
}

// GetTenderStatus возвращает статус тендера.
func (r *PostgresTenderRepository) GetTenderStatus(ctx context.Context, tenderId string) (models.TenderStatus, error) {
	var status models.TenderStatus
	query := `SELECT status FROM tenders WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, tenderId).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrTenderNotFound
		}
		return "", err
	}
	return status, nil
}

// CloseTender переводит тендер в терминальный статус closed.
func (r *PostgresTenderRepository) CloseTender(ctx context.Context, tenderId string) (*models.Tender, error) {
	tag, err := r.DB.Exec(ctx, `UPDATE tenders SET status = $1 WHERE id = $2`, models.ClosedTender, tenderId)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrTenderNotFound
	}
	return r.GetTenderByID(ctx, tenderId)
}

// ApplyInviteDecision обновляет статус приглашения и пересчитывает статус тендера
// в одной транзакции. Строка тендера блокируется до пересчёта, чтобы два
// одновременных решения не прочитали устаревшее число принятых приглашений.
func (r *PostgresTenderRepository) ApplyInviteDecision(ctx context.Context, tenderId, userId string, status models.InviteStatus) (*models.Tender, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var quota int
	var currentStatus models.TenderStatus
	lockQuery := `SELECT quota, status FROM tenders WHERE id = $1 FOR UPDATE`
	err = tx.QueryRow(ctx, lockQuery, tenderId).Scan(&quota, &currentStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenderNotFound
		}
		return nil, err
	}

	updateQuery := `UPDATE invites SET status = $1, updated_at = $2 WHERE tender_id = $3 AND user_id = $4`
	tag, err := tx.Exec(ctx, updateQuery, status, time.Now().UTC(), tenderId, userId)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrInviteNotFound
	}

	var acceptedCount int
	countQuery := `SELECT COUNT(*) FROM invites WHERE tender_id = $1 AND status = $2`
	err = tx.QueryRow(ctx, countQuery, tenderId, models.AcceptedInvite).Scan(&acceptedCount)
	if err != nil {
		return nil, err
	}

	newStatus := models.DeriveStatusFromCount(acceptedCount, quota, currentStatus)
	_, err = tx.Exec(ctx, `UPDATE tenders SET status = $1 WHERE id = $2`, newStatus, tenderId)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return r.GetTenderByID(ctx, tenderId)
}
