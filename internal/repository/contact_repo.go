package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/senyabanana/shift-market/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactRepository - интерфейс для работы с адресной книгой и группами.
type ContactRepository interface {
	GetContactsByOwner(ctx context.Context, ownerId string) ([]models.Contact, error)
	CreateContact(ctx context.Context, ownerId string, contactReq models.ContactRequest) (*models.Contact, error)
	CreateContacts(ctx context.Context, ownerId string, contactReqs []models.ContactRequest) ([]models.Contact, error)
	UpdateContact(ctx context.Context, contactId string, updateFields map[string]interface{}) (*models.Contact, error)
	DeleteContact(ctx context.Context, contactId string) error
	GetGroupsByOwner(ctx context.Context, ownerId string) ([]models.Group, error)
}

// PostgresContactRepository - реализация ContactRepository для базы данных.
type PostgresContactRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresContactRepository создаёт новый экземпляр PostgresContactRepository.
func NewPostgresContactRepository(db *pgxpool.Pool) *PostgresContactRepository {
	return &PostgresContactRepository{DB: db}
}

const contactColumns = `id, owner_id, name, phone, linked_user_id, COALESCE(tag, ''), COALESCE(notes, '')`

func scanContact(row rowScanner) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Phone, &c.LinkedUserID, &c.Tag, &c.Notes)
	if err != nil {
		return nil, err
	}
	c.Groups = []string{}
	return &c, nil
}

// lookupUserIdByPhone ищет зарегистрированного пользователя с таким телефоном.
// Отсутствие совпадения не является ошибкой.
func (r *PostgresContactRepository) lookupUserIdByPhone(ctx context.Context, phone string) (*string, error) {
	var userId string
	err := r.DB.QueryRow(ctx, `SELECT id FROM users WHERE phone = $1`, phone).Scan(&userId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &userId, nil
}

// GetContactsByOwner возвращает контакты пользователя по алфавиту.
func (r *PostgresContactRepository) GetContactsByOwner(ctx context.Context, ownerId string) ([]models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1 ORDER BY name`
	rows, err := r.DB.Query(ctx, query, ownerId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}
	return contacts, rows.Err()
}

// CreateContact создает контакт, привязывая его к пользователю по телефону.
func (r *PostgresContactRepository) CreateContact(ctx context.Context, ownerId string, contactReq models.ContactRequest) (*models.Contact, error) {
	linkedUserId, err := r.lookupUserIdByPhone(ctx, contactReq.Phone)
	if err != nil {
		return nil, err
	}

	newContact := models.Contact{
		ID:           uuid.New().String(),
		OwnerID:      ownerId,
		Name:         contactReq.Name,
		Phone:        contactReq.Phone,
		LinkedUserID: linkedUserId,
		Tag:          contactReq.Tag,
		Notes:        contactReq.Notes,
		Groups:       []string{},
	}
	_, err = r.DB.Exec(ctx, `
       INSERT INTO contacts (id, owner_id, name, phone, linked_user_id, tag, notes)
       VALUES ($1, $2, $3, $4, $5, $6, $7)
   `,
		newContact.ID,
		newContact.OwnerID,
		newContact.Name,
		newContact.Phone,
		newContact.LinkedUserID,
		newContact.Tag,
		newContact.Notes)
	if err != nil {
		return nil, err
	}
	return &newContact, nil
}

// CreateContacts создает несколько контактов за один импорт.
func (r *PostgresContactRepository) CreateContacts(ctx context.Context, ownerId string, contactReqs []models.ContactRequest) ([]models.Contact, error) {
	contacts := make([]models.Contact, 0, len(contactReqs))
	for _, contactReq := range contactReqs {
		contact, err := r.CreateContact(ctx, ownerId, contactReq)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}
	return contacts, nil
}

// UpdateContact меняет поля контакта, пересчитывая привязку при смене телефона.
func (r *PostgresContactRepository) UpdateContact(ctx context.Context, contactId string, updateFields map[string]interface{}) (*models.Contact, error) {
	var updates []string
	var args []interface{}
	argIndex := 1

	for _, field := range []string{"name", "phone", "tag", "notes"} {
		if value, ok := updateFields[field].(string); ok && value != "" {
			updates = append(updates, fmt.Sprintf("%s = $%d", field, argIndex))
			args = append(args, value)
			argIndex++
		}
	}

	if phone, ok := updateFields["phone"].(string); ok && phone != "" {
		linkedUserId, err := r.lookupUserIdByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		updates = append(updates, fmt.Sprintf("linked_user_id = $%d", argIndex))
		args = append(args, linkedUserId)
		argIndex++
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no valid fields to update")
	}

	query := `UPDATE contacts SET ` + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", argIndex) + contactColumns
	args = append(args, contactId)

	contact, err := scanContact(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

// DeleteContact удаляет контакт.
func (r *PostgresContactRepository) DeleteContact(ctx context.Context, contactId string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, contactId)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

// GetGroupsByOwner возвращает группы пользователя вместе с составом.
func (r *PostgresContactRepository) GetGroupsByOwner(ctx context.Context, ownerId string) ([]models.Group, error) {
	query := `SELECT id, name FROM groups WHERE owner_id = $1 ORDER BY name`
	rows, err := r.DB.Query(ctx, query, ownerId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(&group.ID, &group.Name); err != nil {
			return nil, err
		}
		group.ContactIDs = []string{}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		memberRows, err := r.DB.Query(ctx, `SELECT contact_id FROM group_members WHERE group_id = $1`, groups[i].ID)
		if err != nil {
			return nil, err
		}
		for memberRows.Next() {
			var contactId string
			if err := memberRows.Scan(&contactId); err != nil {
				memberRows.Close()
				return nil, err
			}
			groups[i].ContactIDs = append(groups[i].ContactIDs, contactId)
		}
		memberRows.Close()
		if err := memberRows.Err(); err != nil {
			return nil, err
		}
	}
	return groups, nil
}
