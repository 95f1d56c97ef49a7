package models

import "time"

type UserRole string // Роль пользователя

const (
	Organizer   UserRole = "organizer"   // Организатор размещает тендеры
	Participant UserRole = "participant" // Участник отвечает на приглашения
)

// Кредиты, начисляемые при регистрации.
const (
	OrganizerStartCredits   = 100
	ParticipantStartCredits = 50
)

// User представляет модель пользователя.
type User struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRequest представляет структуру запроса для регистрации пользователя.
type UserRequest struct {
	Phone string   `json:"phone"`
	Name  string   `json:"name"`
	Role  UserRole `json:"role"`
}
