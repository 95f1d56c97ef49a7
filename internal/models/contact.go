package models

// Contact представляет запись в адресной книге организатора.
// LinkedUserID заполняется, если телефон совпал с зарегистрированным пользователем.
type Contact struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"-"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	LinkedUserID *string  `json:"linkedUserId,omitempty"`
	Tag          string   `json:"tag,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	Groups       []string `json:"groups"`
}

// ContactRequest представляет структуру запроса для создания или обновления контакта.
type ContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Tag   string `json:"tag"`
	Notes string `json:"notes"`
}

// Group представляет группу контактов.
type Group struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ContactIDs []string `json:"contactIds"`
}
