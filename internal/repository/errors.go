package repository

import "errors"

// Ошибки отсутствия сущностей в хранилище.
var (
	ErrTenderNotFound  = errors.New("tender not found")
	ErrInviteNotFound  = errors.New("invite not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrContactNotFound = errors.New("contact not found")
)
