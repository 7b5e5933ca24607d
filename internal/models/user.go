// Package models содержит доменные структуры сервиса каталога фильмов:
// пользователей, фильмы со встроенными оценками и комментариями,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User представляет зарегистрированного пользователя системы.
// Хранится в коллекции users, поля username и email уникальны.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"` // Уникальный идентификатор пользователя
	Username     string             `bson:"username"`      // Имя пользователя (уникальное)
	Email        string             `bson:"email"`         // Электронная почта (уникальная)
	FirstName    string             `bson:"first_name"`    // Имя
	LastName     string             `bson:"last_name"`     // Фамилия
	PasswordHash string             `bson:"password_hash"` // Хэш пароля пользователя
}

// UserView — публичное представление пользователя, отдаваемое наружу.
// Никогда не содержит хэш пароля.
type UserView struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// View возвращает публичное представление пользователя без хэша пароля.
func (u *User) View() *UserView {
	return &UserView{
		ID:        u.ID.Hex(),
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
}
