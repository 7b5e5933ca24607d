// Package storage определяет общий словарь ошибок слоя хранения,
// по которым границы HTTP различают конфликт, отсутствие записи и
// некорректный идентификатор.
package storage

import "errors"

var (
	// ErrUserExists возвращается при попытке регистрации с занятым username или email.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrMovieNotFound возвращается, если фильм не найден.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrAlreadyRated возвращается при повторной оценке фильма тем же пользователем.
	ErrAlreadyRated = errors.New("movie already rated")
	// ErrInvalidMovieID возвращается до обращения к хранилищу,
	// если идентификатор фильма синтаксически некорректен.
	ErrInvalidMovieID = errors.New("invalid movie id")
)
