package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kinobilet/movie-catalog/internal/models"
	"github.com/kinobilet/movie-catalog/internal/storage"
)

// RegisterUser сохраняет нового пользователя и возвращает его ID.
//
// Дубликат username или email отсекается дважды: предварительной проверкой
// для быстрого ответа и уникальным индексом при вставке.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.mongodb.RegisterUser"

	filter := bson.M{"$or": []bson.M{
		{"username": user.Username},
		{"email": user.Email},
	}}
	err := s.users.FindOne(ctx, filter).Err()
	if err == nil {
		return "", storage.ErrUserExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user.ID = primitive.NewObjectID()
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", storage.ErrUserExists
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return user.ID.Hex(), nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.mongodb.GetUserByUsername"

	var u models.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
