// Package mongodb реализует слой хранения поверх MongoDB: коллекция users
// с уникальными индексами по username и email и коллекция movies со
// встроенными списками оценок и комментариев.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Storage инкапсулирует подключение к MongoDB и рабочие коллекции.
type Storage struct {
	client *mongo.Client
	users  *mongo.Collection
	movies *mongo.Collection
}

// New подключается к MongoDB, проверяет соединение и создает индексы.
func New(ctx context.Context, connString, database string) (*Storage, error) {
	const op = "storage.mongodb.New"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connString))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db := client.Database(database)
	s := &Storage{
		client: client,
		users:  db.Collection("users"),
		movies: db.Collection("movies"),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// ensureIndexes создает уникальные индексы по username и email.
// Уникальность обеспечивается хранилищем, а не только проверкой в коде,
// иначе конкурентные регистрации приводят к дубликатам.
func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

// Close разрывает подключение к MongoDB.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
