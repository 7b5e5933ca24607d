package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Rating — оценка фильма одним пользователем.
// Инвариант: не более одной оценки на пару (фильм, пользователь).
type Rating struct {
	UserID string `bson:"userId" json:"userId"`
	Rating int    `bson:"rating" json:"rating"`
}

// Comment — комментарий пользователя к фильму. Без ограничений уникальности.
type Comment struct {
	UserID string `bson:"userId" json:"userId"`
	Text   string `bson:"text" json:"text"`
}

// Movie представляет фильм каталога. Оценки и комментарии хранятся
// встроенными списками внутри документа и удаляются вместе с ним.
type Movie struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ReleaseDate string             `bson:"release_date,omitempty" json:"release_date,omitempty"`
	TicketPrice float64            `bson:"ticket_price,omitempty" json:"ticket_price,omitempty"`
	Country     string             `bson:"country,omitempty" json:"country,omitempty"`
	Genre       string             `bson:"genre" json:"genre"`
	PhotoURI    string             `bson:"photo_uri,omitempty" json:"photo_uri,omitempty"`
	Ratings     []Rating           `bson:"ratings" json:"ratings"`
	Comments    []Comment          `bson:"comments" json:"comments"`
}

// DummyMovie используется для приёма данных фильма из JSON-запроса
// при создании и полном обновлении. Обязательны только name и genre.
type DummyMovie struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty" validate:"omitempty"`
	ReleaseDate string  `json:"release_date,omitempty" validate:"omitempty"`
	TicketPrice float64 `json:"ticket_price,omitempty" validate:"omitempty"`
	Country     string  `json:"country,omitempty" validate:"omitempty"`
	Genre       string  `json:"genre" validate:"required"`
	PhotoURI    string  `json:"photo_uri,omitempty" validate:"omitempty"`
}

// DummyRating используется для приёма оценки из JSON-запроса.
type DummyRating struct {
	MovieID string `json:"movieId" validate:"required"`
	Rating  int    `json:"rating" validate:"required"`
}

// DummyComment используется для приёма комментария из JSON-запроса.
type DummyComment struct {
	MovieID string `json:"movieId" validate:"required"`
	Text    string `json:"text" validate:"required"`
}
