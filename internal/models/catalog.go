package models

import (
	"time"

	"github.com/google/uuid"
)

// RecordKind определяет тип записи каталога.
type RecordKind string

const (
	KindJob     RecordKind = "job"
	KindArtisan RecordKind = "artisan"
	KindProduct RecordKind = "product"
)

// Job описывает вакансию на странице работ.
type Job struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills,omitempty"`
	Image       *string   `json:"image,omitempty"`
}

// Artisan описывает мастера, которого можно нанять.
type Artisan struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Location string    `json:"location"`
	Skills   []string  `json:"skills"`
	Rating   float64   `json:"rating"`
	Image    *string   `json:"image,omitempty"`
}

// Product описывает товар на маркетплейсе.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Price       string    `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Image       *string   `json:"image,omitempty"`
}

// Option описывает значение для выпадающего списка фильтра.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
