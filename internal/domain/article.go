package domain

import "time"

type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PracticeQuestion pertenece a una categoría, no a un artículo puntual.
type PracticeQuestion struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Question   string    `json:"question"`
	Difficulty string    `json:"difficulty,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
