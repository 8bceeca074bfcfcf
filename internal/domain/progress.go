package domain

import "time"

// ProgressRecord es append-only y único por (user, article).
type ProgressRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ArticleID   string    `json:"article_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// ProgressSummary resume la lectura de un usuario sobre el total de artículos.
type ProgressSummary struct {
	Completed     int     `json:"completed"`
	TotalArticles int     `json:"total_articles"`
	Percent       float64 `json:"percent"`
}
