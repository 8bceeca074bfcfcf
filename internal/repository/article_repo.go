package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"dsa-tutor/internal/domain"
)

// ArticleRepository define el contrato de persistencia para artículos.
type ArticleRepository interface {
	Create(ctx context.Context, article domain.Article) error
	Update(ctx context.Context, article domain.Article) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (domain.Article, error)
	List(ctx context.Context) ([]domain.Article, error)
	Count(ctx context.Context) (int, error)
}

// PgArticleRepository implementa ArticleRepository usando pgxpool.
type PgArticleRepository struct {
	pool *pgxpool.Pool
}

func NewPgArticleRepository(pool *pgxpool.Pool) *PgArticleRepository {
	return &PgArticleRepository{pool: pool}
}

func (r *PgArticleRepository) Create(ctx context.Context, article domain.Article) error {
	const query = `
		INSERT INTO articles (id, title, content, category, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		article.ID,
		article.Title,
		article.Content,
		article.Category,
		article.CreatedAt,
	)
	return err
}

func (r *PgArticleRepository) Update(ctx context.Context, article domain.Article) error {
	const query = `
		UPDATE articles
		SET title = $2, content = $3, category = $4
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		article.ID,
		article.Title,
		article.Content,
		article.Category,
	)
	return err
}

func (r *PgArticleRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM articles WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PgArticleRepository) GetByID(ctx context.Context, id string) (domain.Article, error) {
	const query = `
		SELECT id, title, content, category, created_at
		FROM articles
		WHERE id = $1
	`
	var a domain.Article
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.Category,
		&a.CreatedAt,
	)
	return a, err
}

func (r *PgArticleRepository) List(ctx context.Context) ([]domain.Article, error) {
	const query = `
		SELECT id, title, content, category, created_at
		FROM articles
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Category, &a.CreatedAt); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (r *PgArticleRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM articles`
	var n int
	err := r.pool.QueryRow(ctx, query).Scan(&n)
	return n, err
}
