// Package story carries the seller story feature over from the legacy
// document store: short-lived promotional posts surfaced on seller pages and
// moderated by admins.
package story

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrStoryNotFound = errors.New("story not found")

type Story struct {
	ID        string    `json:"id"`
	SellerID  string    `json:"sellerId"`
	Image     string    `json:"image"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Repository interface {
	Create(ctx context.Context, sellerID, image, caption string) (*Story, error)
	ListActive(ctx context.Context) ([]*Story, error)
	ListAll(ctx context.Context) ([]*Story, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sellerID, image, caption string) (*Story, error) {
	var s Story
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO stories (id, seller_id, image_url, caption, expires_at)
		VALUES ($1, $2, $3, $4, NOW() + INTERVAL '24 hours')
		RETURNING id, seller_id, image_url, caption, created_at, expires_at
	`, uuid.New().String(), sellerID, image, caption).
		Scan(&s.ID, &s.SellerID, &s.Image, &s.Caption, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListActive(ctx context.Context) ([]*Story, error) {
	return r.list(ctx, `WHERE expires_at > NOW()`)
}

func (r *repository) ListAll(ctx context.Context) ([]*Story, error) {
	return r.list(ctx, ``)
}

func (r *repository) list(ctx context.Context, where string) ([]*Story, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, seller_id, image_url, caption, created_at, expires_at
		FROM stories `+where+`
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stories := make([]*Story, 0)
	for rows.Next() {
		var s Story
		if err := rows.Scan(&s.ID, &s.SellerID, &s.Image, &s.Caption, &s.CreatedAt, &s.ExpiresAt); err != nil {
			return nil, err
		}
		stories = append(stories, &s)
	}
	return stories, rows.Err()
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrStoryNotFound
	}
	return nil
}
