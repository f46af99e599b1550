package review

import (
	"context"
	"database/sql"

	"madaba-market-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, id string, params CreateParams) (*Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*Review, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Create inserts the review and folds it into the seller's aggregate rating
// in the same transaction.
func (r *repository) Create(ctx context.Context, id string, params CreateParams) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("product_id", params.ProductID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var sellerID string
	err = tx.QueryRowContext(ctx, `
		SELECT seller_id FROM products WHERE id = $1
	`, params.ProductID).Scan(&sellerID)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	var rev Review
	err = tx.QueryRowContext(ctx, `
		INSERT INTO reviews (id, product_id, author_id, author_name, rating, comment)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, product_id, author_id, author_name, rating, comment, created_at
	`, id, params.ProductID, params.AuthorID, params.AuthorName, params.Rating, params.Comment).
		Scan(&rev.ID, &rev.ProductID, &rev.AuthorID, &rev.AuthorName, &rev.Rating, &rev.Comment, &rev.CreatedAt)
	if err != nil {
		log.Error("failed to insert review", zap.Error(err))
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE profiles
		SET review_count = agg.cnt,
		    rating = agg.avg
		FROM (
			SELECT COUNT(*) AS cnt, AVG(r.rating) AS avg
			FROM reviews r
			JOIN products p ON p.id = r.product_id
			WHERE p.seller_id = $1
		) agg
		WHERE id = $1
	`, sellerID)
	if err != nil {
		log.Error("failed to update seller rating", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	log.Info("review created", zap.String("review_id", rev.ID))
	return &rev, nil
}

func (r *repository) ListByProduct(ctx context.Context, productID string) ([]*Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, author_id, author_name, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		var rev Review
		if err := rows.Scan(
			&rev.ID, &rev.ProductID, &rev.AuthorID, &rev.AuthorName,
			&rev.Rating, &rev.Comment, &rev.CreatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, &rev)
	}
	return reviews, rows.Err()
}
