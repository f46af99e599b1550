package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"madaba-market-be/internal/logger"

	"go.uber.org/zap"
)

// Mirror is the remote, eventually consistent copy of a user's cart, keyed
// by user id. Last writer wins; there is no conflict resolution.
type Mirror interface {
	Upsert(ctx context.Context, userID string, snap Snapshot) error
	Fetch(ctx context.Context, userID string) (*Snapshot, time.Time, error)
	Delete(ctx context.Context, userID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Mirror {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, userID string, snap Snapshot) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Upsert"),
		zap.String("user_id", userID),
	)

	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO carts (user_id, snapshot, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = NOW()
	`, userID, payload)
	if err != nil {
		log.Error("failed to upsert cart snapshot", zap.Error(err))
		return err
	}

	log.Debug("cart snapshot upserted", zap.Int("items", len(snap.Items)))
	return nil
}

func (r *repository) Fetch(ctx context.Context, userID string) (*Snapshot, time.Time, error) {
	var payload []byte
	var updatedAt time.Time

	err := r.db.QueryRowContext(ctx, `
		SELECT snapshot, updated_at
		FROM carts
		WHERE user_id = $1
	`, userID).Scan(&payload, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, time.Time{}, err
	}
	return &snap, updatedAt, nil
}

func (r *repository) Delete(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}
