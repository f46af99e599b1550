package identity

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"madaba-market-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Profile, passwordHash string) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmailFold(ctx context.Context, email string) (*Profile, error)
	GetCredentials(ctx context.Context, email string) (*Profile, string, error)
	Rekey(ctx context.Context, oldID, newID string) error
	Update(ctx context.Context, params UpdateProfileParams) (*Profile, error)
	SetRoleAndStatus(ctx context.Context, id string, role Role, status SellerStatus) error
	List(ctx context.Context, role *Role) ([]*Profile, error)
	Delete(ctx context.Context, id string) error
	ToggleFollow(ctx context.Context, sellerID, followerID string) (*FollowResult, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const profileColumns = `
	id, email, name, role, status,
	store_name, store_description, cover_image_url,
	instagram, facebook, whatsapp,
	followers_count, rating, review_count,
	created_at, updated_at
`

func scanProfile(row interface{ Scan(...any) error }) (*Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.Name, &p.Role, &p.Status,
		&p.StoreName, &p.StoreDescription, &p.CoverImage,
		&p.Social.Instagram, &p.Social.Facebook, &p.Social.Whatsapp,
		&p.FollowersCount, &p.Rating, &p.ReviewCount,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Profile, passwordHash string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("user_id", p.ID),
	)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (
			id, email, name, role, status, password_hash
		) VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.Email, p.Name, p.Role, p.Status, passwordHash)
	if err != nil {
		if strings.Contains(err.Error(), "profiles_email_key") {
			return ErrEmailExists
		}
		log.Error("failed to create profile", zap.Error(err))
		return err
	}

	log.Info("profile created", zap.String("role", string(p.Role)))
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE id = $1
	`, id)

	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetByEmailFold(ctx context.Context, email string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE LOWER(email) = LOWER($1)
	`, email)

	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetCredentials(ctx context.Context, email string) (*Profile, string, error) {
	var p Profile
	var hash string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, role, status, password_hash
		FROM profiles
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&p.ID, &p.Email, &p.Name, &p.Role, &p.Status, &hash)
	if err == sql.ErrNoRows {
		return nil, "", ErrProfileNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return &p, hash, nil
}

// Rekey moves a profile stored under a legacy id to the id issued by the
// auth provider. Used once per migrated account.
func (r *repository) Rekey(ctx context.Context, oldID, newID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Rekey"),
		zap.String("old_id", oldID),
		zap.String("new_id", newID),
	)

	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET id = $1, updated_at = NOW()
		WHERE id = $2
	`, newID, oldID)
	if err != nil {
		log.Error("failed to rekey profile", zap.Error(err))
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProfileNotFound
	}

	log.Info("profile rekeyed")
	return nil
}

func (r *repository) Update(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, column+" = $"+fmt.Sprint(len(args)))
	}

	if params.Name != nil {
		add("name", *params.Name)
	}
	if params.StoreName != nil {
		add("store_name", *params.StoreName)
	}
	if params.StoreDescription != nil {
		add("store_description", *params.StoreDescription)
	}
	if params.CoverImage != nil {
		add("cover_image_url", *params.CoverImage)
	}
	if params.Social != nil {
		add("instagram", params.Social.Instagram)
		add("facebook", params.Social.Facebook)
		add("whatsapp", params.Social.Whatsapp)
	}

	args = append(args, params.UserID)

	row := r.db.QueryRowContext(ctx, `
		UPDATE profiles
		SET `+strings.Join(set, ", ")+`
		WHERE id = $`+fmt.Sprint(len(args))+`
		RETURNING `+profileColumns, args...)

	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) SetRoleAndStatus(ctx context.Context, id string, role Role, status SellerStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET role = $1, status = $2, updated_at = NOW()
		WHERE id = $3
	`, role, status, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, role *Role) ([]*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles`
	args := []any{}

	if role != nil {
		query += ` WHERE role = $1`
		args = append(args, *role)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]*Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// ToggleFollow flips the follower row and recomputes the counter in one
// transaction so the count never drifts from the rows.
func (r *repository) ToggleFollow(ctx context.Context, sellerID, followerID string) (*FollowResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ToggleFollow"),
		zap.String("seller_id", sellerID),
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

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM seller_followers
			WHERE seller_id = $1 AND follower_id = $2
		)
	`, sellerID, followerID).Scan(&exists)
	if err != nil {
		return nil, err
	}

	if exists {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM seller_followers
			WHERE seller_id = $1 AND follower_id = $2
		`, sellerID, followerID)
	} else {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO seller_followers (seller_id, follower_id)
			VALUES ($1, $2)
		`, sellerID, followerID)
	}
	if err != nil {
		log.Error("failed to toggle follower row", zap.Error(err))
		return nil, err
	}

	var count int
	err = tx.QueryRowContext(ctx, `
		UPDATE profiles
		SET followers_count = (
			SELECT COUNT(*) FROM seller_followers WHERE seller_id = $1
		)
		WHERE id = $1
		RETURNING followers_count
	`, sellerID).Scan(&count)
	if err == sql.ErrNoRows {
		return nil, ErrSellerNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return &FollowResult{IsFollowing: !exists, FollowersCount: count}, nil
}
