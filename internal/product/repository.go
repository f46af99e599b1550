package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"madaba-market-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, id string, params CreateParams) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*Product, error)
	ListPublic(ctx context.Context, q PublicQuery) ([]*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, params UpdateParams) (*Product, error)
	SetFlag(ctx context.Context, id string, flag Flag, value bool) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, name, name_ar, description, description_ar,
	price, category, image_url, seller_id, seller_name,
	stock, featured, approved, suspended, purchase_count,
	created_at, updated_at
`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var r productRow
	err := row.Scan(
		&r.ID, &r.Name, &r.NameAr, &r.Description, &r.DescriptionAr,
		&r.Price, &r.Category, &r.ImageURL, &r.SellerID, &r.SellerName,
		&r.Stock, &r.Featured, &r.Approved, &r.Suspended, &r.PurchaseCount,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r.toEntity(), nil
}

func (r *repository) Create(ctx context.Context, id string, params CreateParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("seller_id", params.SellerID),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (
			id, name, name_ar, description, description_ar,
			price, category, image_url, seller_id, seller_name, stock
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING `+productColumns,
		id, params.Name, params.NameAr, params.Description, params.DescriptionAr,
		params.Price, params.Category, params.Image,
		params.SellerID, params.SellerName, params.Stock,
	)

	p, err := scanProduct(row)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID))
	return p, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) ListBySeller(ctx context.Context, sellerID string) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE seller_id = $1
		ORDER BY created_at DESC
	`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ListPublic only ever returns approved, non-suspended products. The
// visibility filter lives in the query so hidden rows never leave storage.
func (r *repository) ListPublic(ctx context.Context, q PublicQuery) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListPublic"),
	)
	start := time.Now()

	// ---------- pagination ----------
	finalLimit := int32(20)
	if q.Limit > 0 {
		finalLimit = q.Limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	finalPage := int32(1)
	if q.Page > 0 {
		finalPage = q.Page
	}
	offset := (finalPage - 1) * finalLimit

	// ---------- where ----------
	where := []string{"approved = TRUE", "suspended = FALSE"}
	args := []any{}

	if q.Category != "" {
		args = append(args, q.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		where = append(where, fmt.Sprintf(
			"(name ILIKE $%d OR name_ar ILIKE $%d)", len(args), len(args),
		))
	}
	if q.Featured != nil {
		args = append(args, *q.Featured)
		where = append(where, fmt.Sprintf("featured = $%d", len(args)))
	}

	query := `
	SELECT ` + productColumns + `
	FROM products
	WHERE ` + strings.Join(where, " AND ") + `
	ORDER BY created_at DESC
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(products)),
		zap.Duration("duration", time.Since(start)),
	)
	return products, nil
}

func (r *repository) ListAll(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *repository) Update(ctx context.Context, params UpdateParams) (*Product, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Name != nil {
		add("name", *params.Name)
	}
	if params.NameAr != nil {
		add("name_ar", *params.NameAr)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.DescriptionAr != nil {
		add("description_ar", *params.DescriptionAr)
	}
	if params.Price != nil {
		add("price", *params.Price)
	}
	if params.Category != nil {
		add("category", *params.Category)
	}
	if params.Image != nil {
		add("image_url", *params.Image)
	}
	if params.Stock != nil {
		add("stock", *params.Stock)
	}

	args = append(args, params.ID)

	row := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET `+strings.Join(set, ", ")+`
		WHERE id = $`+fmt.Sprint(len(args))+`
		RETURNING `+productColumns, args...)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) SetFlag(ctx context.Context, id string, flag Flag, value bool) error {
	if !flag.Valid() {
		return ErrInvalidFlag
	}

	// flag is restricted to the known column names above.
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET `+string(flag)+` = $1, updated_at = NOW()
		WHERE id = $2
	`, value, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func collectProducts(rows *sql.Rows) ([]*Product, error) {
	products := make([]*Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
