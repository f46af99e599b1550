package product

import "database/sql"

// productRow mirrors the products table columns. The application entity uses
// camelCase JSON while storage stays snake_case; this is the one place the
// two shapes meet.
type productRow struct {
	ID            string
	Name          string
	NameAr        sql.NullString
	Description   sql.NullString
	DescriptionAr sql.NullString
	Price         float64
	Category      sql.NullString
	ImageURL      sql.NullString
	SellerID      string
	SellerName    sql.NullString
	Stock         int
	Featured      bool
	Approved      bool
	Suspended     bool
	PurchaseCount int
	CreatedAt     sql.NullTime
	UpdatedAt     sql.NullTime
}

func (r *productRow) toEntity() *Product {
	p := &Product{
		ID:            r.ID,
		Name:          r.Name,
		NameAr:        r.NameAr.String,
		Description:   r.Description.String,
		DescriptionAr: r.DescriptionAr.String,
		Price:         r.Price,
		Category:      r.Category.String,
		Image:         r.ImageURL.String,
		SellerID:      r.SellerID,
		SellerName:    r.SellerName.String,
		Stock:         r.Stock,
		Featured:      r.Featured,
		Approved:      r.Approved,
		Suspended:     r.Suspended,
		PurchaseCount: r.PurchaseCount,
	}
	if r.CreatedAt.Valid {
		p.CreatedAt = r.CreatedAt.Time
	}
	if r.UpdatedAt.Valid {
		p.UpdatedAt = r.UpdatedAt.Time
	} else {
		p.UpdatedAt = p.CreatedAt
	}
	return p
}
