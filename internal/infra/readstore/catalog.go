package readstore

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/queries"
)

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

const productColumns = `
	p.id, p.category_id, c.name, p.name, p.slug, p.description,
	p.price::text, p.stock, p.image_url, p.created_at, p.updated_at`

func (r *CatalogReadStore) FindActiveProducts(ctx context.Context, filter queries.ProductFilter) ([]*queries.ProductView, error) {
	q := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.is_active`
	args := make([]any, 0, 2)

	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		q += ` AND c.slug = $1`
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		if len(args) == 1 {
			q += ` AND p.name ILIKE $1`
		} else {
			q += ` AND p.name ILIKE $2`
		}
	}
	q += ` ORDER BY p.name`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	result := make([]*queries.ProductView, 0)
	for rows.Next() {
		view, err := scanProductView(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate products", err)
	}
	return result, nil
}

func (r *CatalogReadStore) FindActiveProductBySlug(ctx context.Context, slug string) (*queries.ProductView, error) {
	const q = `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.is_active AND p.slug = $1`

	row := r.db.QueryRow(ctx, q, slug)
	view, err := scanProductView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, err
	}
	return view, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProductView(row rowScanner) (*queries.ProductView, error) {
	var (
		view      queries.ProductView
		priceText string
	)
	err := row.Scan(
		&view.ID, &view.CategoryID, &view.CategoryName, &view.Name, &view.Slug,
		&view.Description, &priceText, &view.Stock, &view.ImageURL,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to scan product", err)
	}

	view.Price, err = pgconv.DecimalFromText(priceText)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid product price", err)
	}
	view.InStock = view.Stock > 0
	return &view, nil
}

func (r *CatalogReadStore) FindCategories(ctx context.Context) ([]*queries.CategoryView, error) {
	const q = `
		SELECT id, name, slug, description
		FROM categories
		ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list categories", err)
	}
	defer rows.Close()

	result := make([]*queries.CategoryView, 0)
	for rows.Next() {
		var view queries.CategoryView
		if err := rows.Scan(&view.ID, &view.Name, &view.Slug, &view.Description); err != nil {
			return nil, infra.WrapRepoErr("failed to scan category", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate categories", err)
	}
	return result, nil
}
