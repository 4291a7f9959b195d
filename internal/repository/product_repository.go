package repository

import (
	"database/sql"
	"fmt"

	"github.com/skinory/skinory-api/internal/models"
)

// ProductRepository handles read access to the product catalog. Products are
// seeded out of band; the service never mutates them.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) GetByID(id string) (*models.Product, error) {
	query := `
		SELECT id, name, category, skin_type, price, rating, image_url
		FROM products
		WHERE id = $1
	`
	var product models.Product
	var imageURL sql.NullString
	err := r.db.QueryRow(query, id).Scan(
		&product.ID, &product.Name, &product.Category, &product.SkinType,
		&product.Price, &product.Rating, &imageURL,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if imageURL.Valid {
		product.ImageURL = imageURL.String
	}
	return &product, nil
}

// FindByCriteria returns all catalog products matching a skin type and
// category, best rated first.
func (r *ProductRepository) FindByCriteria(skinType, category string) ([]models.Product, error) {
	query := `
		SELECT id, name, category, skin_type, price, rating, image_url
		FROM products
		WHERE skin_type = $1 AND category = $2
		ORDER BY rating DESC, name ASC
	`
	rows, err := r.db.Query(query, skinType, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// BestByCategory returns the highest-rated product of every category for a
// skin type.
func (r *ProductRepository) BestByCategory(skinType string) ([]models.Product, error) {
	query := `
		SELECT DISTINCT ON (category) id, name, category, skin_type, price, rating, image_url
		FROM products
		WHERE skin_type = $1
		ORDER BY category ASC, rating DESC, name ASC
	`
	rows, err := r.db.Query(query, skinType)
	if err != nil {
		return nil, fmt.Errorf("failed to query best products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	products := []models.Product{}
	for rows.Next() {
		var product models.Product
		var imageURL sql.NullString
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Category, &product.SkinType,
			&product.Price, &product.Rating, &imageURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if imageURL.Valid {
			product.ImageURL = imageURL.String
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}
