package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"farmstock_backend/internal/models"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product, product image and
// supplier association database operations.
type ProductRepository interface {
	Create(executor SQLExecutor, product *models.Product) (int64, error)
	GetByID(id int64) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	GetAll(filters models.ProductFilters) ([]models.Product, int, error)
	GetDistinctProductTypes() ([]string, error)
	Update(executor SQLExecutor, product *models.Product) error
	Delete(executor SQLExecutor, id int64) error

	AddSupplier(executor SQLExecutor, productID, supplierID int64) error
	RemoveSupplier(executor SQLExecutor, productID, supplierID int64) error

	AddImage(executor SQLExecutor, image *models.ProductImage) (int64, error)
	GetImageByID(id int64) (*models.ProductImage, error)
	GetImagesByProductID(productID int64) ([]models.ProductImage, error)
	GetImagesByProductIDs(productIDs []int64) (map[int64][]models.ProductImage, error)
	GetAllImages(page, pageSize int) ([]models.ProductImage, int, error)
	DeleteImage(executor SQLExecutor, id int64) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `p.id, p.name, p.slug, p.product_type, p.description, p.price,
	p.animal_type_id, p.is_active, p.age,
	p.gender, p.weight, p.breed,
	p.cut_type, p.packaging, p.weight_per_unit, p.is_frozen,
	p.size, p.color, p.quantity_per_pack,
	p.created_at, p.updated_at, at.name AS animal_type_name`

func (r *productRepository) Create(executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO products
	          (name, slug, product_type, description, price, animal_type_id, is_active, age,
	           gender, weight, breed,
	           cut_type, packaging, weight_per_unit, is_frozen,
	           size, color, quantity_per_pack,
	           created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	          RETURNING id, created_at, updated_at`

	live, meat, egg := detailGroups(product)
	currentTime := time.Now()
	err := executor.QueryRow(query,
		product.Name, product.Slug, product.ProductType, product.Description, product.Price,
		product.AnimalTypeID, product.IsActive, product.Age,
		live.Gender, nullDecimal(live.Weight), live.Breed,
		meat.CutType, meat.Packaging, nullDecimal(meat.WeightPerUnit), meat.IsFrozen,
		egg.Size, egg.Color, egg.QuantityPerPack,
		currentTime, currentTime,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: product slug '%s' already exists (constraint: %s)", ErrDuplicateKey, product.Slug, pqErr.Constraint)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return 0, fmt.Errorf("%w: animal type %d does not exist (constraint: %s)", ErrNotFound, product.AnimalTypeID, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating product: %v", ErrDatabaseError, err)
	}
	return product.ID, nil
}

func (r *productRepository) GetByID(id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + `
	          FROM products p
	          JOIN animal_types at ON p.animal_type_id = at.id
	          WHERE p.id = $1`
	product, err := scanProduct(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, id, err)
	}

	images, err := r.GetImagesByProductID(id)
	if err != nil {
		return nil, err
	}
	product.Images = images
	return product, nil
}

func (r *productRepository) GetBySlug(slug string) (*models.Product, error) {
	query := `SELECT ` + productColumns + `
	          FROM products p
	          JOIN animal_types at ON p.animal_type_id = at.id
	          WHERE p.slug = $1`
	product, err := scanProduct(r.db.QueryRow(query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by slug %q: %v", ErrDatabaseError, slug, err)
	}

	images, err := r.GetImagesByProductID(product.ID)
	if err != nil {
		return nil, err
	}
	product.Images = images
	return product, nil
}

func (r *productRepository) GetAll(filters models.ProductFilters) ([]models.Product, int, error) {
	products := []models.Product{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + productColumns + `, COUNT(*) OVER() AS total_count
	  FROM products p
	  JOIN animal_types at ON p.animal_type_id = at.id`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.AnimalTypeID != nil {
		conditions = append(conditions, fmt.Sprintf("p.animal_type_id = $%d", argCount))
		args = append(args, *filters.AnimalTypeID)
		argCount++
	}
	if filters.ProductType != nil && *filters.ProductType != "" {
		conditions = append(conditions, fmt.Sprintf("p.product_type = $%d", argCount))
		args = append(args, *filters.ProductType)
		argCount++
	}
	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("p.is_active = $%d", argCount))
		args = append(args, *filters.IsActive)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY p.name")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		product, err := scanProductWithCount(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products = append(products, *product)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating products: %v", ErrDatabaseError, err)
	}
	return products, totalCount, nil
}

func (r *productRepository) GetDistinctProductTypes() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT product_type FROM products`)
	if err != nil {
		return nil, fmt.Errorf("%w: getting distinct product types: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	types := []string{}
	for rows.Next() {
		var productType string
		if err := rows.Scan(&productType); err != nil {
			return nil, fmt.Errorf("%w: scanning product type: %v", ErrDatabaseError, err)
		}
		types = append(types, productType)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product types: %v", ErrDatabaseError, err)
	}
	return types, nil
}

func (r *productRepository) Update(executor SQLExecutor, product *models.Product) error {
	query := `UPDATE products SET
	          name = $1, slug = $2, product_type = $3, description = $4, price = $5,
	          animal_type_id = $6, is_active = $7, age = $8,
	          gender = $9, weight = $10, breed = $11,
	          cut_type = $12, packaging = $13, weight_per_unit = $14, is_frozen = $15,
	          size = $16, color = $17, quantity_per_pack = $18,
	          updated_at = $19
	          WHERE id = $20`

	live, meat, egg := detailGroups(product)
	result, err := executor.Exec(query,
		product.Name, product.Slug, product.ProductType, product.Description, product.Price,
		product.AnimalTypeID, product.IsActive, product.Age,
		live.Gender, nullDecimal(live.Weight), live.Breed,
		meat.CutType, meat.Packaging, nullDecimal(meat.WeightPerUnit), meat.IsFrozen,
		egg.Size, egg.Color, egg.QuantityPerPack,
		time.Now(), product.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: product slug '%s' already exists (constraint: %s)", ErrDuplicateKey, product.Slug, pqErr.Constraint)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return fmt.Errorf("%w: animal type %d does not exist (constraint: %s)", ErrNotFound, product.AnimalTypeID, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating product ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product; images, supplier links, inventory and its
// transactions go with it via ON DELETE CASCADE.
func (r *productRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) AddSupplier(executor SQLExecutor, productID, supplierID int64) error {
	query := `INSERT INTO product_suppliers (product_id, supplier_id) VALUES ($1, $2)`
	_, err := executor.Exec(query, productID, supplierID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: supplier %d already linked to product %d", ErrDuplicateKey, supplierID, productID)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return fmt.Errorf("%w: product %d or supplier %d does not exist", ErrNotFound, productID, supplierID)
			}
		}
		return fmt.Errorf("%w: linking supplier %d to product %d: %v", ErrDatabaseError, supplierID, productID, err)
	}
	return nil
}

func (r *productRepository) RemoveSupplier(executor SQLExecutor, productID, supplierID int64) error {
	result, err := executor.Exec(
		`DELETE FROM product_suppliers WHERE product_id = $1 AND supplier_id = $2`,
		productID, supplierID,
	)
	if err != nil {
		return fmt.Errorf("%w: unlinking supplier %d from product %d: %v", ErrDatabaseError, supplierID, productID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) AddImage(executor SQLExecutor, image *models.ProductImage) (int64, error) {
	query := `INSERT INTO product_images (product_id, image_url, alt_text, is_primary, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`
	err := executor.QueryRow(query,
		image.ProductID, image.ImageURL, image.AltText, image.IsPrimary, time.Now(),
	).Scan(&image.ID, &image.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: product %d does not exist", ErrNotFound, image.ProductID)
		}
		return 0, fmt.Errorf("%w: adding product image: %v", ErrDatabaseError, err)
	}
	return image.ID, nil
}

func (r *productRepository) GetImageByID(id int64) (*models.ProductImage, error) {
	image := &models.ProductImage{}
	query := `SELECT id, product_id, image_url, alt_text, is_primary, created_at
	          FROM product_images WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&image.ID, &image.ProductID, &image.ImageURL, &image.AltText, &image.IsPrimary, &image.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product image %d: %v", ErrDatabaseError, id, err)
	}
	return image, nil
}

func (r *productRepository) GetImagesByProductID(productID int64) ([]models.ProductImage, error) {
	byProduct, err := r.GetImagesByProductIDs([]int64{productID})
	if err != nil {
		return nil, err
	}
	images := byProduct[productID]
	if images == nil {
		images = []models.ProductImage{}
	}
	return images, nil
}

func (r *productRepository) GetImagesByProductIDs(productIDs []int64) (map[int64][]models.ProductImage, error) {
	byProduct := map[int64][]models.ProductImage{}
	if len(productIDs) == 0 {
		return byProduct, nil
	}

	query := `SELECT id, product_id, image_url, alt_text, is_primary, created_at
	          FROM product_images
	          WHERE product_id = ANY($1)
	          ORDER BY is_primary DESC, id`
	rows, err := r.db.Query(query, pq.Array(productIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: getting product images: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var image models.ProductImage
		if err := rows.Scan(
			&image.ID, &image.ProductID, &image.ImageURL, &image.AltText, &image.IsPrimary, &image.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning product image: %v", ErrDatabaseError, err)
		}
		byProduct[image.ProductID] = append(byProduct[image.ProductID], image)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product images: %v", ErrDatabaseError, err)
	}
	return byProduct, nil
}

func (r *productRepository) GetAllImages(page, pageSize int) ([]models.ProductImage, int, error) {
	images := []models.ProductImage{}
	totalCount := 0
	query := `SELECT id, product_id, image_url, alt_text, is_primary, created_at, COUNT(*) OVER() AS total_count
	          FROM product_images
	          ORDER BY id
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting all product images: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var image models.ProductImage
		if err := rows.Scan(
			&image.ID, &image.ProductID, &image.ImageURL, &image.AltText,
			&image.IsPrimary, &image.CreatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning product image: %v", ErrDatabaseError, err)
		}
		images = append(images, image)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating product images: %v", ErrDatabaseError, err)
	}
	return images, totalCount, nil
}

func (r *productRepository) DeleteImage(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM product_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting product image %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// detailGroups returns the product's three variant groups with nil groups
// replaced by zero values, so all columns can be written in one statement.
func detailGroups(product *models.Product) (models.LiveAnimalDetails, models.MeatDetails, models.EggDetails) {
	var live models.LiveAnimalDetails
	var meat models.MeatDetails
	var egg models.EggDetails
	if product.Live != nil {
		live = *product.Live
	}
	if product.Meat != nil {
		meat = *product.Meat
	}
	if product.Egg != nil {
		egg = *product.Egg
	}
	return live, meat, egg
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func scanProduct(row scanner) (*models.Product, error) {
	return scanProductWithCount(row, nil)
}

func scanProductWithCount(row scanner, totalCount *int) (*models.Product, error) {
	product := &models.Product{}
	live := models.LiveAnimalDetails{}
	meat := models.MeatDetails{}
	egg := models.EggDetails{}
	var weight, weightPerUnit decimal.NullDecimal
	var animalTypeName string

	dest := []interface{}{
		&product.ID, &product.Name, &product.Slug, &product.ProductType, &product.Description, &product.Price,
		&product.AnimalTypeID, &product.IsActive, &product.Age,
		&live.Gender, &weight, &live.Breed,
		&meat.CutType, &meat.Packaging, &weightPerUnit, &meat.IsFrozen,
		&egg.Size, &egg.Color, &egg.QuantityPerPack,
		&product.CreatedAt, &product.UpdatedAt, &animalTypeName,
	}
	if totalCount != nil {
		dest = append(dest, totalCount)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if weight.Valid {
		live.Weight = &weight.Decimal
	}
	if weightPerUnit.Valid {
		meat.WeightPerUnit = &weightPerUnit.Decimal
	}
	product.Live = &live
	product.Meat = &meat
	product.Egg = &egg
	product.AnimalType = &models.AnimalType{ID: product.AnimalTypeID, Name: animalTypeName}
	return product, nil
}
