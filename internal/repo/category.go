package repo

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	items := make([]models.Category, 0)
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) FindCategoryByTitle(ctx context.Context, title string) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("title = ?", title).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateCategory seeds the product list from products already filed under
// the title, so the index is complete from the start.
func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("title = ?", cat.Title).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryAlreadyExist
		}

		var ids []uuid.UUID
		if err := tx.Model(&models.Product{}).
			Where("category = ?", cat.Title).
			Order("created_at ASC").
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		cat.Products = append(make([]uuid.UUID, 0, len(ids)), ids...)

		if err := tx.Create(cat).Error; err != nil {
			if duplicate(err) {
				return ErrCategoryAlreadyExist
			}
			return err
		}
		return nil
	})
}

// addToCategory appends id to the category titled title. A missing category
// is not an error.
func addToCategory(tx *gorm.DB, title string, id uuid.UUID) error {
	var cat models.Category
	err := tx.Where("title = ?", title).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if slices.Contains(cat.Products, id) {
		return nil
	}
	cat.Products = append(cat.Products, id)
	return tx.Save(&cat).Error
}

func removeFromCategory(tx *gorm.DB, title string, id uuid.UUID) error {
	var cat models.Category
	err := tx.Where("title = ?", title).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(slices.Clone(cat.Products), func(p uuid.UUID) bool { return p == id })
	if len(kept) == len(cat.Products) {
		return nil
	}
	cat.Products = kept
	return tx.Save(&cat).Error
}
