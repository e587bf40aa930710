package persistent

import (
	"context"
	"fmt"

	"opftube/pkg/models"
	"opftube/services/api/internal/entity"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := &models.Category{ID: category.ID, Name: category.Name, Icon: category.Icon}
	if err := r.db.WithContext(ctx).Create(categoryModel).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	*category = *ToCategoryEntity(categoryModel)
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var categoryModel models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToCategoryEntity(&categoryModel), nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for i := range categoryModels {
		categories = append(categories, ToCategoryEntity(&categoryModels[i]))
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	res := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", category.ID).
		Updates(map[string]interface{}{"name": category.Name, "icon": category.Icon})
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete also drops the category from every video that referenced it.
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM video_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
