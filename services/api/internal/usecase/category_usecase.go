package usecase

import (
	"context"
	"strings"

	"opftube/pkg/logger"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/repo/persistent"
)

// CategoryUseCase mutations are admin-only; the router enforces that.
type CategoryUseCase interface {
	List(ctx context.Context) ([]*entity.Category, error)
	Create(ctx context.Context, name, icon string) (*entity.Category, error)
	Update(ctx context.Context, id string, name, icon *string) (*entity.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryUseCase struct {
	categoryRepo persistent.CategoryRepository
	logger       *logger.Logger
}

func NewCategoryUseCase(categoryRepo persistent.CategoryRepository, logger *logger.Logger) CategoryUseCase {
	return &categoryUseCase{categoryRepo: categoryRepo, logger: logger}
}

func (uc *categoryUseCase) List(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.List(ctx)
}

func (uc *categoryUseCase) Create(ctx context.Context, name, icon string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("Name is required")
	}

	category := &entity.Category{Name: name, Icon: icon}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (uc *categoryUseCase) Update(ctx context.Context, id string, name, icon *string) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Category")
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, invalid("Name is required")
		}
		category.Name = trimmed
	}
	if icon != nil {
		category.Icon = *icon
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, lookup(err, "Category")
	}
	return category, nil
}

func (uc *categoryUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.categoryRepo.Delete(ctx, id); err != nil {
		return lookup(err, "Category")
	}
	uc.logger.Info("Category %s deleted", id)
	return nil
}
