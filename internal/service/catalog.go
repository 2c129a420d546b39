package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

// ProductIndex is the full-text index mirrored from product writes.
type ProductIndex interface {
	Put(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	// Index is nil when search is not configured.
	Index ProductIndex
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Category) == "" || req.Price <= 0 || len(req.Images) == 0 {
		return nil, fail(ErrValidation, "Required fields are missing")
	}
	if req.Discount < 0 || req.Discount > 100 {
		return nil, fail(ErrValidation, "Discount must be between 0 and 100")
	}

	product := models.Product{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Sizes:       nonNil(req.Sizes),
		Size:        req.Size,
		Images:      req.Images,
		Stock:       req.Stock,
		Price:       req.Price,
		PrevPrice:   req.PrevPrice,
		Qty:         req.Qty,
		Discount:    req.Discount,
		Rating:      req.Rating,
	}
	product.RecomputeTotal()

	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		l.Error("create_product_error", "status", 500, "error", err)
		return nil, err
	}

	s.mirror(ctx, l, events.ProductCreated, &product)
	return &product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "Product not found")
		}
		return nil, err
	}
	return product, nil
}

// PatchProduct applies the non-nil fields of req. Images replace the stored
// list only when req.Images is non-empty.
func (s *CatalogService) PatchProduct(ctx context.Context, id uuid.UUID, req transport.PatchProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.patch_product", "product_id", id)

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, fail(ErrValidation, "Title cannot be empty")
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		return nil, fail(ErrValidation, "Category cannot be empty")
	}
	if req.Price != nil && *req.Price <= 0 {
		return nil, fail(ErrValidation, "Price must be positive")
	}
	if req.Discount != nil && (*req.Discount < 0 || *req.Discount > 100) {
		return nil, fail(ErrValidation, "Discount must be between 0 and 100")
	}

	product, err := s.Repo.PatchProduct(ctx, id, func(p *models.Product) {
		if req.Title != nil {
			p.Title = *req.Title
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.Type != nil {
			p.Type = *req.Type
		}
		if req.Sizes != nil {
			p.Sizes = req.Sizes
		}
		if req.Size != nil {
			p.Size = *req.Size
		}
		if req.Stock != nil {
			p.Stock = *req.Stock
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.PrevPrice != nil {
			p.PrevPrice = *req.PrevPrice
		}
		if req.Qty != nil {
			p.Qty = *req.Qty
		}
		if req.Discount != nil {
			p.Discount = *req.Discount
		}
		if req.Rating != nil {
			p.Rating = req.Rating
		}
		if len(req.Images) > 0 {
			p.Images = req.Images
		}
		p.RecomputeTotal()
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "Product not found")
		}
		l.Error("patch_product_error", "status", 500, "error", err)
		return nil, err
	}

	s.mirror(ctx, l, events.ProductUpdated, product)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete_product", "product_id", id)

	product, err := s.Repo.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(ErrNotFound, "Product not found")
		}
		l.Error("delete_product_error", "status", 500, "error", err)
		return err
	}

	s.mirror(ctx, l, events.ProductDeleted, product)
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, title string) (*models.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fail(ErrValidation, "Title is required")
	}

	cat := models.Category{Title: title}
	if err := s.Repo.CreateCategory(ctx, &cat); err != nil {
		if errors.Is(err, repo.ErrCategoryAlreadyExist) {
			return nil, fail(ErrConflict, "Category already exists")
		}
		return nil, err
	}
	return &cat, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "Category not found")
		}
		return nil, err
	}
	return cat, nil
}

// CategoryProducts resolves the category's product list in stored order.
func (s *CatalogService) CategoryProducts(ctx context.Context, id uuid.UUID) ([]models.Product, error) {
	cat, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetProductsByIDs(ctx, cat.Products)
}

func (s *CatalogService) Search(ctx context.Context, query string, from, size int) (*transport.SearchResult, error) {
	if s.Index == nil {
		return nil, fail(ErrUnavailable, "search disabled")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fail(ErrValidation, "Query is required")
	}
	if from < 0 {
		from = 0
	}
	if size <= 0 {
		size = util.DefaultPageSize
	}

	total, prods, err := s.Index.Search(ctx, query, from, size)
	if err != nil {
		logging.FromContext(ctx).Error("search_error", "status", 503, "error", err)
		return nil, fail(ErrUnavailable, "search unavailable")
	}
	return &transport.SearchResult{Total: total, Products: prods}, nil
}

// mirror publishes the product event and updates the search index. Both are
// best-effort: failures are logged and never fail the write.
func (s *CatalogService) mirror(ctx context.Context, l *slog.Logger, eventType string, p *models.Product) {
	id := p.ID.String()

	if s.Events != nil {
		if err := s.Events.PublishEvent(ctx, events.TopicProducts, id, events.New(eventType, id, p)); err != nil {
			l.Warn("publish_error", "topic", events.TopicProducts, "type", eventType, "error", err)
		}
	}

	if s.Index == nil {
		return
	}
	var err error
	if eventType == events.ProductDeleted {
		err = s.Index.Delete(ctx, id)
	} else {
		err = s.Index.Put(ctx, p)
	}
	if err != nil {
		l.Warn("index_error", "type", eventType, "error", err)
	}
}
