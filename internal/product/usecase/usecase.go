package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sweetshop/backend/internal/inventory"
	invdto "github.com/sweetshop/backend/internal/inventory/dto"
	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/pkg/cache"
	"github.com/sweetshop/backend/internal/pkg/logger"
	"github.com/sweetshop/backend/internal/pkg/search"
	"github.com/sweetshop/backend/internal/product"
	"github.com/sweetshop/backend/internal/product/dto"
	"go.uber.org/zap"
)

const productIndex = "products"

const productMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"description": { "type": "text" },
			"category_id": { "type": "keyword" },
			"price": { "type": "double" },
			"is_featured": { "type": "boolean" },
			"is_sugar_free": { "type": "boolean" },
			"created_at": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	stock  inventory.UseCase
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, stock inventory.UseCase, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		stock:  stock,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	id := uuid.New().String()
	now := time.Now()

	categoryID := &input.CategoryID
	if input.CategoryID == "" {
		categoryID = nil
	}

	p := &model.Product{
		BaseModel:   model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		CategoryID:  categoryID,
		Name:        input.Name,
		Price:       input.Price,
		Quantity:    0,
		IsFeatured:  input.IsFeatured,
		IsSugarFree: input.IsSugarFree,
		IsActive:    true,
	}
	if input.Description != "" {
		p.Description = &input.Description
	}
	if input.ImageURL != "" {
		p.ImageURL = &input.ImageURL
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// Initial stock goes through the adjustment protocol so the ledger
	// covers the product from its first unit.
	if input.InitialQuantity > 0 {
		result, err := uc.stock.AdjustStock(ctx, &invdto.AdjustStockInput{
			ProductID:    p.ID,
			Quantity:     input.InitialQuantity,
			Kind:         model.KindRestock,
			ActingUserID: input.ActingUserID,
			Note:         "initial stock",
		})
		if err != nil {
			return nil, fmt.Errorf("initial stock: %w", err)
		}
		p = result.Product
	}

	go uc.invalidateProductCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	// Lazy index creation keeps dev setups working without a migration step.
	_ = uc.es.CreateIndex(ctx, productIndex, productMapping)

	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil && uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var result struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return result.Products, result.Count, nil
			}
		}
	}

	// ES-first search when a query is present, relevance-ordered; SQL ILIKE
	// remains the fallback.
	if filters.SearchQuery != "" && uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  filters.SearchQuery,
					"fields": []string{"name^3", "description"},
				},
			},
			"from": (filters.Page - 1) * filters.PageSize,
		}
		if filters.PageSize > 0 {
			q["size"] = filters.PageSize
		}

		ids, total, err := uc.es.Search(ctx, productIndex, q)
		if err == nil {
			products, err := uc.repo.FindByIDs(ctx, ids)
			if err == nil {
				return products, total, nil
			}
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" && uc.cache != nil {
		cacheData := struct {
			Products []model.Product
			Count    int
		}{
			Products: products,
			Count:    count,
		}
		if data, err := json.Marshal(cacheData); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "products:list:*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	p.Name = input.Name
	p.Price = input.Price
	p.IsFeatured = input.IsFeatured
	p.IsSugarFree = input.IsSugarFree
	p.IsActive = input.IsActive
	if input.Description != "" {
		p.Description = &input.Description
	} else {
		p.Description = nil
	}
	if input.ImageURL != "" {
		p.ImageURL = &input.ImageURL
	} else {
		p.ImageURL = nil
	}
	if input.CategoryID != "" {
		catID := input.CategoryID
		p.CategoryID = &catID
	} else {
		p.CategoryID = nil
	}

	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateProductCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil // Already gone
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.invalidateProductCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndex, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}

	return nil
}
