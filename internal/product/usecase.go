package product

import (
	"context"
	"errors"

	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/product/dto"
)

var ErrNotFound = errors.New("product not found")

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
