package backend

import (
	"context"

	"gvnatural/internal/domain"
)

// ProductsAPI wraps the public catalog endpoints.
type ProductsAPI struct {
	c *Client
}

func NewProductsAPI(c *Client) *ProductsAPI {
	return &ProductsAPI{c: c}
}

func (api *ProductsAPI) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := api.c.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (api *ProductsAPI) Get(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := api.c.get(ctx, "/products/"+id, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
