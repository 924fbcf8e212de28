package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Lixing-Zhang/crud-admin/internal/models"
	"github.com/Lixing-Zhang/crud-admin/internal/repository"
)

// Action names the mutation a Save or Delete performed
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// CatalogService mirrors the products API for the admin pages.
// It keeps the collection from the last successful fetch and replaces it
// wholesale after every mutation.
type CatalogService struct {
	repo   repository.ProductRepository
	logger *slog.Logger

	mu        sync.RWMutex
	products  []models.Product
	fetchedAt time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// Refresh fetches the full collection and replaces the snapshot.
// On error the previous snapshot is kept.
func (s *CatalogService) Refresh(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.mu.Lock()
	s.products = products
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	s.logger.Debug("product snapshot refreshed", "count", len(products))
	return slices.Clone(products), nil
}

// Products returns a copy of the current snapshot
func (s *CatalogService) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

// Snapshot returns the current snapshot size and when it was fetched
func (s *CatalogService) Snapshot() (count int, fetchedAt time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), s.fetchedAt
}

// Find looks a product up in the snapshot without calling the API
func (s *CatalogService) Find(id int64) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

// Save creates the product when id is zero and updates it otherwise,
// then refreshes the snapshot.
func (s *CatalogService) Save(ctx context.Context, id int64, in models.ProductInput) (Action, error) {
	action := ActionCreated
	var err error
	if id == 0 {
		_, err = s.repo.Create(ctx, in)
	} else {
		action = ActionUpdated
		_, err = s.repo.Update(ctx, id, in)
	}
	if err != nil {
		return "", fmt.Errorf("failed to save product %d: %w", id, err)
	}

	s.logger.Info("product saved", "action", action, "product_id", id, "title", in.Title)

	if _, err := s.Refresh(ctx); err != nil {
		return action, err
	}
	return action, nil
}

// Delete removes the product and refreshes the snapshot
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}

	s.logger.Info("product deleted", "product_id", id)

	_, err := s.Refresh(ctx)
	return err
}
