package service

import (
	"context"
	"errors"
	"strings"

	"github.com/akarpov/oilpulse/internal/domain/models"
	"github.com/akarpov/oilpulse/internal/storage"
)

// ErrEmptyProductName rejects catalog entries without a usable name.
var ErrEmptyProductName = errors.New("product name must not be empty")

// SnapshotService defines business logic for the read side: listing
// snapshots, exposing filter choices and maintaining the product catalog.
// This decouples HTTP handlers from data access.
type SnapshotService interface {
	ListSnapshots(ctx context.Context, f models.SnapshotFilter) ([]models.Snapshot, int, error)
	ListInstrumentCodes(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, name string) (models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type snapshotService struct {
	repo storage.SnapshotRepository
}

func NewSnapshotService(repo storage.SnapshotRepository) SnapshotService {
	return &snapshotService{repo: repo}
}

func (s *snapshotService) ListSnapshots(_ context.Context, f models.SnapshotFilter) ([]models.Snapshot, int, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	return s.repo.ListSnapshots(f)
}

func (s *snapshotService) ListInstrumentCodes(_ context.Context) ([]string, error) {
	return s.repo.ListInstrumentCodes()
}

func (s *snapshotService) CreateProduct(_ context.Context, name string) (models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Product{}, ErrEmptyProductName
	}
	return s.repo.CreateProduct(name)
}

func (s *snapshotService) ListProducts(_ context.Context) ([]models.Product, error) {
	return s.repo.ListProducts()
}
