package storeservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicaelTR/ConectaVizinhos/internal/apperror"
	"github.com/MicaelTR/ConectaVizinhos/internal/image"
	"github.com/MicaelTR/ConectaVizinhos/internal/store"
	storedb "github.com/MicaelTR/ConectaVizinhos/internal/store/db"
	"github.com/MicaelTR/ConectaVizinhos/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=mockstoreservice

type Repository interface {
	Create(ctx context.Context, data store.Store) (*store.Store, error)
	GetByID(ctx context.Context, id uuid.UUID) (*store.Store, error)
	GetByOwner(ctx context.Context, ownerID int) ([]store.Store, error)
	GetAll(ctx context.Context, filter store.Filter) ([]store.Store, error)
	Update(ctx context.Context, data store.Store) (*store.Store, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID int) error
}

type SeedCatalog interface {
	Stores() []store.View
	ByID(id int) (*store.View, bool)
	Products(id int) []store.Product
}

type service struct {
	repository Repository
	images     image.Store
	seeds      SeedCatalog
	urls       store.ImageURLs
	logger     *zap.Logger
}

func New(
	repository Repository,
	images image.Store,
	seeds SeedCatalog,
	urls store.ImageURLs,
	logger *zap.Logger,
) *service {
	return &service{
		repository: repository,
		images:     images,
		seeds:      seeds,
		urls:       urls,
		logger:     logger,
	}
}

// ListPublic returns the public storefront. An empty result set falls
// back to the seed catalog so the listing is never empty.
func (s *service) ListPublic(ctx context.Context, filter store.Filter) ([]store.View, error) {
	stores, err := s.repository.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error("unexpected error when fetching stores", zap.Error(err))
		return nil, err
	}

	if len(stores) == 0 {
		return s.seeds.Stores(), nil
	}

	views := make([]store.View, len(stores))
	for i, st := range stores {
		views[i] = store.NewView(st, s.urls)
	}

	return views, nil
}

func (s *service) GetPublic(ctx context.Context, id store.ID) (*store.View, error) {
	if id.IsSeed() {
		view, ok := s.seeds.ByID(id.Seed())
		if !ok {
			return nil, apperror.ErrNotFound
		}
		view.Products = s.seeds.Products(id.Seed())
		return view, nil
	}

	existing, err := s.repository.GetByID(ctx, id.Record())
	if err != nil {
		if errors.Is(err, storedb.ErrStoreNotFound) {
			return nil, apperror.ErrNotFound
		}
		s.logger.Error("unexpected error when fetching store by id", zap.Error(err))
		return nil, err
	}

	view := store.NewView(*existing, s.urls)
	view.Products = []store.Product{}

	return &view, nil
}

// GetProducts returns the static product list of a seed store and an
// empty list for everything else.
func (s *service) GetProducts(id store.ID) []store.Product {
	if id.IsSeed() {
		return s.seeds.Products(id.Seed())
	}
	return []store.Product{}
}

func (s *service) GetImage(ctx context.Context, id uuid.UUID) (*image.File, error) {
	file, err := s.images.Get(ctx, id)
	if err != nil {
		if errors.Is(err, image.ErrFileNotFound) {
			return nil, apperror.ErrNotFound
		}
		s.logger.Error("unexpected error when fetching image", zap.Error(err))
		return nil, err
	}

	return file, nil
}

func (s *service) GetOwn(ctx context.Context, ownerID int) ([]store.View, error) {
	stores, err := s.repository.GetByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("unexpected error when fetching user stores", zap.Error(err))
		return nil, err
	}

	views := make([]store.View, len(stores))
	for i, st := range stores {
		views[i] = store.NewView(st, s.urls)
	}

	return views, nil
}

// CreateStore uploads the attached images first and only then persists
// the record, so a stored record never points at nothing. Images
// uploaded before a failure are removed again best-effort.
func (s *service) CreateStore(ctx context.Context, data store.Store, logo, banner *store.ImageUpload) (*store.Store, error) {
	uploaded := make([]uuid.UUID, 0, 2)

	if logo != nil {
		id, err := s.images.Put(ctx, logo.Reader, logo.Size, logo.ContentType)
		if err != nil {
			s.logger.Error("unexpected error when storing logo", zap.Error(err))
			return nil, err
		}
		data.LogoID = &id
		uploaded = append(uploaded, id)
	}

	if banner != nil {
		id, err := s.images.Put(ctx, banner.Reader, banner.Size, banner.ContentType)
		if err != nil {
			s.logger.Error("unexpected error when storing banner", zap.Error(err))
			s.logCleanupFailures(s.removeImages(ctx, uploaded))
			return nil, err
		}
		data.BannerID = &id
		uploaded = append(uploaded, id)
	}

	createdStore, err := s.repository.Create(ctx, data)
	if err != nil {
		s.logger.Error("unexpected error when creating store", zap.Error(err))
		s.logCleanupFailures(s.removeImages(ctx, uploaded))
		return nil, err
	}

	return createdStore, nil
}

func (s *service) UpdateStore(
	ctx context.Context,
	storeID uuid.UUID,
	ownerID int,
	patch store.Patch,
	logo, banner *store.ImageUpload,
) (*store.Store, error) {
	existing, err := s.getOwned(ctx, storeID, ownerID)
	if err != nil {
		return nil, err
	}

	patch.Apply(existing)

	var superseded []uuid.UUID

	if logo != nil {
		id, err := s.images.Put(ctx, logo.Reader, logo.Size, logo.ContentType)
		if err != nil {
			s.logger.Error("unexpected error when storing logo", zap.Error(err))
			return nil, err
		}
		if existing.LogoID != nil {
			superseded = append(superseded, *existing.LogoID)
		}
		existing.LogoID = &id
	}

	if banner != nil {
		id, err := s.images.Put(ctx, banner.Reader, banner.Size, banner.ContentType)
		if err != nil {
			s.logger.Error("unexpected error when storing banner", zap.Error(err))
			return nil, err
		}
		if existing.BannerID != nil {
			superseded = append(superseded, *existing.BannerID)
		}
		existing.BannerID = &id
	}

	updatedStore, err := s.repository.Update(ctx, *existing)
	if err != nil {
		if errors.Is(err, storedb.ErrStoreNotFound) {
			return nil, apperror.ErrNotFound
		}
		s.logger.Error("unexpected error when updating store", zap.Error(err))
		return nil, err
	}

	s.logCleanupFailures(s.removeImages(ctx, superseded))

	return updatedStore, nil
}

// DeleteStore removes the record and then its referenced images. The
// record deletion is authoritative; image cleanup failures are logged
// and never change the outcome.
func (s *service) DeleteStore(ctx context.Context, storeID uuid.UUID, ownerID int) error {
	existing, err := s.getOwned(ctx, storeID, ownerID)
	if err != nil {
		return err
	}

	if err := s.repository.Delete(ctx, storeID, ownerID); err != nil {
		if errors.Is(err, storedb.ErrStoreNotFound) {
			return apperror.ErrNotFound
		}
		s.logger.Error("unexpected error when deleting store", zap.Error(err))
		return err
	}

	var refs []uuid.UUID
	if existing.LogoID != nil {
		refs = append(refs, *existing.LogoID)
	}
	if existing.BannerID != nil {
		refs = append(refs, *existing.BannerID)
	}

	s.logCleanupFailures(s.removeImages(ctx, refs))

	return nil
}

// getOwned loads a store on behalf of its owner. A store owned by
// someone else reads as not found, so other users' stores stay
// invisible.
func (s *service) getOwned(ctx context.Context, storeID uuid.UUID, ownerID int) (*store.Store, error) {
	existing, err := s.repository.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, storedb.ErrStoreNotFound) {
			return nil, apperror.ErrNotFound
		}
		s.logger.Error("unexpected error when fetching store by id", zap.Error(err))
		return nil, err
	}

	if existing.OwnerID != ownerID {
		return nil, apperror.ErrNotFound
	}

	return existing, nil
}

// removeImages deletes the given objects and returns the failures so
// the caller can log them. A missing object counts as already removed.
func (s *service) removeImages(ctx context.Context, ids []uuid.UUID) []error {
	var failures []error
	for _, id := range utils.RemoveDuplicates(ids) {
		if err := s.images.Delete(ctx, id); err != nil && !errors.Is(err, image.ErrFileNotFound) {
			failures = append(failures, fmt.Errorf("image %s: %w", id, err))
		}
	}
	return failures
}

func (s *service) logCleanupFailures(failures []error) {
	for _, err := range failures {
		s.logger.Error("best-effort image cleanup failed", zap.Error(err))
	}
}
