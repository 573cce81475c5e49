package storedb

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicaelTR/ConectaVizinhos/internal/logging"
	"github.com/MicaelTR/ConectaVizinhos/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const storeColumns = `id, owner_id, name, category, description, address, phone,
	has_delivery, latitude, longitude, opens_at, closes_at, logo_id, banner_id, created_at`

type repository struct {
	client *pgxpool.Pool
	logger *zap.Logger
}

func New(client *pgxpool.Pool, logger *zap.Logger) *repository {
	return &repository{
		client: client,
		logger: logger,
	}
}

func scanStore(row pgx.Row) (*store.Store, error) {
	var s store.Store
	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.Name,
		&s.Category,
		&s.Description,
		&s.Address,
		&s.Phone,
		&s.HasDelivery,
		&s.Latitude,
		&s.Longitude,
		&s.OpensAt,
		&s.ClosesAt,
		&s.LogoID,
		&s.BannerID,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Create(ctx context.Context, data store.Store) (*store.Store, error) {
	query := `
		INSERT INTO stores (owner_id, name, category, description, address, phone,
			has_delivery, latitude, longitude, opens_at, closes_at, logo_id, banner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	logging.LogSQLQuery(r.logger, query)

	var id uuid.UUID
	if err := r.client.QueryRow(
		ctx,
		query,
		data.OwnerID,
		data.Name,
		data.Category,
		data.Description,
		data.Address,
		data.Phone,
		data.HasDelivery,
		data.Latitude,
		data.Longitude,
		data.OpensAt,
		data.ClosesAt,
		data.LogoID,
		data.BannerID,
	).Scan(&id); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id=$1`

	logging.LogSQLQuery(r.logger, query)

	s, err := scanStore(r.client.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	return s, nil
}

func (r *repository) GetByOwner(ctx context.Context, ownerID int) ([]store.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE owner_id=$1 ORDER BY created_at`

	logging.LogSQLQuery(r.logger, query)

	rows, err := r.client.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStores(rows)
}

func (r *repository) GetAll(ctx context.Context, filter store.Filter) ([]store.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE 1=1`
	args := []any{}
	n := 1

	if filter.Category != "" {
		query += fmt.Sprintf(` AND LOWER(category)=LOWER($%d)`, n)
		args = append(args, filter.Category)
		n++
	}
	if filter.Name != "" {
		query += fmt.Sprintf(` AND name ILIKE '%%' || $%d || '%%'`, n)
		args = append(args, filter.Name)
		n++
	}

	query += ` ORDER BY created_at`

	logging.LogSQLQuery(r.logger, query)

	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStores(rows)
}

// Update rewrites the mutable columns. The owner_id predicate keeps the
// ownership check enforced at the SQL level as well.
func (r *repository) Update(ctx context.Context, data store.Store) (*store.Store, error) {
	query := `
		UPDATE stores
		SET name=$1, category=$2, description=$3, address=$4, phone=$5,
			has_delivery=$6, latitude=$7, longitude=$8, opens_at=$9, closes_at=$10,
			logo_id=$11, banner_id=$12
		WHERE id=$13 AND owner_id=$14
		RETURNING ` + storeColumns

	logging.LogSQLQuery(r.logger, query)

	s, err := scanStore(r.client.QueryRow(
		ctx,
		query,
		data.Name,
		data.Category,
		data.Description,
		data.Address,
		data.Phone,
		data.HasDelivery,
		data.Latitude,
		data.Longitude,
		data.OpensAt,
		data.ClosesAt,
		data.LogoID,
		data.BannerID,
		data.ID,
		data.OwnerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	return s, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID, ownerID int) error {
	query := `DELETE FROM stores WHERE id=$1 AND owner_id=$2`

	logging.LogSQLQuery(r.logger, query)

	tag, err := r.client.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrStoreNotFound
	}

	return nil
}

func collectStores(rows pgx.Rows) ([]store.Store, error) {
	stores := make([]store.Store, 0)
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}
		stores = append(stores, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error: %v", err)
	}

	return stores, nil
}
