package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"cotizador/internal/core/apperror"
	"cotizador/internal/domain/catalogs/client"
	"cotizador/internal/infrastructure/storage/postgres"
)

const clientTable = "cat_clients"

// ClientRepo implements client.Repository.
type ClientRepo struct {
	*BaseCatalogRepo[*client.Client]
}

// NewClientRepo creates a new client repository.
func NewClientRepo(txManager *postgres.TxManager) *ClientRepo {
	return &ClientRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*client.Client](
			txManager,
			clientTable,
			postgres.ExtractDBColumns[client.Client](),
			func() *client.Client { return &client.Client{} },
		),
	}
}

// FindByTaxID retrieves a client by fiscal identifier.
func (r *ClientRepo) FindByTaxID(ctx context.Context, taxID string) (*client.Client, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"tax_id": taxID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("client", taxID)
		}
		return nil, err
	}
	return item, nil
}
