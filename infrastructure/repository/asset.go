package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-ledger-api/internal/domain"
)

const assetTable = "campaign_assets"

var assetColumns = []string{
	"asset_id",
	"ledger_id",
	"external_id",
	"url",
	"asset_type",
	"channels",
	"attached_by",
	"metadata",
	"created_at",
}

type AssetRepository interface {
	Insert(ctx context.Context, asset *domain.CampaignAsset) error
	ListByCampaign(ctx context.Context, ledgerID string, limit uint64) ([]domain.CampaignAsset, error)
}

type assetRepository struct {
	conn postgres.Conn
}

func NewAssetRepository(conn postgres.Conn) AssetRepository {
	return &assetRepository{
		conn: conn,
	}
}

func (r *assetRepository) Insert(ctx context.Context, asset *domain.CampaignAsset) error {
	query, args, err := squirrel.
		Insert(assetTable).
		Columns(assetColumns...).
		Values(
			asset.AssetID,
			asset.LedgerID,
			asset.ExternalID,
			asset.URL,
			asset.AssetType,
			pq.Array(asset.Channels),
			asset.AttachedBy,
			asset.Metadata,
			asset.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de inserção de asset")
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao inserir asset")
	}

	return nil
}

func (r *assetRepository) ListByCampaign(ctx context.Context, ledgerID string, limit uint64) ([]domain.CampaignAsset, error) {
	queryBuilder := squirrel.
		Select(assetColumns...).
		From(assetTable).
		Where(squirrel.Eq{"ledger_id": ledgerID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(limit)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir query de listagem de assets")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar assets")
	}
	defer rows.Close()

	assets := make([]domain.CampaignAsset, 0)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear asset")
		}
		assets = append(assets, *asset)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return assets, nil
}

func scanAsset(rows *sql.Rows) (*domain.CampaignAsset, error) {
	asset := &domain.CampaignAsset{}

	err := rows.Scan(
		&asset.AssetID,
		&asset.LedgerID,
		&asset.ExternalID,
		&asset.URL,
		&asset.AssetType,
		pq.Array(&asset.Channels),
		&asset.AttachedBy,
		&asset.Metadata,
		&asset.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return asset, nil
}
