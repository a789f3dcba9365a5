// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-ledger-api/internal/domain"
)

const campaignTable = "campaigns"

var campaignColumns = []string{
	"ledger_id",
	"project_name",
	"brief_ref",
	"status",
	"owner_name",
	"owner_email",
	"channels",
	"metadata",
	"created_at",
	"updated_at",
}

type CampaignRepository interface {
	Insert(ctx context.Context, campaign *domain.Campaign) error
	GetByLedgerID(ctx context.Context, ledgerID string) (*domain.Campaign, error)
	List(ctx context.Context, status string, limit uint64) ([]domain.Campaign, error)
	UpdateStatus(ctx context.Context, ledgerID, status string, metadata *domain.Metadata, updatedAt time.Time) error
	ReplaceMetadata(ctx context.Context, ledgerID string, metadata domain.Metadata, updatedAt time.Time) error
	Delete(ctx context.Context, ledgerID string) error
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
	CountCompletedBetween(ctx context.Context, from, to time.Time) (int, error)
}

type campaignRepository struct {
	conn postgres.Conn
}

func NewCampaignRepository(conn postgres.Conn) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) Insert(ctx context.Context, campaign *domain.Campaign) error {
	query, args, err := squirrel.
		Insert(campaignTable).
		Columns(campaignColumns...).
		Values(
			campaign.LedgerID,
			campaign.ProjectName,
			campaign.BriefRef,
			campaign.Status,
			campaign.OwnerName,
			campaign.OwnerEmail,
			pq.Array(campaign.Channels),
			campaign.Metadata,
			campaign.CreatedAt,
			campaign.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de inserção de campanha")
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao inserir campanha")
	}

	return nil
}

func (r *campaignRepository) GetByLedgerID(ctx context.Context, ledgerID string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns...).
		From(campaignTable).
		Where(squirrel.Eq{"ledger_id": ledgerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir query de busca de campanha")
	}

	row := r.conn.QueryRow(ctx, query, args...)
	campaign, err := scanCampaignRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao escanear campanha")
	}

	return campaign, nil
}

func (r *campaignRepository) List(ctx context.Context, status string, limit uint64) ([]domain.Campaign, error) {
	queryBuilder := squirrel.
		Select(campaignColumns...).
		From(campaignTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if status != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": status})
	}
	if limit > 0 {
		queryBuilder = queryBuilder.Limit(limit)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir query de listagem de campanhas")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar campanhas")
	}
	defer rows.Close()

	campaigns := make([]domain.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear campanha")
		}
		campaigns = append(campaigns, *campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return campaigns, nil
}

// UpdateStatus atualiza status e timestamp; quando metadata não é nil,
// o mapa inteiro é substituído (sem merge)
func (r *campaignRepository) UpdateStatus(ctx context.Context, ledgerID, status string, metadata *domain.Metadata, updatedAt time.Time) error {
	queryBuilder := squirrel.
		Update(campaignTable).
		Set("status", status).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"ledger_id": ledgerID}).
		PlaceholderFormat(squirrel.Dollar)

	if metadata != nil {
		queryBuilder = queryBuilder.Set("metadata", *metadata)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de atualização de status")
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao atualizar status da campanha")
	}

	return nil
}

// ReplaceMetadata substitui o mapa de metadata inteiro (sem merge)
func (r *campaignRepository) ReplaceMetadata(ctx context.Context, ledgerID string, metadata domain.Metadata, updatedAt time.Time) error {
	query, args, err := squirrel.
		Update(campaignTable).
		Set("metadata", metadata).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"ledger_id": ledgerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de substituição de metadata")
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao substituir metadata da campanha")
	}

	return nil
}

// Delete remove a campanha; o cascade para dependentes é responsabilidade
// da integridade referencial do banco
func (r *campaignRepository) Delete(ctx context.Context, ledgerID string) error {
	query, args, err := squirrel.
		Delete(campaignTable).
		Where(squirrel.Eq{"ledger_id": ledgerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de remoção de campanha")
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao remover campanha")
	}

	return nil
}

func (r *campaignRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	return r.countBetween(ctx, "created_at", from, to, nil)
}

func (r *campaignRepository) CountCompletedBetween(ctx context.Context, from, to time.Time) (int, error) {
	return r.countBetween(ctx, "updated_at", from, to, squirrel.Eq{"status": domain.StatusComplete})
}

func (r *campaignRepository) countBetween(ctx context.Context, column string, from, to time.Time, extra squirrel.Sqlizer) (int, error) {
	queryBuilder := squirrel.
		Select("COUNT(*)").
		From(campaignTable).
		Where(squirrel.GtOrEq{column: from}).
		Where(squirrel.LtOrEq{column: to}).
		PlaceholderFormat(squirrel.Dollar)

	if extra != nil {
		queryBuilder = queryBuilder.Where(extra)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir query de contagem de campanhas")
	}

	var count int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "erro ao contar campanhas")
	}

	return count, nil
}

func scanCampaign(rows *sql.Rows) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}

	err := rows.Scan(
		&campaign.LedgerID,
		&campaign.ProjectName,
		&campaign.BriefRef,
		&campaign.Status,
		&campaign.OwnerName,
		&campaign.OwnerEmail,
		pq.Array(&campaign.Channels),
		&campaign.Metadata,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return campaign, nil
}

func scanCampaignRow(row *sql.Row) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}

	err := row.Scan(
		&campaign.LedgerID,
		&campaign.ProjectName,
		&campaign.BriefRef,
		&campaign.Status,
		&campaign.OwnerName,
		&campaign.OwnerEmail,
		pq.Array(&campaign.Channels),
		&campaign.Metadata,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return campaign, nil
}
