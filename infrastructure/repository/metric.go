package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-ledger-api/internal/domain"
)

const metricTable = "campaign_metrics"

var metricColumns = []string{
	"metric_id",
	"ledger_id",
	"metric_type",
	"metric_value",
	"source",
	"tracked_at",
	"campaign_date",
	"metadata",
}

// MetricFilter restringe a listagem de métricas
type MetricFilter struct {
	LedgerID   string
	MetricType string
	Limit      uint64
}

type MetricRepository interface {
	InsertBatch(ctx context.Context, metrics []domain.CampaignMetric) error
	List(ctx context.Context, filter MetricFilter) ([]domain.CampaignMetric, error)
	CountBetween(ctx context.Context, from, to time.Time) (int, error)
}

type metricRepository struct {
	conn postgres.Conn
}

func NewMetricRepository(conn postgres.Conn) MetricRepository {
	return &metricRepository{
		conn: conn,
	}
}

// InsertBatch insere todas as métricas em uma única escrita
func (r *metricRepository) InsertBatch(ctx context.Context, metrics []domain.CampaignMetric) error {
	if len(metrics) == 0 {
		return nil
	}

	queryBuilder := squirrel.
		Insert(metricTable).
		Columns(metricColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, metric := range metrics {
		queryBuilder = queryBuilder.Values(
			metric.MetricID,
			metric.LedgerID,
			metric.MetricType,
			metric.MetricValue,
			metric.Source,
			metric.TrackedAt,
			metric.CampaignDate,
			metric.Metadata,
		)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de inserção de métricas")
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao inserir métricas")
	}

	return nil
}

// List retorna métricas da mais recente para a mais antiga
func (r *metricRepository) List(ctx context.Context, filter MetricFilter) ([]domain.CampaignMetric, error) {
	queryBuilder := squirrel.
		Select(metricColumns...).
		From(metricTable).
		OrderBy("tracked_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.LedgerID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"ledger_id": filter.LedgerID})
	}
	if filter.MetricType != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"metric_type": filter.MetricType})
	}
	if filter.Limit > 0 {
		queryBuilder = queryBuilder.Limit(filter.Limit)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir query de listagem de métricas")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar métricas")
	}
	defer rows.Close()

	metrics := make([]domain.CampaignMetric, 0)
	for rows.Next() {
		metric, err := scanMetric(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear métrica")
		}
		metrics = append(metrics, *metric)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return metrics, nil
}

func (r *metricRepository) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(metricTable).
		Where(squirrel.GtOrEq{"tracked_at": from}).
		Where(squirrel.LtOrEq{"tracked_at": to}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir query de contagem de métricas")
	}

	var count int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "erro ao contar métricas")
	}

	return count, nil
}

func scanMetric(rows *sql.Rows) (*domain.CampaignMetric, error) {
	metric := &domain.CampaignMetric{}

	err := rows.Scan(
		&metric.MetricID,
		&metric.LedgerID,
		&metric.MetricType,
		&metric.MetricValue,
		&metric.Source,
		&metric.TrackedAt,
		&metric.CampaignDate,
		&metric.Metadata,
	)
	if err != nil {
		return nil, err
	}

	return metric, nil
}
