package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-ledger-api/internal/domain"
)

const reportSnapshotTable = "report_snapshots"

type ReportSnapshotRepository interface {
	Insert(ctx context.Context, snapshot *domain.ReportSnapshot) error
}

type reportSnapshotRepository struct {
	conn postgres.Conn
}

func NewReportSnapshotRepository(conn postgres.Conn) ReportSnapshotRepository {
	return &reportSnapshotRepository{
		conn: conn,
	}
}

func (r *reportSnapshotRepository) Insert(ctx context.Context, snapshot *domain.ReportSnapshot) error {
	data := domain.Metadata{
		"period_start":        snapshot.Report.PeriodStart,
		"period_end":          snapshot.Report.PeriodEnd,
		"campaigns_created":   snapshot.Report.CampaignsCreated,
		"campaigns_completed": snapshot.Report.CampaignsCompleted,
		"metrics_tracked":     snapshot.Report.MetricsTracked,
		"patterns_learned":    snapshot.Report.PatternsLearned,
	}

	query, args, err := squirrel.
		Insert(reportSnapshotTable).
		Columns("snapshot_id", "window_label", "data", "generated_at").
		Values(snapshot.SnapshotID, snapshot.WindowLabel, data, snapshot.GeneratedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de inserção de snapshot")
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao inserir snapshot de relatório")
	}

	return nil
}
