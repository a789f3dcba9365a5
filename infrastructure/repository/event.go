package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-ledger-api/internal/domain"
)

const eventTable = "campaign_events"

var eventColumns = []string{
	"event_id",
	"ledger_id",
	"event_type",
	"agent_name",
	"data",
	"created_at",
}

type EventRepository interface {
	Insert(ctx context.Context, event *domain.CampaignEvent) error
	List(ctx context.Context, filter domain.EventFilter) ([]domain.CampaignEvent, error)
}

type eventRepository struct {
	conn postgres.Conn
}

func NewEventRepository(conn postgres.Conn) EventRepository {
	return &eventRepository{
		conn: conn,
	}
}

func (r *eventRepository) Insert(ctx context.Context, event *domain.CampaignEvent) error {
	query, args, err := squirrel.
		Insert(eventTable).
		Columns(eventColumns...).
		Values(
			event.EventID,
			event.LedgerID,
			event.EventType,
			event.AgentName,
			event.Data,
			event.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de inserção de evento")
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao inserir evento")
	}

	return nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]domain.CampaignEvent, error) {
	queryBuilder := squirrel.
		Select(eventColumns...).
		From(eventTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.LedgerID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"ledger_id": filter.LedgerID})
	}
	if filter.EventType != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"event_type": filter.EventType})
	}
	if filter.Limit > 0 {
		queryBuilder = queryBuilder.Limit(filter.Limit)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir query de listagem de eventos")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar eventos")
	}
	defer rows.Close()

	events := make([]domain.CampaignEvent, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear evento")
		}
		events = append(events, *event)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return events, nil
}

func scanEvent(rows *sql.Rows) (*domain.CampaignEvent, error) {
	event := &domain.CampaignEvent{}

	err := rows.Scan(
		&event.EventID,
		&event.LedgerID,
		&event.EventType,
		&event.AgentName,
		&event.Data,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return event, nil
}
