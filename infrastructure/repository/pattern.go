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

const patternTable = "learned_patterns"

var patternColumns = []string{
	"pattern_id",
	"agent_name",
	"pattern_type",
	"rule",
	"confidence_level",
	"sample_size",
	"is_active",
	"created_at",
}

// PatternFilter restringe a listagem de padrões aprendidos
type PatternFilter struct {
	AgentName   string
	PatternType string
	Limit       uint64
}

type PatternRepository interface {
	Insert(ctx context.Context, pattern *domain.LearnedPattern) error
	List(ctx context.Context, filter PatternFilter) ([]domain.LearnedPattern, error)
	UpdateConfidence(ctx context.Context, patternID string, confidence float64, sampleSize int) (bool, error)
	CountBetween(ctx context.Context, from, to time.Time) (int, error)
}

type patternRepository struct {
	conn postgres.Conn
}

func NewPatternRepository(conn postgres.Conn) PatternRepository {
	return &patternRepository{
		conn: conn,
	}
}

func (r *patternRepository) Insert(ctx context.Context, pattern *domain.LearnedPattern) error {
	query, args, err := squirrel.
		Insert(patternTable).
		Columns(patternColumns...).
		Values(
			pattern.PatternID,
			pattern.AgentName,
			pattern.PatternType,
			pattern.Rule,
			pattern.ConfidenceLevel,
			pattern.SampleSize,
			pattern.IsActive,
			pattern.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de inserção de padrão")
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao inserir padrão aprendido")
	}

	return nil
}

// List retorna apenas padrões ativos, do mais recente para o mais antigo
func (r *patternRepository) List(ctx context.Context, filter PatternFilter) ([]domain.LearnedPattern, error) {
	queryBuilder := squirrel.
		Select(patternColumns...).
		From(patternTable).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.AgentName != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"agent_name": filter.AgentName})
	}
	if filter.PatternType != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"pattern_type": filter.PatternType})
	}
	if filter.Limit > 0 {
		queryBuilder = queryBuilder.Limit(filter.Limit)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir query de listagem de padrões")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar padrões aprendidos")
	}
	defer rows.Close()

	patterns := make([]domain.LearnedPattern, 0)
	for rows.Next() {
		pattern, err := scanPattern(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear padrão")
		}
		patterns = append(patterns, *pattern)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return patterns, nil
}

// UpdateConfidence revisa confiança e tamanho da amostra de um padrão
// existente; retorna false quando o id não existe
func (r *patternRepository) UpdateConfidence(ctx context.Context, patternID string, confidence float64, sampleSize int) (bool, error) {
	query, args, err := squirrel.
		Update(patternTable).
		Set("confidence_level", confidence).
		Set("sample_size", sampleSize).
		Where(squirrel.Eq{"pattern_id": patternID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "erro ao construir query de atualização de padrão")
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, errors.Wrap(err, "erro ao atualizar padrão aprendido")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "erro ao verificar linhas afetadas")
	}

	return affected > 0, nil
}

func (r *patternRepository) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(patternTable).
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.LtOrEq{"created_at": to}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir query de contagem de padrões")
	}

	var count int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "erro ao contar padrões aprendidos")
	}

	return count, nil
}

func scanPattern(rows *sql.Rows) (*domain.LearnedPattern, error) {
	pattern := &domain.LearnedPattern{}

	err := rows.Scan(
		&pattern.PatternID,
		&pattern.AgentName,
		&pattern.PatternType,
		&pattern.Rule,
		&pattern.ConfidenceLevel,
		&pattern.SampleSize,
		&pattern.IsActive,
		&pattern.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return pattern, nil
}
