package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/sarensabesk/HireAI/internal/domain"
)

// AnalysisRepo persists completed analyses using a minimal pgx pool.
type AnalysisRepo struct{ Pool PgxPool }

// PgxPool is a minimal subset of pgxpool used by the repo for easy testing.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// NewAnalysisRepo constructs an AnalysisRepo with the given pool.
func NewAnalysisRepo(p PgxPool) *AnalysisRepo { return &AnalysisRepo{Pool: p} }

// analysisRecord is the JSONB shape stored alongside the scalar columns.
type analysisRecord struct {
	Breakdown       domain.ScoreBreakdown  `json:"breakdown"`
	Keywords        domain.KeywordAnalysis `json:"keywords"`
	Recommendations []string               `json:"recommendations"`
	SkillGaps       domain.SkillGapReport  `json:"skill_gaps"`
}

// Save stores a completed analysis and returns its id (generates one when
// empty).
func (r *AnalysisRepo) Save(ctx domain.Context, a domain.Analysis) (string, error) {
	tracer := otel.Tracer("repo.analyses")
	ctx, span := tracer.Start(ctx, "analyses.Save")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "analyses"),
	)

	id := a.ID
	if id == "" {
		id = uuid.New().String()
	}
	detail, err := json.Marshal(analysisRecord{
		Breakdown:       a.Breakdown,
		Keywords:        a.Keywords,
		Recommendations: a.Recommendations,
		SkillGaps:       a.SkillGaps,
	})
	if err != nil {
		return "", fmt.Errorf("op=analysis.save: marshal detail: %w", err)
	}

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	q := `INSERT INTO analyses (id, score, error, summary, ats_level, ats_label, domain, detail, created_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err = r.Pool.Exec(ctx, q, id, a.Score, a.Error, a.Summary,
		a.ATSStatus.Level, a.ATSStatus.Label, a.Domain, detail, createdAt)
	if err != nil {
		return "", fmt.Errorf("op=analysis.save: %w", err)
	}
	return id, nil
}

// ListRecent returns the most recent analyses, newest first.
func (r *AnalysisRepo) ListRecent(ctx domain.Context, limit int) ([]domain.Analysis, error) {
	tracer := otel.Tracer("repo.analyses")
	ctx, span := tracer.Start(ctx, "analyses.ListRecent")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "analyses"),
	)

	if limit <= 0 {
		limit = 20
	}
	q := `SELECT id, score, error, summary, ats_level, ats_label, domain, detail, created_at
	      FROM analyses ORDER BY created_at DESC LIMIT $1`
	rows, err := r.Pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("op=analysis.list: %w", err)
	}
	defer rows.Close()

	var out []domain.Analysis
	for rows.Next() {
		var (
			a      domain.Analysis
			detail []byte
		)
		if err := rows.Scan(&a.ID, &a.Score, &a.Error, &a.Summary,
			&a.ATSStatus.Level, &a.ATSStatus.Label, &a.Domain, &detail, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=analysis.list: scan: %w", err)
		}
		var rec analysisRecord
		if err := json.Unmarshal(detail, &rec); err != nil {
			return nil, fmt.Errorf("op=analysis.list: unmarshal detail: %w", err)
		}
		a.Breakdown = rec.Breakdown
		a.Keywords = rec.Keywords
		a.Recommendations = rec.Recommendations
		a.SkillGaps = rec.SkillGaps
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=analysis.list: %w", err)
	}
	return out, nil
}
