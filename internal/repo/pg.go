package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/model"
)

const runColumns = `id, op, alphabet, input_path, output_path, input_size, output_size,
  symbols, distinct_syms, input_digest, output_digest, elapsed_ns, created_at`

type runRepoPostgres struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewRunRepoPostgres expects the schema created by Migrate.
func NewRunRepoPostgres(pool *pgxpool.Pool) RunRepo {
	return &runRepoPostgres{pool: pool, timeout: 5 * time.Second}
}

func (r *runRepoPostgres) Save(run *model.Run) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	_, err := r.pool.Exec(ctx, `INSERT INTO runs (`+runColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (id) DO NOTHING`,
		run.ID, run.Op, run.Alphabet, run.InputPath, run.OutputPath, run.InputSize, run.OutputSize,
		run.Symbols, run.Distinct, run.InputDigest, run.OutputDigest, int64(run.Elapsed), run.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

func (r *runRepoPostgres) FindByID(id string) (*model.Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	row := r.pool.QueryRow(ctx, `SELECT `+runColumns+` FROM runs WHERE id = $1`, id)
	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select run %s: %w", id, err)
	}
	return run, nil
}

func (r *runRepoPostgres) List() ([]*model.Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	rows, err := r.pool.Query(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	out := make([]*model.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func scanRun(row pgx.Row) (*model.Run, error) {
	var run model.Run
	var elapsed int64
	err := row.Scan(&run.ID, &run.Op, &run.Alphabet, &run.InputPath, &run.OutputPath,
		&run.InputSize, &run.OutputSize, &run.Symbols, &run.Distinct,
		&run.InputDigest, &run.OutputDigest, &elapsed, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	run.Elapsed = time.Duration(elapsed)
	return &run, nil
}
