package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opaline-labs/taskdeck/internal/domain"
)

// HistoryRepository handles database operations for the append-only
// task history ledger. There is no update or delete path: entries are
// immutable once written.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Append creates a new history entry. CreatedAt is assigned by the
// database clock, which keeps per-task entries monotonically ordered
// regardless of which node handled the request.
func (r *HistoryRepository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	query, args, err := psql.
		Insert("task_history").
		Columns("task_id", "user_id", "comment", "completion_percentage").
		Values(entry.TaskID, entry.UserID, entry.Comment, entry.CompletionPercentage).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Append query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}

	return nil
}

// ListByTaskID retrieves all entries for a task, oldest first.
func (r *HistoryRepository) ListByTaskID(ctx context.Context, taskID string) ([]*domain.HistoryEntry, error) {
	query, args, err := psql.
		Select("id", "task_id", "user_id", "comment", "completion_percentage", "created_at").
		From("task_history").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByTaskID query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query task history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&entry.UserID,
			&entry.Comment,
			&entry.CompletionPercentage,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return entries, nil
}

// ListByTaskIDWithAuthors retrieves all entries for a task joined with
// author identity, oldest first. Used by the activity timeline.
func (r *HistoryRepository) ListByTaskIDWithAuthors(ctx context.Context, taskID string) ([]*domain.HistoryEntryWithAuthor, error) {
	query, args, err := psql.
		Select(
			"th.id", "th.task_id", "th.user_id", "th.comment",
			"th.completion_percentage", "th.created_at",
			"u.full_name", "u.email",
		).
		From("task_history th").
		Join("users u ON th.user_id = u.id").
		Where(sq.Eq{"th.task_id": taskID}).
		OrderBy("th.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByTaskIDWithAuthors query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query task history with authors: %w", err)
	}
	defer rows.Close()

	var entries []*domain.HistoryEntryWithAuthor
	for rows.Next() {
		var entry domain.HistoryEntryWithAuthor
		err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&entry.UserID,
			&entry.Comment,
			&entry.CompletionPercentage,
			&entry.CreatedAt,
			&entry.AuthorName,
			&entry.AuthorEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return entries, nil
}
