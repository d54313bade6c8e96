package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mindhaven/backend/internal/model/journal"
)

// JournalStore implements journal.Store over SQL.
type JournalStore struct {
	db *sqlx.DB
}

// NewJournalStore returns a SQL-backed journal store.
func NewJournalStore(db *sqlx.DB) *JournalStore {
	return &JournalStore{db: db}
}

type journalRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Mood      string    `db:"mood"`
	Tags      string    `db:"tags"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r journalRow) toEntry() journal.Entry {
	return journal.Entry{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Content:   r.Content,
		Mood:      r.Mood,
		Tags:      unmarshalTags(r.Tags),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (s *JournalStore) Create(ctx context.Context, entry journal.Entry) (journal.Entry, error) {
	entry.ID = uuid.NewString()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	entry.UpdatedAt = entry.CreatedAt

	query := s.db.Rebind(`
		INSERT INTO journal_entries (id, user_id, title, content, mood, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.Title, entry.Content, entry.Mood,
		marshalTags(entry.Tags), entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return journal.Entry{}, err
	}
	return entry, nil
}

func (s *JournalStore) GetByID(ctx context.Context, userID, id string) (journal.Entry, error) {
	var row journalRow
	query := s.db.Rebind(`SELECT * FROM journal_entries WHERE id = ? AND user_id = ?`)
	if err := s.db.GetContext(ctx, &row, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return journal.Entry{}, journal.ErrNotFound
		}
		return journal.Entry{}, err
	}
	return row.toEntry(), nil
}

func (s *JournalStore) Update(ctx context.Context, entry journal.Entry) (journal.Entry, error) {
	entry.UpdatedAt = time.Now().UTC()

	query := s.db.Rebind(`
		UPDATE journal_entries SET title = ?, content = ?, mood = ?, tags = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`)
	result, err := s.db.ExecContext(ctx, query,
		entry.Title, entry.Content, entry.Mood, marshalTags(entry.Tags),
		entry.UpdatedAt, entry.ID, entry.UserID)
	if err != nil {
		return journal.Entry{}, err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return journal.Entry{}, journal.ErrNotFound
	}
	return s.GetByID(ctx, entry.UserID, entry.ID)
}

func (s *JournalStore) Delete(ctx context.Context, userID, id string) error {
	query := s.db.Rebind(`DELETE FROM journal_entries WHERE id = ? AND user_id = ?`)
	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return journal.ErrNotFound
	}
	return nil
}

func (s *JournalStore) ListByUser(ctx context.Context, userID string, filter journal.ListFilter) ([]journal.Entry, int, error) {
	where := `WHERE user_id = ?`
	args := []any{userID}
	if filter.Mood != "" {
		where += ` AND mood = ?`
		args = append(args, filter.Mood)
	}
	if !filter.Start.IsZero() {
		where += ` AND created_at >= ?`
		args = append(args, filter.Start)
	}
	if !filter.End.IsZero() {
		where += ` AND created_at <= ?`
		args = append(args, filter.End)
	}
	if filter.Search != "" {
		where += ` AND (LOWER(title) LIKE ? OR LOWER(content) LIKE ?)`
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	countQuery := s.db.Rebind(`SELECT COUNT(*) FROM journal_entries ` + where)
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT * FROM journal_entries ` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		listQuery += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	var rows []journalRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(listQuery), args...); err != nil {
		return nil, 0, err
	}

	entries := make([]journal.Entry, len(rows))
	for i, row := range rows {
		entries[i] = row.toEntry()
	}
	return entries, total, nil
}

func (s *JournalStore) ActivityDates(ctx context.Context, userID string, since time.Time) ([]time.Time, error) {
	var dates []time.Time
	query := s.db.Rebind(`
		SELECT created_at FROM journal_entries
		WHERE user_id = ? AND created_at >= ?
		ORDER BY created_at DESC`)
	if err := s.db.SelectContext(ctx, &dates, query, userID, since); err != nil {
		return nil, err
	}
	return dates, nil
}
