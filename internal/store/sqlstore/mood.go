package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mindhaven/backend/internal/model/mood"
)

// MoodStore implements mood.Store over SQL.
type MoodStore struct {
	db *sqlx.DB
}

// NewMoodStore returns a SQL-backed mood store.
func NewMoodStore(db *sqlx.DB) *MoodStore {
	return &MoodStore{db: db}
}

type moodRow struct {
	ID                 string    `db:"id"`
	UserID             string    `db:"user_id"`
	MoodScore          int       `db:"mood_score"`
	Emotions           string    `db:"emotions"`
	Notes              string    `db:"notes"`
	Activities         string    `db:"activities"`
	SleepHours         *float64  `db:"sleep_hours"`
	EnergyLevel        *int      `db:"energy_level"`
	StressLevel        *int      `db:"stress_level"`
	SocialInteractions *int      `db:"social_interactions"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

func (r moodRow) toEntry() mood.Entry {
	return mood.Entry{
		ID:                 r.ID,
		UserID:             r.UserID,
		MoodScore:          r.MoodScore,
		Emotions:           unmarshalTags(r.Emotions),
		Notes:              r.Notes,
		Activities:         unmarshalTags(r.Activities),
		SleepHours:         r.SleepHours,
		EnergyLevel:        r.EnergyLevel,
		StressLevel:        r.StressLevel,
		SocialInteractions: r.SocialInteractions,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func (s *MoodStore) Create(ctx context.Context, entry mood.Entry) (mood.Entry, error) {
	entry.ID = uuid.NewString()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	entry.UpdatedAt = entry.CreatedAt

	query := s.db.Rebind(`
		INSERT INTO mood_entries (
			id, user_id, mood_score, emotions, notes, activities,
			sleep_hours, energy_level, stress_level, social_interactions,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.MoodScore,
		marshalTags(entry.Emotions), entry.Notes, marshalTags(entry.Activities),
		entry.SleepHours, entry.EnergyLevel, entry.StressLevel, entry.SocialInteractions,
		entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return mood.Entry{}, err
	}
	return entry, nil
}

func (s *MoodStore) GetByID(ctx context.Context, userID, id string) (mood.Entry, error) {
	var row moodRow
	query := s.db.Rebind(`SELECT * FROM mood_entries WHERE id = ? AND user_id = ?`)
	if err := s.db.GetContext(ctx, &row, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mood.Entry{}, mood.ErrNotFound
		}
		return mood.Entry{}, err
	}
	return row.toEntry(), nil
}

func (s *MoodStore) Update(ctx context.Context, entry mood.Entry) (mood.Entry, error) {
	entry.UpdatedAt = time.Now().UTC()

	query := s.db.Rebind(`
		UPDATE mood_entries SET
			mood_score = ?, emotions = ?, notes = ?, activities = ?,
			sleep_hours = ?, energy_level = ?, stress_level = ?,
			social_interactions = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`)
	result, err := s.db.ExecContext(ctx, query,
		entry.MoodScore, marshalTags(entry.Emotions), entry.Notes, marshalTags(entry.Activities),
		entry.SleepHours, entry.EnergyLevel, entry.StressLevel, entry.SocialInteractions,
		entry.UpdatedAt, entry.ID, entry.UserID)
	if err != nil {
		return mood.Entry{}, err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return mood.Entry{}, mood.ErrNotFound
	}
	return s.GetByID(ctx, entry.UserID, entry.ID)
}

func (s *MoodStore) Delete(ctx context.Context, userID, id string) error {
	query := s.db.Rebind(`DELETE FROM mood_entries WHERE id = ? AND user_id = ?`)
	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return mood.ErrNotFound
	}
	return nil
}

func (s *MoodStore) ListByUser(ctx context.Context, userID string, filter mood.ListFilter) ([]mood.Entry, int, error) {
	where := `WHERE user_id = ?`
	args := []any{userID}
	if !filter.Start.IsZero() {
		where += ` AND created_at >= ?`
		args = append(args, filter.Start)
	}
	if !filter.End.IsZero() {
		where += ` AND created_at <= ?`
		args = append(args, filter.End)
	}
	if filter.MinScore > 0 {
		where += ` AND mood_score >= ?`
		args = append(args, filter.MinScore)
	}
	if filter.MaxScore > 0 {
		where += ` AND mood_score <= ?`
		args = append(args, filter.MaxScore)
	}

	var total int
	countQuery := s.db.Rebind(`SELECT COUNT(*) FROM mood_entries ` + where)
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT * FROM mood_entries ` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		listQuery += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	var rows []moodRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(listQuery), args...); err != nil {
		return nil, 0, err
	}

	entries := make([]mood.Entry, len(rows))
	for i, row := range rows {
		entries[i] = row.toEntry()
	}
	return entries, total, nil
}

func (s *MoodStore) ListBetween(ctx context.Context, userID string, start, end time.Time) ([]mood.Entry, error) {
	var rows []moodRow
	query := s.db.Rebind(`
		SELECT * FROM mood_entries
		WHERE user_id = ? AND created_at >= ? AND created_at <= ?
		ORDER BY created_at ASC`)
	if err := s.db.SelectContext(ctx, &rows, query, userID, start, end); err != nil {
		return nil, err
	}

	entries := make([]mood.Entry, len(rows))
	for i, row := range rows {
		entries[i] = row.toEntry()
	}
	return entries, nil
}

func (s *MoodStore) ActivityDates(ctx context.Context, userID string, since time.Time) ([]time.Time, error) {
	var dates []time.Time
	query := s.db.Rebind(`
		SELECT created_at FROM mood_entries
		WHERE user_id = ? AND created_at >= ?
		ORDER BY created_at DESC`)
	if err := s.db.SelectContext(ctx, &dates, query, userID, since); err != nil {
		return nil, err
	}
	return dates, nil
}
