package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Pjt727/odautofill/data/db"
	"github.com/Pjt727/odautofill/timetable"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TimetableStore keeps each class's schedule as jsonb
type TimetableStore struct {
	pool *pgxpool.Pool
}

func NewTimetableStore(pool *pgxpool.Pool) *TimetableStore {
	return &TimetableStore{pool: pool}
}

func (s *TimetableStore) Get(ctx context.Context, key timetable.Key) (timetable.Timetable, error) {
	q := db.New(s.pool)
	row, err := q.GetTimetable(ctx, db.GetTimetableParams{
		Course:   key.Course,
		Program:  key.Program,
		Semester: key.Semester,
		Section:  key.Section,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return timetable.Timetable{}, fmt.Errorf("%w: %s", timetable.ErrTimetableNotFound, key)
	}
	if err != nil {
		return timetable.Timetable{}, fmt.Errorf("%w: %w", timetable.ErrStoreUnavailable, err)
	}

	tt := timetable.Timetable{Key: key}
	if err := json.Unmarshal(row.Schedule, &tt.Schedule); err != nil {
		return timetable.Timetable{}, fmt.Errorf("%w: bad schedule for %s: %w", timetable.ErrStoreUnavailable, key, err)
	}
	return tt, nil
}

func (s *TimetableStore) Save(ctx context.Context, tt timetable.Timetable) error {
	schedule, err := json.Marshal(tt.Schedule)
	if err != nil {
		return err
	}
	q := db.New(s.pool)
	err = q.UpsertTimetable(ctx, db.UpsertTimetableParams{
		Course:   tt.Course,
		Program:  tt.Program,
		Semester: tt.Semester,
		Section:  tt.Section,
		Schedule: schedule,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", timetable.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *TimetableStore) List(ctx context.Context) ([]timetable.Key, error) {
	q := db.New(s.pool)
	rows, err := q.ListTimetableKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", timetable.ErrStoreUnavailable, err)
	}
	keys := make([]timetable.Key, len(rows))
	for i, row := range rows {
		keys[i] = timetable.Key{
			Course:   row.Course,
			Program:  row.Program,
			Semester: row.Semester,
			Section:  row.Section,
		}
	}
	return keys, nil
}
