package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Pjt727/odautofill/data/db"
	"github.com/Pjt727/odautofill/odrequest"
	"github.com/Pjt727/odautofill/timetable"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RequestStore struct {
	pool *pgxpool.Pool
}

func NewRequestStore(pool *pgxpool.Pool) *RequestStore {
	return &RequestStore{pool: pool}
}

func (s *RequestStore) Save(ctx context.Context, r odrequest.Request) error {
	classes, err := json.Marshal(r.Classes)
	if err != nil {
		return err
	}
	date, err := r.Event.Time()
	if err != nil {
		return err
	}
	q := db.New(s.pool)
	return q.InsertOdRequest(ctx, db.InsertOdRequestParams{
		ID:               r.ID,
		CoordinatorName:  r.CoordinatorName,
		CoordinatorEmail: r.CoordinatorEmail,
		EventName:        r.EventName,
		EventDate:        pgtype.Date{Time: date, Valid: true},
		EventDay:         r.Event.Day.String(),
		EventFrom:        string(r.Event.From),
		EventTo:          string(r.Event.To),
		Classes:          classes,
		Status:           string(r.Status),
		CreatedAt:        pgtype.Timestamptz{Time: r.CreatedAt, Valid: true},
	})
}

func (s *RequestStore) Get(ctx context.Context, id string) (odrequest.Request, error) {
	q := db.New(s.pool)
	row, err := q.GetOdRequest(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return odrequest.Request{}, fmt.Errorf("%w: %s", odrequest.ErrNotFound, id)
	}
	if err != nil {
		return odrequest.Request{}, err
	}
	return fromRow(row)
}

func (s *RequestStore) List(ctx context.Context) ([]odrequest.Request, error) {
	q := db.New(s.pool)
	rows, err := q.ListOdRequests(ctx)
	if err != nil {
		return nil, err
	}
	requests := make([]odrequest.Request, 0, len(rows))
	for _, row := range rows {
		r, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, nil
}

func (s *RequestStore) UpdateStatus(ctx context.Context, id string, status odrequest.Status) (odrequest.Request, error) {
	var updated odrequest.Request
	err := s.inTx(ctx, func(q *db.Queries) error {
		row, err := q.GetOdRequestForUpdate(ctx, id)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", odrequest.ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		r, err := fromRow(row)
		if err != nil {
			return err
		}
		if err := r.Decide(status); err != nil {
			return err
		}
		if err := q.UpdateOdRequestStatus(ctx, db.UpdateOdRequestStatusParams{ID: id, Status: string(r.Status)}); err != nil {
			return err
		}
		updated = r
		return nil
	})
	return updated, err
}

func (s *RequestStore) Delete(ctx context.Context, id string) error {
	return s.inTx(ctx, func(q *db.Queries) error {
		row, err := q.GetOdRequestForUpdate(ctx, id)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", odrequest.ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		r, err := fromRow(row)
		if err != nil {
			return err
		}
		if err := r.Deletable(); err != nil {
			return err
		}
		_, err = q.DeleteRejectedOdRequest(ctx, id)
		return err
	})
}

func (s *RequestStore) inTx(ctx context.Context, fn func(q *db.Queries) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if err := fn(db.New(s.pool).WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func fromRow(row db.OdRequest) (odrequest.Request, error) {
	r := odrequest.Request{
		ID:               row.ID,
		CoordinatorName:  row.CoordinatorName,
		CoordinatorEmail: row.CoordinatorEmail,
		EventName:        row.EventName,
		Status:           odrequest.Status(row.Status),
		CreatedAt:        row.CreatedAt.Time,
	}
	r.Event.Date = row.EventDate.Time.Format("2006-01-02")
	r.Event.From = timetable.TimeOfDay(row.EventFrom)
	r.Event.To = timetable.TimeOfDay(row.EventTo)
	day, err := timetable.ParseWeekday(row.EventDay)
	if err != nil {
		return odrequest.Request{}, fmt.Errorf("od request %s: %w", row.ID, err)
	}
	r.Event.Day = day
	if err := json.Unmarshal(row.Classes, &r.Classes); err != nil {
		return odrequest.Request{}, fmt.Errorf("od request %s classes: %w", row.ID, err)
	}
	return r, nil
}
