package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const odRequestColumns = `id::text, coordinator_name, coordinator_email, event_name, event_date,
	event_day, event_from, event_to, classes, status, created_at`

func scanOdRequest(row interface{ Scan(...any) error }) (OdRequest, error) {
	var i OdRequest
	err := row.Scan(
		&i.ID,
		&i.CoordinatorName,
		&i.CoordinatorEmail,
		&i.EventName,
		&i.EventDate,
		&i.EventDay,
		&i.EventFrom,
		&i.EventTo,
		&i.Classes,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const insertOdRequest = `
INSERT INTO od_requests (
	id, coordinator_name, coordinator_email, event_name, event_date,
	event_day, event_from, event_to, classes, status, created_at
) VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

type InsertOdRequestParams struct {
	ID               string             `json:"id"`
	CoordinatorName  string             `json:"coordinator_name"`
	CoordinatorEmail string             `json:"coordinator_email"`
	EventName        string             `json:"event_name"`
	EventDate        pgtype.Date        `json:"event_date"`
	EventDay         string             `json:"event_day"`
	EventFrom        string             `json:"event_from"`
	EventTo          string             `json:"event_to"`
	Classes          []byte             `json:"classes"`
	Status           string             `json:"status"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) InsertOdRequest(ctx context.Context, arg InsertOdRequestParams) error {
	_, err := q.db.Exec(ctx, insertOdRequest,
		arg.ID,
		arg.CoordinatorName,
		arg.CoordinatorEmail,
		arg.EventName,
		arg.EventDate,
		arg.EventDay,
		arg.EventFrom,
		arg.EventTo,
		arg.Classes,
		arg.Status,
		arg.CreatedAt,
	)
	return err
}

var getOdRequest = `SELECT ` + odRequestColumns + ` FROM od_requests WHERE id = $1::uuid`

func (q *Queries) GetOdRequest(ctx context.Context, id string) (OdRequest, error) {
	return scanOdRequest(q.db.QueryRow(ctx, getOdRequest, id))
}

// locks the row until the surrounding transaction ends
var getOdRequestForUpdate = `SELECT ` + odRequestColumns + ` FROM od_requests WHERE id = $1::uuid FOR UPDATE`

func (q *Queries) GetOdRequestForUpdate(ctx context.Context, id string) (OdRequest, error) {
	return scanOdRequest(q.db.QueryRow(ctx, getOdRequestForUpdate, id))
}

var listOdRequests = `SELECT ` + odRequestColumns + ` FROM od_requests ORDER BY created_at DESC`

func (q *Queries) ListOdRequests(ctx context.Context) ([]OdRequest, error) {
	rows, err := q.db.Query(ctx, listOdRequests)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OdRequest
	for rows.Next() {
		i, err := scanOdRequest(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateOdRequestStatus = `
UPDATE od_requests SET status = $2 WHERE id = $1::uuid
`

type UpdateOdRequestStatusParams struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (q *Queries) UpdateOdRequestStatus(ctx context.Context, arg UpdateOdRequestStatusParams) error {
	_, err := q.db.Exec(ctx, updateOdRequestStatus, arg.ID, arg.Status)
	return err
}

const deleteRejectedOdRequest = `
DELETE FROM od_requests WHERE id = $1::uuid AND status = 'Rejected'
`

// DeleteRejectedOdRequest returns the number of rows removed
func (q *Queries) DeleteRejectedOdRequest(ctx context.Context, id string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteRejectedOdRequest, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
