package db

import (
	"context"
)

const getTimetable = `
SELECT course, program, semester, section, schedule, updated_at
FROM timetables
WHERE course = $1 AND program = $2 AND semester = $3 AND section = $4
`

type GetTimetableParams struct {
	Course   string `json:"course"`
	Program  string `json:"program"`
	Semester string `json:"semester"`
	Section  string `json:"section"`
}

func (q *Queries) GetTimetable(ctx context.Context, arg GetTimetableParams) (Timetable, error) {
	row := q.db.QueryRow(ctx, getTimetable,
		arg.Course,
		arg.Program,
		arg.Semester,
		arg.Section,
	)
	var i Timetable
	err := row.Scan(
		&i.Course,
		&i.Program,
		&i.Semester,
		&i.Section,
		&i.Schedule,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertTimetable = `
INSERT INTO timetables (course, program, semester, section, schedule, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (course, program, semester, section)
DO UPDATE SET schedule = EXCLUDED.schedule, updated_at = now()
`

type UpsertTimetableParams struct {
	Course   string `json:"course"`
	Program  string `json:"program"`
	Semester string `json:"semester"`
	Section  string `json:"section"`
	Schedule []byte `json:"schedule"`
}

func (q *Queries) UpsertTimetable(ctx context.Context, arg UpsertTimetableParams) error {
	_, err := q.db.Exec(ctx, upsertTimetable,
		arg.Course,
		arg.Program,
		arg.Semester,
		arg.Section,
		arg.Schedule,
	)
	return err
}

const listTimetableKeys = `
SELECT course, program, semester, section
FROM timetables
ORDER BY course, program, semester, section
`

type ListTimetableKeysRow struct {
	Course   string `json:"course"`
	Program  string `json:"program"`
	Semester string `json:"semester"`
	Section  string `json:"section"`
}

func (q *Queries) ListTimetableKeys(ctx context.Context) ([]ListTimetableKeysRow, error) {
	rows, err := q.db.Query(ctx, listTimetableKeys)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListTimetableKeysRow
	for rows.Next() {
		var i ListTimetableKeysRow
		if err := rows.Scan(
			&i.Course,
			&i.Program,
			&i.Semester,
			&i.Section,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
