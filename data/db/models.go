package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Timetable struct {
	Course    string             `json:"course"`
	Program   string             `json:"program"`
	Semester  string             `json:"semester"`
	Section   string             `json:"section"`
	Schedule  []byte             `json:"schedule"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type OdRequest struct {
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
