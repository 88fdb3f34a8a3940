package models

import (
	"time"

	apperrors "github.com/garnizeh/staffing/pkg/errors"
)

// Project is a piece of work commissioned by a client. Status is free text
// ("Planning", "In Progress", ...), not a state machine.
type Project struct {
	Record
	ClientID    int64   `json:"client_id" db:"client_id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
	StartDate   Date    `json:"start_date" db:"start_date"`
	EndDate     Date    `json:"end_date" db:"end_date"`
	Status      string  `json:"status" db:"status"`
}

func NewProject(clientID int64, name, description string, start, end Date, status string) (*Project, error) {
	p := &Project{ClientID: clientID, Name: name, Description: optional(description), Status: status}
	if err := p.SetSchedule(start, end); err != nil {
		return nil, err
	}
	if err := p.Validate(time.Time{}); err != nil {
		return nil, err
	}
	return p, nil
}

func (Project) TableName() string { return TableProjects }

// SetSchedule assigns both dates at once. The project is left unchanged when
// end does not fall strictly after start.
func (p *Project) SetSchedule(start, end Date) error {
	if err := validateSchedule(start, end); err != nil {
		return err
	}
	p.StartDate, p.EndDate = start, end
	return nil
}

func (p *Project) Validate(time.Time) error {
	return firstErr(
		requiredRef("client_id", p.ClientID),
		requiredText("name", p.Name, 100),
		maxLen("status", p.Status, 100),
		validateSchedule(p.StartDate, p.EndDate),
	)
}

func validateSchedule(start, end Date) error {
	if err := requiredDate("start_date", start); err != nil {
		return err
	}
	if err := requiredDate("end_date", end); err != nil {
		return err
	}
	if !end.After(start) {
		return apperrors.Validation("end_date", "must be after the start date")
	}
	return nil
}
