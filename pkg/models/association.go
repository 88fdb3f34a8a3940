package models

import "time"

// StatusAssigned is the status given to a freshly created assignment.
const StatusAssigned = "Assigned"

// IndividualSkill records a skill held by an individual. The pair
// (individual, skill) is unique.
type IndividualSkill struct {
	Record
	IndividualID     int64 `json:"individual_id" db:"individual_id"`
	SkillID          int64 `json:"skill_id" db:"skill_id"`
	ProficiencyLevel int   `json:"proficiency_level" db:"proficiency_level"`
}

func NewIndividualSkill(individualID, skillID int64, proficiency int) (*IndividualSkill, error) {
	s := &IndividualSkill{IndividualID: individualID, SkillID: skillID, ProficiencyLevel: proficiency}
	if err := s.Validate(time.Time{}); err != nil {
		return nil, err
	}
	return s, nil
}

func (IndividualSkill) TableName() string { return TableIndividualSkills }

func (s *IndividualSkill) Validate(time.Time) error {
	return firstErr(
		requiredRef("individual_id", s.IndividualID),
		requiredRef("skill_id", s.SkillID),
	)
}

// IndividualRole records a role held by an individual from StartDate on.
// The same role may be held several times.
type IndividualRole struct {
	Record
	IndividualID int64 `json:"individual_id" db:"individual_id"`
	RoleID       int64 `json:"role_id" db:"role_id"`
	StartDate    Date  `json:"start_date" db:"start_date"`
}

func NewIndividualRole(individualID, roleID int64, start Date) (*IndividualRole, error) {
	r := &IndividualRole{IndividualID: individualID, RoleID: roleID, StartDate: start}
	if err := r.Validate(time.Time{}); err != nil {
		return nil, err
	}
	return r, nil
}

func (IndividualRole) TableName() string { return TableIndividualRoles }

func (r *IndividualRole) Validate(time.Time) error {
	return firstErr(
		requiredRef("individual_id", r.IndividualID),
		requiredRef("role_id", r.RoleID),
		requiredDate("start_date", r.StartDate),
	)
}

// Availability is a window of capacity. Windows of one individual may
// overlap.
type Availability struct {
	Record
	IndividualID int64 `json:"individual_id" db:"individual_id"`
	StartDate    Date  `json:"start_date" db:"start_date"`
	EndDate      Date  `json:"end_date" db:"end_date"`
	HoursPerWeek int   `json:"hours_per_week" db:"hours_per_week"`
}

func NewAvailability(individualID int64, start, end Date, hoursPerWeek int) (*Availability, error) {
	a := &Availability{IndividualID: individualID, StartDate: start, EndDate: end, HoursPerWeek: hoursPerWeek}
	if err := a.Validate(time.Time{}); err != nil {
		return nil, err
	}
	return a, nil
}

func (Availability) TableName() string { return TableAvailabilities }

func (a *Availability) Validate(time.Time) error {
	return firstErr(
		requiredRef("individual_id", a.IndividualID),
		requiredDate("start_date", a.StartDate),
		requiredDate("end_date", a.EndDate),
	)
}

// Assignment places an individual on a requirement. Status is free text.
type Assignment struct {
	Record
	IndividualID  int64  `json:"individual_id" db:"individual_id"`
	RequirementID int64  `json:"requirement_id" db:"requirement_id"`
	StartDate     Date   `json:"start_date" db:"start_date"`
	EndDate       Date   `json:"end_date" db:"end_date"`
	Status        string `json:"status" db:"status"`
}

func NewAssignment(individualID, requirementID int64, start, end Date, status string) (*Assignment, error) {
	a := &Assignment{IndividualID: individualID, RequirementID: requirementID, StartDate: start, EndDate: end, Status: status}
	if err := a.Validate(time.Time{}); err != nil {
		return nil, err
	}
	return a, nil
}

func (Assignment) TableName() string { return TableAssignments }

func (a *Assignment) Validate(time.Time) error {
	return firstErr(
		requiredRef("individual_id", a.IndividualID),
		requiredRef("requirement_id", a.RequirementID),
		requiredDate("start_date", a.StartDate),
		requiredDate("end_date", a.EndDate),
		maxLen("status", a.Status, 20),
	)
}
