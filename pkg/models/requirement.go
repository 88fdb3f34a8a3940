package models

import (
	"time"

	apperrors "github.com/garnizeh/staffing/pkg/errors"
)

// ProjectRequirement is a unit of demand within a project. Its dates are
// optional and are not checked against each other or against the project.
type ProjectRequirement struct {
	Record
	ProjectID   int64  `json:"project_id" db:"project_id"`
	Description string `json:"description" db:"description"`
	StartDate   Date   `json:"start_date" db:"start_date"`
	EndDate     Date   `json:"end_date" db:"end_date"`
}

func NewProjectRequirement(projectID int64, description string, start, end Date) (*ProjectRequirement, error) {
	r := &ProjectRequirement{ProjectID: projectID, Description: description, StartDate: start, EndDate: end}
	if err := r.Validate(time.Time{}); err != nil {
		return nil, err
	}
	return r, nil
}

func (ProjectRequirement) TableName() string { return TableProjectRequirements }

func (r *ProjectRequirement) Validate(time.Time) error {
	return requiredRef("project_id", r.ProjectID)
}

// TimeRequirement holds the effort of a requirement. A requirement has at
// most one.
type TimeRequirement struct {
	Record
	RequirementID int64 `json:"requirement_id" db:"requirement_id"`
	HoursPerWeek  int   `json:"hours_per_week" db:"hours_per_week"`
	TotalHours    int   `json:"total_hours" db:"total_hours"`
}

func NewTimeRequirement(requirementID int64, hoursPerWeek, totalHours int) (*TimeRequirement, error) {
	t := &TimeRequirement{RequirementID: requirementID, HoursPerWeek: hoursPerWeek, TotalHours: totalHours}
	if err := t.Validate(time.Time{}); err != nil {
		return nil, err
	}
	return t, nil
}

func (TimeRequirement) TableName() string { return TableTimeRequirements }

func (t *TimeRequirement) Validate(time.Time) error {
	return requiredRef("requirement_id", t.RequirementID)
}

type SkillRequirement struct {
	Record
	RequirementID      int64 `json:"requirement_id" db:"requirement_id"`
	SkillID            int64 `json:"skill_id" db:"skill_id"`
	MinimumProficiency int   `json:"minimum_proficiency" db:"minimum_proficiency"`
}

func NewSkillRequirement(requirementID, skillID int64, minimumProficiency int) (*SkillRequirement, error) {
	s := &SkillRequirement{RequirementID: requirementID, SkillID: skillID, MinimumProficiency: minimumProficiency}
	if err := s.Validate(time.Time{}); err != nil {
		return nil, err
	}
	return s, nil
}

func (SkillRequirement) TableName() string { return TableSkillRequirements }

func (s *SkillRequirement) Validate(time.Time) error {
	return firstErr(
		requiredRef("requirement_id", s.RequirementID),
		requiredRef("skill_id", s.SkillID),
	)
}

type RoleRequirement struct {
	Record
	RequirementID int64 `json:"requirement_id" db:"requirement_id"`
	RoleID        int64 `json:"role_id" db:"role_id"`
	NumberNeeded  int   `json:"number_needed" db:"number_needed"`
}

func NewRoleRequirement(requirementID, roleID int64, numberNeeded int) (*RoleRequirement, error) {
	r := &RoleRequirement{RequirementID: requirementID, RoleID: roleID, NumberNeeded: numberNeeded}
	if err := r.Validate(time.Time{}); err != nil {
		return nil, err
	}
	return r, nil
}

func (RoleRequirement) TableName() string { return TableRoleRequirements }

func (r *RoleRequirement) Validate(time.Time) error {
	if err := firstErr(
		requiredRef("requirement_id", r.RequirementID),
		requiredRef("role_id", r.RoleID),
	); err != nil {
		return err
	}
	if r.NumberNeeded <= 0 {
		return apperrors.Validation("number_needed", "must be positive")
	}
	return nil
}
