package models

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/garnizeh/staffing/pkg/errors"
)

// Domain models matching the database schema in db/migrations.

// Table names, one per entity.
const (
	TableClients             = "clients"
	TableProjects            = "projects"
	TableIndividuals         = "individuals"
	TableSkills              = "skills"
	TableRoleTypes           = "role_types"
	TableRoleLevels          = "role_levels"
	TableRoles               = "roles"
	TableIndividualSkills    = "individual_skills"
	TableIndividualRoles     = "individual_roles"
	TableAvailabilities      = "availabilities"
	TableProjectRequirements = "project_requirements"
	TableTimeRequirements    = "time_requirements"
	TableSkillRequirements   = "skill_requirements"
	TableRoleRequirements    = "role_requirements"
	TableAssignments         = "assignments"
)

// Tables lists every entity table in dependency order (parents first).
func Tables() []string {
	return []string{
		TableClients,
		TableIndividuals,
		TableSkills,
		TableRoleTypes,
		TableRoleLevels,
		TableRoles,
		TableProjects,
		TableProjectRequirements,
		TableTimeRequirements,
		TableSkillRequirements,
		TableRoleRequirements,
		TableIndividualSkills,
		TableIndividualRoles,
		TableAvailabilities,
		TableAssignments,
	}
}

// Record carries the identity and audit fields every entity embeds.
// ID, CreatedAt and UpdatedAt are owned by the store: ID and CreatedAt are set
// once on the first successful insert, UpdatedAt on every successful write.
type Record struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Identity exposes the embedded record to the store.
func (r *Record) Identity() *Record { return r }

// IsNew reports whether the record has never been persisted.
func (r Record) IsNew() bool { return r.ID == 0 }

// Entity is implemented by pointers to every model type.
type Entity interface {
	TableName() string
	Identity() *Record
	// Validate checks every in-memory invariant of the fully populated value.
	// now anchors rules relative to the current day.
	Validate(now time.Time) error
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.Validation(field, "is required")
	}
	return nil
}

func maxLen(field, value string, n int) error {
	if utf8.RuneCountInString(value) > n {
		return apperrors.Validationf(field, "must be at most %d characters", n)
	}
	return nil
}

func requiredText(field, value string, n int) error {
	if err := required(field, value); err != nil {
		return err
	}
	return maxLen(field, value, n)
}

func requiredRef(field string, id int64) error {
	if id <= 0 {
		return apperrors.Validation(field, "is required")
	}
	return nil
}

func requiredDate(field string, d Date) error {
	if d.IsZero() {
		return apperrors.Validation(field, "is required")
	}
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// optional turns an empty string into nil.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
