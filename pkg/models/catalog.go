package models

import "time"

// Skill, RoleType and RoleLevel are normalized vocabularies. Their names are
// unique within each table; the database enforces it.

type Skill struct {
	Record
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
}

func NewSkill(name, description string) (*Skill, error) {
	s := &Skill{Name: name, Description: optional(description)}
	if err := s.Validate(time.Time{}); err != nil {
		return nil, err
	}
	return s, nil
}

func (Skill) TableName() string { return TableSkills }

func (s *Skill) Validate(time.Time) error {
	return requiredText("name", s.Name, 255)
}

type RoleType struct {
	Record
	Name string `json:"name" db:"name"`
}

func NewRoleType(name string) (*RoleType, error) {
	t := &RoleType{Name: name}
	if err := t.Validate(time.Time{}); err != nil {
		return nil, err
	}
	return t, nil
}

func (RoleType) TableName() string { return TableRoleTypes }

func (t *RoleType) Validate(time.Time) error {
	return requiredText("name", t.Name, 255)
}

type RoleLevel struct {
	Record
	Name string `json:"name" db:"name"`
}

func NewRoleLevel(name string) (*RoleLevel, error) {
	l := &RoleLevel{Name: name}
	if err := l.Validate(time.Time{}); err != nil {
		return nil, err
	}
	return l, nil
}

func (RoleLevel) TableName() string { return TableRoleLevels }

func (l *RoleLevel) Validate(time.Time) error {
	return requiredText("name", l.Name, 100)
}

// Role combines a role type and a role level, e.g. "Senior" + "Developer".
// Type and level are independent axes referenced by id.
type Role struct {
	Record
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
	RoleTypeID  int64   `json:"role_type_id" db:"role_type_id"`
	RoleLevelID int64   `json:"role_level_id" db:"role_level_id"`
}

func NewRole(name, description string, roleTypeID, roleLevelID int64) (*Role, error) {
	r := &Role{Name: name, Description: optional(description), RoleTypeID: roleTypeID, RoleLevelID: roleLevelID}
	if err := r.Validate(time.Time{}); err != nil {
		return nil, err
	}
	return r, nil
}

func (Role) TableName() string { return TableRoles }

func (r *Role) Validate(time.Time) error {
	return firstErr(
		requiredText("name", r.Name, 100),
		requiredRef("role_type_id", r.RoleTypeID),
		requiredRef("role_level_id", r.RoleLevelID),
	)
}
