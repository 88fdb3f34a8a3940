package models

import (
	"strings"
	"time"

	apperrors "github.com/garnizeh/staffing/pkg/errors"
)

// EmploymentType is the closed set of contract kinds an individual can hold.
type EmploymentType string

const (
	FullTime EmploymentType = "Full-time"
	PartTime EmploymentType = "Part-time"
	Contract EmploymentType = "Contract"
)

// EmploymentTypes returns the accepted employment types.
func EmploymentTypes() []EmploymentType {
	return []EmploymentType{FullTime, PartTime, Contract}
}

// Valid reports whether t is one of EmploymentTypes.
func (t EmploymentType) Valid() bool {
	for _, v := range EmploymentTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// Individual is a person who can be staffed on project requirements.
type Individual struct {
	Record
	Name           string         `json:"name" db:"name"`
	Email          string         `json:"email" db:"email"`
	EmploymentType EmploymentType `json:"employment_type" db:"employment_type"`
	HireDate       Date           `json:"hire_date" db:"hire_date"`
}

// NewIndividual builds a validated individual. now anchors the hire date check.
func NewIndividual(name, email string, employmentType EmploymentType, hireDate Date, now time.Time) (*Individual, error) {
	i := &Individual{Name: name, Email: email}
	if err := i.SetEmploymentType(employmentType); err != nil {
		return nil, err
	}
	if err := i.SetHireDate(hireDate, now); err != nil {
		return nil, err
	}
	if err := i.Validate(now); err != nil {
		return nil, err
	}
	return i, nil
}

func (Individual) TableName() string { return TableIndividuals }

// SetHireDate assigns the hire date, leaving the individual unchanged when the
// date lies after the current day.
func (i *Individual) SetHireDate(d Date, now time.Time) error {
	if err := validateHireDate(d, now); err != nil {
		return err
	}
	i.HireDate = d
	return nil
}

// SetEmploymentType assigns the employment type, leaving the individual
// unchanged when t is not an accepted value.
func (i *Individual) SetEmploymentType(t EmploymentType) error {
	if err := validateEmploymentType(t); err != nil {
		return err
	}
	i.EmploymentType = t
	return nil
}

func (i *Individual) Validate(now time.Time) error {
	return firstErr(
		requiredText("name", i.Name, 100),
		requiredText("email", i.Email, 100),
		validateEmploymentType(i.EmploymentType),
		validateHireDate(i.HireDate, now),
	)
}

func validateHireDate(d Date, now time.Time) error {
	if err := requiredDate("hire_date", d); err != nil {
		return err
	}
	if d.After(Today(now)) {
		return apperrors.Validation("hire_date", "cannot be in the future")
	}
	return nil
}

func validateEmploymentType(t EmploymentType) error {
	if !t.Valid() {
		names := make([]string, 0, 3)
		for _, v := range EmploymentTypes() {
			names = append(names, string(v))
		}
		return apperrors.Validationf("employment_type", "invalid value %q, must be one of: %s", t, strings.Join(names, ", "))
	}
	return nil
}
