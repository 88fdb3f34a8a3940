package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/garnizeh/staffing/pkg/errors"
)

var testNow = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
	var e *apperrors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, field, e.Field)
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("NHS", "contact@nhs.co.uk")
	require.NoError(t, err)
	assert.Equal(t, "NHS", c.Name)
	assert.True(t, c.IsNew())
	assert.Equal(t, TableClients, c.TableName())

	_, err = NewClient("", "contact@nhs.co.uk")
	requireValidation(t, err, "name")

	_, err = NewClient("NHS", "   ")
	requireValidation(t, err, "contact_information")

	_, err = NewClient(strings.Repeat("x", 51), "c")
	requireValidation(t, err, "name")
}

func TestNewIndividual(t *testing.T) {
	today := Today(testNow)

	i, err := NewIndividual("John Doe", "john@example.com", FullTime, today.AddDays(-365), testNow)
	require.NoError(t, err)
	assert.Equal(t, FullTime, i.EmploymentType)

	_, err = NewIndividual("John Doe", "john@example.com", FullTime, today, testNow)
	require.NoError(t, err, "hire date of today is allowed")

	_, err = NewIndividual("John Doe", "john@example.com", FullTime, today.AddDays(1), testNow)
	requireValidation(t, err, "hire_date")

	_, err = NewIndividual("John Doe", "john@example.com", "Freelance", today, testNow)
	requireValidation(t, err, "employment_type")

	_, err = NewIndividual("John Doe", "", Contract, today, testNow)
	requireValidation(t, err, "email")
}

func TestIndividualSettersLeaveValueOnError(t *testing.T) {
	hired := Today(testNow).AddDays(-10)
	i, err := NewIndividual("Jane", "jane@example.com", PartTime, hired, testNow)
	require.NoError(t, err)

	requireValidation(t, i.SetHireDate(Today(testNow).AddDays(30), testNow), "hire_date")
	assert.True(t, i.HireDate.Equal(hired))

	requireValidation(t, i.SetEmploymentType("Intern"), "employment_type")
	assert.Equal(t, PartTime, i.EmploymentType)

	require.NoError(t, i.SetEmploymentType(Contract))
	assert.Equal(t, Contract, i.EmploymentType)
}

func TestIndividualValidateCatchesDirectAssignment(t *testing.T) {
	i := &Individual{Name: "A", Email: "a@example.com", EmploymentType: "Seasonal", HireDate: Today(testNow)}
	requireValidation(t, i.Validate(testNow), "employment_type")

	i.EmploymentType = FullTime
	require.NoError(t, i.Validate(testNow))

	// A hire date that was valid yesterday stays valid; one set in the future is caught.
	i.HireDate = Today(testNow).AddDays(2)
	requireValidation(t, i.Validate(testNow), "hire_date")
	require.NoError(t, i.Validate(testNow.AddDate(0, 0, 2)))
}

func TestProjectSchedule(t *testing.T) {
	start := NewDate(2025, time.January, 1)

	tests := []struct {
		name    string
		start   Date
		end     Date
		wantErr string
	}{
		{name: "end after start", start: start, end: start.AddDays(90)},
		{name: "one day", start: start, end: start.AddDays(1)},
		{name: "end equals start", start: start, end: start, wantErr: "end_date"},
		{name: "end before start", start: start, end: start.AddDays(-1), wantErr: "end_date"},
		{name: "missing start", end: start, wantErr: "start_date"},
		{name: "missing end", start: start, wantErr: "end_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProject(1, "Website Redesign", "", tt.start, tt.end, "In Progress")
			if tt.wantErr != "" {
				requireValidation(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Nil(t, p.Description)
		})
	}
}

func TestProjectSetScheduleIsAtomic(t *testing.T) {
	start := NewDate(2025, time.January, 1)
	end := start.AddDays(90)
	p, err := NewProject(1, "Website Redesign", "Revamp", start, end, "Planning")
	require.NoError(t, err)

	// Moving the window forward past the old end succeeds when both move together.
	require.NoError(t, p.SetSchedule(end.AddDays(10), end.AddDays(100)))
	assert.True(t, p.StartDate.Equal(end.AddDays(10)))

	requireValidation(t, p.SetSchedule(start.AddDays(5), start), "end_date")
	assert.True(t, p.StartDate.Equal(end.AddDays(10)), "schedule must be untouched")
	assert.True(t, p.EndDate.Equal(end.AddDays(100)))

	// Field-wise assignment is caught by Validate.
	p.EndDate = p.StartDate
	requireValidation(t, p.Validate(testNow), "end_date")
}

func TestProjectRequiresClient(t *testing.T) {
	start := NewDate(2025, time.January, 1)
	_, err := NewProject(0, "Orphan", "", start, start.AddDays(1), "")
	requireValidation(t, err, "client_id")
}

func TestCatalog(t *testing.T) {
	s, err := NewSkill("Python", "")
	require.NoError(t, err)
	assert.Nil(t, s.Description)

	_, err = NewSkill("", "desc")
	requireValidation(t, err, "name")

	_, err = NewRoleType("")
	requireValidation(t, err, "name")

	_, err = NewRoleType(strings.Repeat("T", 255))
	require.NoError(t, err)

	_, err = NewRoleType(strings.Repeat("T", 256))
	requireValidation(t, err, "name")

	_, err = NewRoleLevel(strings.Repeat("L", 101))
	requireValidation(t, err, "name")

	r, err := NewRole("Senior Python Developer", "Backend", 1, 2)
	require.NoError(t, err)
	require.NotNil(t, r.Description)
	assert.Equal(t, "Backend", *r.Description)

	_, err = NewRole("Senior Python Developer", "", 0, 2)
	requireValidation(t, err, "role_type_id")

	_, err = NewRole("Senior Python Developer", "", 1, 0)
	requireValidation(t, err, "role_level_id")
}

func TestRequirements(t *testing.T) {
	start := Today(testNow).AddDays(7)

	pr, err := NewProjectRequirement(1, "Develop new homepage", start, start.AddDays(30))
	require.NoError(t, err)
	assert.Equal(t, TableProjectRequirements, pr.TableName())

	// Requirement dates are not cross-checked.
	_, err = NewProjectRequirement(1, "Backwards", start, start.AddDays(-3))
	require.NoError(t, err)

	_, err = NewProjectRequirement(0, "No project", Date{}, Date{})
	requireValidation(t, err, "project_id")

	_, err = NewTimeRequirement(1, 40, 160)
	require.NoError(t, err)

	_, err = NewSkillRequirement(1, 0, 4)
	requireValidation(t, err, "skill_id")

	rr, err := NewRoleRequirement(1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, rr.NumberNeeded)

	for _, n := range []int{0, -2} {
		_, err = NewRoleRequirement(1, 1, n)
		requireValidation(t, err, "number_needed")
	}
}

func TestAssociations(t *testing.T) {
	today := Today(testNow)

	_, err := NewIndividualSkill(1, 1, 4)
	require.NoError(t, err)

	_, err = NewIndividualSkill(0, 1, 4)
	requireValidation(t, err, "individual_id")

	ir, err := NewIndividualRole(1, 1, today)
	require.NoError(t, err)
	assert.Equal(t, today, ir.StartDate)

	_, err = NewIndividualRole(1, 1, Date{})
	requireValidation(t, err, "start_date")

	_, err = NewAvailability(1, today, today.AddDays(30), 40)
	require.NoError(t, err)

	_, err = NewAvailability(1, today, Date{}, 40)
	requireValidation(t, err, "end_date")

	a, err := NewAssignment(1, 1, today, today.AddDays(30), StatusAssigned)
	require.NoError(t, err)
	assert.Equal(t, "Assigned", a.Status)

	_, err = NewAssignment(1, 0, today, today.AddDays(30), StatusAssigned)
	requireValidation(t, err, "requirement_id")

	_, err = NewAssignment(1, 1, Date{}, today.AddDays(30), StatusAssigned)
	requireValidation(t, err, "start_date")

	_, err = NewAssignment(1, 1, today, Date{}, StatusAssigned)
	requireValidation(t, err, "end_date")

	_, err = NewAssignment(1, 1, today, today.AddDays(30), strings.Repeat("s", 21))
	requireValidation(t, err, "status")
}

func TestTablesCoversEveryEntity(t *testing.T) {
	entities := []Entity{
		&Client{}, &Project{}, &Individual{}, &Skill{}, &RoleType{}, &RoleLevel{}, &Role{},
		&IndividualSkill{}, &IndividualRole{}, &Availability{}, &ProjectRequirement{},
		&TimeRequirement{}, &SkillRequirement{}, &RoleRequirement{}, &Assignment{},
	}
	tables := Tables()
	require.Len(t, tables, len(entities))
	for _, e := range entities {
		assert.Contains(t, tables, e.TableName())
	}
}

func TestIdentity(t *testing.T) {
	c := &Client{Name: "n", ContactInformation: "c"}
	c.Identity().ID = 7
	assert.Equal(t, int64(7), c.ID)
	assert.False(t, c.IsNew())
}
