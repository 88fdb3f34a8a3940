package staffing_test

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbfs "github.com/garnizeh/staffing/db"
	dbpkg "github.com/garnizeh/staffing/internal/db"
	"github.com/garnizeh/staffing/internal/repository/sqlstore"
	"github.com/garnizeh/staffing/internal/staffing"
	apperrors "github.com/garnizeh/staffing/pkg/errors"
	"github.com/garnizeh/staffing/pkg/models"
	"github.com/garnizeh/staffing/pkg/repository"
)

var now = time.Date(2025, time.May, 5, 12, 0, 0, 0, time.UTC)

// countingCatalog passes reads to the store and counts invalidations.
type countingCatalog struct {
	repository.CatalogReader
	invalidations int
}

func (c *countingCatalog) Invalidate(context.Context) error {
	c.invalidations++
	return nil
}

func newService(t *testing.T, opts ...staffing.Option) (*staffing.Service, *sqlstore.Store) {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, dbpkg.SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	require.NoError(t, dbpkg.Migrate(ctx, d, dbfs.Migrations))

	clock := func() time.Time { return now }
	store := sqlstore.New(d, nil, sqlstore.WithClock(clock))
	opts = append([]staffing.Option{staffing.WithClock(clock)}, opts...)
	return staffing.New(store, opts...), store
}

type world struct {
	client      *models.Client
	individual  *models.Individual
	python      *models.Skill
	pm          *models.Skill
	role        *models.Role
	project     *models.Project
	requirement *staffing.Requirement
}

func buildWorld(t *testing.T, svc *staffing.Service) world {
	t.Helper()
	ctx := context.Background()
	today := svc.Today()
	var w world
	var err error

	w.client, err = svc.RegisterClient(ctx, "NHS", "contact@nhs.co.uk")
	require.NoError(t, err)
	w.individual, err = svc.HireIndividual(ctx, "John Doe", "john@example.com", models.FullTime, today.AddDays(-365))
	require.NoError(t, err)
	w.python, err = svc.AddSkill(ctx, "Python", "")
	require.NoError(t, err)
	w.pm, err = svc.AddSkill(ctx, "Project Management", "")
	require.NoError(t, err)
	_, err = svc.AddRoleType(ctx, "Developer")
	require.NoError(t, err)
	_, err = svc.AddRoleLevel(ctx, "Senior")
	require.NoError(t, err)
	w.role, err = svc.DefineRole(ctx, "Senior Python Developer", "", "Developer", "Senior")
	require.NoError(t, err)
	w.project, err = svc.OpenProject(ctx, w.client.ID, "Website Redesign", "", today, today.AddDays(90), "In Progress")
	require.NoError(t, err)

	w.requirement, err = svc.AddRequirement(ctx, staffing.RequirementSpec{
		ProjectID:   w.project.ID,
		Description: "Develop new homepage",
		StartDate:   today.AddDays(7),
		EndDate:     today.AddDays(37),
		Time:        &staffing.TimeNeed{HoursPerWeek: 40, TotalHours: 160},
		Skills:      []staffing.SkillNeed{{SkillID: w.python.ID, MinimumProficiency: 4}},
		Roles:       []staffing.RoleNeed{{RoleID: w.role.ID, NumberNeeded: 1}},
	})
	require.NoError(t, err)
	return w
}

func TestSampleScenario(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	w := buildWorld(t, svc)
	today := svc.Today()

	_, err := svc.RecordSkill(ctx, w.individual.ID, w.python.ID, 4)
	require.NoError(t, err)
	_, err = svc.GrantRole(ctx, w.individual.ID, w.role.ID, today)
	require.NoError(t, err)
	_, err = svc.AddAvailability(ctx, w.individual.ID, today, today.AddDays(30), 40)
	require.NoError(t, err)
	asg, err := svc.Assign(ctx, w.individual.ID, w.requirement.ID, today.AddDays(7), today.AddDays(37))
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, asg.Status)

	portfolio, err := svc.ClientPortfolio(ctx, w.client.ID)
	require.NoError(t, err)
	require.Len(t, portfolio.Projects, 1)
	assert.Equal(t, "Website Redesign", portfolio.Projects[0].Name)

	profile, err := svc.IndividualProfile(ctx, w.individual.ID)
	require.NoError(t, err)
	assert.Equal(t, []staffing.SkillLevel{{Skill: "Python", ProficiencyLevel: 4}}, profile.Skills)
	require.Len(t, profile.Roles, 1)
	assert.Equal(t, "Senior Python Developer", profile.Roles[0].Role)
	require.Len(t, profile.Availability, 1)
	assert.Equal(t, 40, profile.Availability[0].HoursPerWeek)
	require.Len(t, profile.Assignments, 1)

	staffingView, err := svc.ProjectStaffing(ctx, w.project.ID)
	require.NoError(t, err)
	require.Len(t, staffingView.Requirements, 1)
	req := staffingView.Requirements[0]
	assert.Equal(t, "Develop new homepage", req.Requirement.Description)
	require.NotNil(t, req.Time)
	assert.Equal(t, 160, req.Time.TotalHours)
	assert.Equal(t, []staffing.SkillNeedView{{Skill: "Python", MinimumProficiency: 4}}, req.Skills)
	assert.Equal(t, []staffing.RoleNeedView{{Role: "Senior Python Developer", NumberNeeded: 1}}, req.Roles)
	require.Len(t, req.Assignments, 1)
	assert.Equal(t, "John Doe", req.Assignments[0].IndividualName)
}

func TestAddRequirementIsAtomic(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	w := buildWorld(t, svc)

	_, err := svc.AddRequirement(ctx, staffing.RequirementSpec{
		ProjectID:   w.project.ID,
		Description: "Duplicate skills",
		Skills: []staffing.SkillNeed{
			{SkillID: w.python.ID, MinimumProficiency: 3},
			{SkillID: w.python.ID, MinimumProficiency: 5},
		},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUniqueViolation(err))

	reqs, err := store.RequirementsByProject(ctx, w.project.ID)
	require.NoError(t, err)
	assert.Len(t, reqs, 1, "failed requirement must leave nothing behind")

	_, err = svc.AddRequirement(ctx, staffing.RequirementSpec{
		ProjectID: w.project.ID,
		Roles:     []staffing.RoleNeed{{RoleID: w.role.ID, NumberNeeded: 0}},
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.AddRequirement(ctx, staffing.RequirementSpec{ProjectID: 999})
	assert.True(t, apperrors.IsForeignKeyViolation(err))
}

func TestHireIndividualRules(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	today := svc.Today()

	_, err := svc.HireIndividual(ctx, "John Doe", "john@example.com", models.FullTime, today.AddDays(-365))
	require.NoError(t, err)

	_, err = svc.HireIndividual(ctx, "Other John", "john@example.com", models.PartTime, today)
	assert.True(t, apperrors.IsUniqueViolation(err), "got %v", err)

	_, err = svc.HireIndividual(ctx, "Future", "future@example.com", models.FullTime, today.AddDays(1))
	assert.True(t, apperrors.IsValidation(err), "got %v", err)

	_, err = svc.HireIndividual(ctx, "Intern", "intern@example.com", "Intern", today)
	assert.True(t, apperrors.IsValidation(err), "got %v", err)
}

func TestProjectUpdates(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	w := buildWorld(t, svc)
	today := svc.Today()

	_, err := svc.Reschedule(ctx, w.project.ID, today.AddDays(100), today.AddDays(50))
	assert.True(t, apperrors.IsValidation(err))

	p, err := svc.Reschedule(ctx, w.project.ID, today.AddDays(100), today.AddDays(200))
	require.NoError(t, err)
	assert.Equal(t, today.AddDays(200).String(), p.EndDate.String())

	p, err = svc.SetProjectStatus(ctx, w.project.ID, "Planning")
	require.NoError(t, err)
	stored, err := store.Project(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Planning", stored.Status)

	_, err = svc.Reschedule(ctx, 999, today, today.AddDays(1))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestChangeEmploymentTypeAndAssignmentStatus(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	w := buildWorld(t, svc)

	_, err := svc.ChangeEmploymentType(ctx, w.individual.ID, "Volunteer")
	assert.True(t, apperrors.IsValidation(err))

	i, err := svc.ChangeEmploymentType(ctx, w.individual.ID, models.Contract)
	require.NoError(t, err)
	assert.Equal(t, models.Contract, i.EmploymentType)

	asg, err := svc.Assign(ctx, w.individual.ID, w.requirement.ID, models.Date{}, models.Date{})
	assert.True(t, apperrors.IsValidation(err))

	asg, err = svc.Assign(ctx, w.individual.ID, w.requirement.ID, svc.Today(), svc.Today().AddDays(14))
	require.NoError(t, err)
	updated, err := svc.SetAssignmentStatus(ctx, asg.ID, "Completed")
	require.NoError(t, err)
	assert.Equal(t, "Completed", updated.Status)
}

func TestDefineRoleUnknownNames(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.DefineRole(ctx, "Senior Python Developer", "", "Developer", "Senior")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCatalogInvalidation(t *testing.T) {
	var catalog countingCatalog
	svc, store := newService(t, staffing.WithCatalog(&catalog))
	catalog.CatalogReader = store
	ctx := context.Background()

	w := buildWorld(t, svc)
	// Two skills, one type, one level, one role.
	assert.Equal(t, 5, catalog.invalidations)

	_, err := svc.RegisterClient(ctx, "Other", "o@example.com")
	require.NoError(t, err)
	assert.Equal(t, 5, catalog.invalidations, "non-catalog writes keep the cache")

	require.NoError(t, svc.Remove(ctx, w.pm))
	assert.Equal(t, 6, catalog.invalidations)

	err = svc.Remove(ctx, w.python)
	assert.True(t, apperrors.IsForeignKeyViolation(err), "skill still required: %v", err)
	assert.Equal(t, 6, catalog.invalidations)
}

func TestOperationsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	svc, _ := newService(t, staffing.WithLogger(logger))

	c, err := svc.RegisterClient(context.Background(), "NHS", "contact@nhs.co.uk")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"client registered"`)
	assert.Contains(t, buf.String(), `"client_id":`+strconv.FormatInt(c.ID, 10))
}
