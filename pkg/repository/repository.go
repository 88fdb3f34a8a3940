package repository

import (
	"context"

	"github.com/garnizeh/staffing/pkg/models"
)

// Repository interfaces for the staffing data model. These are the public
// contracts consumers should depend on; the concrete implementation lives
// under internal/repository/sqlstore.
//
// Readers return NotFoundError for single-row lookups that match nothing and
// an empty slice for relations with no rows. Slices are ordered by id.

// Writer persists entities. Every write validates the entity first; a
// validation failure never reaches the database.
type Writer interface {
	// Insert assigns id, created_at and updated_at on success.
	Insert(ctx context.Context, e models.Entity) error
	// Update refreshes updated_at. Missing rows yield NotFoundError.
	Update(ctx context.Context, e models.Entity) error
	// Delete removes the row. Restricted dependents yield ForeignKeyViolation.
	Delete(ctx context.Context, e models.Entity) error
}

type Finder interface {
	// FindByID loads the row with id into e.
	FindByID(ctx context.Context, e models.Entity, id int64) error
}

// CatalogReader reads the reference vocabularies.
type CatalogReader interface {
	Skills(ctx context.Context) ([]models.Skill, error)
	RoleTypes(ctx context.Context) ([]models.RoleType, error)
	RoleLevels(ctx context.Context) ([]models.RoleLevel, error)
	Roles(ctx context.Context) ([]models.Role, error)
	SkillByName(ctx context.Context, name string) (*models.Skill, error)
	RoleTypeByName(ctx context.Context, name string) (*models.RoleType, error)
	RoleLevelByName(ctx context.Context, name string) (*models.RoleLevel, error)
	RoleByName(ctx context.Context, name string) (*models.Role, error)
}

type ReferenceReader interface {
	Skill(ctx context.Context, id int64) (*models.Skill, error)
	RoleType(ctx context.Context, id int64) (*models.RoleType, error)
	RoleLevel(ctx context.Context, id int64) (*models.RoleLevel, error)
	Role(ctx context.Context, id int64) (*models.Role, error)
	RolesByType(ctx context.Context, roleTypeID int64) ([]models.Role, error)
	RolesByLevel(ctx context.Context, roleLevelID int64) ([]models.Role, error)
	IndividualsWithSkill(ctx context.Context, skillID int64) ([]models.Individual, error)
	IndividualsInRole(ctx context.Context, roleID int64) ([]models.Individual, error)
	SkillRequirementsBySkill(ctx context.Context, skillID int64) ([]models.SkillRequirement, error)
	RoleRequirementsByRole(ctx context.Context, roleID int64) ([]models.RoleRequirement, error)
}

type ClientReader interface {
	Client(ctx context.Context, id int64) (*models.Client, error)
	Clients(ctx context.Context) ([]models.Client, error)
	ProjectsByClient(ctx context.Context, clientID int64) ([]models.Project, error)
}

type ProjectReader interface {
	Project(ctx context.Context, id int64) (*models.Project, error)
	Projects(ctx context.Context) ([]models.Project, error)
	ProjectRequirement(ctx context.Context, id int64) (*models.ProjectRequirement, error)
	ProjectRequirements(ctx context.Context) ([]models.ProjectRequirement, error)
	RequirementsByProject(ctx context.Context, projectID int64) ([]models.ProjectRequirement, error)
	// TimeRequirementOf returns the single time requirement of a requirement.
	TimeRequirementOf(ctx context.Context, requirementID int64) (*models.TimeRequirement, error)
	SkillRequirementsOf(ctx context.Context, requirementID int64) ([]models.SkillRequirement, error)
	RoleRequirementsOf(ctx context.Context, requirementID int64) ([]models.RoleRequirement, error)
	AssignmentsByRequirement(ctx context.Context, requirementID int64) ([]models.Assignment, error)
}

type IndividualReader interface {
	Individual(ctx context.Context, id int64) (*models.Individual, error)
	Individuals(ctx context.Context) ([]models.Individual, error)
	IndividualByEmail(ctx context.Context, email string) (*models.Individual, error)
	IndividualSkillsOf(ctx context.Context, individualID int64) ([]models.IndividualSkill, error)
	IndividualRolesOf(ctx context.Context, individualID int64) ([]models.IndividualRole, error)
	AvailabilitiesOf(ctx context.Context, individualID int64) ([]models.Availability, error)
	AssignmentsByIndividual(ctx context.Context, individualID int64) ([]models.Assignment, error)
}

// Lister reads whole tables.
type Lister interface {
	TimeRequirements(ctx context.Context) ([]models.TimeRequirement, error)
	SkillRequirements(ctx context.Context) ([]models.SkillRequirement, error)
	RoleRequirements(ctx context.Context) ([]models.RoleRequirement, error)
	IndividualSkills(ctx context.Context) ([]models.IndividualSkill, error)
	IndividualRoles(ctx context.Context) ([]models.IndividualRole, error)
	Availabilities(ctx context.Context) ([]models.Availability, error)
	Assignments(ctx context.Context) ([]models.Assignment, error)
	// All returns every row of table as entities.
	All(ctx context.Context, table string) ([]models.Entity, error)
}

type Reader interface {
	Finder
	CatalogReader
	ReferenceReader
	ClientReader
	ProjectReader
	IndividualReader
	Lister
}

// Tx is one atomic unit of work. Identities assigned inside a unit that
// fails are restored to their previous values.
type Tx interface {
	Reader
	Writer
}

type Store interface {
	Reader
	Writer
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}
