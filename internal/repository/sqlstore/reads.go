package sqlstore

import (
	"context"

	"github.com/garnizeh/staffing/pkg/models"
)

func (r queries) Client(ctx context.Context, id int64) (*models.Client, error) {
	return get[models.Client](ctx, r, id)
}

func (r queries) Clients(ctx context.Context) ([]models.Client, error) {
	return list[models.Client](ctx, r, "")
}

func (r queries) ProjectsByClient(ctx context.Context, clientID int64) ([]models.Project, error) {
	return list[models.Project](ctx, r, "client_id = ?", clientID)
}

func (r queries) Project(ctx context.Context, id int64) (*models.Project, error) {
	return get[models.Project](ctx, r, id)
}

func (r queries) Projects(ctx context.Context) ([]models.Project, error) {
	return list[models.Project](ctx, r, "")
}

func (r queries) ProjectRequirement(ctx context.Context, id int64) (*models.ProjectRequirement, error) {
	return get[models.ProjectRequirement](ctx, r, id)
}

func (r queries) ProjectRequirements(ctx context.Context) ([]models.ProjectRequirement, error) {
	return list[models.ProjectRequirement](ctx, r, "")
}

func (r queries) RequirementsByProject(ctx context.Context, projectID int64) ([]models.ProjectRequirement, error) {
	return list[models.ProjectRequirement](ctx, r, "project_id = ?", projectID)
}

// TimeRequirementOf returns NotFoundError when the requirement has no time
// requirement attached.
func (r queries) TimeRequirementOf(ctx context.Context, requirementID int64) (*models.TimeRequirement, error) {
	return getBy[models.TimeRequirement](ctx, r, "requirement_id", requirementID)
}

func (r queries) TimeRequirements(ctx context.Context) ([]models.TimeRequirement, error) {
	return list[models.TimeRequirement](ctx, r, "")
}

func (r queries) SkillRequirementsOf(ctx context.Context, requirementID int64) ([]models.SkillRequirement, error) {
	return list[models.SkillRequirement](ctx, r, "requirement_id = ?", requirementID)
}

func (r queries) SkillRequirements(ctx context.Context) ([]models.SkillRequirement, error) {
	return list[models.SkillRequirement](ctx, r, "")
}

func (r queries) SkillRequirementsBySkill(ctx context.Context, skillID int64) ([]models.SkillRequirement, error) {
	return list[models.SkillRequirement](ctx, r, "skill_id = ?", skillID)
}

func (r queries) RoleRequirementsOf(ctx context.Context, requirementID int64) ([]models.RoleRequirement, error) {
	return list[models.RoleRequirement](ctx, r, "requirement_id = ?", requirementID)
}

func (r queries) RoleRequirements(ctx context.Context) ([]models.RoleRequirement, error) {
	return list[models.RoleRequirement](ctx, r, "")
}

func (r queries) RoleRequirementsByRole(ctx context.Context, roleID int64) ([]models.RoleRequirement, error) {
	return list[models.RoleRequirement](ctx, r, "role_id = ?", roleID)
}

func (r queries) AssignmentsByRequirement(ctx context.Context, requirementID int64) ([]models.Assignment, error) {
	return list[models.Assignment](ctx, r, "requirement_id = ?", requirementID)
}

func (r queries) AssignmentsByIndividual(ctx context.Context, individualID int64) ([]models.Assignment, error) {
	return list[models.Assignment](ctx, r, "individual_id = ?", individualID)
}

func (r queries) Assignments(ctx context.Context) ([]models.Assignment, error) {
	return list[models.Assignment](ctx, r, "")
}

func (r queries) Individual(ctx context.Context, id int64) (*models.Individual, error) {
	return get[models.Individual](ctx, r, id)
}

func (r queries) Individuals(ctx context.Context) ([]models.Individual, error) {
	return list[models.Individual](ctx, r, "")
}

func (r queries) IndividualByEmail(ctx context.Context, email string) (*models.Individual, error) {
	return getBy[models.Individual](ctx, r, "email", email)
}

func (r queries) IndividualSkillsOf(ctx context.Context, individualID int64) ([]models.IndividualSkill, error) {
	return list[models.IndividualSkill](ctx, r, "individual_id = ?", individualID)
}

func (r queries) IndividualSkills(ctx context.Context) ([]models.IndividualSkill, error) {
	return list[models.IndividualSkill](ctx, r, "")
}

// IndividualsWithSkill returns each holder of the skill once.
func (r queries) IndividualsWithSkill(ctx context.Context, skillID int64) ([]models.Individual, error) {
	return list[models.Individual](ctx, r, "id IN (SELECT individual_id FROM individual_skills WHERE skill_id = ?)", skillID)
}

func (r queries) IndividualRolesOf(ctx context.Context, individualID int64) ([]models.IndividualRole, error) {
	return list[models.IndividualRole](ctx, r, "individual_id = ?", individualID)
}

func (r queries) IndividualRoles(ctx context.Context) ([]models.IndividualRole, error) {
	return list[models.IndividualRole](ctx, r, "")
}

// IndividualsInRole returns each holder of the role once, however many
// times they held it.
func (r queries) IndividualsInRole(ctx context.Context, roleID int64) ([]models.Individual, error) {
	return list[models.Individual](ctx, r, "id IN (SELECT individual_id FROM individual_roles WHERE role_id = ?)", roleID)
}

func (r queries) AvailabilitiesOf(ctx context.Context, individualID int64) ([]models.Availability, error) {
	return list[models.Availability](ctx, r, "individual_id = ?", individualID)
}

func (r queries) Availabilities(ctx context.Context) ([]models.Availability, error) {
	return list[models.Availability](ctx, r, "")
}

func (r queries) Skill(ctx context.Context, id int64) (*models.Skill, error) {
	return get[models.Skill](ctx, r, id)
}

func (r queries) Skills(ctx context.Context) ([]models.Skill, error) {
	return list[models.Skill](ctx, r, "")
}

func (r queries) SkillByName(ctx context.Context, name string) (*models.Skill, error) {
	return getBy[models.Skill](ctx, r, "name", name)
}

func (r queries) RoleType(ctx context.Context, id int64) (*models.RoleType, error) {
	return get[models.RoleType](ctx, r, id)
}

func (r queries) RoleTypes(ctx context.Context) ([]models.RoleType, error) {
	return list[models.RoleType](ctx, r, "")
}

func (r queries) RoleTypeByName(ctx context.Context, name string) (*models.RoleType, error) {
	return getBy[models.RoleType](ctx, r, "name", name)
}

func (r queries) RoleLevel(ctx context.Context, id int64) (*models.RoleLevel, error) {
	return get[models.RoleLevel](ctx, r, id)
}

func (r queries) RoleLevels(ctx context.Context) ([]models.RoleLevel, error) {
	return list[models.RoleLevel](ctx, r, "")
}

func (r queries) RoleLevelByName(ctx context.Context, name string) (*models.RoleLevel, error) {
	return getBy[models.RoleLevel](ctx, r, "name", name)
}

func (r queries) Role(ctx context.Context, id int64) (*models.Role, error) {
	return get[models.Role](ctx, r, id)
}

func (r queries) Roles(ctx context.Context) ([]models.Role, error) {
	return list[models.Role](ctx, r, "")
}

func (r queries) RoleByName(ctx context.Context, name string) (*models.Role, error) {
	return getBy[models.Role](ctx, r, "name", name)
}

func (r queries) RolesByType(ctx context.Context, roleTypeID int64) ([]models.Role, error) {
	return list[models.Role](ctx, r, "role_type_id = ?", roleTypeID)
}

func (r queries) RolesByLevel(ctx context.Context, roleLevelID int64) ([]models.Role, error) {
	return list[models.Role](ctx, r, "role_level_id = ?", roleLevelID)
}
