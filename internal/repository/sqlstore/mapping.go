package sqlstore

import (
	"fmt"
	"strings"

	"github.com/garnizeh/staffing/pkg/models"
)

// mapping binds an entity's persisted columns to its Go fields. values are
// read at construction time; fields point into the entity for scanning.
type mapping struct {
	table   string
	columns []string
	values  []any
	fields  []any
}

func errNil(table string) error {
	return fmt.Errorf("%s entity is nil", table)
}

func mapEntity(e models.Entity) (mapping, error) {
	switch v := e.(type) {
	case *models.Client:
		if v == nil {
			return mapping{}, errNil(models.TableClients)
		}
		return mapping{
			table:   models.TableClients,
			columns: []string{"name", "contact_information"},
			values:  []any{v.Name, v.ContactInformation},
			fields:  []any{&v.Name, &v.ContactInformation},
		}, nil
	case *models.Individual:
		if v == nil {
			return mapping{}, errNil(models.TableIndividuals)
		}
		return mapping{
			table:   models.TableIndividuals,
			columns: []string{"name", "email", "employment_type", "hire_date"},
			values:  []any{v.Name, v.Email, string(v.EmploymentType), v.HireDate},
			fields:  []any{&v.Name, &v.Email, &v.EmploymentType, &v.HireDate},
		}, nil
	case *models.Skill:
		if v == nil {
			return mapping{}, errNil(models.TableSkills)
		}
		return mapping{
			table:   models.TableSkills,
			columns: []string{"name", "description"},
			values:  []any{v.Name, v.Description},
			fields:  []any{&v.Name, &v.Description},
		}, nil
	case *models.RoleType:
		if v == nil {
			return mapping{}, errNil(models.TableRoleTypes)
		}
		return mapping{
			table:   models.TableRoleTypes,
			columns: []string{"name"},
			values:  []any{v.Name},
			fields:  []any{&v.Name},
		}, nil
	case *models.RoleLevel:
		if v == nil {
			return mapping{}, errNil(models.TableRoleLevels)
		}
		return mapping{
			table:   models.TableRoleLevels,
			columns: []string{"name"},
			values:  []any{v.Name},
			fields:  []any{&v.Name},
		}, nil
	case *models.Role:
		if v == nil {
			return mapping{}, errNil(models.TableRoles)
		}
		return mapping{
			table:   models.TableRoles,
			columns: []string{"name", "description", "role_type_id", "role_level_id"},
			values:  []any{v.Name, v.Description, v.RoleTypeID, v.RoleLevelID},
			fields:  []any{&v.Name, &v.Description, &v.RoleTypeID, &v.RoleLevelID},
		}, nil
	case *models.Project:
		if v == nil {
			return mapping{}, errNil(models.TableProjects)
		}
		return mapping{
			table:   models.TableProjects,
			columns: []string{"client_id", "name", "description", "start_date", "end_date", "status"},
			values:  []any{v.ClientID, v.Name, v.Description, v.StartDate, v.EndDate, v.Status},
			fields:  []any{&v.ClientID, &v.Name, &v.Description, &v.StartDate, &v.EndDate, &v.Status},
		}, nil
	case *models.ProjectRequirement:
		if v == nil {
			return mapping{}, errNil(models.TableProjectRequirements)
		}
		return mapping{
			table:   models.TableProjectRequirements,
			columns: []string{"project_id", "description", "start_date", "end_date"},
			values:  []any{v.ProjectID, v.Description, v.StartDate, v.EndDate},
			fields:  []any{&v.ProjectID, &v.Description, &v.StartDate, &v.EndDate},
		}, nil
	case *models.TimeRequirement:
		if v == nil {
			return mapping{}, errNil(models.TableTimeRequirements)
		}
		return mapping{
			table:   models.TableTimeRequirements,
			columns: []string{"requirement_id", "hours_per_week", "total_hours"},
			values:  []any{v.RequirementID, v.HoursPerWeek, v.TotalHours},
			fields:  []any{&v.RequirementID, &v.HoursPerWeek, &v.TotalHours},
		}, nil
	case *models.SkillRequirement:
		if v == nil {
			return mapping{}, errNil(models.TableSkillRequirements)
		}
		return mapping{
			table:   models.TableSkillRequirements,
			columns: []string{"requirement_id", "skill_id", "minimum_proficiency"},
			values:  []any{v.RequirementID, v.SkillID, v.MinimumProficiency},
			fields:  []any{&v.RequirementID, &v.SkillID, &v.MinimumProficiency},
		}, nil
	case *models.RoleRequirement:
		if v == nil {
			return mapping{}, errNil(models.TableRoleRequirements)
		}
		return mapping{
			table:   models.TableRoleRequirements,
			columns: []string{"requirement_id", "role_id", "number_needed"},
			values:  []any{v.RequirementID, v.RoleID, v.NumberNeeded},
			fields:  []any{&v.RequirementID, &v.RoleID, &v.NumberNeeded},
		}, nil
	case *models.IndividualSkill:
		if v == nil {
			return mapping{}, errNil(models.TableIndividualSkills)
		}
		return mapping{
			table:   models.TableIndividualSkills,
			columns: []string{"individual_id", "skill_id", "proficiency_level"},
			values:  []any{v.IndividualID, v.SkillID, v.ProficiencyLevel},
			fields:  []any{&v.IndividualID, &v.SkillID, &v.ProficiencyLevel},
		}, nil
	case *models.IndividualRole:
		if v == nil {
			return mapping{}, errNil(models.TableIndividualRoles)
		}
		return mapping{
			table:   models.TableIndividualRoles,
			columns: []string{"individual_id", "role_id", "start_date"},
			values:  []any{v.IndividualID, v.RoleID, v.StartDate},
			fields:  []any{&v.IndividualID, &v.RoleID, &v.StartDate},
		}, nil
	case *models.Availability:
		if v == nil {
			return mapping{}, errNil(models.TableAvailabilities)
		}
		return mapping{
			table:   models.TableAvailabilities,
			columns: []string{"individual_id", "start_date", "end_date", "hours_per_week"},
			values:  []any{v.IndividualID, v.StartDate, v.EndDate, v.HoursPerWeek},
			fields:  []any{&v.IndividualID, &v.StartDate, &v.EndDate, &v.HoursPerWeek},
		}, nil
	case *models.Assignment:
		if v == nil {
			return mapping{}, errNil(models.TableAssignments)
		}
		return mapping{
			table:   models.TableAssignments,
			columns: []string{"individual_id", "requirement_id", "start_date", "end_date", "status"},
			values:  []any{v.IndividualID, v.RequirementID, v.StartDate, v.EndDate, v.Status},
			fields:  []any{&v.IndividualID, &v.RequirementID, &v.StartDate, &v.EndDate, &v.Status},
		}, nil
	case nil:
		return mapping{}, fmt.Errorf("entity is nil")
	default:
		return mapping{}, fmt.Errorf("unsupported entity %T", e)
	}
}

// newEntity returns a zero entity stored in table.
func newEntity(table string) (models.Entity, error) {
	switch table {
	case models.TableClients:
		return &models.Client{}, nil
	case models.TableIndividuals:
		return &models.Individual{}, nil
	case models.TableSkills:
		return &models.Skill{}, nil
	case models.TableRoleTypes:
		return &models.RoleType{}, nil
	case models.TableRoleLevels:
		return &models.RoleLevel{}, nil
	case models.TableRoles:
		return &models.Role{}, nil
	case models.TableProjects:
		return &models.Project{}, nil
	case models.TableProjectRequirements:
		return &models.ProjectRequirement{}, nil
	case models.TableTimeRequirements:
		return &models.TimeRequirement{}, nil
	case models.TableSkillRequirements:
		return &models.SkillRequirement{}, nil
	case models.TableRoleRequirements:
		return &models.RoleRequirement{}, nil
	case models.TableIndividualSkills:
		return &models.IndividualSkill{}, nil
	case models.TableIndividualRoles:
		return &models.IndividualRole{}, nil
	case models.TableAvailabilities:
		return &models.Availability{}, nil
	case models.TableAssignments:
		return &models.Assignment{}, nil
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
}

func (m mapping) selectList() string {
	return "id, created_at, updated_at, " + strings.Join(m.columns, ", ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
