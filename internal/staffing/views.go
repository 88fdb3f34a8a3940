package staffing

import (
	"context"

	apperrors "github.com/garnizeh/staffing/pkg/errors"
	"github.com/garnizeh/staffing/pkg/models"
)

// Views walk relationships from a parent to its children by foreign key.

type ClientPortfolio struct {
	Client   models.Client    `json:"client"`
	Projects []models.Project `json:"projects"`
}

func (s *Service) ClientPortfolio(ctx context.Context, clientID int64) (*ClientPortfolio, error) {
	c, err := s.store.Client(ctx, clientID)
	if err != nil {
		return nil, err
	}
	projects, err := s.store.ProjectsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &ClientPortfolio{Client: *c, Projects: projects}, nil
}

type SkillLevel struct {
	Skill            string `json:"skill"`
	ProficiencyLevel int    `json:"proficiency_level"`
}

type RoleHeld struct {
	Role      string      `json:"role"`
	StartDate models.Date `json:"start_date"`
}

type IndividualProfile struct {
	Individual   models.Individual     `json:"individual"`
	Skills       []SkillLevel          `json:"skills"`
	Roles        []RoleHeld            `json:"roles"`
	Availability []models.Availability `json:"availability"`
	Assignments  []models.Assignment   `json:"assignments"`
}

func (s *Service) IndividualProfile(ctx context.Context, individualID int64) (*IndividualProfile, error) {
	i, err := s.store.Individual(ctx, individualID)
	if err != nil {
		return nil, err
	}
	skillNames, err := s.skillNames(ctx)
	if err != nil {
		return nil, err
	}
	roleNames, err := s.roleNames(ctx)
	if err != nil {
		return nil, err
	}

	held, err := s.store.IndividualSkillsOf(ctx, individualID)
	if err != nil {
		return nil, err
	}
	p := &IndividualProfile{Individual: *i, Skills: []SkillLevel{}, Roles: []RoleHeld{}}
	for _, h := range held {
		p.Skills = append(p.Skills, SkillLevel{Skill: skillNames[h.SkillID], ProficiencyLevel: h.ProficiencyLevel})
	}

	roles, err := s.store.IndividualRolesOf(ctx, individualID)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		p.Roles = append(p.Roles, RoleHeld{Role: roleNames[r.RoleID], StartDate: r.StartDate})
	}

	if p.Availability, err = s.store.AvailabilitiesOf(ctx, individualID); err != nil {
		return nil, err
	}
	if p.Assignments, err = s.store.AssignmentsByIndividual(ctx, individualID); err != nil {
		return nil, err
	}
	return p, nil
}

type SkillNeedView struct {
	Skill              string `json:"skill"`
	MinimumProficiency int    `json:"minimum_proficiency"`
}

type RoleNeedView struct {
	Role         string `json:"role"`
	NumberNeeded int    `json:"number_needed"`
}

type AssignmentView struct {
	models.Assignment
	IndividualName string `json:"individual_name"`
}

type RequirementStaffing struct {
	Requirement models.ProjectRequirement `json:"requirement"`
	Time        *models.TimeRequirement   `json:"time,omitempty"`
	Skills      []SkillNeedView           `json:"skills"`
	Roles       []RoleNeedView            `json:"roles"`
	Assignments []AssignmentView          `json:"assignments"`
}

type ProjectStaffing struct {
	Project      models.Project        `json:"project"`
	Requirements []RequirementStaffing `json:"requirements"`
}

// ProjectStaffing lists every requirement of a project with its needs and
// the individuals assigned to it.
func (s *Service) ProjectStaffing(ctx context.Context, projectID int64) (*ProjectStaffing, error) {
	p, err := s.store.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	skillNames, err := s.skillNames(ctx)
	if err != nil {
		return nil, err
	}
	roleNames, err := s.roleNames(ctx)
	if err != nil {
		return nil, err
	}
	reqs, err := s.store.RequirementsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out := &ProjectStaffing{Project: *p, Requirements: make([]RequirementStaffing, 0, len(reqs))}
	people := map[int64]string{}
	for _, r := range reqs {
		rs := RequirementStaffing{Requirement: r, Skills: []SkillNeedView{}, Roles: []RoleNeedView{}, Assignments: []AssignmentView{}}

		tr, err := s.store.TimeRequirementOf(ctx, r.ID)
		switch {
		case err == nil:
			rs.Time = tr
		case !apperrors.IsNotFound(err):
			return nil, err
		}

		skills, err := s.store.SkillRequirementsOf(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		for _, sk := range skills {
			rs.Skills = append(rs.Skills, SkillNeedView{Skill: skillNames[sk.SkillID], MinimumProficiency: sk.MinimumProficiency})
		}

		roles, err := s.store.RoleRequirementsOf(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		for _, rr := range roles {
			rs.Roles = append(rs.Roles, RoleNeedView{Role: roleNames[rr.RoleID], NumberNeeded: rr.NumberNeeded})
		}

		assignments, err := s.store.AssignmentsByRequirement(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range assignments {
			name, ok := people[a.IndividualID]
			if !ok {
				ind, err := s.store.Individual(ctx, a.IndividualID)
				if err != nil {
					return nil, err
				}
				name = ind.Name
				people[a.IndividualID] = name
			}
			rs.Assignments = append(rs.Assignments, AssignmentView{Assignment: a, IndividualName: name})
		}
		out.Requirements = append(out.Requirements, rs)
	}
	return out, nil
}

func (s *Service) skillNames(ctx context.Context) (map[int64]string, error) {
	skills, err := s.catalog.Skills(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(skills))
	for _, sk := range skills {
		names[sk.ID] = sk.Name
	}
	return names, nil
}

func (s *Service) roleNames(ctx context.Context) (map[int64]string, error) {
	roles, err := s.catalog.Roles(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(roles))
	for _, r := range roles {
		names[r.ID] = r.Name
	}
	return names, nil
}
