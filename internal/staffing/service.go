// Package staffing exposes the domain operations of the staffing data model:
// registering clients and individuals, maintaining the skill and role
// catalog, opening projects with their requirements, and assigning people.
// Every operation validates in memory first and persists through a
// repository.Store.
package staffing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/garnizeh/staffing/pkg/models"
	"github.com/garnizeh/staffing/pkg/repository"
)

// Catalog is a CatalogReader that can drop cached state, such as the Redis
// cache in internal/cache.
type Catalog interface {
	repository.CatalogReader
	Invalidate(ctx context.Context) error
}

type Service struct {
	store   repository.Store
	catalog repository.CatalogReader
	cache   Catalog
	logger  *slog.Logger
	clock   func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithCatalog routes catalog reads through c and invalidates it after every
// write to a reference table.
func WithCatalog(c Catalog) Option {
	return func(s *Service) {
		s.catalog = c
		s.cache = c
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		catalog: store,
		logger:  slog.Default(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store.
func (s *Service) Store() repository.Store { return s.store }

// Today is the current calendar day as seen by the service.
func (s *Service) Today() models.Date { return models.Today(s.clock()) }

func (s *Service) RegisterClient(ctx context.Context, name, contact string) (*models.Client, error) {
	c, err := models.NewClient(name, contact)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("client registered", "client_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *Service) HireIndividual(ctx context.Context, name, email string, employmentType models.EmploymentType, hireDate models.Date) (*models.Individual, error) {
	i, err := models.NewIndividual(name, email, employmentType, hireDate, s.clock())
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, i); err != nil {
		return nil, err
	}
	s.logger.Info("individual hired", "individual_id", i.ID, "email", i.Email)
	return i, nil
}

// ChangeEmploymentType updates an individual's contract kind.
func (s *Service) ChangeEmploymentType(ctx context.Context, individualID int64, t models.EmploymentType) (*models.Individual, error) {
	i, err := s.store.Individual(ctx, individualID)
	if err != nil {
		return nil, err
	}
	if err := i.SetEmploymentType(t); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, i); err != nil {
		return nil, err
	}
	s.logger.Info("employment type changed", "individual_id", i.ID, "employment_type", t)
	return i, nil
}

func (s *Service) AddSkill(ctx context.Context, name, description string) (*models.Skill, error) {
	sk, err := models.NewSkill(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.insertReference(ctx, sk); err != nil {
		return nil, err
	}
	s.logger.Info("skill added", "skill_id", sk.ID, "name", sk.Name)
	return sk, nil
}

func (s *Service) AddRoleType(ctx context.Context, name string) (*models.RoleType, error) {
	t, err := models.NewRoleType(name)
	if err != nil {
		return nil, err
	}
	if err := s.insertReference(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("role type added", "role_type_id", t.ID, "name", t.Name)
	return t, nil
}

func (s *Service) AddRoleLevel(ctx context.Context, name string) (*models.RoleLevel, error) {
	l, err := models.NewRoleLevel(name)
	if err != nil {
		return nil, err
	}
	if err := s.insertReference(ctx, l); err != nil {
		return nil, err
	}
	s.logger.Info("role level added", "role_level_id", l.ID, "name", l.Name)
	return l, nil
}

// DefineRole creates a role from the names of an existing role type and
// role level.
func (s *Service) DefineRole(ctx context.Context, name, description, roleType, roleLevel string) (*models.Role, error) {
	t, err := s.catalog.RoleTypeByName(ctx, roleType)
	if err != nil {
		return nil, err
	}
	l, err := s.catalog.RoleLevelByName(ctx, roleLevel)
	if err != nil {
		return nil, err
	}
	r, err := models.NewRole(name, description, t.ID, l.ID)
	if err != nil {
		return nil, err
	}
	if err := s.insertReference(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info("role defined", "role_id", r.ID, "name", r.Name, "role_type", t.Name, "role_level", l.Name)
	return r, nil
}

func (s *Service) OpenProject(ctx context.Context, clientID int64, name, description string, start, end models.Date, status string) (*models.Project, error) {
	p, err := models.NewProject(clientID, name, description, start, end, status)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("project opened", "project_id", p.ID, "client_id", p.ClientID, "name", p.Name)
	return p, nil
}

// Reschedule moves both project dates at once.
func (s *Service) Reschedule(ctx context.Context, projectID int64, start, end models.Date) (*models.Project, error) {
	p, err := s.store.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := p.SetSchedule(start, end); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("project rescheduled", "project_id", p.ID, "start_date", start, "end_date", end)
	return p, nil
}

func (s *Service) SetProjectStatus(ctx context.Context, projectID int64, status string) (*models.Project, error) {
	p, err := s.store.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	p.Status = status
	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("project status changed", "project_id", p.ID, "status", status)
	return p, nil
}

// RequirementSpec describes a requirement and its time, skill and role needs.
type RequirementSpec struct {
	ProjectID   int64
	Description string
	StartDate   models.Date
	EndDate     models.Date
	Time        *TimeNeed
	Skills      []SkillNeed
	Roles       []RoleNeed
}

type TimeNeed struct {
	HoursPerWeek int
	TotalHours   int
}

type SkillNeed struct {
	SkillID            int64
	MinimumProficiency int
}

type RoleNeed struct {
	RoleID       int64
	NumberNeeded int
}

// Requirement is a stored requirement with its sub-requirements.
type Requirement struct {
	models.ProjectRequirement
	Time   *models.TimeRequirement   `json:"time,omitempty"`
	Skills []models.SkillRequirement `json:"skills"`
	Roles  []models.RoleRequirement  `json:"roles"`
}

// AddRequirement stores a requirement and all its needs in one transaction.
// Nothing is stored when any part fails.
func (s *Service) AddRequirement(ctx context.Context, spec RequirementSpec) (*Requirement, error) {
	pr, err := models.NewProjectRequirement(spec.ProjectID, spec.Description, spec.StartDate, spec.EndDate)
	if err != nil {
		return nil, err
	}
	out := &Requirement{}
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := tx.Insert(ctx, pr); err != nil {
			return err
		}
		if spec.Time != nil {
			tr, err := models.NewTimeRequirement(pr.ID, spec.Time.HoursPerWeek, spec.Time.TotalHours)
			if err != nil {
				return err
			}
			if err := tx.Insert(ctx, tr); err != nil {
				return err
			}
			out.Time = tr
		}
		for _, need := range spec.Skills {
			sr, err := models.NewSkillRequirement(pr.ID, need.SkillID, need.MinimumProficiency)
			if err != nil {
				return err
			}
			if err := tx.Insert(ctx, sr); err != nil {
				return err
			}
			out.Skills = append(out.Skills, *sr)
		}
		for _, need := range spec.Roles {
			rr, err := models.NewRoleRequirement(pr.ID, need.RoleID, need.NumberNeeded)
			if err != nil {
				return err
			}
			if err := tx.Insert(ctx, rr); err != nil {
				return err
			}
			out.Roles = append(out.Roles, *rr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add requirement: %w", err)
	}
	out.ProjectRequirement = *pr
	s.logger.Info("requirement added", "requirement_id", pr.ID, "project_id", pr.ProjectID,
		"skills", len(out.Skills), "roles", len(out.Roles), "time", out.Time != nil)
	return out, nil
}

func (s *Service) RecordSkill(ctx context.Context, individualID, skillID int64, proficiency int) (*models.IndividualSkill, error) {
	is, err := models.NewIndividualSkill(individualID, skillID, proficiency)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, is); err != nil {
		return nil, err
	}
	s.logger.Info("skill recorded", "individual_id", individualID, "skill_id", skillID, "proficiency_level", proficiency)
	return is, nil
}

func (s *Service) GrantRole(ctx context.Context, individualID, roleID int64, start models.Date) (*models.IndividualRole, error) {
	ir, err := models.NewIndividualRole(individualID, roleID, start)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, ir); err != nil {
		return nil, err
	}
	s.logger.Info("role granted", "individual_id", individualID, "role_id", roleID, "start_date", start)
	return ir, nil
}

func (s *Service) AddAvailability(ctx context.Context, individualID int64, start, end models.Date, hoursPerWeek int) (*models.Availability, error) {
	a, err := models.NewAvailability(individualID, start, end, hoursPerWeek)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("availability added", "individual_id", individualID, "availability_id", a.ID, "hours_per_week", hoursPerWeek)
	return a, nil
}

// Assign places an individual on a requirement with status "Assigned".
func (s *Service) Assign(ctx context.Context, individualID, requirementID int64, start, end models.Date) (*models.Assignment, error) {
	a, err := models.NewAssignment(individualID, requirementID, start, end, models.StatusAssigned)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("individual assigned", "assignment_id", a.ID, "individual_id", individualID, "requirement_id", requirementID)
	return a, nil
}

func (s *Service) SetAssignmentStatus(ctx context.Context, assignmentID int64, status string) (*models.Assignment, error) {
	var a models.Assignment
	if err := s.store.FindByID(ctx, &a, assignmentID); err != nil {
		return nil, err
	}
	a.Status = status
	if err := s.store.Update(ctx, &a); err != nil {
		return nil, err
	}
	s.logger.Info("assignment status changed", "assignment_id", a.ID, "status", status)
	return &a, nil
}

// Remove deletes e. Removing a catalog entry invalidates the catalog cache.
func (s *Service) Remove(ctx context.Context, e models.Entity) error {
	if err := s.store.Delete(ctx, e); err != nil {
		return err
	}
	s.logger.Info("entity removed", "table", e.TableName(), "id", e.Identity().ID)
	if isReference(e) {
		s.invalidate(ctx)
	}
	return nil
}

func (s *Service) insertReference(ctx context.Context, e models.Entity) error {
	if err := s.store.Insert(ctx, e); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// invalidate drops cached catalog data. Failures are logged; stale entries
// still expire after the cache TTL.
func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("catalog cache invalidation failed", "error", err)
	}
}

func isReference(e models.Entity) bool {
	switch e.TableName() {
	case models.TableSkills, models.TableRoleTypes, models.TableRoleLevels, models.TableRoles:
		return true
	}
	return false
}
