package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/garnizeh/staffing/pkg/models"
	"github.com/garnizeh/staffing/pkg/repository"
)

// Summary counts the rows inserted per table.
type Summary map[string]int

// Total is the number of rows inserted.
func (s Summary) Total() int {
	n := 0
	for _, v := range s {
		n += v
	}
	return n
}

type Loader struct {
	store  repository.Store
	logger *slog.Logger
	clock  func() time.Time
}

func NewLoader(store repository.Store, logger *slog.Logger, clock func() time.Time) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Loader{store: store, logger: logger, clock: clock}
}

// Load inserts ds atomically. Relative dates are resolved against the
// current day. Names of skills, role types, role levels and roles and the
// emails of individuals may refer to rows already in the store.
func (l *Loader) Load(ctx context.Context, ds *Dataset) (Summary, error) {
	today := models.Today(l.clock())
	sum := Summary{}
	err := l.store.WithTx(ctx, func(tx repository.Tx) error {
		b := &batch{ctx: ctx, tx: tx, today: today, sum: sum, clients: map[string]int64{}}
		return b.run(ds)
	})
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	l.logger.Info("dataset loaded", "rows", sum.Total(), "tables", len(sum))
	return sum, nil
}

// batch carries the state of one Load.
type batch struct {
	ctx     context.Context
	tx      repository.Tx
	today   models.Date
	sum     Summary
	clients map[string]int64
}

func (b *batch) insert(e models.Entity) error {
	if err := b.tx.Insert(b.ctx, e); err != nil {
		return err
	}
	b.sum[e.TableName()]++
	return nil
}

func (b *batch) date(field, s string) (models.Date, error) {
	d, err := ResolveDate(s, b.today)
	if err != nil {
		return models.Date{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func (b *batch) run(ds *Dataset) error {
	for _, c := range ds.Clients {
		client, err := models.NewClient(c.Name, c.ContactInformation)
		if err != nil {
			return err
		}
		if err := b.insert(client); err != nil {
			return err
		}
		b.clients[c.Name] = client.ID
	}
	for _, s := range ds.Skills {
		if err := b.insert(&models.Skill{Name: s.Name, Description: optional(s.Description)}); err != nil {
			return err
		}
	}
	for _, t := range ds.RoleTypes {
		if err := b.insert(&models.RoleType{Name: t.Name}); err != nil {
			return err
		}
	}
	for _, lv := range ds.RoleLevels {
		if err := b.insert(&models.RoleLevel{Name: lv.Name}); err != nil {
			return err
		}
	}
	for _, r := range ds.Roles {
		if err := b.role(r); err != nil {
			return err
		}
	}
	for _, i := range ds.Individuals {
		if err := b.individual(i); err != nil {
			return err
		}
	}
	for _, p := range ds.Projects {
		if err := b.project(p); err != nil {
			return err
		}
	}
	return nil
}

func (b *batch) role(r Role) error {
	t, err := b.tx.RoleTypeByName(b.ctx, r.RoleType)
	if err != nil {
		return err
	}
	lv, err := b.tx.RoleLevelByName(b.ctx, r.RoleLevel)
	if err != nil {
		return err
	}
	return b.insert(&models.Role{Name: r.Name, Description: optional(r.Description), RoleTypeID: t.ID, RoleLevelID: lv.ID})
}

func (b *batch) individual(i Individual) error {
	hired, err := b.date("hire_date", i.HireDate)
	if err != nil {
		return err
	}
	ind := &models.Individual{Name: i.Name, Email: i.Email, EmploymentType: models.EmploymentType(i.EmploymentType), HireDate: hired}
	if err := b.insert(ind); err != nil {
		return err
	}

	for _, s := range i.Skills {
		sk, err := b.tx.SkillByName(b.ctx, s.Skill)
		if err != nil {
			return err
		}
		if err := b.insert(&models.IndividualSkill{IndividualID: ind.ID, SkillID: sk.ID, ProficiencyLevel: s.ProficiencyLevel}); err != nil {
			return err
		}
	}
	for _, r := range i.Roles {
		role, err := b.tx.RoleByName(b.ctx, r.Role)
		if err != nil {
			return err
		}
		start, err := b.date("start_date", r.StartDate)
		if err != nil {
			return err
		}
		if err := b.insert(&models.IndividualRole{IndividualID: ind.ID, RoleID: role.ID, StartDate: start}); err != nil {
			return err
		}
	}
	for _, a := range i.Availability {
		start, err := b.date("start_date", a.StartDate)
		if err != nil {
			return err
		}
		end, err := b.date("end_date", a.EndDate)
		if err != nil {
			return err
		}
		if err := b.insert(&models.Availability{IndividualID: ind.ID, StartDate: start, EndDate: end, HoursPerWeek: a.HoursPerWeek}); err != nil {
			return err
		}
	}
	return nil
}

func (b *batch) project(p Project) error {
	clientID, ok := b.clients[p.Client]
	if !ok {
		return fmt.Errorf("project %q: client %q is not part of the dataset", p.Name, p.Client)
	}
	start, err := b.date("start_date", p.StartDate)
	if err != nil {
		return err
	}
	end, err := b.date("end_date", p.EndDate)
	if err != nil {
		return err
	}
	proj := &models.Project{ClientID: clientID, Name: p.Name, Description: optional(p.Description), StartDate: start, EndDate: end, Status: p.Status}
	if err := b.insert(proj); err != nil {
		return err
	}
	for _, r := range p.Requirements {
		if err := b.requirement(proj.ID, r); err != nil {
			return err
		}
	}
	return nil
}

func (b *batch) requirement(projectID int64, r Requirement) error {
	start, err := b.date("start_date", r.StartDate)
	if err != nil {
		return err
	}
	end, err := b.date("end_date", r.EndDate)
	if err != nil {
		return err
	}
	req := &models.ProjectRequirement{ProjectID: projectID, Description: r.Description, StartDate: start, EndDate: end}
	if err := b.insert(req); err != nil {
		return err
	}

	if r.Time != nil {
		if err := b.insert(&models.TimeRequirement{RequirementID: req.ID, HoursPerWeek: r.Time.HoursPerWeek, TotalHours: r.Time.TotalHours}); err != nil {
			return err
		}
	}
	for _, s := range r.Skills {
		sk, err := b.tx.SkillByName(b.ctx, s.Skill)
		if err != nil {
			return err
		}
		if err := b.insert(&models.SkillRequirement{RequirementID: req.ID, SkillID: sk.ID, MinimumProficiency: s.MinimumProficiency}); err != nil {
			return err
		}
	}
	for _, rn := range r.Roles {
		role, err := b.tx.RoleByName(b.ctx, rn.Role)
		if err != nil {
			return err
		}
		if err := b.insert(&models.RoleRequirement{RequirementID: req.ID, RoleID: role.ID, NumberNeeded: rn.NumberNeeded}); err != nil {
			return err
		}
	}
	for _, a := range r.Assignments {
		ind, err := b.tx.IndividualByEmail(b.ctx, a.Individual)
		if err != nil {
			return err
		}
		start, err := b.date("start_date", a.StartDate)
		if err != nil {
			return err
		}
		end, err := b.date("end_date", a.EndDate)
		if err != nil {
			return err
		}
		status := a.Status
		if status == "" {
			status = models.StatusAssigned
		}
		if err := b.insert(&models.Assignment{IndividualID: ind.ID, RequirementID: req.ID, StartDate: start, EndDate: end, Status: status}); err != nil {
			return err
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
