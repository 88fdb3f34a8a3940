package mock

import (
	"context"
	"sync"

	apperrors "github.com/garnizeh/staffing/pkg/errors"
	"github.com/garnizeh/staffing/pkg/models"
	"github.com/garnizeh/staffing/pkg/repository"
)

var _ repository.CatalogReader = (*Catalog)(nil)

// Catalog is an in-memory CatalogReader that counts calls per method.
type Catalog struct {
	mu        sync.Mutex
	SkillList []models.Skill
	TypeList  []models.RoleType
	LevelList []models.RoleLevel
	RoleList  []models.Role
	Err       error
	calls     map[string]int
}

func NewCatalog() *Catalog {
	return &Catalog{calls: map[string]int{}}
}

// Calls returns how many times method was invoked.
func (m *Catalog) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *Catalog) record(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[method]++
	return m.Err
}

func (m *Catalog) Skills(ctx context.Context) ([]models.Skill, error) {
	if err := m.record("Skills"); err != nil {
		return nil, err
	}
	return append([]models.Skill{}, m.SkillList...), nil
}

func (m *Catalog) RoleTypes(ctx context.Context) ([]models.RoleType, error) {
	if err := m.record("RoleTypes"); err != nil {
		return nil, err
	}
	return append([]models.RoleType{}, m.TypeList...), nil
}

func (m *Catalog) RoleLevels(ctx context.Context) ([]models.RoleLevel, error) {
	if err := m.record("RoleLevels"); err != nil {
		return nil, err
	}
	return append([]models.RoleLevel{}, m.LevelList...), nil
}

func (m *Catalog) Roles(ctx context.Context) ([]models.Role, error) {
	if err := m.record("Roles"); err != nil {
		return nil, err
	}
	return append([]models.Role{}, m.RoleList...), nil
}

func (m *Catalog) SkillByName(ctx context.Context, name string) (*models.Skill, error) {
	if err := m.record("SkillByName"); err != nil {
		return nil, err
	}
	for _, s := range m.SkillList {
		if s.Name == name {
			return &s, nil
		}
	}
	return nil, apperrors.NotFoundBy(models.TableSkills, "name", name)
}

func (m *Catalog) RoleTypeByName(ctx context.Context, name string) (*models.RoleType, error) {
	if err := m.record("RoleTypeByName"); err != nil {
		return nil, err
	}
	for _, t := range m.TypeList {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, apperrors.NotFoundBy(models.TableRoleTypes, "name", name)
}

func (m *Catalog) RoleLevelByName(ctx context.Context, name string) (*models.RoleLevel, error) {
	if err := m.record("RoleLevelByName"); err != nil {
		return nil, err
	}
	for _, l := range m.LevelList {
		if l.Name == name {
			return &l, nil
		}
	}
	return nil, apperrors.NotFoundBy(models.TableRoleLevels, "name", name)
}

func (m *Catalog) RoleByName(ctx context.Context, name string) (*models.Role, error) {
	if err := m.record("RoleByName"); err != nil {
		return nil, err
	}
	for _, r := range m.RoleList {
		if r.Name == name {
			return &r, nil
		}
	}
	return nil, apperrors.NotFoundBy(models.TableRoles, "name", name)
}
