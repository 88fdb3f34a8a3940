// Package seed loads a YAML staffing dataset into a store. Datasets are
// checked against a JSON Schema before anything is written and are inserted
// in a single transaction.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/qri-io/jsonschema"
	"gopkg.in/yaml.v3"

	dbfs "github.com/garnizeh/staffing/db"
	"github.com/garnizeh/staffing/pkg/models"
)

const (
	SchemaPath = "seed/dataset.schema.json"
	SamplePath = "seed/sample.yaml"
)

type Dataset struct {
	Clients     []Client     `yaml:"clients"`
	Skills      []Named      `yaml:"skills"`
	RoleTypes   []Named      `yaml:"role_types"`
	RoleLevels  []Named      `yaml:"role_levels"`
	Roles       []Role       `yaml:"roles"`
	Individuals []Individual `yaml:"individuals"`
	Projects    []Project    `yaml:"projects"`
}

type Client struct {
	Name               string `yaml:"name"`
	ContactInformation string `yaml:"contact_information"`
}

type Named struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Role struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	RoleType    string `yaml:"role_type"`
	RoleLevel   string `yaml:"role_level"`
}

type Individual struct {
	Name           string         `yaml:"name"`
	Email          string         `yaml:"email"`
	EmploymentType string         `yaml:"employment_type"`
	HireDate       string         `yaml:"hire_date"`
	Skills         []HeldSkill    `yaml:"skills"`
	Roles          []HeldRole     `yaml:"roles"`
	Availability   []Availability `yaml:"availability"`
}

type HeldSkill struct {
	Skill            string `yaml:"skill"`
	ProficiencyLevel int    `yaml:"proficiency_level"`
}

type HeldRole struct {
	Role      string `yaml:"role"`
	StartDate string `yaml:"start_date"`
}

type Availability struct {
	StartDate    string `yaml:"start_date"`
	EndDate      string `yaml:"end_date"`
	HoursPerWeek int    `yaml:"hours_per_week"`
}

type Project struct {
	Client       string        `yaml:"client"`
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	StartDate    string        `yaml:"start_date"`
	EndDate      string        `yaml:"end_date"`
	Status       string        `yaml:"status"`
	Requirements []Requirement `yaml:"requirements"`
}

type Requirement struct {
	Description string       `yaml:"description"`
	StartDate   string       `yaml:"start_date"`
	EndDate     string       `yaml:"end_date"`
	Time        *Time        `yaml:"time"`
	Skills      []SkillNeed  `yaml:"skills"`
	Roles       []RoleNeed   `yaml:"roles"`
	Assignments []Assignment `yaml:"assignments"`
}

type Time struct {
	HoursPerWeek int `yaml:"hours_per_week"`
	TotalHours   int `yaml:"total_hours"`
}

type SkillNeed struct {
	Skill              string `yaml:"skill"`
	MinimumProficiency int    `yaml:"minimum_proficiency"`
}

type RoleNeed struct {
	Role         string `yaml:"role"`
	NumberNeeded int    `yaml:"number_needed"`
}

type Assignment struct {
	// Individual is the email of the assigned individual.
	Individual string `yaml:"individual"`
	StartDate  string `yaml:"start_date"`
	EndDate    string `yaml:"end_date"`
	Status     string `yaml:"status"`
}

// Schema compiles the embedded dataset schema.
func Schema() (*jsonschema.Schema, error) {
	b, err := fs.ReadFile(dbfs.SeedFiles, SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("read dataset schema: %w", err)
	}
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(b, rs); err != nil {
		return nil, fmt.Errorf("compile dataset schema: %w", err)
	}
	return rs, nil
}

// Parse decodes a YAML dataset after validating it against the schema.
func Parse(ctx context.Context, data []byte) (*Dataset, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	j, err := json.Marshal(plainDates(raw))
	if err != nil {
		return nil, fmt.Errorf("convert dataset: %w", err)
	}

	schema, err := Schema()
	if err != nil {
		return nil, err
	}
	verrs, err := schema.ValidateBytes(ctx, j)
	if err != nil {
		return nil, fmt.Errorf("schema validate error: %w", err)
	}
	if len(verrs) > 0 {
		var sb strings.Builder
		for i, v := range verrs {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(v.PropertyPath)
			sb.WriteString(": ")
			sb.WriteString(v.Message)
		}
		return nil, fmt.Errorf("dataset does not match schema: %s", sb.String())
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return &ds, nil
}

// plainDates turns the timestamps yaml.v3 produces for unquoted
// YYYY-MM-DD scalars back into date strings.
func plainDates(v any) any {
	switch x := v.(type) {
	case time.Time:
		return models.DateOf(x).String()
	case map[string]any:
		for k, e := range x {
			x[k] = plainDates(e)
		}
	case []any:
		for i, e := range x {
			x[i] = plainDates(e)
		}
	}
	return v
}

// Sample returns the embedded sample dataset.
func Sample(ctx context.Context) (*Dataset, error) {
	b, err := fs.ReadFile(dbfs.SeedFiles, SamplePath)
	if err != nil {
		return nil, fmt.Errorf("read sample dataset: %w", err)
	}
	return Parse(ctx, b)
}

// ResolveDate parses "YYYY-MM-DD", "today", "today+N" or "today-N" (days).
// An empty string yields the zero Date.
func ResolveDate(s string, today models.Date) (models.Date, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "today") {
		return models.ParseDate(s)
	}
	offset := strings.TrimPrefix(s, "today")
	if offset == "" {
		return today, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(offset, "+"))
	if err != nil || (offset[0] != '+' && offset[0] != '-') {
		return models.Date{}, fmt.Errorf("invalid relative date %q", s)
	}
	return today.AddDays(n), nil
}
