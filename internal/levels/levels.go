// Package levels holds the level table: the doctor roster and, for each
// level number, the fixed set of patients and its time budget.
// The table is data, not code; levels outside it are an explicit error.
package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/doctor"
	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/patient"
)

//go:embed levels.yaml
var defaultTable []byte

var (
	ErrUnknownLevel = errors.New("level is not defined in the level table")
	ErrInvalidTable = errors.New("invalid level table")
)

// DoctorSpec describes one doctor of the roster.
type DoctorSpec struct {
	Name       string                 `yaml:"name" validate:"required"`
	Specialty  string                 `yaml:"specialty"`
	Experience doctor.ExperienceLevel `yaml:"experience" validate:"required"`
}

// PatientSpec describes one patient of a level. Only the attribute matching
// Kind is read.
type PatientSpec struct {
	Name          string          `yaml:"name" validate:"required"`
	Kind          patient.Kind    `yaml:"kind" validate:"required,oneof=General Trauma RespiratoryInfection Dermatology Gastroenterology"`
	Urgency       patient.Urgency `yaml:"urgency"`
	Symptoms      []string        `yaml:"symptoms"`
	InjuryType    string          `yaml:"injury_type"`
	Contagious    bool            `yaml:"contagious"`
	SkinCondition string          `yaml:"skin_condition"`
	HasFever      bool            `yaml:"has_fever"`
}

// Definition is one level: its number, time budget and patients.
// A zero TimeBudget means "use the configured default".
type Definition struct {
	Number     int           `yaml:"number" validate:"gte=1"`
	TimeBudget int           `yaml:"time_budget" validate:"gte=0"`
	Patients   []PatientSpec `yaml:"patients" validate:"dive"`
}

// Table is the parsed, validated level table.
type Table struct {
	Doctors []DoctorSpec `yaml:"doctors" validate:"required,min=1,dive"`
	Levels  []Definition `yaml:"levels" validate:"required,min=1,dive"`

	byNumber map[int]Definition
}

var validate = validator.New()

// Default returns the table compiled into the binary.
func Default() (*Table, error) {
	return Parse(defaultTable)
}

// Load reads a table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level table %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML table.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Table) validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	seenDoctors := make(map[string]bool, len(t.Doctors))
	for _, d := range t.Doctors {
		if seenDoctors[d.Name] {
			return fmt.Errorf("%w: duplicate doctor %q", ErrInvalidTable, d.Name)
		}
		if !d.Experience.Valid() {
			return fmt.Errorf("%w: doctor %q has unknown experience %q", ErrInvalidTable, d.Name, d.Experience)
		}
		seenDoctors[d.Name] = true
	}

	sort.Slice(t.Levels, func(i, j int) bool { return t.Levels[i].Number < t.Levels[j].Number })

	t.byNumber = make(map[int]Definition, len(t.Levels))
	for i, def := range t.Levels {
		if def.Number != i+1 {
			return fmt.Errorf("%w: levels must be numbered 1..%d without gaps, found %d", ErrInvalidTable, len(t.Levels), def.Number)
		}
		if err := def.validatePatients(); err != nil {
			return err
		}
		t.byNumber[def.Number] = def
	}
	return nil
}

func (d Definition) validatePatients() error {
	seen := make(map[string]bool, len(d.Patients))
	for _, p := range d.Patients {
		if seen[p.Name] {
			return fmt.Errorf("%w: level %d: duplicate patient %q", ErrInvalidTable, d.Number, p.Name)
		}
		seen[p.Name] = true

		if p.Urgency != "" && !p.Urgency.Valid() {
			return fmt.Errorf("%w: level %d: patient %q has unknown urgency %q", ErrInvalidTable, d.Number, p.Name, p.Urgency)
		}
		forced, isForced := forcedUrgency[p.Kind]
		switch {
		case isForced && p.Urgency != "" && p.Urgency != forced:
			return fmt.Errorf("%w: level %d: %s patient %q is always %s urgency", ErrInvalidTable, d.Number, p.Kind, p.Name, forced)
		case !isForced && p.Urgency == "":
			return fmt.Errorf("%w: level %d: patient %q needs an urgency", ErrInvalidTable, d.Number, p.Name)
		}
	}
	return nil
}

var forcedUrgency = map[patient.Kind]patient.Urgency{
	patient.KindTrauma:               patient.UrgencyHigh,
	patient.KindRespiratoryInfection: patient.UrgencyMedium,
	patient.KindDermatology:          patient.UrgencyLow,
}

// Len is the number of levels in the table.
func (t *Table) Len() int {
	return len(t.Levels)
}

// Lookup returns the definition of level n, or ErrUnknownLevel.
func (t *Table) Lookup(n int) (Definition, error) {
	def, ok := t.byNumber[n]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %d (table has %d levels)", ErrUnknownLevel, n, t.Len())
	}
	return def, nil
}

// BuildDoctors creates a fresh doctor roster.
func (t *Table) BuildDoctors() []*doctor.Doctor {
	doctors := make([]*doctor.Doctor, 0, len(t.Doctors))
	for _, d := range t.Doctors {
		doctors = append(doctors, doctor.New(d.Name, d.Specialty, d.Experience))
	}
	return doctors
}

// Build creates fresh patients for one play of the level.
func (d Definition) Build() []*patient.Patient {
	roster := make([]*patient.Patient, 0, len(d.Patients))
	for _, p := range d.Patients {
		roster = append(roster, p.Build())
	}
	return roster
}

// Build creates the patient s describes.
func (s PatientSpec) Build() *patient.Patient {
	switch s.Kind {
	case patient.KindTrauma:
		return patient.NewTrauma(s.Name, s.Symptoms, s.InjuryType)
	case patient.KindRespiratoryInfection:
		return patient.NewRespiratoryInfection(s.Name, s.Symptoms, s.Contagious)
	case patient.KindDermatology:
		return patient.NewDermatology(s.Name, s.Symptoms, s.SkinCondition)
	case patient.KindGastroenterology:
		return patient.NewGastroenterology(s.Name, s.Symptoms, s.Urgency, s.HasFever)
	default:
		return patient.New(s.Name, s.Symptoms, s.Urgency)
	}
}
