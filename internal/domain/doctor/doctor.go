// Package doctor defines the domain entity for the doctors on shift.
// This package is PURE and must NOT import any infrastructure packages.
package doctor

import (
	"errors"

	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/patient"
)

// ExperienceLevel is descriptive only; it has no gameplay effect.
type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

// Valid reports whether e is a known experience level.
func (e ExperienceLevel) Valid() bool {
	return e == ExperienceJunior || e == ExperienceMid || e == ExperienceSenior
}

// Soft failures. State is left untouched when either is returned.
var (
	ErrOccupied        = errors.New("doctor is already attending another patient")
	ErrNothingToAttend = errors.New("doctor has no assigned patient")
)

// Doctor persists across levels; its attendance counter accumulates.
type Doctor struct {
	name             string
	specialty        string
	experience       ExperienceLevel
	patientsAttended int
	current          *patient.Patient
}

// New creates a free doctor with no attendances.
func New(name, specialty string, experience ExperienceLevel) *Doctor {
	return &Doctor{
		name:       name,
		specialty:  specialty,
		experience: experience,
	}
}

func (d *Doctor) Name() string                { return d.name }
func (d *Doctor) Specialty() string           { return d.specialty }
func (d *Doctor) Experience() ExperienceLevel { return d.experience }
func (d *Doctor) PatientsAttended() int       { return d.patientsAttended }

// CurrentPatient returns the patient held by the doctor, or nil.
func (d *Doctor) CurrentPatient() *patient.Patient {
	return d.current
}

// Busy reports whether the doctor holds a patient.
func (d *Doctor) Busy() bool {
	return d.current != nil
}

// AssignPatient hands p to the doctor. It returns ErrOccupied and changes
// nothing if the doctor already holds a patient.
func (d *Doctor) AssignPatient(p *patient.Patient) error {
	if d.current != nil {
		return ErrOccupied
	}
	d.current = p
	return nil
}

// AttendPatient treats the held patient: marks it attended, bumps the
// counter and frees the doctor. It returns the treated patient, or
// ErrNothingToAttend when the doctor is free.
func (d *Doctor) AttendPatient() (*patient.Patient, error) {
	if d.current == nil {
		return nil, ErrNothingToAttend
	}

	treated := d.current
	treated.MarkAsAttended()
	d.patientsAttended++
	d.current = nil

	return treated, nil
}

// Performance is a read-only summary of a doctor's work.
type Performance struct {
	DoctorName       string `json:"doctor_name"`
	PatientsAttended int    `json:"patients_attended"`
}

// CheckPerformance reports how many patients the doctor has attended so far.
func (d *Doctor) CheckPerformance() Performance {
	return Performance{DoctorName: d.name, PatientsAttended: d.patientsAttended}
}
