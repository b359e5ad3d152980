// Package patient defines the core domain entity for patients waiting in triage.
// This package is PURE and must NOT import any infrastructure packages (events, engine, platform).
package patient

// Urgency is the triage severity of a patient.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Valid reports whether u is one of the known urgency levels.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyHigh, UrgencyMedium, UrgencyLow:
		return true
	}
	return false
}

// Time budgets in simulated time units, derived from urgency.
const (
	HighUrgencyTimeBudget = 5000
	DefaultTimeBudget     = 10000
)

// Kind tags the specialization carried by a patient.
type Kind string

const (
	KindGeneral              Kind = "General"
	KindTrauma               Kind = "Trauma"
	KindRespiratoryInfection Kind = "RespiratoryInfection"
	KindDermatology          Kind = "Dermatology"
	KindGastroenterology     Kind = "Gastroenterology"
)

// Kinds lists every known kind, general first.
func Kinds() []Kind {
	return []Kind{KindGeneral, KindTrauma, KindRespiratoryInfection, KindDermatology, KindGastroenterology}
}

// Patient is a person in a level's roster. The specialization payload is
// carried in details; a nil payload is a general patient.
type Patient struct {
	name       string
	symptoms   []string
	urgency    Urgency
	timeBudget int
	attended   bool
	details    Details
}

// New creates a general patient with caller-supplied urgency.
func New(name string, symptoms []string, urgency Urgency) *Patient {
	return newPatient(name, symptoms, urgency, nil)
}

// NewTrauma creates a trauma patient. Trauma is always high urgency.
func NewTrauma(name string, symptoms []string, injuryType string) *Patient {
	return newPatient(name, symptoms, UrgencyHigh, Trauma{InjuryType: injuryType})
}

// NewRespiratoryInfection creates a respiratory patient. Always medium urgency.
func NewRespiratoryInfection(name string, symptoms []string, contagious bool) *Patient {
	return newPatient(name, symptoms, UrgencyMedium, RespiratoryInfection{Contagious: contagious})
}

// NewDermatology creates a dermatology patient. Always low urgency.
func NewDermatology(name string, symptoms []string, skinCondition string) *Patient {
	return newPatient(name, symptoms, UrgencyLow, Dermatology{SkinCondition: skinCondition})
}

// NewGastroenterology creates a gastroenterology patient. It is the only
// specialization whose urgency is chosen by the caller, since fever is an
// independent complicating factor.
func NewGastroenterology(name string, symptoms []string, urgency Urgency, hasFever bool) *Patient {
	return newPatient(name, symptoms, urgency, Gastroenterology{HasFever: hasFever, urgency: urgency})
}

func newPatient(name string, symptoms []string, urgency Urgency, details Details) *Patient {
	budget := DefaultTimeBudget
	if urgency == UrgencyHigh {
		budget = HighUrgencyTimeBudget
	}

	return &Patient{
		name:       name,
		symptoms:   append([]string(nil), symptoms...),
		urgency:    urgency,
		timeBudget: budget,
		attended:   false,
		details:    details,
	}
}

func (p *Patient) Name() string     { return p.name }
func (p *Patient) Urgency() Urgency { return p.urgency }
func (p *Patient) TimeBudget() int  { return p.timeBudget }
func (p *Patient) Attended() bool   { return p.attended }
func (p *Patient) Details() Details { return p.details }

// Symptoms returns a copy of the symptom list.
func (p *Patient) Symptoms() []string {
	return append([]string(nil), p.symptoms...)
}

// Kind returns the specialization tag.
func (p *Patient) Kind() Kind {
	if p.details == nil {
		return KindGeneral
	}
	return p.details.Kind()
}

// MarkAsAttended sets the attended flag. The flag never goes back to false.
func (p *Patient) MarkAsAttended() {
	p.attended = true
}

// Summary is a read-only copy of a patient for display.
type Summary struct {
	Name     string   `json:"name"`
	Kind     Kind     `json:"kind"`
	Urgency  Urgency  `json:"urgency"`
	Symptoms []string `json:"symptoms"`
}

// Summarize returns a detached snapshot of p.
func (p *Patient) Summarize() Summary {
	return Summary{
		Name:     p.name,
		Kind:     p.Kind(),
		Urgency:  p.urgency,
		Symptoms: p.Symptoms(),
	}
}
