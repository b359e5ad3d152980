package patient

// Attribute values that trigger a special action.
const (
	InjuryFracture = "fractura"
	SkinMelanoma   = "melanoma"
)

// injuryFractureEN is accepted alongside the Spanish value.
const injuryFractureEN = "fracture"

// Details is the specialization payload of a patient. The set of
// implementations is closed to this package.
type Details interface {
	Kind() Kind
	sealed()
}

// Trauma carries the injury of a trauma patient.
type Trauma struct {
	InjuryType string `json:"injury_type"`
}

func (Trauma) Kind() Kind { return KindTrauma }
func (Trauma) sealed()    {}

// RequiresXRay is true for fractures.
func (t Trauma) RequiresXRay() bool {
	return t.InjuryType == InjuryFracture || t.InjuryType == injuryFractureEN
}

// RespiratoryInfection carries whether the infection spreads.
type RespiratoryInfection struct {
	Contagious bool `json:"contagious"`
}

func (RespiratoryInfection) Kind() Kind { return KindRespiratoryInfection }
func (RespiratoryInfection) sealed()    {}

// RequiresIsolation is true for contagious patients.
func (r RespiratoryInfection) RequiresIsolation() bool {
	return r.Contagious
}

// Dermatology carries the skin condition.
type Dermatology struct {
	SkinCondition string `json:"skin_condition"`
}

func (Dermatology) Kind() Kind { return KindDermatology }
func (Dermatology) sealed()    {}

// RequiresBiopsy is true for melanoma.
func (d Dermatology) RequiresBiopsy() bool {
	return d.SkinCondition == SkinMelanoma
}

// Gastroenterology carries fever plus the urgency the patient was created with.
type Gastroenterology struct {
	HasFever bool `json:"has_fever"`
	urgency  Urgency
}

func (Gastroenterology) Kind() Kind { return KindGastroenterology }
func (Gastroenterology) sealed()    {}

// RequiresHospitalization is true only for feverish high-urgency patients.
func (g Gastroenterology) RequiresHospitalization() bool {
	return g.HasFever && g.urgency == UrgencyHigh
}

// Action names the diagnostic step a specialization may require.
type Action string

const (
	ActionXRay            Action = "xray"
	ActionIsolation       Action = "isolation"
	ActionBiopsy          Action = "biopsy"
	ActionHospitalization Action = "hospitalization"
)

// Diagnosis is the outcome of the specialization predicate.
type Diagnosis struct {
	Action   Action `json:"action"`
	Required bool   `json:"required"`
}

// Diagnose evaluates the specialization predicate. ok is false for general
// patients, which have no special action.
func (p *Patient) Diagnose() (d Diagnosis, ok bool) {
	switch det := p.details.(type) {
	case Trauma:
		return Diagnosis{Action: ActionXRay, Required: det.RequiresXRay()}, true
	case RespiratoryInfection:
		return Diagnosis{Action: ActionIsolation, Required: det.RequiresIsolation()}, true
	case Dermatology:
		return Diagnosis{Action: ActionBiopsy, Required: det.RequiresBiopsy()}, true
	case Gastroenterology:
		return Diagnosis{Action: ActionHospitalization, Required: det.RequiresHospitalization()}, true
	default:
		return Diagnosis{}, false
	}
}

// RequiresSpecialAction reports whether the patient's specialization predicate holds.
func (p *Patient) RequiresSpecialAction() bool {
	d, ok := p.Diagnose()
	return ok && d.Required
}
