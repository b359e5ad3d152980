package doctor

import (
	"strings"

	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/patient"
)

// specialtyTags maps each specialized kind to the specialty spellings that
// cover it. A specialty covers a kind when its lowercased text contains one
// of the tags.
var specialtyTags = map[patient.Kind][]string{
	patient.KindTrauma:               {"trauma"},
	patient.KindRespiratoryInfection: {"respiratory", "respiratori", "neumolog"},
	patient.KindDermatology:          {"dermatolog"},
	patient.KindGastroenterology:     {"gastroenterolog"},
}

// Compatible returns the specialized kinds a specialty covers, in the order
// of patient.Kinds. General patients are not listed; anyone can take them.
func Compatible(specialty string) []patient.Kind {
	s := strings.ToLower(specialty)

	var kinds []patient.Kind
	for _, k := range patient.Kinds() {
		for _, tag := range specialtyTags[k] {
			if strings.Contains(s, tag) {
				kinds = append(kinds, k)
				break
			}
		}
	}
	return kinds
}

// CanHandlePatient is an advisory check of specialty against the patient's
// kind. It does not gate AssignPatient.
func (d *Doctor) CanHandlePatient(p *patient.Patient) bool {
	if p == nil {
		return false
	}
	if p.Kind() == patient.KindGeneral {
		return true
	}
	for _, k := range Compatible(d.specialty) {
		if k == p.Kind() {
			return true
		}
	}
	return false
}
