package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/doctor"
	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/patient"
)

var diagnosisLabels = map[patient.Action]string{
	patient.ActionXRay:            "rayos X",
	patient.ActionIsolation:       "aislamiento",
	patient.ActionBiopsy:          "biopsia",
	patient.ActionHospitalization: "hospitalización",
}

// View prints the game in Spanish for a human player.
type View struct {
	out io.Writer
}

func NewView(out io.Writer) *View {
	return &View{out: out}
}

func (v *View) println(a ...interface{}) {
	fmt.Fprintln(v.out, a...)
}

func (v *View) printf(format string, a ...interface{}) {
	fmt.Fprintf(v.out, format, a...)
}

func (v *View) Welcome() {
	v.println("👨‍⚕️ Bienvenido al Juego del Hospital 🏥")
	v.println("Tu objetivo es atender a todos los pacientes antes de que se acabe el tiempo. ¡Buena suerte!")
	v.println()
}

func (v *View) LevelStarted(level int) {
	v.printf("\n===== 🌟 Nivel %d 🌟 =====\n\n", level)
}

func (v *View) Roster(patients []patient.Summary) {
	if len(patients) == 0 {
		v.println("No hay pacientes disponibles para este nivel.")
		v.println()
		return
	}

	v.println("📋 Lista de pacientes disponibles:")
	for i, p := range patients {
		v.printf("  %d. %s - Urgencia: %s\n", i+1, p.Name, p.Urgency)
		if len(p.Symptoms) > 0 {
			v.printf("     Síntomas: %s\n", strings.Join(p.Symptoms, ", "))
		}
	}
	v.println()
}

func (v *View) Assigned(doctorName, patientName string, canHandle bool) {
	v.printf("%s está atendiendo a %s.\n", doctorName, patientName)
	if !canHandle {
		v.printf("⚠️  %s no es especialista en este tipo de paciente.\n", doctorName)
	}
}

func (v *View) Attended(doctorName, patientName string) {
	v.printf("✅ %s ha sido atendido por %s.\n", patientName, doctorName)
}

func (v *View) Diagnosis(patientName string, d patient.Diagnosis) {
	label, ok := diagnosisLabels[d.Action]
	if !ok {
		label = string(d.Action)
	}
	answer := "No"
	if d.Required {
		answer = "Sí"
	}
	v.printf("%s requiere %s: %s\n", patientName, label, answer)
}

func (v *View) SelectionRejected(string) {
	v.println(invalidSelection)
}

func (v *View) TimeRemaining(units int) {
	v.printf("Tiempo restante: %d segundos.\n", units)
}

func (v *View) TimeUp() {
	v.println("¡El tiempo se ha agotado! Has perdido el nivel.")
}

func (v *View) LevelCompleted(level int) {
	v.printf("🎉 ¡Felicidades! Has completado el nivel %d.\n\n", level)
}

func (v *View) LevelFailed(level int) {
	v.printf("❌ Nivel %d no completado. Aún quedan pacientes por atender.\n\n", level)
}

func (v *View) Performance(reports []doctor.Performance) {
	v.println("📊 Rendimiento de los doctores:")
	for _, r := range reports {
		v.printf("  %s atendió %d pacientes.\n", r.DoctorName, r.PatientsAttended)
	}
}

func (v *View) GameEnded() {
	v.println("🏁 El juego ha terminado. ¡Gracias por jugar al Juego del Hospital! 👩‍⚕️👨‍⚕️")
}
