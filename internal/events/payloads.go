package events

import "github.com/MRamiBalles/JuegoHospital/server/internal/domain/patient"

// LevelStartedPayload is attached to LEVEL_STARTED.
type LevelStartedPayload struct {
	Level      int      `json:"level"`
	TimeBudget int      `json:"time_budget"`
	Patients   []string `json:"patients"`
}

// AssignmentPayload is attached to PATIENT_ASSIGNED and PATIENT_ATTENDED.
type AssignmentPayload struct {
	DoctorName  string          `json:"doctor_name"`
	PatientName string          `json:"patient_name"`
	PatientKind patient.Kind    `json:"patient_kind"`
	Urgency     patient.Urgency `json:"urgency"`
	CanHandle   bool            `json:"can_handle"`
	RosterLeft  int             `json:"roster_left"`
	DoctorTotal int             `json:"doctor_total"`
}

// DiagnosisPayload is attached to DIAGNOSIS.
type DiagnosisPayload struct {
	PatientName string            `json:"patient_name"`
	Diagnosis   patient.Diagnosis `json:"diagnosis"`
}

// RejectionReason explains why a selection did not produce a turn.
type RejectionReason string

const (
	RejectUnknownDoctor   RejectionReason = "UNKNOWN_DOCTOR"
	RejectUnknownPatient  RejectionReason = "UNKNOWN_PATIENT"
	RejectDoctorOccupied  RejectionReason = "DOCTOR_OCCUPIED"
	RejectNothingToAttend RejectionReason = "NOTHING_TO_ATTEND"
)

// SelectionRejectedPayload is attached to SELECTION_REJECTED.
type SelectionRejectedPayload struct {
	Reason RejectionReason `json:"reason"`
	Value  string          `json:"value"`
}

// TimeTickPayload is the data attached to each TIME_TICK event.
type TimeTickPayload struct {
	Level     int `json:"level"`
	Turn      int `json:"turn"`
	Consumed  int `json:"consumed"`
	Remaining int `json:"remaining"`
	Elapsed   int `json:"elapsed"`
}

// LevelOutcomePayload is attached to LEVEL_COMPLETED and LEVEL_FAILED.
type LevelOutcomePayload struct {
	Level        int `json:"level"`
	Turns        int `json:"turns"`
	Remaining    int `json:"remaining"`
	PatientsLeft int `json:"patients_left"`
}

// GameEndedPayload is attached to GAME_ENDED.
type GameEndedPayload struct {
	LevelsCompleted int  `json:"levels_completed"`
	FailedLevel     int  `json:"failed_level,omitempty"`
	Quit            bool `json:"quit"`
}
