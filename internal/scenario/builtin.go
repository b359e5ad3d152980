package scenario

import (
	"github.com/MRamiBalles/JuegoHospital/server/internal/console"
	"github.com/MRamiBalles/JuegoHospital/server/internal/engine"
	"github.com/MRamiBalles/JuegoHospital/server/internal/levels"
)

var levelOneSteps = []console.Step{
	{Doctor: "Dr. Smith", Patient: "John Doe"},
	{Doctor: "Dr. Johnson", Patient: "Jane Roe"},
	{Doctor: "Dr. Smith", Patient: "Alice Brown"},
}

var fullGameSteps = append(append([]console.Step{}, levelOneSteps...),
	console.Step{Doctor: "Dr. Johnson", Patient: "Charlie Grey"},
	console.Step{Doctor: "Dr. Smith", Patient: "Bob White"},
	console.Step{Doctor: "Dr. Johnson", Patient: "Dave Green"},
	console.Step{Doctor: "Dr. Smith", Patient: "Eve Black"},
	console.Step{Doctor: "Dr. Johnson", Patient: "Fiona Blue"},
	console.Step{Doctor: "Dr. Smith", Patient: "George Red"},
)

const crowdedWard = `
doctors:
  - name: Dr. Smith
    specialty: Traumatología
    experience: senior
levels:
  - number: 1
    time_budget: 10
    patients:
      - name: Uno
        kind: General
        urgency: high
      - name: Dos
        kind: General
        urgency: medium
      - name: Tres
        kind: General
        urgency: low
  - number: 2
    patients:
      - name: Cuatro
        kind: General
        urgency: low
`

const triageDuo = `
doctors:
  - name: D1
    specialty: Traumatología
    experience: senior
  - name: D2
    specialty: Gastroenterología
    experience: mid
levels:
  - number: 1
    patients:
      - name: John
        kind: Trauma
        injury_type: fractura
      - name: Alice
        kind: General
        urgency: medium
`

// Builtin returns the smoke-test scenarios shipped with the game.
func Builtin() []Scenario {
	return []Scenario{
		{
			Name:             "Partida completa",
			Input:            "tabla por defecto, todas las selecciones válidas",
			Table:            levels.Default,
			Steps:            fullGameSteps,
			Expect:           engine.Result{LevelsCompleted: 3},
			ExpectRejections: 0,
		},
		{
			Name:  "Dos doctores, dos pacientes",
			Input: "D1 atiende a John (fractura), D2 a Alice",
			Table: func() (*levels.Table, error) {
				return levels.Parse([]byte(triageDuo))
			},
			Steps: []console.Step{
				{Doctor: "D1", Patient: "John"},
				{Doctor: "D2", Patient: "Alice"},
			},
			Expect:           engine.Result{LevelsCompleted: 1},
			ExpectRejections: 0,
		},
		{
			Name:  "Reloj agotado",
			Input: "3 pacientes, 10 unidades de tiempo, 5 por turno; el nivel 2 no llega a jugarse",
			Table: func() (*levels.Table, error) {
				return levels.Parse([]byte(crowdedWard))
			},
			Steps: []console.Step{
				{Doctor: "Dr. Smith", Patient: "Uno"},
				{Doctor: "Dr. Smith", Patient: "Dos"},
				{Doctor: "Dr. Smith", Patient: "Tres"},
			},
			Expect:           engine.Result{FailedLevel: 1},
			ExpectRejections: 0,
		},
		{
			Name:  "Selecciones inválidas",
			Input: "doctor y paciente inexistentes antes de jugar bien",
			Table: levels.Default,
			Steps: append([]console.Step{
				{Doctor: "Dr. House", Patient: "John Doe"},
				{Doctor: "Dr. Smith", Patient: "Nadie"},
			}, fullGameSteps...),
			Expect:           engine.Result{LevelsCompleted: 3},
			ExpectRejections: 2,
		},
		{
			Name:             "Abandono voluntario",
			Input:            "confirmación de nivel 2 respondida con no",
			Table:            levels.Default,
			Steps:            levelOneSteps,
			Confirms:         []bool{false},
			Options:          engine.Options{ConfirmLevels: true},
			Expect:           engine.Result{LevelsCompleted: 1, Quit: true},
			ExpectRejections: 0,
		},
	}
}
