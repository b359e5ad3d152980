package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/patient"
)

func TestDefaultTable(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())

	doctors := table.BuildDoctors()
	require.Len(t, doctors, 2)
	assert.Equal(t, "Dr. Smith", doctors[0].Name())
	assert.Equal(t, "Dr. Johnson", doctors[1].Name())

	level1, err := table.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, 60, level1.TimeBudget)

	roster := level1.Build()
	require.Len(t, roster, 3)
	assert.Equal(t, "John Doe", roster[0].Name())
	assert.Equal(t, patient.KindTrauma, roster[0].Kind())
	assert.True(t, roster[0].RequiresSpecialAction())
	assert.Equal(t, patient.KindRespiratoryInfection, roster[1].Kind())
	assert.Equal(t, patient.KindGeneral, roster[2].Kind())
	assert.Equal(t, patient.UrgencyMedium, roster[2].Urgency())

	level2, err := table.Lookup(2)
	require.NoError(t, err)
	charlie := level2.Build()[1]
	assert.Equal(t, "Charlie Grey", charlie.Name())
	assert.True(t, charlie.RequiresSpecialAction(), "feverish high-urgency gastro needs hospitalization")
}

func TestLookupOutsideTable(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	_, err = table.Lookup(4)
	assert.ErrorIs(t, err, ErrUnknownLevel)

	_, err = table.Lookup(0)
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestBuildGivesFreshPatients(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)
	def, err := table.Lookup(1)
	require.NoError(t, err)

	first := def.Build()
	first[0].MarkAsAttended()

	second := def.Build()
	assert.False(t, second[0].Attended())
	assert.NotSame(t, first[0], second[0])
}

func TestParseSortsLevels(t *testing.T) {
	table, err := Parse([]byte(`
doctors:
  - {name: D1, specialty: Trauma, experience: junior}
levels:
  - number: 2
    patients: []
  - number: 1
    time_budget: 10
    patients:
      - {name: Alice, kind: General, urgency: medium}
`))
	require.NoError(t, err)

	def, err := table.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, 10, def.TimeBudget)

	empty, err := table.Lookup(2)
	require.NoError(t, err)
	assert.Empty(t, empty.Build())
	assert.Equal(t, 0, empty.TimeBudget)
}

func TestParseRejectsInvalidTables(t *testing.T) {
	tests := map[string]string{
		"not yaml": `levels: [unterminated`,
		"no doctors": `
levels:
  - number: 1
`,
		"bad experience": `
doctors: [{name: D1, experience: intern}]
levels: [{number: 1}]
`,
		"gap in numbering": `
doctors: [{name: D1, experience: mid}]
levels: [{number: 1}, {number: 3}]
`,
		"duplicate doctor": `
doctors: [{name: D1, experience: mid}, {name: D1, experience: senior}]
levels: [{number: 1}]
`,
		"duplicate patient": `
doctors: [{name: D1, experience: mid}]
levels:
  - number: 1
    patients:
      - {name: Alice, kind: General, urgency: low}
      - {name: Alice, kind: General, urgency: high}
`,
		"unknown kind": `
doctors: [{name: D1, experience: mid}]
levels:
  - number: 1
    patients: [{name: Alice, kind: Cardiology, urgency: low}]
`,
		"general without urgency": `
doctors: [{name: D1, experience: mid}]
levels:
  - number: 1
    patients: [{name: Alice, kind: General}]
`,
		"trauma with wrong urgency": `
doctors: [{name: D1, experience: mid}]
levels:
  - number: 1
    patients: [{name: John, kind: Trauma, urgency: low, injury_type: fractura}]
`,
		"unknown urgency": `
doctors: [{name: D1, experience: mid}]
levels:
  - number: 1
    patients: [{name: Alice, kind: General, urgency: critical}]
`,
		"negative budget": `
doctors: [{name: D1, experience: mid}]
levels: [{number: 1, time_budget: -5}]
`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidTable)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
doctors: [{name: D1, experience: senior}]
levels:
  - number: 1
    patients: [{name: Eve, kind: Dermatology, skin_condition: melanoma}]
`), 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	def, err := table.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, patient.UrgencyLow, def.Build()[0].Urgency())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseNamesUnknownEnumValue(t *testing.T) {
	_, err := Parse([]byte(`
doctors: [{name: D1, experience: intern}]
levels: [{number: 1}]
`))
	require.ErrorIs(t, err, ErrInvalidTable)
	assert.Contains(t, err.Error(), `doctor "D1" has unknown experience "intern"`)

	_, err = Parse([]byte(`
doctors: [{name: D1, experience: mid}]
levels:
  - number: 1
    patients: [{name: Alice, kind: General, urgency: critical}]
`))
	require.ErrorIs(t, err, ErrInvalidTable)
	assert.Contains(t, err.Error(), `patient "Alice" has unknown urgency "critical"`)
}
