package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Len(t, c.RoomTypes, 4)
	assert.Len(t, c.RiskGroups, 3)
	assert.Len(t, c.SimulatorScenarios, 3)
	assert.Equal(t, "Living Room", c.RoomTypes[1].Label)
}

func TestCatalogLookups(t *testing.T) {
	c := Default()

	assert.True(t, c.HasRoomType("kitchen"))
	assert.False(t, c.HasRoomType("garage"))
	assert.True(t, c.HasRisk("break-ins"))
	assert.True(t, c.HasRisk("power-outage"))
	assert.False(t, c.HasRisk("Security Risks"))
	assert.True(t, c.HasSimulatorScenario("scenario-02"))
	assert.False(t, c.HasSimulatorScenario("scenario-04"))
	assert.Equal(t, "Risk of fire or overheating", c.RiskLabel("fire-overheating"))
	assert.Equal(t, "unknown", c.RiskLabel("unknown"))
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
room_types:
  - {value: attic, label: Attic}
risk_groups:
  - label: Other
    options:
      - {value: dust, label: Dust}
`))
	require.NoError(t, err)
	assert.True(t, c.HasRoomType("attic"))
	assert.Empty(t, c.SimulatorScenarios)

	_, err = Parse([]byte("room_types: ["))
	assert.Error(t, err)

	_, err = Parse([]byte("simulator_scenarios: []"))
	assert.Error(t, err)
}
