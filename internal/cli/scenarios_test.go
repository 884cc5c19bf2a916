package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenwich/internal/scenario"
)

func TestScenarios_TextListing(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewScenariosCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "permission-denied")
	assert.Contains(t, out, "location-dashboard")
	assert.Contains(t, out, "location-flow-denied")
	assert.Contains(t, out, "Granted geolocation shows the live map")
}

func TestScenarios_JSONListing(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewScenariosCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	require.NoError(t, cmd.Execute())

	var listed []*scenario.Config
	require.NoError(t, json.Unmarshal(buf.Bytes(), &listed))
	require.Len(t, listed, 3)
	assert.Equal(t, "permission-denied", listed[0].Name)
	assert.Equal(t, "location-dashboard", listed[1].Name)
	assert.Equal(t, "location-flow-denied", listed[2].Name)
}
