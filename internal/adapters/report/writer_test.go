package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anusornc/owl2-reasoner-sub000/reasoner"
)

func TestWriteQueryResultJSON(t *testing.T) {
	ok := true
	q := QueryResult{Operation: "consistent", Bool: &ok}

	var buf bytes.Buffer
	require.NoError(t, WriteQueryResultJSON(q, &buf, false))

	var decoded QueryResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "consistent", decoded.Operation)
	require.NotNil(t, decoded.Bool)
	assert.True(t, *decoded.Bool)
}

func TestWriteProfileReportsJSONPretty(t *testing.T) {
	reports := map[string]reasoner.ProfileReport{
		"EL": {Profile: "EL", Valid: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProfileReportsJSON(reports, &buf, true))
	assert.Contains(t, buf.String(), "\n  ")
}
