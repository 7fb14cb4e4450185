package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"id", "full_name"},
		Rows: []map[string]string{
			{"id": "s1", "full_name": "Ada Lovelace"},
			{"id": "s2", "full_name": "Lovelace, Ada"},
		},
	}

	raw, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "id,full_name\ns1,Ada Lovelace\ns2,\"Lovelace, Ada\"\n", string(raw))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestCSVRenderMissingColumnIsEmpty(t *testing.T) {
	data := Dataset{
		Headers: []string{"id", "grade"},
		Rows:    []map[string]string{{"id": "s1"}},
	}
	raw, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "id,grade\ns1,\n", string(raw))
}

func TestCSVParse(t *testing.T) {
	raw := []byte("id,full_name\ns1,Ada Lovelace\ns2,\"Lovelace, Ada\"\n")

	data, err := NewCSVImporter().Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "full_name"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "Lovelace, Ada", data.Rows[1]["full_name"])
}

func TestCSVParseEmptyInput(t *testing.T) {
	data, err := NewCSVImporter().Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, data.Headers)
	assert.Empty(t, data.Rows)
}

func TestCSVParseFieldCountMismatch(t *testing.T) {
	// encoding/csv itself rejects ragged records before our check runs.
	_, err := NewCSVImporter().Parse([]byte("id,full_name\ns1\n"))
	assert.Error(t, err)
}

func TestCSVRoundTrip(t *testing.T) {
	data := Dataset{
		Headers: []string{"code", "title"},
		Rows: []map[string]string{
			{"code": "CS101", "title": "Intro, with commas"},
			{"code": "MA201", "title": "Quotes \"inside\""},
		},
	}

	raw, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	parsed, err := NewCSVImporter().Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, data, parsed)
}
