package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level int

func (l level) String() string {
	if l == 1 {
		return "Present"
	}
	return "Absent"
}

type sampleRow struct {
	ID      int64      `json:"id"`
	Name    string     `json:"name"`
	Score   float64    `json:"score"`
	Mark    level      `json:"mark"`
	Phone   *string    `json:"phone,omitempty"`
	Seen    time.Time  `json:"seen"`
	Secret  string     `json:"-"`
	Dropped *time.Time `json:"dropped"`
	hidden  string
}

func TestFromRowsUsesJSONNames(t *testing.T) {
	phone := "555-0100"
	rows := []sampleRow{
		{ID: 1, Name: "Ana", Score: 91.5, Mark: 1, Phone: &phone, Seen: time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC), Secret: "x", hidden: "y"},
		{ID: 2, Name: "Ben", Score: 70},
	}

	data, err := FromRows(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "score", "mark", "phone", "seen", "dropped"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, map[string]string{
		"id": "1", "name": "Ana", "score": "91.5", "mark": "Present",
		"phone": "555-0100", "seen": "2024-09-02T10:00:00Z", "dropped": "",
	}, data.Rows[0])
	assert.Equal(t, "", data.Rows[1]["phone"])
	assert.Equal(t, "Absent", data.Rows[1]["mark"])
}

func TestFromRowsRejectsNonSlices(t *testing.T) {
	_, err := FromRows(sampleRow{})
	assert.Error(t, err)

	_, err = FromRows([]string{"a"})
	assert.Error(t, err)
}

func TestFromRowsEmptySliceKeepsHeaders(t *testing.T) {
	data, err := FromRows([]sampleRow{})
	require.NoError(t, err)
	assert.NotEmpty(t, data.Headers)
	assert.Empty(t, data.Rows)
}

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"courseId", "courseName"},
		Rows:    []map[string]string{{"courseId": "1", "courseName": "Databases, Intro"}},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "courseId,courseName\n1,\"Databases, Intro\"\n", string(out))

	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"gradeId", "gradeValue"},
		Rows:    []map[string]string{{"gradeId": "1", "gradeValue": "88"}},
	}

	out, err := NewPDFExporter().Render(data, "viewGrades")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
