package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodo_DecodesBackendPayload(t *testing.T) {
	payload := `[
		{"id": 3, "text": "Read chapter 4", "completed": false, "course_id": null,
		 "due_date": "2024-05-09", "created_at": "2024-05-01T10:11:12.123456"},
		{"id": 2, "text": "Flashcards", "completed": true, "course_id": 1,
		 "due_date": null, "created_at": "2024-04-30T08:00:00"}
	]`

	var todos []Todo
	require.NoError(t, json.Unmarshal([]byte(payload), &todos))
	require.Len(t, todos, 2)

	assert.Equal(t, "2024-05-09", todos[0].DueDate.String())
	assert.Nil(t, todos[0].CourseID)
	assert.Equal(t, 2024, todos[0].CreatedAt.Year())
	assert.Equal(t, 123456000, todos[0].CreatedAt.Nanosecond())

	assert.True(t, todos[1].DueDate.IsZero())
	require.NotNil(t, todos[1].CourseID)
	assert.Equal(t, uint(1), *todos[1].CourseID)
}

func TestCreateTodoRequest_EncodesEmptyDueDateAsNull(t *testing.T) {
	b, err := json.Marshal(CreateTodoRequest{Text: "Revise"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"Revise","due_date":null}`, string(b))

	due, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	b, err = json.Marshal(CreateTodoRequest{Text: "Revise", DueDate: due})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"Revise","due_date":"2024-06-01"}`, string(b))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("01/06/2024")
	assert.Error(t, err)
}

func TestTimestamp_RejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-01T10:00:00Z"`), &ts))
	assert.True(t, ts.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
}

func TestConfidence(t *testing.T) {
	assert.False(t, Confidence(0).Valid())
	assert.True(t, ConfidenceMedium.Valid())
	assert.False(t, Confidence(4).Valid())
	assert.Equal(t, "Very well", ConfidenceHigh.Label())
}

func TestConfidenceDistribution_Total(t *testing.T) {
	assert.Equal(t, 6, ConfidenceDistribution{Low: 1, Medium: 2, High: 3}.Total())
}
