package questionbank

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sains-quiz-service/internal/domain"
)

func TestDecodeKeepsValidRecords(t *testing.T) {
	raw := []byte(`[
		{"subject": "Physics", "question": "Unit of force?", "options": ["Joule", "Newton", "Watt", "Pascal"], "correct_option": 1, "explanation": "N"},
		{"subject": "Biology", "question": "Powerhouse of the cell?", "options": ["Nucleus", "Mitochondrion"], "correct_option": 1, "explanation": ""}
	]`)

	questions, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "Physics", questions[0].Subject)
	assert.Equal(t, "Unit of force?", questions[0].Prompt)
	assert.Equal(t, "Newton", questions[0].CorrectOption())
	assert.Equal(t, "Mitochondrion", questions[1].CorrectOption())
}

func TestDecodeDropsMalformedRecords(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"index out of range", `{"subject": "Physics", "question": "Q", "options": ["a", "b"], "correct_option": 2, "explanation": ""}`},
		{"negative index", `{"subject": "Physics", "question": "Q", "options": ["a", "b"], "correct_option": -1, "explanation": ""}`},
		{"single option", `{"subject": "Physics", "question": "Q", "options": ["a"], "correct_option": 0, "explanation": ""}`},
		{"empty prompt", `{"subject": "Physics", "question": "", "options": ["a", "b"], "correct_option": 0, "explanation": ""}`},
		{"missing options", `{"subject": "Physics", "question": "Q", "correct_option": 0}`},
		{"fractional index", `{"subject": "Physics", "question": "Q", "options": ["a", "b"], "correct_option": 0.5}`},
		{"duplicate option text", `{"subject": "Physics", "question": "Q", "options": ["a", "a"], "correct_option": 0}`},
		{"blank option", `{"subject": "Physics", "question": "Q", "options": [" ", "b"], "correct_option": 0}`},
		{"empty option", `{"subject": "Physics", "question": "Q", "options": ["", "b"], "correct_option": 1}`},
		{"not an object", `"just a string"`},
	}

	valid := `{"subject": "Chemistry", "question": "Symbol for sodium?", "options": ["Na", "So"], "correct_option": 0, "explanation": ""}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := Decode([]byte("[" + tt.record + "," + valid + "]"))
			require.NoError(t, err)
			require.Len(t, questions, 1)
			assert.Equal(t, "Symbol for sodium?", questions[0].Prompt)
		})
	}
}

func TestDecodeRejectsNonArrayDocument(t *testing.T) {
	_, err := Decode([]byte(`{"subject": "Physics"}`))
	require.Error(t, err)

	_, err = Decode([]byte(`not json`))
	require.Error(t, err)
}

func TestDecodeEmptyArray(t *testing.T) {
	questions, err := Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestBuiltinCoversKnownSubjects(t *testing.T) {
	builtin := Builtin()
	require.GreaterOrEqual(t, len(builtin), 3)

	seen := map[string]bool{}
	for _, q := range builtin {
		require.NoError(t, q.Validate(), q.Prompt)
		seen[q.Subject] = true
	}
	for _, subject := range domain.KnownSubjects {
		assert.True(t, seen[subject], "missing builtin question for %s", subject)
	}
}

func TestValidateReportsMalformed(t *testing.T) {
	q := domain.Question{Prompt: "Q", Options: []string{"a", "b"}, CorrectIndex: 5}
	assert.True(t, errors.Is(q.Validate(), domain.ErrMalformedQuestion))

	blank := domain.Question{Prompt: "Q", Options: []string{"\t ", "b"}, CorrectIndex: 0}
	assert.True(t, errors.Is(blank.Validate(), domain.ErrMalformedQuestion))
}
