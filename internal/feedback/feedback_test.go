package feedback

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		CandidateID:         5,
		PanelID:             2,
		OverallScore:        4,
		Strengths:           "Clear, structured problem solving.",
		AreasForImprovement: "Could go deeper on system design tradeoffs.",
	}
}

func TestSubmitAccepted(t *testing.T) {
	svc := NewService(nil)

	entry, err := svc.Submit(validForm(), "panelist1")
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "panelist1", entry.SubmittedBy)
	assert.False(t, entry.SubmittedAt.IsZero())
	assert.Equal(t, 4, entry.OverallScore)
}

func TestSubmitValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
	}{
		{"score too low", func(f *Form) { f.OverallScore = 0 }},
		{"score too high", func(f *Form) { f.OverallScore = 6 }},
		{"short strengths", func(f *Form) { f.Strengths = "good" }},
		{"whitespace-only strengths", func(f *Form) { f.Strengths = "             " }},
		{"short improvement notes", func(f *Form) { f.AreasForImprovement = "ok" }},
		{"missing candidate", func(f *Form) { f.CandidateID = 0 }},
		{"negative candidate", func(f *Form) { f.CandidateID = -4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(nil)
			form := validForm()
			tt.mutate(&form)

			_, err := svc.Submit(form, "panelist1")
			assert.Error(t, err)
			assert.Empty(t, svc.SubmittedBy("panelist1"))
		})
	}
}

func TestSubmitCapsLongText(t *testing.T) {
	svc := NewService(nil)
	form := validForm()
	form.Strengths = strings.Repeat("a", 5000)

	entry, err := svc.Submit(form, "panelist1")
	require.NoError(t, err)
	assert.Len(t, entry.Strengths, maxTextLength)
}

func TestSubmitCapKeepsValidUTF8(t *testing.T) {
	svc := NewService(nil)
	form := validForm()
	// A 3-byte rune straddling the byte limit must be dropped whole.
	form.Strengths = strings.Repeat("a", maxTextLength-1) + "界界"

	entry, err := svc.Submit(form, "panelist1")
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(entry.Strengths))
	assert.Len(t, entry.Strengths, maxTextLength-1)
}

func TestSubmittedByFiltersAndOrders(t *testing.T) {
	svc := NewService(nil)

	first, err := svc.Submit(validForm(), "panelist1")
	require.NoError(t, err)
	_, err = svc.Submit(validForm(), "panelist2")
	require.NoError(t, err)
	second, err := svc.Submit(validForm(), "panelist1")
	require.NoError(t, err)

	mine := svc.SubmittedBy("panelist1")
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID, "newest first")
	assert.Equal(t, first.ID, mine[1].ID)

	assert.Empty(t, svc.SubmittedBy("stranger"))
}

func TestAllAndForCandidate(t *testing.T) {
	svc := NewService(nil)

	form := validForm()
	_, err := svc.Submit(form, "panelist1")
	require.NoError(t, err)

	form.CandidateID = 9
	latest, err := svc.Submit(form, "panelist2")
	require.NoError(t, err)

	all := svc.All()
	require.Len(t, all, 2)
	assert.Equal(t, latest.ID, all[0].ID, "newest first")

	nine := svc.ForCandidate(9)
	require.Len(t, nine, 1)
	assert.Equal(t, latest.ID, nine[0].ID)

	assert.Empty(t, svc.ForCandidate(404))
}
