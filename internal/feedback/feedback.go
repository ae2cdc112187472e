// Package feedback validates and records structured interview feedback.
//
// There is no backing store by design: submissions live in process memory so
// a panelist can review what they submitted during this session, and vanish
// with the process.
package feedback

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const maxTextLength = 1000

// Form is the feedback submission payload.
type Form struct {
	CandidateID         int    `json:"candidateId" validate:"required,min=1"`
	PanelID             int    `json:"panelId" validate:"min=0"`
	OverallScore        int    `json:"overallScore" validate:"required,min=1,max=5"`
	Strengths           string `json:"strengths" validate:"required,min=10"`
	AreasForImprovement string `json:"areasForImprovement" validate:"required,min=10"`
}

// Entry is an accepted submission.
type Entry struct {
	ID          string    `json:"id"`
	SubmittedBy string    `json:"submittedBy"`
	SubmittedAt time.Time `json:"submittedAt"`
	Form
}

// Service validates submissions and keeps them for the session.
type Service struct {
	validate *validator.Validate
	logger   *slog.Logger

	mu      sync.RWMutex
	entries []Entry
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Submit validates the form, trims and caps its text fields, and records the
// entry under the submitting user's name.
func (s *Service) Submit(form Form, submittedBy string) (Entry, error) {
	form.Strengths = strings.TrimSpace(form.Strengths)
	form.AreasForImprovement = strings.TrimSpace(form.AreasForImprovement)

	if err := s.validate.Struct(form); err != nil {
		return Entry{}, fmt.Errorf("invalid feedback: %w", err)
	}

	form.Strengths = capText(form.Strengths)
	form.AreasForImprovement = capText(form.AreasForImprovement)

	entry := Entry{
		ID:          uuid.NewString(),
		SubmittedBy: submittedBy,
		SubmittedAt: time.Now().UTC(),
		Form:        form,
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	s.logger.Info("feedback submitted",
		"id", entry.ID,
		"candidate_id", form.CandidateID,
		"score", form.OverallScore,
		"submitted_by", submittedBy,
	)
	return entry, nil
}

// SubmittedBy lists this session's submissions by one user, newest first.
func (s *Service) SubmittedBy(username string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].SubmittedBy == username {
			out = append(out, s.entries[i])
		}
	}
	return out
}

// All lists every submission from this session, newest first.
func (s *Service) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		out = append(out, s.entries[i])
	}
	return out
}

// ForCandidate lists submissions about one candidate, newest first.
func (s *Service) ForCandidate(candidateID int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].CandidateID == candidateID {
			out = append(out, s.entries[i])
		}
	}
	return out
}

// capText truncates to maxTextLength bytes, backing up to a rune boundary so
// the stored text stays valid UTF-8.
func capText(text string) string {
	if len(text) <= maxTextLength {
		return text
	}
	cut := maxTextLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
