// Package dashboard assembles the aggregate views the dashboard pages show.
package dashboard

import (
	"context"
	"sync"

	"interview-dashboard/internal/candidate"
)

// Metrics is the dashboard summary computed over the visible candidate pool.
type Metrics struct {
	TotalCandidates      int     `json:"totalCandidates"`
	InterviewsThisWeek   int     `json:"interviewsThisWeek"`
	AverageFeedbackScore float64 `json:"averageFeedbackScore"`
	NoShows              int     `json:"noShows"`
}

// Detail is one candidate's full view: profile, schedule, and feedback
// history fetched together.
type Detail struct {
	Candidate candidate.Candidate      `json:"candidate"`
	Schedule  []candidate.ScheduleItem `json:"schedule"`
	Feedback  []candidate.FeedbackPost `json:"feedback"`
}

// Directory is the slice of the candidate client this package needs.
type Directory interface {
	List(ctx context.Context, page, limit int) (candidate.Page, error)
	Get(ctx context.Context, id int) (candidate.Candidate, error)
	Schedule(ctx context.Context, userID int) ([]candidate.ScheduleItem, error)
	FeedbackPosts(ctx context.Context, userID int) ([]candidate.FeedbackPost, error)
}

// Service computes dashboard aggregates from the directory.
type Service struct {
	dir      Directory
	poolSize int
}

func NewService(dir Directory, poolSize int) *Service {
	if poolSize <= 0 {
		poolSize = 30
	}
	return &Service{dir: dir, poolSize: poolSize}
}

// Metrics summarizes the first poolSize candidates.
func (s *Service) Metrics(ctx context.Context) (Metrics, error) {
	page, err := s.dir.List(ctx, 1, s.poolSize)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{TotalCandidates: page.Total}

	var scoreSum int
	for _, c := range page.Candidates {
		switch c.InterviewStatus {
		case candidate.StatusScheduled:
			m.InterviewsThisWeek++
		case candidate.StatusNoShow:
			m.NoShows++
		}
		scoreSum += c.AverageScore
	}

	if len(page.Candidates) > 0 {
		m.AverageFeedbackScore = float64(scoreSum) / float64(len(page.Candidates))
	}
	return m, nil
}

// CandidateDetail fetches profile, schedule, and feedback concurrently and
// returns the first error any fetch produced.
func (s *Service) CandidateDetail(ctx context.Context, id int) (Detail, error) {
	var (
		wg     sync.WaitGroup
		detail Detail

		profileErr  error
		scheduleErr error
		feedbackErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		detail.Candidate, profileErr = s.dir.Get(ctx, id)
	}()
	go func() {
		defer wg.Done()
		detail.Schedule, scheduleErr = s.dir.Schedule(ctx, id)
	}()
	go func() {
		defer wg.Done()
		detail.Feedback, feedbackErr = s.dir.FeedbackPosts(ctx, id)
	}()
	wg.Wait()

	for _, err := range []error{profileErr, scheduleErr, feedbackErr} {
		if err != nil {
			return Detail{}, err
		}
	}
	return detail, nil
}
