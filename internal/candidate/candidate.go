// Package candidate reads the people directory that backs the dashboard:
// candidate profiles, their interview schedule, and their feedback history.
package candidate

// InterviewStatus is the stage a candidate's interview is in.
type InterviewStatus string

const (
	StatusScheduled InterviewStatus = "scheduled"
	StatusCompleted InterviewStatus = "completed"
	StatusNoShow    InterviewStatus = "no-show"
	StatusCancelled InterviewStatus = "cancelled"
)

var statuses = []InterviewStatus{StatusScheduled, StatusCompleted, StatusNoShow, StatusCancelled}

// Candidate is a directory profile enriched with interview fields.
type Candidate struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Image     string `json:"image"`
	Company   struct {
		Name       string `json:"name"`
		Department string `json:"department"`
		Title      string `json:"title"`
	} `json:"company"`
	Address struct {
		City  string `json:"city"`
		State string `json:"state"`
	} `json:"address"`

	InterviewStatus InterviewStatus `json:"interviewStatus"`
	AverageScore    int             `json:"averageScore"`
}

// ScheduleItem is one entry of a candidate's interview schedule.
type ScheduleItem struct {
	ID        int    `json:"id"`
	Todo      string `json:"todo"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}

// FeedbackPost is a historical feedback entry for a candidate.
type FeedbackPost struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	UserID    int      `json:"userId"`
	Tags      []string `json:"tags"`
	Reactions struct {
		Likes    int `json:"likes"`
		Dislikes int `json:"dislikes"`
	} `json:"reactions"`
}

// Page is one page of candidates plus the directory-wide total.
type Page struct {
	Candidates []Candidate `json:"candidates"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
}

// enrich fills the simulated interview fields. The upstream directory is a
// plain people API with no interview data, so status and score are derived
// from the candidate ID: stable across requests, unlike the original demo's
// per-request randomness.
func enrich(c *Candidate) {
	id := c.ID
	if id < 0 {
		id = -id
	}
	c.InterviewStatus = statuses[id%len(statuses)]
	c.AverageScore = id%5 + 1
}
