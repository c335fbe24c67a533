package study

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/model"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/pkg/logger"
)

const (
	progressAttemptWindow = 500
	recentAttemptCount    = 10
	topicListCap          = 5
	topicMinQuestions     = 2
)

// AttemptDigest is one row of the recent-attempt listing.
type AttemptDigest struct {
	Date      time.Time `json:"date"`
	Score     int       `json:"score"`
	Questions int       `json:"questions"`
}

// ProgressReport aggregates every graded attempt into one study overview.
type ProgressReport struct {
	TotalQuizzes           int             `json:"total_quizzes"`
	TotalQuestionsAnswered int             `json:"total_questions_answered"`
	OverallScore           float64         `json:"overall_score"`
	RecentAttempts         []AttemptDigest `json:"recent_attempts"`
	Strengths              []string        `json:"strengths"`
	Weaknesses             []string        `json:"weaknesses"`
}

type ProgressService struct {
	attempts          AttemptStore
	log               *logger.Logger
	strengthThreshold float64
	weaknessThreshold float64
}

func NewProgressService(attempts AttemptStore, log *logger.Logger, strengthThreshold, weaknessThreshold float64) *ProgressService {
	if strengthThreshold <= 0 {
		strengthThreshold = 75
	}
	if weaknessThreshold <= 0 {
		weaknessThreshold = 50
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProgressService{
		attempts:          attempts,
		log:               log,
		strengthThreshold: strengthThreshold,
		weaknessThreshold: weaknessThreshold,
	}
}

// Summarize builds the progress report. No attempts is a valid state and
// yields a zeroed report.
func (s *ProgressService) Summarize() (*ProgressReport, error) {
	attempts, err := s.attempts.ListRecent(progressAttemptWindow)
	if err != nil {
		return nil, err
	}

	report := &ProgressReport{
		RecentAttempts: []AttemptDigest{},
		Strengths:      []string{},
		Weaknesses:     []string{},
	}
	if len(attempts) == 0 {
		return report, nil
	}

	totalScore := 0
	for _, a := range attempts {
		report.TotalQuestionsAnswered += a.TotalQuestions
		totalScore += a.ScorePercent
	}
	report.TotalQuizzes = len(attempts)
	avg := float64(totalScore) / float64(len(attempts))
	report.OverallScore = math.Round(avg*10) / 10

	recent := attempts
	if len(recent) > recentAttemptCount {
		recent = recent[:recentAttemptCount]
	}
	for _, a := range recent {
		report.RecentAttempts = append(report.RecentAttempts, AttemptDigest{
			Date:      a.SubmittedAt,
			Score:     a.ScorePercent,
			Questions: a.TotalQuestions,
		})
	}

	report.Strengths, report.Weaknesses = s.analyzeTopics(attempts)
	return report, nil
}

type topicStat struct {
	name     string
	answered int
	correct  int
}

func (t topicStat) rate() float64 {
	if t.answered == 0 {
		return 0
	}
	return float64(t.correct) / float64(t.answered) * 100
}

// analyzeTopics groups answered questions by the significant keywords in
// their text. A keyword seen on enough questions becomes a topic; its
// correct rate decides which list it lands on.
func (s *ProgressService) analyzeTopics(attempts []model.QuizAttempt) ([]string, []string) {
	stats := make(map[string]*topicStat)
	for _, a := range attempts {
		for _, r := range a.Results() {
			for _, word := range keywords(r.Question) {
				st, ok := stats[word]
				if !ok {
					st = &topicStat{name: word}
					stats[word] = st
				}
				st.answered++
				if r.IsCorrect {
					st.correct++
				}
			}
		}
	}

	var strong, weak []topicStat
	for _, st := range stats {
		if st.answered < topicMinQuestions {
			continue
		}
		switch rate := st.rate(); {
		case rate >= s.strengthThreshold:
			strong = append(strong, *st)
		case rate < s.weaknessThreshold:
			weak = append(weak, *st)
		}
	}

	sort.Slice(strong, func(i, j int) bool {
		if strong[i].rate() != strong[j].rate() {
			return strong[i].rate() > strong[j].rate()
		}
		if strong[i].answered != strong[j].answered {
			return strong[i].answered > strong[j].answered
		}
		return strong[i].name < strong[j].name
	})
	sort.Slice(weak, func(i, j int) bool {
		if weak[i].rate() != weak[j].rate() {
			return weak[i].rate() < weak[j].rate()
		}
		if weak[i].answered != weak[j].answered {
			return weak[i].answered > weak[j].answered
		}
		return weak[i].name < weak[j].name
	})

	return describeTopics(strong), describeTopics(weak)
}

func describeTopics(stats []topicStat) []string {
	if len(stats) > topicListCap {
		stats = stats[:topicListCap]
	}
	out := make([]string, len(stats))
	for i, st := range stats {
		out[i] = fmt.Sprintf("%s (%d%% correct over %d questions)",
			st.name, int(math.Round(st.rate())), st.answered)
	}
	return out
}
