package predict

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Skufu/GoRocky-symptoms/internal/season"
)

const (
	symptomWeight  = 0.7
	locationWeight = 0.15
	seasonWeight   = 0.15

	// Affinity cells containing this marker match every location or season.
	allMarker = "All"

	UnableToPredict = "Unable to predict"
	NotEnoughData   = "Not enough data to make a prediction."
)

type Confidence string

const (
	High     Confidence = "High"
	Moderate Confidence = "Moderate"
	Low      Confidence = "Low"
)

// ConfidenceFor bands a final score. Boundary values fall into the lower band.
func ConfidenceFor(score float64) Confidence {
	switch {
	case score > 0.5:
		return High
	case score > 0.2:
		return Moderate
	default:
		return Low
	}
}

// KnowledgeBase is the read-only view of the disease tables the scorer needs.
type KnowledgeBase interface {
	Diseases() []string
	SymptomsOf(disease string) []string
	LocationAffinity(disease string) (string, bool)
	SeasonAffinity(disease string) (string, bool)
}

type Candidate struct {
	Disease       string  `json:"disease"`
	SymptomScore  float64 `json:"symptomScore"`
	LocationScore float64 `json:"locationScore"`
	SeasonScore   float64 `json:"seasonScore"`
	Score         float64 `json:"score"`
}

type Result struct {
	Disease     string        `json:"disease"`
	Score       float64       `json:"score"`
	Confidence  Confidence    `json:"confidence"`
	Explanation string        `json:"explanation"`
	Location    string        `json:"location"`
	Season      season.Season `json:"season"`
	Candidates  []Candidate   `json:"candidates"`
}

// Predicted reports whether the knowledge base produced a prediction at all.
func (r Result) Predicted() bool {
	return len(r.Candidates) > 0
}

type Option func(*Scorer)

// WithClock replaces time.Now as the source of the current season.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

// Scorer ranks diseases by weighted symptom, location and season match. It
// holds no mutable state and is safe for concurrent use.
type Scorer struct {
	kb     KnowledgeBase
	logger *zap.Logger
	now    func() time.Time
}

func NewScorer(kb KnowledgeBase, logger *zap.Logger, opts ...Option) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scorer{kb: kb, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict returns the best matching disease and a one-sentence explanation
// for the current season.
func (s *Scorer) Predict(symptoms []string, location string) (string, string) {
	r := s.PredictAt(symptoms, location, s.Season())
	return r.Disease, r.Explanation
}

// Season resolves the current season from the scorer's clock.
func (s *Scorer) Season() season.Season {
	return season.At(s.now())
}

// PredictAt scores every disease against the given season.
func (s *Scorer) PredictAt(symptoms []string, location string, current season.Season) Result {
	s.logger.Info("scoring diseases",
		zap.String("location", location),
		zap.String("season", current.String()),
	)

	user := make(map[string]bool, len(symptoms))
	for _, sym := range symptoms {
		user[sym] = true
	}

	result := Result{Location: location, Season: current}
	for _, disease := range s.kb.Diseases() {
		result.Candidates = append(result.Candidates, s.score(disease, user, location, current))
	}

	if len(result.Candidates) == 0 {
		result.Disease = UnableToPredict
		result.Explanation = NotEnoughData
		result.Confidence = Low
		s.logger.Warn("no diseases to score")
		return result
	}

	best := result.Candidates[0]
	for _, c := range result.Candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}

	result.Disease = best.Disease
	result.Score = best.Score
	result.Confidence = ConfidenceFor(best.Score)
	result.Explanation = fmt.Sprintf(
		"The model predicts **%s** with %s confidence. "+
			"This is based on your symptoms, your location (%s), "+
			"and the current season (%s).",
		best.Disease, result.Confidence, location, current)

	s.logger.Info("prediction made",
		zap.String("disease", best.Disease),
		zap.Float64("score", best.Score),
		zap.String("confidence", string(result.Confidence)),
	)
	return result
}

func (s *Scorer) score(disease string, user map[string]bool, location string, current season.Season) Candidate {
	c := Candidate{Disease: disease}

	// Each related slot counts, duplicates included.
	related := s.kb.SymptomsOf(disease)
	if len(related) > 0 {
		matched := 0
		for _, sym := range related {
			if user[sym] {
				matched++
			}
		}
		c.SymptomScore = float64(matched) / float64(len(related))
	}

	if loc, ok := s.kb.LocationAffinity(disease); ok {
		c.LocationScore = affinityScore(loc, location)
	}
	if sea, ok := s.kb.SeasonAffinity(disease); ok {
		c.SeasonScore = affinityScore(sea, current.String())
	}

	c.Score = round4(symptomWeight*c.SymptomScore + locationWeight*c.LocationScore + seasonWeight*c.SeasonScore)
	return c
}

func affinityScore(affinity, value string) float64 {
	if strings.Contains(affinity, allMarker) || strings.Contains(affinity, value) {
		return 1
	}
	return 0
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
