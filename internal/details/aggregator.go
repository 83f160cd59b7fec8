package details

import (
	"go.uber.org/zap"

	"github.com/Skufu/GoRocky-symptoms/internal/knowledge"
)

const NoDescription = "No description available."

// Fetcher joins the descriptive tables for one disease.
type Fetcher interface {
	DetailsOf(disease string) (knowledge.Details, error)
}

// Bundle is what the rendering layer shows. Degraded marks the placeholder
// returned when the lookup failed.
type Bundle struct {
	knowledge.Details
	Degraded bool `json:"degraded"`
}

func degraded() Bundle {
	return Bundle{
		Details: knowledge.Details{
			Description: NoDescription,
			Precautions: []string{},
			Medications: []string{},
			Diet:        []string{},
			Workout:     []string{},
		},
		Degraded: true,
	}
}

type Aggregator struct {
	kb     Fetcher
	logger *zap.Logger
}

func NewAggregator(kb Fetcher, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{kb: kb, logger: logger}
}

// Lookup never fails; a fetch error is logged and replaced by the degraded bundle.
func (a *Aggregator) Lookup(disease string) Bundle {
	d, err := a.kb.DetailsOf(disease)
	if err != nil {
		a.logger.Error("error fetching details", zap.String("disease", disease), zap.Error(err))
		return degraded()
	}
	return Bundle{Details: d}
}
