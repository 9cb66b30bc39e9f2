package services

import (
	"time"

	"stay-scout/metrics"
	"stay-scout/models"
	"stay-scout/utils"
)

// Analyzer runs scoring, classification, aggregation and recommendation over one batch
type Analyzer struct {
	scorer      *Scorer
	classifier  *Classifier
	insights    *InsightService
	recommender *Recommender
	logger      *utils.Logger
}

// NewAnalyzer wires the engine services together
func NewAnalyzer(bestValueCount, workers int, logger *utils.Logger) *Analyzer {
	return &Analyzer{
		scorer:      NewScorer(workers, logger),
		classifier:  NewClassifier(bestValueCount, logger),
		insights:    NewInsightService(logger),
		recommender: NewRecommender(logger),
		logger:      logger,
	}
}

// Analyze produces the analysis snapshot for a complete listing batch.
// The input listings are not modified.
func (a *Analyzer) Analyze(listings []*models.Listing, criteria models.SearchCriteria) *models.SearchAnalysis {
	start := time.Now()
	defer func() {
		metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	}()

	scored := a.scorer.ScoreAll(listings, criteria)
	cohorts := a.classifier.Classify(scored, criteria)
	avg, rng := priceSummary(scored)

	analysis := &models.SearchAnalysis{
		TotalCount:      len(scored),
		AveragePrice:    avg,
		PriceRange:      rng,
		BestValue:       cohorts.BestValue,
		Budget:          cohorts.Budget,
		Premium:         cohorts.Premium,
		Recommendations: a.recommender.Generate(cohorts.Ranked, avg, criteria),
		Insights:        a.insights.Generate(scored),
		Listings:        cohorts.Ranked,
	}

	a.logger.Info("Analyzed %d listings: avg $%.2f/night, %d best value, %d budget, %d premium",
		analysis.TotalCount, analysis.AveragePrice,
		len(analysis.BestValue), len(analysis.Budget), len(analysis.Premium))
	return analysis
}
