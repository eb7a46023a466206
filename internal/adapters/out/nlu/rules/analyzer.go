package rules

import (
	"context"

	"bookstore/internal/core/domain/model/nlu"
	"bookstore/internal/core/ports"

	"go.uber.org/zap"
)

// Analyzer classifies with the rule classifier and asks the extractor for
// entities when the intent can use them or the session is inside the order
// flow. The extractor may be the rule extractor or a model-backed one.
type Analyzer struct {
	classifier *Classifier
	extractor  ports.EntityExtractor
	logger     *zap.Logger
}

func NewAnalyzer(classifier *Classifier, extractor ports.EntityExtractor, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		classifier: classifier,
		extractor:  extractor,
		logger:     logger.Named("nlu"),
	}
}

// Analyze never fails: an extraction error leaves the entities empty.
func (a *Analyzer) Analyze(ctx context.Context, text string, inOrderFlow bool) (nlu.Result, error) {
	intent, score := a.classifier.Classify(text)
	result := nlu.Result{Intent: intent, Confidence: score}

	if !inOrderFlow && !needsEntities(intent) {
		return result, nil
	}

	entities, err := a.extractor.Extract(ctx, text)
	if err != nil {
		a.logger.Warn("entity extraction failed",
			zap.String("intent", string(intent)), zap.Bool("in_order_flow", inOrderFlow), zap.Error(err))
		return result, nil
	}
	result.Entities = entities
	return result, nil
}

func needsEntities(intent nlu.Intent) bool {
	switch intent {
	case nlu.OrderBook, nlu.SearchBook, nlu.CheckStock:
		return true
	default:
		return false
	}
}
