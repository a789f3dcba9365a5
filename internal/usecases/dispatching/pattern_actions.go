package dispatching

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vfg2006/campaign-ledger-api/infrastructure/repository"
	"github.com/vfg2006/campaign-ledger-api/internal/domain"
	"github.com/vfg2006/campaign-ledger-api/pkg/utils"
)

var (
	patternIDKeys   = []string{"pattern_id", "patternId", "id"}
	patternTypeKeys = []string{"pattern_type", "patternType", "type"}
	ruleKeys        = []string{"rule", "pattern_rule", "patternRule", "rule_text", "ruleText"}
	confidenceKeys  = []string{"confidence_level", "confidenceLevel", "confidence"}
	sampleSizeKeys  = []string{"sample_size", "sampleSize", "samples"}
)

func (s *Service) storeLearnedPattern(ctx context.Context, params Params) (any, error) {
	const action = "store_learned_pattern"

	agentName, err := requireString(params, agentNameKeys, action, "agent_name")
	if err != nil {
		return nil, err
	}

	patternType, err := requireString(params, patternTypeKeys, action, "pattern_type")
	if err != nil {
		return nil, err
	}

	rule, err := requireString(params, ruleKeys, action, "rule")
	if err != nil {
		return nil, err
	}

	confidence, sampleSize, err := patternNumbers(params, action)
	if err != nil {
		return nil, err
	}

	pattern := &domain.LearnedPattern{
		PatternID:       utils.GenerateRecordID(utils.PrefixPattern),
		AgentName:       agentName,
		PatternType:     patternType,
		Rule:            rule,
		ConfidenceLevel: confidence,
		SampleSize:      sampleSize,
		IsActive:        true,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.patterns.Insert(ctx, pattern); err != nil {
		return nil, newStoreError(action, err)
	}

	return pattern, nil
}

func (s *Service) getLearnedPatterns(ctx context.Context, params Params) (any, error) {
	const action = "get_learned_patterns"

	patterns, err := s.patterns.List(ctx, repository.PatternFilter{
		AgentName:   optionalString(params, agentNameKeys),
		PatternType: optionalString(params, patternTypeKeys),
		Limit:       normalizeLimit(params, defaultListLimit),
	})
	if err != nil {
		return nil, newStoreError(action, err)
	}

	return patterns, nil
}

// updateLearnedPattern revisa confiança e tamanho da amostra de um padrão
// existente; id e data de criação nunca mudam
func (s *Service) updateLearnedPattern(ctx context.Context, params Params) (any, error) {
	const action = "update_learned_pattern"

	patternID, err := requireString(params, patternIDKeys, action, "pattern_id")
	if err != nil {
		return nil, err
	}

	confidence, sampleSize, err := patternNumbers(params, action)
	if err != nil {
		return nil, err
	}

	found, err := s.patterns.UpdateConfidence(ctx, patternID, confidence, sampleSize)
	if err != nil {
		return nil, newStoreError(action, err)
	}
	if !found {
		return nil, newValidation(action, "pattern_id", fmt.Sprintf("pattern %q not found", patternID))
	}

	return map[string]any{
		"pattern_id":       patternID,
		"confidence_level": confidence,
		"sample_size":      sampleSize,
	}, nil
}

// patternNumbers valida confiança em [0,1] e amostra positiva antes de
// qualquer escrita
func patternNumbers(params Params, action string) (float64, int, error) {
	rawConfidence := pickParam(params, confidenceKeys)
	if rawConfidence == nil {
		return 0, 0, newMissingParameter(action, "confidence_level")
	}
	confidence, ok := asFloat(rawConfidence)
	if !ok || !isFinite(confidence) || confidence < 0 || confidence > 1 {
		return 0, 0, newValidation(action, "confidence_level",
			"confidence_level must be a number between 0 and 1")
	}

	rawSampleSize := pickParam(params, sampleSizeKeys)
	if rawSampleSize == nil {
		return 0, 0, newMissingParameter(action, "sample_size")
	}
	// Contagens fracionárias truncariam para zero na persistência
	sampleSize, ok := asFloat(rawSampleSize)
	if !ok || sampleSize <= 0 || sampleSize != math.Trunc(sampleSize) {
		return 0, 0, newValidation(action, "sample_size",
			"sample_size must be a positive whole number")
	}

	return confidence, int(sampleSize), nil
}
