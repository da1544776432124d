package logic

import "pulseform/internal/form/models"

// ClassifyTier derives the customer tier from the willingness-to-pay and
// usage-volume answers against the configured band order (lowest first).
//
// high_value requires both the top two price bands and the top two usage
// bands; budget requires the lowest price band regardless of usage;
// everything else, including either question unanswered, is standard.
func ClassifyTier(answers models.AnswerSet, wtpQuestionID, usageQuestionID string, bands models.TierBands) models.Tier {
	wtp, wtpOK := answers[wtpQuestionID]
	usage, usageOK := answers[usageQuestionID]
	if !wtpOK || !usageOK {
		return models.TierStandard
	}

	if inTopBands(wtp.First(), bands.Price, 2) && inTopBands(usage.First(), bands.Usage, 2) {
		return models.TierHighValue
	}
	if len(bands.Price) > 0 && wtp.First() == bands.Price[0] {
		return models.TierBudget
	}
	return models.TierStandard
}

// inTopBands reports whether value is among the n highest-ranked bands.
func inTopBands(value string, bands []string, n int) bool {
	start := len(bands) - n
	if start < 0 {
		start = 0
	}
	for _, b := range bands[start:] {
		if value == b {
			return true
		}
	}
	return false
}
