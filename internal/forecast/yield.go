package forecast

import (
	"math"

	"github.com/oumarkante/harvestplan/internal/domain/models"
)

// CalculateYieldRanges converts each throughput range into a produced-volume
// range, re-clamped against what the substrate inventory can feed. The
// substrate profile must already have passed snapshot validation.
func CalculateYieldRanges(estimates []models.ThroughputEstimate, substrate models.SubstrateInventoryProfile, policy Policy) []models.YieldRangeEstimate {
	substrateBatches := 0
	if substrate.BatchSizeUnits > 0 {
		substrateBatches = substrate.VolumeUnits / substrate.BatchSizeUnits
	}

	yields := make([]models.YieldRangeEstimate, 0, len(estimates))
	for _, est := range estimates {
		maxBatches := est.BatchesMax
		if substrateBatches < maxBatches {
			maxBatches = substrateBatches
		}
		minBatches := est.BatchesMin
		if maxBatches < minBatches {
			minBatches = maxBatches
		}

		volumeMax := int(math.Floor(float64(maxBatches) * float64(substrate.BatchSizeUnits) * substrate.HistoricalCompletionRate))
		if volumeMax < 0 {
			volumeMax = 0
		}
		volumeMin := int(math.Floor(float64(volumeMax) * policy.MinYieldRatio))
		if volumeMin < 0 {
			volumeMin = 0
		}

		yields = append(yields, models.YieldRangeEstimate{
			WorkflowID: est.WorkflowID,
			Name:       est.Name,
			BatchesMin: minBatches,
			BatchesMax: maxBatches,
			VolumeMin:  volumeMin,
			VolumeMax:  volumeMax,
		})
	}
	return yields
}
