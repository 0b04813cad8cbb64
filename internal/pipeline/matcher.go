package pipeline

import "github.com/ppiankov/supplycheck/internal/model"

// Match classifies every card through the supply index.
// Cards whose cardSupplyId is absent, null or unknown fall back to
// model.FallbackSupplyType.
func Match(cards []model.Card, idx *SupplyIndex) *model.Report {
	report := &model.Report{
		Cards:   len(cards),
		Indexed: idx.Len(),
		Sample:  make([]model.SampleEntry, 0, model.MaxSampleEntries),
		ByType:  make(map[string]int),
	}

	for _, card := range cards {
		supplyType, ok := idx.Lookup(card.CardSupplyID)
		if ok {
			report.Mapped++
		} else {
			supplyType = model.FallbackSupplyType
			report.Fallback++
		}
		report.ByType[supplyType]++

		if len(report.Sample) < model.MaxSampleEntries && supplyType != model.FallbackSupplyType {
			report.Sample = append(report.Sample, model.SampleEntry{
				ID:         card.ID,
				SupplyType: supplyType,
			})
		}
	}

	return report
}
