package payout

type band struct {
	maxParticipants int
	percentages     []float64
}

// 依報名人數區間建議的獎金比例
var suggestionBands = []band{
	{maxParticipants: 1, percentages: []float64{100}},
	{maxParticipants: 5, percentages: []float64{65, 35}},
	{maxParticipants: 10, percentages: []float64{50, 30, 20}},
	{maxParticipants: 20, percentages: []float64{40, 25, 15, 12, 8}},
	{maxParticipants: 30, percentages: []float64{35, 22, 15, 11, 9, 8}},
	{maxParticipants: 50, percentages: []float64{30, 20, 13, 10, 8, 7, 6, 6}},
	{maxParticipants: 100, percentages: []float64{28, 18, 12, 9, 7.5, 6.5, 5.5, 5, 4.5, 4}},
}

var largeFieldPercentages = []float64{25, 16, 11, 8.5, 7, 6, 5, 4.5, 3.5, 3, 2.5, 2.5, 2, 1.75, 1.75}

func SuggestPayoutStructure(numParticipants int) []Place {
	places := make([]Place, 0)
	if numParticipants <= 0 {
		return places
	}

	percentages := largeFieldPercentages
	for _, b := range suggestionBands {
		if numParticipants <= b.maxParticipants {
			percentages = b.percentages
			break
		}
	}

	for idx, pct := range percentages {
		places = append(places, Place{
			Position:   idx + 1,
			Percentage: pct,
		})
	}
	return places
}
