package payout

import (
	"fmt"
	"math"
	"strings"
)

const (
	HouseFee_None       = "none"
	HouseFee_Percentage = "percentage"
	HouseFee_Fixed      = "fixed"

	percentageTolerance = 0.01
)

type Place struct {
	Position   int     `json:"position"`
	Percentage float64 `json:"percentage"`
}

type PrizePoolData struct {
	TotalBuyIns   int     `json:"total_buy_ins"`
	TotalRebuys   int     `json:"total_rebuys"`
	TotalAddOns   int     `json:"total_add_ons"`
	BuyInAmount   float64 `json:"buy_in_amount"`
	RebuyAmount   float64 `json:"rebuy_amount"`
	AddOnAmount   float64 `json:"add_on_amount"`
	HouseFeeType  string  `json:"house_fee_type"`
	HouseFeeValue float64 `json:"house_fee_value"`
	PayoutPlaces  []Place `json:"payout_places"`
}

type Detail struct {
	Position    int     `json:"position"`
	Percentage  float64 `json:"percentage"`
	Amount      float64 `json:"amount"`
	AmountCents int64   `json:"amount_cents"`
}

type Result struct {
	GrossPrizePool    float64  `json:"gross_prize_pool"`
	HouseCut          float64  `json:"house_cut"`
	NetPrizePool      float64  `json:"net_prize_pool"`
	NetPrizePoolCents int64    `json:"net_prize_pool_cents"`
	PayoutDetails     []Detail `json:"payout_details"`
	IsValidStructure  bool     `json:"is_valid_structure"`
	ValidationMessage string   `json:"validation_message"`
}

func GrossPrizePool(buyIns, rebuys, addOns int, buyInAmount, rebuyAmount, addOnAmount float64) float64 {
	return float64(buyIns)*buyInAmount + float64(rebuys)*rebuyAmount + float64(addOns)*addOnAmount
}

func HouseCut(gross float64, feeType string, feeValue float64) float64 {
	var cut float64
	switch strings.ToLower(feeType) {
	case HouseFee_Percentage:
		cut = gross * feeValue / 100
	case HouseFee_Fixed:
		cut = feeValue
	}

	if cut < 0 || math.IsNaN(cut) {
		return 0
	}
	return cut
}

func NetPrizePool(gross, houseCut float64) float64 {
	return math.Max(0, gross-houseCut)
}

// ValidateStructure checks that payout percentages add up to 100.
func ValidateStructure(places []Place) (bool, string) {
	if len(places) == 0 {
		return false, "no payout places defined"
	}

	total := 0.0
	for _, p := range places {
		if p.Percentage < 0 {
			return false, fmt.Sprintf("payout for position %d is negative", p.Position)
		}
		total += p.Percentage
	}

	if math.Abs(total-100) > percentageTolerance {
		return false, fmt.Sprintf("payout percentages must add up to 100%% (currently %.2f%%)", total)
	}

	return true, ""
}

/*
CalculatePrizePoolAndPayouts 計算獎池與各名次獎金
  - 總獎池 = 買入 + 重購 + 加購
  - 抽水依類型計算 (none/percentage/fixed)，不會小於 0
  - 比例總和不為 100 時不計算獎金，獎池為 0 時列出各名次且金額為 0，否則回傳空列表
  - 以整數分 (cents) 計算，餘數補給最後一個名次
*/
func CalculatePrizePoolAndPayouts(data PrizePoolData) Result {
	gross := GrossPrizePool(data.TotalBuyIns, data.TotalRebuys, data.TotalAddOns, data.BuyInAmount, data.RebuyAmount, data.AddOnAmount)
	cut := HouseCut(gross, data.HouseFeeType, data.HouseFeeValue)
	net := NetPrizePool(gross, cut)

	netCents := toCents(net)

	result := Result{
		GrossPrizePool:    round2(gross),
		HouseCut:          round2(cut),
		NetPrizePool:      fromCents(netCents),
		NetPrizePoolCents: netCents,
		PayoutDetails:     make([]Detail, 0, len(data.PayoutPlaces)),
	}

	result.IsValidStructure, result.ValidationMessage = ValidateStructure(data.PayoutPlaces)
	if !result.IsValidStructure {
		// nothing to split, so places are listed with zero amounts
		if netCents == 0 {
			for _, p := range data.PayoutPlaces {
				result.PayoutDetails = append(result.PayoutDetails, Detail{
					Position:   p.Position,
					Percentage: p.Percentage,
				})
			}
		}
		return result
	}

	var distributed int64
	for _, p := range data.PayoutPlaces {
		cents := int64(math.Round(float64(netCents) * p.Percentage / 100))
		distributed += cents
		result.PayoutDetails = append(result.PayoutDetails, Detail{
			Position:    p.Position,
			Percentage:  p.Percentage,
			AmountCents: cents,
		})
	}

	// residual cents go to the last place
	result.PayoutDetails[len(result.PayoutDetails)-1].AmountCents += netCents - distributed

	for idx := range result.PayoutDetails {
		result.PayoutDetails[idx].Amount = fromCents(result.PayoutDetails[idx].AmountCents)
	}

	return result
}

// PayoutFor returns the prize for a finishing position, zero when it is not paid.
func (r Result) PayoutFor(position int) float64 {
	for _, d := range r.PayoutDetails {
		if d.Position == position {
			return d.Amount
		}
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func fromCents(c int64) float64 {
	return float64(c) / 100
}
