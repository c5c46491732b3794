package projection

import "github.com/theirongolddev/horizon/internal/model"

// AssetsForYear appreciates every held asset. An asset enters the ledger at
// its initial value in its purchase year (re-entering if already held) and
// leaves it in its sell year, after that year's appreciation; the ending
// value is then credited to cumulative net worth. Purchase and sale in the
// same year are both applied.
//
// The returned Appreciation equals the total held value, not the
// appreciation earned this year. Per-asset appreciation is in Details.
func (s *State) AssetsForYear(year int, assets []model.Asset) model.YearlyAssets {
	var out model.YearlyAssets

	for _, a := range assets {
		if year == a.PurchaseYear {
			s.assets.set(a.ID, a.InitialValue)
		}

		starting, held := s.assets.get(a.ID)
		if !held {
			continue
		}
		appreciation := starting * a.AnnualAppreciationRate
		ending := starting + appreciation
		s.assets.set(a.ID, ending)

		sold := a.SoldIn(year)
		out.Details = append(out.Details, model.AssetDetail{
			ID:            a.ID,
			StartingValue: starting,
			Appreciation:  appreciation,
			EndingValue:   ending,
			SoldThisYear:  sold,
		})

		if sold {
			s.netWorth += ending
			s.assets.remove(a.ID)
		}
	}

	out.Value = s.assets.sum()
	out.Appreciation = out.Value

	return out
}
