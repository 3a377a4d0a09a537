package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/models"
)

// Sector identifies one of the aggregated asset classes.
type Sector string

// Aggregated sectors. Stocks are tracked separately through positions and
// the transaction log and do not participate in the dashboard totals.
const (
	SectorFixedDeposit Sector = "fixed_deposit"
	SectorGold         Sector = "gold"
	SectorRealEstate   Sector = "real_estate"
)

// SectorSummary holds the aggregated figures of one sector. ProfitAmount
// is derived as current-minus-invested for fixed deposits but is the
// stored profit field for gold and real estate; the dashboard treats the
// two meanings as equivalent.
type SectorSummary struct {
	TotalInvestedAmount float64 `json:"total_invested_amount"`
	CurrentReturnAmount float64 `json:"current_return_amount"`
	TotalReturnAmount   float64 `json:"total_return_amount"`
	ProfitAmount        float64 `json:"profit_amount"`
}

// PortfolioSummary is the cross-sector dashboard aggregate.
type PortfolioSummary struct {
	Sectors map[Sector]SectorSummary `json:"sectors"`
	Total   SectorSummary            `json:"total"`
}

// TopGainer is one ranked entry in the top-gainers list.
type TopGainer struct {
	SrNo           int     `json:"sr_no"`
	UserID         uint    `json:"user_id"`
	Sector         Sector  `json:"sector"`
	Name           string  `json:"name"`
	InvestedAmount float64 `json:"invested_amount"`
	CurrentAmount  float64 `json:"current_amount"`
	Profit         float64 `json:"profit"`
}

// SectorHighlight is the single best-growth record of a sector, with the
// reference names a dashboard card needs.
type SectorHighlight struct {
	Sector              Sector  `json:"sector"`
	Name                string  `json:"name"`
	TotalInvestedAmount float64 `json:"total_invested_amount"`
	CurrentReturnAmount float64 `json:"current_return_amount"`
	Growth              float64 `json:"growth"`

	BankName         string `json:"bank_name,omitempty"`
	CityName         string `json:"city_name,omitempty"`
	StateName        string `json:"state_name,omitempty"`
	PropertyTypeName string `json:"property_type_name,omitempty"`
}

const topGainersPerSector = 5
const topGainersOverall = 10

// portfolioService builds the cross-sector dashboard views.
type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// sumRow receives the per-sector aggregate scan.
type sumRow struct {
	Invested float64
	Current  float64
	Total    float64
	Profit   float64
}

func dateRanged(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}
	return query
}

// Summary aggregates the three non-stock sectors for a user, optionally
// restricted to records created within [from, to].
func (s *portfolioService) Summary(userID uint, from, to *time.Time) (*PortfolioSummary, error) {
	summary := &PortfolioSummary{Sectors: make(map[Sector]SectorSummary)}

	var fd sumRow
	err := dateRanged(s.db.Model(&models.FixedDeposit{}).Where("user_id = ?", userID), from, to).
		Select("COALESCE(SUM(total_invested_amount),0) AS invested, COALESCE(SUM(current_return_amount),0) AS current, COALESCE(SUM(total_returned_amount),0) AS total").
		Scan(&fd).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary.Sectors[SectorFixedDeposit] = SectorSummary{
		TotalInvestedAmount: fd.Invested,
		CurrentReturnAmount: fd.Current,
		TotalReturnAmount:   fd.Total,
		ProfitAmount:        fd.Current - fd.Invested,
	}

	var gold sumRow
	err = dateRanged(s.db.Model(&models.GoldInvestment{}).Where("user_id = ?", userID), from, to).
		Select("COALESCE(SUM(gold_purchase_price),0) AS invested, COALESCE(SUM(total_return_amount),0) AS current, COALESCE(SUM(total_return_amount),0) AS total, COALESCE(SUM(profit),0) AS profit").
		Scan(&gold).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary.Sectors[SectorGold] = SectorSummary{
		TotalInvestedAmount: gold.Invested,
		CurrentReturnAmount: gold.Current,
		TotalReturnAmount:   gold.Total,
		ProfitAmount:        gold.Profit,
	}

	var re sumRow
	err = dateRanged(s.db.Model(&models.RealEstateInvestment{}).Where("user_id = ?", userID), from, to).
		Select("COALESCE(SUM(purchase_price),0) AS invested, COALESCE(SUM(current_value),0) AS current, COALESCE(SUM(current_value),0) AS total, COALESCE(SUM(profit),0) AS profit").
		Scan(&re).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary.Sectors[SectorRealEstate] = SectorSummary{
		TotalInvestedAmount: re.Invested,
		CurrentReturnAmount: re.Current,
		TotalReturnAmount:   re.Total,
		ProfitAmount:        re.Profit,
	}

	for _, sector := range summary.Sectors {
		summary.Total.TotalInvestedAmount += sector.TotalInvestedAmount
		summary.Total.CurrentReturnAmount += sector.CurrentReturnAmount
		summary.Total.TotalReturnAmount += sector.TotalReturnAmount
		summary.Total.ProfitAmount += sector.ProfitAmount
	}

	return summary, nil
}

// TopGainers ranks the user's best records: top five per sector by
// descending profit, concatenated, deduplicated by (userID, profit),
// re-sorted descending, and truncated to the overall top ten with a
// 1-based serial number.
func (s *portfolioService) TopGainers(userID uint) ([]TopGainer, error) {
	var entries []TopGainer

	var deposits []models.FixedDeposit
	if err := s.db.Preload("Bank").Where("user_id = ?", userID).
		Order("current_profit_amount DESC").Limit(topGainersPerSector).Find(&deposits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, fd := range deposits {
		entries = append(entries, TopGainer{
			UserID:         fd.UserID,
			Sector:         SectorFixedDeposit,
			Name:           fd.Bank.Name,
			InvestedAmount: fd.TotalInvestedAmount,
			CurrentAmount:  fd.CurrentReturnAmount,
			Profit:         fd.CurrentProfitAmount,
		})
	}

	var holdings []models.GoldInvestment
	if err := s.db.Where("user_id = ?", userID).
		Order("profit DESC").Limit(topGainersPerSector).Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, gold := range holdings {
		entries = append(entries, TopGainer{
			UserID:         gold.UserID,
			Sector:         SectorGold,
			Name:           fmt.Sprintf("%dK Gold (%.0fg)", gold.PurityOfGold, gold.GoldWeight),
			InvestedAmount: gold.GoldPurchasePrice,
			CurrentAmount:  gold.TotalReturnAmount,
			Profit:         gold.Profit,
		})
	}

	var properties []models.RealEstateInvestment
	if err := s.db.Where("user_id = ?", userID).
		Order("profit DESC").Limit(topGainersPerSector).Find(&properties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, property := range properties {
		entries = append(entries, TopGainer{
			UserID:         property.UserID,
			Sector:         SectorRealEstate,
			Name:           property.AreaName,
			InvestedAmount: property.PurchasePrice,
			CurrentAmount:  property.CurrentValue,
			Profit:         property.Profit,
		})
	}

	return rankTopGainers(entries), nil
}

// rankTopGainers deduplicates, re-sorts, and truncates the concatenated
// per-sector lists. The dedup key is exactly (userID, profit): two
// unrelated records with identical profit for the same user collide and
// the later one is dropped. This is a known limitation carried forward
// from the payout reports this dashboard replaces.
func rankTopGainers(entries []TopGainer) []TopGainer {
	type dedupKey struct {
		userID uint
		profit float64
	}

	seen := make(map[dedupKey]bool, len(entries))
	deduped := make([]TopGainer, 0, len(entries))
	for _, entry := range entries {
		key := dedupKey{userID: entry.UserID, profit: entry.Profit}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, entry)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Profit > deduped[j].Profit
	})

	if len(deduped) > topGainersOverall {
		deduped = deduped[:topGainersOverall]
	}
	for i := range deduped {
		deduped[i].SrNo = i + 1
	}
	return deduped
}

// HighestGrowth returns the single best record of one sector by growth,
// where growth is current return minus invested amount, with the
// sector-specific reference names joined in.
func (s *portfolioService) HighestGrowth(userID uint, sector Sector) (*SectorHighlight, error) {
	switch sector {
	case SectorFixedDeposit:
		var fd models.FixedDeposit
		err := s.db.Preload("Bank").Where("user_id = ?", userID).
			Order("(current_return_amount - total_invested_amount) DESC").First(&fd).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrFixedDepositNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &SectorHighlight{
			Sector:              SectorFixedDeposit,
			Name:                fd.Bank.Name,
			TotalInvestedAmount: fd.TotalInvestedAmount,
			CurrentReturnAmount: fd.CurrentReturnAmount,
			Growth:              fd.CurrentReturnAmount - fd.TotalInvestedAmount,
			BankName:            fd.Bank.Name,
		}, nil

	case SectorGold:
		var gold models.GoldInvestment
		err := s.db.Where("user_id = ?", userID).
			Order("(total_return_amount - gold_purchase_price) DESC").First(&gold).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrGoldInvestmentNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &SectorHighlight{
			Sector:              SectorGold,
			Name:                fmt.Sprintf("%dK Gold (%.0fg)", gold.PurityOfGold, gold.GoldWeight),
			TotalInvestedAmount: gold.GoldPurchasePrice,
			CurrentReturnAmount: gold.TotalReturnAmount,
			Growth:              gold.TotalReturnAmount - gold.GoldPurchasePrice,
		}, nil

	case SectorRealEstate:
		var property models.RealEstateInvestment
		err := s.db.Preload("City").Preload("State").Preload("PropertyType").
			Where("user_id = ?", userID).
			Order("(current_value - purchase_price) DESC").First(&property).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrRealEstateNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &SectorHighlight{
			Sector:              SectorRealEstate,
			Name:                property.AreaName,
			TotalInvestedAmount: property.PurchasePrice,
			CurrentReturnAmount: property.CurrentValue,
			Growth:              property.CurrentValue - property.PurchasePrice,
			CityName:            property.City.Name,
			StateName:           property.State.Name,
			PropertyTypeName:    property.PropertyType.Name,
		}, nil

	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown sector")
	}
}
