package models

import "time"

// AssetType is the market segment an analysis covers.
type AssetType string

const (
	AssetStocks AssetType = "Stocks"
	AssetGold   AssetType = "Gold"
	AssetCrypto AssetType = "Crypto"
	AssetForex  AssetType = "Forex"
	AssetETFs   AssetType = "ETFs"
)

// Valid reports whether the asset type belongs to the enumeration.
func (a AssetType) Valid() bool {
	switch a {
	case AssetStocks, AssetGold, AssetCrypto, AssetForex, AssetETFs:
		return true
	}
	return false
}

// Analysis is an analyst-authored market analysis post. Its RiskLevel is the
// join key the personalized dashboard filters on. A post with a future
// PublishDate stays unpublished until the publish worker flips it.
type Analysis struct {
	ID          string     `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Content     string     `bson:"content" json:"content"`
	RiskLevel   RiskLevel  `bson:"riskLevel" json:"riskLevel"`
	AssetType   AssetType  `bson:"assetType" json:"assetType"`
	EntryPrice  *float64   `bson:"entryPrice,omitempty" json:"entryPrice,omitempty"`
	StopLoss    *float64   `bson:"stopLoss,omitempty" json:"stopLoss,omitempty"`
	TargetPrice *float64   `bson:"targetPrice,omitempty" json:"targetPrice,omitempty"`
	AuthorID    string     `bson:"authorId" json:"authorId"`
	PublishDate *time.Time `bson:"publishDate,omitempty" json:"publishDate,omitempty"`
	Published   bool       `bson:"published" json:"published"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}
