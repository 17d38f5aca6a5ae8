package models

import "time"

// SignalStatus tracks the lifecycle of a trading signal.
type SignalStatus string

const (
	SignalActive  SignalStatus = "active"
	SignalClosed  SignalStatus = "closed"
	SignalRevised SignalStatus = "revised"
)

// Valid reports whether the status belongs to the enumeration.
func (s SignalStatus) Valid() bool {
	switch s {
	case SignalActive, SignalClosed, SignalRevised:
		return true
	}
	return false
}

// Signal is an actionable trading signal, optionally linked to the analysis
// post it came out of.
type Signal struct {
	ID          string       `bson:"id" json:"id"`
	Title       string       `bson:"title" json:"title"`
	EntryPrice  float64      `bson:"entryPrice" json:"entryPrice"`
	StopLoss    *float64     `bson:"stopLoss,omitempty" json:"stopLoss,omitempty"`
	TargetPrice *float64     `bson:"targetPrice,omitempty" json:"targetPrice,omitempty"`
	RiskLevel   RiskLevel    `bson:"riskLevel" json:"riskLevel"`
	Status      SignalStatus `bson:"status" json:"status"`
	Commentary  string       `bson:"commentary,omitempty" json:"commentary,omitempty"`
	AnalysisID  string       `bson:"analysisId,omitempty" json:"analysisId,omitempty"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}
