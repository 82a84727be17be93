// Package account defines the core domain records used throughout the
// scoring pipeline. All types are immutable value records: the pipeline
// computes fresh outputs on every pass and never mutates its inputs.
package account

// Channel names used in usage history rows.
const (
	ChannelDirect         = "Direct API"
	ChannelAWSMarketplace = "AWS Marketplace"
	ChannelGCPMarketplace = "GCP Marketplace"
	ChannelSeatBased      = "Seat-Based"
)

// Record holds the raw per-account metrics the engine scores.
// All spend fields are the latest observed monthly values in USD.
// The validate tags are enforced only at the ingestion boundary (the HTTP
// API); the scoring layer itself never validates.
type Record struct {
	AccountID  string `json:"account_id" validate:"required"`
	Company    string `json:"company"`
	Domain     string `json:"domain"`
	Industry   string `json:"industry"`
	SignupDate string `json:"signup_date"`

	DirectSpend         float64 `json:"latest_direct_spend" validate:"gte=0"`
	AWSMarketplaceSpend float64 `json:"latest_aws_marketplace_spend" validate:"gte=0"`
	GCPMarketplaceSpend float64 `json:"latest_gcp_marketplace_spend" validate:"gte=0"`
	SeatSpend           float64 `json:"latest_seat_spend" validate:"gte=0"`
	TotalSpend          float64 `json:"latest_total_spend" validate:"gte=0"`
	Total12MoSpend      float64 `json:"total_12mo_spend" validate:"gte=0"`

	GrowthRate          float64 `json:"growth_rate"` // stored long-horizon estimate, signed
	ProdRatio           float64 `json:"prod_ratio" validate:"gte=0,lte=1"`
	ErrorRate           float64 `json:"error_rate" validate:"gte=0"`
	NProducts           int     `json:"n_products" validate:"gte=0"` // distinct product variants in use
	UniqueUsers         int     `json:"unique_users" validate:"gte=0"`
	EnterpriseSeats     int     `json:"enterprise_seats" validate:"gte=0"`
	CodeLicenses        int     `json:"code_licenses" validate:"gte=0"`
	DailyRequests       int     `json:"daily_requests" validate:"gte=0"`
	DaysInactive        int     `json:"days_inactive" validate:"gte=0"`
	MarketplaceToDirect float64 `json:"marketplace_to_direct" validate:"gte=0"`
}

// UsageRow is one (account, month, channel) spend observation. The scoring
// pipeline only consumes it to derive a recent growth trend.
type UsageRow struct {
	AccountID string  `json:"account_id" validate:"required"`
	Company   string  `json:"company"`
	Month     string  `json:"month"` // "2006-01"
	MonthIdx  int     `json:"month_idx" validate:"gte=0"`
	Channel   string  `json:"channel"`
	Spend     float64 `json:"spend" validate:"gte=0"`
	Requests  int     `json:"requests" validate:"gte=0"`
}

// Enriched is a Record plus the two signals derived from it. Enrichment is
// deterministic: the same inputs always produce the same derived values.
type Enriched struct {
	Record

	// ComputedGrowthRate blends the stored growth rate (70%) with the
	// time-series-derived rate (30%), rounded to 4 decimal places.
	ComputedGrowthRate float64 `json:"computed_growth_rate"`

	// ActiveChannels counts channels with strictly positive spend.
	ActiveChannels int `json:"n_active_channels"`
}

// Stage is one of five ordered lifecycle labels derived solely from the
// composite score.
type Stage string

const (
	StageEnterpriseReady Stage = "Enterprise Ready"
	StageHighVelocity    Stage = "High Velocity"
	StageQualified       Stage = "Qualified"
	StageNurture         Stage = "Nurture"
	StageAtRisk          Stage = "At Risk"
)

// ScoreResult is the engine's output for one account. Sub-scores are bounded
// [0,100], the risk penalty [0,10], and the composite [0,100].
type ScoreResult struct {
	AccountID          string  `json:"account_id"`
	ConversionScore    float64 `json:"conversion_score"`
	Stage              Stage   `json:"stage"`
	UsageIntensity     float64 `json:"usage_intensity_score"`
	ProductionMaturity float64 `json:"production_maturity_score"`
	TeamAdoption       float64 `json:"team_adoption_score"`
	CrossChannel       float64 `json:"cross_channel_score"`
	RiskPenalty        float64 `json:"risk_penalty"`
}

// Scored joins an enriched record with its score result. The action engine
// reads both: the result for stage and category breakdown, the record for
// the raw fields its branch conditions consult.
type Scored struct {
	Record Enriched    `json:"record"`
	Result ScoreResult `json:"result"`
}
