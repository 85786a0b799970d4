package model

// GrowthWindow is the number of daily samples in a growth series.
const GrowthWindow = 30

// Provenance records where an account's metrics came from.
type Provenance string

const (
	ProvenanceLive      Provenance = "live"
	ProvenanceDemo      Provenance = "demo"
	ProvenanceEstimated Provenance = "estimated"
)

// Risk is a coarse bot-likelihood tier.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// Tier is a recommendation tier.
type Tier string

const (
	TierSafe    Tier = "safe"
	TierCaution Tier = "caution"
	TierDanger  Tier = "danger"
)

// GrowthData holds the trailing daily follower counts and the per-day
// suspicious-activity magnitudes aligned with them.
type GrowthData struct {
	Organic    []int `json:"organic" yaml:"organic"`
	Suspicious []int `json:"suspicious" yaml:"suspicious"`
}

// EngagementBreakdown is the share of each engagement kind, in percent.
type EngagementBreakdown struct {
	Likes    int `json:"likes" yaml:"likes"`
	Comments int `json:"comments" yaml:"comments"`
	Shares   int `json:"shares" yaml:"shares"`
	Saves    int `json:"saves" yaml:"saves"`
}

// RiskScores are the four named trust sub-scores.
type RiskScores struct {
	Growth     int `json:"growth" yaml:"growth"`
	Engagement int `json:"engagement" yaml:"engagement"`
	Followers  int `json:"followers" yaml:"followers"`
	Activity   int `json:"activity" yaml:"activity"`
}

// AccountMetrics is the profile and activity record the pipeline scores.
// Stages never modify a record in place; they return annotated copies.
type AccountMetrics struct {
	Name           string              `json:"name" yaml:"name"`
	Handle         string              `json:"handle" yaml:"handle"`
	Platform       string              `json:"platform" yaml:"platform"`
	Verified       bool                `json:"verified" yaml:"verified"`
	Bio            string              `json:"bio,omitempty" yaml:"bio,omitempty"`
	Followers      int                 `json:"followers" yaml:"followers"`
	Following      int                 `json:"following" yaml:"following"`
	ContentCount   *int                `json:"contentCount,omitempty" yaml:"contentCount,omitempty"`
	TotalLikes     int                 `json:"totalLikes,omitempty" yaml:"totalLikes,omitempty"`
	FollowerChange float64             `json:"followerChange" yaml:"followerChange"`
	MonthlyGrowth  float64             `json:"monthlyGrowth" yaml:"monthlyGrowth"`
	EngagementRate float64             `json:"engagementRate" yaml:"engagementRate"`
	BotPercentage  float64             `json:"botPercentage" yaml:"botPercentage"`
	TrustScore     int                 `json:"trustScore" yaml:"trustScore"`
	RiskScores     RiskScores          `json:"riskScores" yaml:"riskScores"`
	Growth         GrowthData          `json:"growthData" yaml:"growthData"`
	Engagement     EngagementBreakdown `json:"engagementData" yaml:"engagementData"`
	BotFactors     []string            `json:"botFactors,omitempty" yaml:"botFactors,omitempty"`
	Provenance     Provenance          `json:"provenance,omitempty" yaml:"provenance,omitempty"`
}

// ContentItem is one post or video with its engagement counters.
type ContentItem struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Likes    int    `json:"likes" yaml:"likes"`
	Comments int    `json:"comments" yaml:"comments"`
	Shares   int    `json:"shares" yaml:"shares"`
	Views    int    `json:"views" yaml:"views"`
}

// Total returns likes + comments + shares.
func (c ContentItem) Total() int { return c.Likes + c.Comments + c.Shares }

// EngagementStats summarises a list of content items.
type EngagementStats struct {
	Rate          float64             `json:"rate"`
	Breakdown     EngagementBreakdown `json:"breakdown"`
	AverageViews  int                 `json:"averageViews"`
	TotalLikes    int                 `json:"totalLikes"`
	TotalComments int                 `json:"totalComments"`
	TotalShares   int                 `json:"totalShares"`
}

// BotAnalysis is the output of the bot-likelihood detector.
type BotAnalysis struct {
	BotPercentage float64  `json:"botPercentage"`
	RawScore      float64  `json:"rawScore"`
	Factors       []string `json:"factors"`
	Risk          Risk     `json:"riskLevel"`
}

// Verdict is the qualitative label for a trust score.
type Verdict struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

// TrustScore is the weighted aggregate of the four sub-scores.
type TrustScore struct {
	Overall   int        `json:"overall"`
	Breakdown RiskScores `json:"breakdown"`
	Verdict   Verdict    `json:"verdict"`
}

// Recommendation is the advisory shown to the caller.
type Recommendation struct {
	Tier Tier   `json:"type"`
	Text string `json:"text"`
}

// AnalysisResult bundles everything the pipeline produces for one account.
type AnalysisResult struct {
	Account        AccountMetrics   `json:"account"`
	Engagement     *EngagementStats `json:"engagement,omitempty"`
	Bot            BotAnalysis      `json:"bot"`
	Trust          TrustScore       `json:"trust"`
	Recommendation Recommendation   `json:"recommendation"`
	Provenance     Provenance       `json:"provenance"`
	Estimated      bool             `json:"isEstimated"`
}

// IntPtr is a small helper for optional counts.
func IntPtr(v int) *int { return &v }
