package domain

import "time"

type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// AIAnalysis is the commentary returned for a simulation result.
type AIAnalysis struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	MarketContext   string   `json:"marketContext"`
	Sources         []Source `json:"sources"`
}

// FallbackAnalysis is substituted whenever the commentary call fails.
func FallbackAnalysis() AIAnalysis {
	return AIAnalysis{
		Summary:         "Error generating AI analysis. Please check your connection.",
		Recommendations: []string{"Error loading insights"},
		MarketContext:   "Error loading market context.",
		Sources:         []Source{},
	}
}

type AnalysisStatus string

const (
	AnalysisPending   AnalysisStatus = "pending"
	AnalysisCompleted AnalysisStatus = "completed"
)

// AnalysisJob tracks one asynchronous commentary request and the snapshot
// it was made for.
type AnalysisJob struct {
	ID          string            `json:"id"`
	Status      AnalysisStatus    `json:"status"`
	Snapshot    SimulationSummary `json:"snapshot"`
	Analysis    *AIAnalysis       `json:"analysis,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	CompletedAt *time.Time        `json:"completedAt,omitempty"`
}
