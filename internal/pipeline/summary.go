package pipeline

import (
	"github.com/joseph-ayodele/merchant-report/constants"
	"github.com/joseph-ayodele/merchant-report/internal/assets"
)

// Summary is the result of one run as handed to the caller. Failed runs carry
// Error and no counts.
type Summary struct {
	ExcelGenerated      bool           `json:"excel_generated"`
	DocumentsDownloaded bool           `json:"documents_downloaded"`
	ImagesDownloaded    bool           `json:"images_downloaded"`
	DownloadCounts      map[string]int `json:"download_counts,omitempty"`
	Error               string         `json:"error,omitempty"`

	RunID      string `json:"-"`
	TargetDate string `json:"-"`
	Rows       int    `json:"-"`
}

func newSummary(counts assets.Counts, specs []constants.AssetSpec, excel bool) *Summary {
	s := &Summary{
		ExcelGenerated:      excel,
		DocumentsDownloaded: counts.Any(specs, constants.ClassDocument),
		ImagesDownloaded:    counts.Any(specs, constants.ClassImage),
		DownloadCounts:      make(map[string]int, len(counts)),
	}
	for f, n := range counts {
		s.DownloadCounts[string(f)] = n
	}
	return s
}

// ErrorSummary is the payload for a run that failed fatally.
func ErrorSummary(err error) *Summary {
	return &Summary{Error: "Failed to generate report: " + err.Error()}
}
