package batch

import "github.com/google/uuid"

const (
	maxAlbumErrorSamples = 20
	maxErrorSamples      = 50
)

// ErrorDetail is one sampled per-item failure.
type ErrorDetail struct {
	Album       string
	File        string
	Destination string
	Cause       string
}

// AlbumStats accumulates counters for one album.
type AlbumStats struct {
	Files        int
	Errors       int
	Skipped      int
	Bytes        int64
	ErrorSamples []ErrorDetail
}

// Stats is the outcome of one batch operation. Per-item failures never
// abort a batch; they are counted here with a bounded sample of details.
type Stats struct {
	OperationID  string
	Albums       int
	Files        int
	Errors       int
	Skipped      int
	Bytes        int64
	TotalMatched int
	AlbumDetails map[string]*AlbumStats
	ErrorSamples []ErrorDetail
}

func newStats() Stats {
	return Stats{
		OperationID:  uuid.NewString(),
		AlbumDetails: make(map[string]*AlbumStats),
	}
}

func (s *Stats) albumStats(name string) *AlbumStats {
	as := s.AlbumDetails[name]
	if as == nil {
		as = &AlbumStats{}
		s.AlbumDetails[name] = as
	}
	return as
}

func (s *Stats) recordError(as *AlbumStats, detail ErrorDetail) {
	s.Errors++
	if len(s.ErrorSamples) < maxErrorSamples {
		s.ErrorSamples = append(s.ErrorSamples, detail)
	}
	if as != nil {
		as.Errors++
		if len(as.ErrorSamples) < maxAlbumErrorSamples {
			as.ErrorSamples = append(as.ErrorSamples, detail)
		}
	}
}

func (s *Stats) recordSkip(as *AlbumStats) {
	s.Skipped++
	if as != nil {
		as.Skipped++
	}
}

func (s *Stats) recordFile(as *AlbumStats, size int64) {
	s.Files++
	s.Bytes += size
	if as != nil {
		as.Files++
		as.Bytes += size
	}
}
