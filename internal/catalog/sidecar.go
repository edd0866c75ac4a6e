package catalog

import (
	"encoding/json"
	"strconv"
)

type sidecarTime struct {
	Timestamp string `json:"timestamp"`
}

type sidecarDoc struct {
	PhotoTakenTime *sidecarTime `json:"photoTakenTime"`
	CreationTime   *sidecarTime `json:"creationTime"`
}

// ParseTimestamp extracts the capture timestamp from a takeout sidecar JSON
// document, preferring photoTakenTime and falling back to creationTime.
// Takeout encodes timestamps as string epoch seconds.
func ParseTimestamp(data []byte) (int64, bool) {
	var doc sidecarDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, false
	}
	for _, field := range []*sidecarTime{doc.PhotoTakenTime, doc.CreationTime} {
		if field == nil || field.Timestamp == "" {
			continue
		}
		ts, err := strconv.ParseInt(field.Timestamp, 10, 64)
		if err != nil {
			continue
		}
		return ts, true
	}
	return 0, false
}
