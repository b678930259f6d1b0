package tag

import (
	"strconv"
	"time"
)

// CSVHeader is the header row for CSV exports.
var CSVHeader = []string{"identifier", "signalStrength", "timestamp"}

// CSVRow converts a Record to a CSV row matching CSVHeader.
// The signal strength column is empty when RSSI is absent; the timestamp
// uses RFC 3339 with nanoseconds so it round-trips through time.Parse.
func (r Record) CSVRow() []string {
	rssi := ""
	if r.RSSI != nil {
		rssi = strconv.Itoa(*r.RSSI)
	}
	return []string{r.Identifier, rssi, r.CapturedAt.Format(time.RFC3339Nano)}
}
