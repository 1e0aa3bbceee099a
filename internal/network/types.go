package network

// Network holds the raw tables of a network archive, as read from CSV.
// Values are kept as strings; the importer validates them.
type Network struct {
	Stations []StationRecord
	Segments []SegmentRecord
	Lines    []LineRecord
	Source   string // Where the archive came from, recorded as metadata
}

type StationRecord struct {
	StationID string `csv:"station_id"`
	Name      string `csv:"name"`
}

type SegmentRecord struct {
	SegmentID       string `csv:"segment_id"`
	StationA        string `csv:"station_a"`
	StationB        string `csv:"station_b"`
	DurationSeconds string `csv:"duration_seconds"`
}

// LineRecord attaches a line to a segment.
type LineRecord struct {
	LineID    string `csv:"line_id"`
	SegmentID string `csv:"segment_id"`
}
