package workflow

// Metadata is the per-recording record written next to the profile arrays
// and later consolidated into the tabular dataset. One record is created per
// input file, written once, and never mutated afterwards.
//
// Motif0 and Motif1 are nil for recordings too short to analyze.
type Metadata struct {
	SourceName          string  `json:"source_name" parquet:"source_name"`
	CensSampleRate      int     `json:"cens_sample_rate" parquet:"cens_sample_rate"`
	MatrixProfileWindow int     `json:"matrix_profile_window" parquet:"matrix_profile_window"`
	SampleRate          int     `json:"sample_rate" parquet:"sample_rate"`
	DurationCens        int     `json:"duration_cens" parquet:"duration_cens"`
	DurationSamples     int     `json:"duration_samples" parquet:"duration_samples"`
	DurationSeconds     float64 `json:"duration_seconds" parquet:"duration_seconds"`
	Motif0              *int64  `json:"motif_0" parquet:"motif_0,optional"`
	Motif1              *int64  `json:"motif_1" parquet:"motif_1,optional"`
}

// ConfigurationError reports an unusable input or output selection, e.g. an
// output path that exists but is not a directory, or a scan that matched no
// files.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}
