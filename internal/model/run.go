package model

import "time"

const (
	OpCompress   = "compress"
	OpDecompress = "decompress"
)

// Run records one compress or decompress invocation.
type Run struct {
	ID           string        `json:"id"`
	Op           string        `json:"op"`
	Alphabet     string        `json:"alphabet"`
	InputPath    string        `json:"input_path"`
	OutputPath   string        `json:"output_path"`
	InputSize    int64         `json:"input_size"`
	OutputSize   int64         `json:"output_size"`
	Symbols      int64         `json:"symbols"`
	Distinct     int           `json:"distinct"`
	InputDigest  string        `json:"input_digest"`
	OutputDigest string        `json:"output_digest"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Ratio is the output size as a percentage of the input size.
func (r *Run) Ratio() float64 {
	if r.InputSize == 0 {
		return 0
	}
	return float64(r.OutputSize) / float64(r.InputSize) * 100
}

// ElapsedParts splits Elapsed into whole minutes, seconds and milliseconds.
func (r *Run) ElapsedParts() (mins, secs, ms int64) {
	total := r.Elapsed.Milliseconds()
	return total / 60000, (total % 60000) / 1000, total % 1000
}
