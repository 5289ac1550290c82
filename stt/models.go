package stt

// Model identifiers accepted by the speech-to-text endpoint.
const (
	ModelScribeV1             = "scribe_v1"
	ModelScribeV1Experimental = "scribe_v1_experimental"

	// DefaultModel is sent when the builder never sets a model.
	DefaultModel = ModelScribeV1
)

// Granularity selects the timestamp resolution of the transcript.
type Granularity string

const (
	GranularityNone      Granularity = "none"
	GranularityWord      Granularity = "word"
	GranularityCharacter Granularity = "character"
)

// Granularities lists every accepted granularity in wire form.
var Granularities = []string{
	string(GranularityNone),
	string(GranularityWord),
	string(GranularityCharacter),
}

func (g Granularity) String() string { return string(g) }

// Valid reports whether g is one of the known granularities.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityNone, GranularityWord, GranularityCharacter:
		return true
	}
	return false
}
