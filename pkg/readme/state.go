package readme

// State is a step of one generation request
type State int

const (
	ValidatingInput State = iota
	FetchingMetadata
	WalkingTree
	ExtractingSignals
	SynthesizingPrompt
	Generating
	UsingFallback
	Done
	Failed
)

var stateNames = [...]string{
	ValidatingInput:    "validating input",
	FetchingMetadata:   "fetching metadata",
	WalkingTree:        "walking tree",
	ExtractingSignals:  "extracting signals",
	SynthesizingPrompt: "synthesizing prompt",
	Generating:         "generating",
	UsingFallback:      "using fallback",
	Done:               "done",
	Failed:             "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
