package helpers

// Extensions are compared lower-cased, dot included.
var (
	ImageExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp"}
	AudioExtensions = []string{".mp3", ".wav"}
)

const TextExtension = ".txt"

// Name prefixes inside the data tree.
const (
	SamplePrefix      = "sample"
	TranscriptPrefix  = "transcript"
	ClipPrefix        = "clip"
	DescriptionPrefix = "description"
	AnalysisPrefix    = "analysis-"
)

// SharedAnalysisDir is the analysis folder name used by the first batch of
// exports, before folders were named after the person.
const SharedAnalysisDir = AnalysisPrefix + "p01"

const (
	TextScoresFile  = "text_scores.json"
	ImageScoresFile = "image_scores.json"
)
