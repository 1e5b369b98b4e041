package cfg

import "time"

type Cfg struct {
	// Sources
	AuthoritiesURL string
	FeedBaseURL    string

	// Run behaviour
	OutputDir    string
	Tag          string
	RequestDelay time.Duration
	Timeout      time.Duration
	StripHTML    bool
	ManifestPath string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
