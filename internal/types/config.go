package types

// DisplayConfig represents the configuration of the panel and its driver
type DisplayConfig struct {
	Panel          string `json:"panel"`
	BrightnessBits int    `json:"brightness_bits"`
	ErrorPolicy    string `json:"error_policy"`
}

// RenderConfig represents the configuration of the refresh loop and the
// content shown on the panel
type RenderConfig struct {
	// UpdateInterval is how often the content is redrawn, in milliseconds.
	// The panel itself is refreshed as fast as the driver allows.
	UpdateInterval int    `json:"update_interval_ms"`
	Pattern        string `json:"pattern"`
	Text           string `json:"text"`
	SVG            string `json:"svg"`
	Color          string `json:"color"`
	BackoffMin     int    `json:"backoff_min_ms"`
	BackoffMax     int    `json:"backoff_max_ms"`
}
