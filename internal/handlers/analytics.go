package handlers

import "finitefield.org/stays-web/internal/config"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	GTMContainerID   string // e.g. GTM-XXXXXXX
	SegmentWriteKey  string // Segment browser key
	Debug            bool
}

// AnalyticsFromConfig copies the instrumentation ids out of the loaded config.
func AnalyticsFromConfig(c config.AnalyticsConfig) Analytics {
	return Analytics{
		GA4MeasurementID: c.GA4MeasurementID,
		GTMContainerID:   c.GTMContainerID,
		SegmentWriteKey:  c.SegmentWriteKey,
		Debug:            c.Debug,
	}
}

// Enabled reports whether any tracker is configured.
func (a Analytics) Enabled() bool {
	return a.GA4MeasurementID != "" || a.GTMContainerID != "" || a.SegmentWriteKey != ""
}
