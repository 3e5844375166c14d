package types

// Link is the state reported for a calibration channel.
type Link string

const (
	LinkUp       Link = "up"
	LinkDown     Link = "down"
	LinkDegraded Link = "degraded" // source fine, reading outside the curve
)

// Reading is published retained under calib/<name>/value and returned by
// calib/<name>/convert.
type Reading struct {
	Raw   float64 `json:"raw"`
	Value float64 `json:"value"`
	Units string  `json:"units,omitempty"`
	TS    int64   `json:"ts_ms"`
}

// ChannelStatus is published retained under calib/<name>/status.
type ChannelStatus struct {
	Link  Link   `json:"link"`
	Error string `json:"error,omitempty"` // errcode.Code
	TS    int64  `json:"ts_ms"`
}

// ChannelInfo is published retained under calib/<name>/info.
type ChannelInfo struct {
	Knots     int     `json:"knots"`
	DomainMin float64 `json:"domain_min"`
	DomainMax float64 `json:"domain_max"`
	Policy    string  `json:"policy"`
	Units     string  `json:"units,omitempty"`
}

// Generic replies
type ErrorReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"` // errcode.Code
	Msg   string `json:"msg,omitempty"`
}
