package projection

import (
	"encoding/json"
	"fmt"
	"math"
)

// ROIStatus classifies the ROI of a period. Anything other than ROIFinite
// means monthly costs were zero and the division had no finite result.
type ROIStatus int

const (
	ROIFinite ROIStatus = iota
	ROIPositiveInfinity
	ROINegativeInfinity
	ROIUndefined
)

var roiStatusNames = map[ROIStatus]string{
	ROIFinite:           "finite",
	ROIPositiveInfinity: "positive-infinity",
	ROINegativeInfinity: "negative-infinity",
	ROIUndefined:        "undefined",
}

// StatusOf classifies an ROI value.
func StatusOf(roi float64) ROIStatus {
	switch {
	case math.IsNaN(roi):
		return ROIUndefined
	case math.IsInf(roi, 1):
		return ROIPositiveInfinity
	case math.IsInf(roi, -1):
		return ROINegativeInfinity
	}
	return ROIFinite
}

func (s ROIStatus) String() string {
	if name, ok := roiStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ROIStatus(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s ROIStatus) MarshalText() ([]byte, error) {
	if _, ok := roiStatusNames[s]; !ok {
		return nil, fmt.Errorf("unknown ROI status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ROIStatus) UnmarshalText(text []byte) error {
	for status, name := range roiStatusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown ROI status %q", string(text))
}

type periodJSON struct {
	Period    int       `json:"period"`
	Viewers   int       `json:"viewers"`
	Revenue   float64   `json:"revenue"`
	Costs     float64   `json:"costs"`
	ROI       *float64  `json:"roi"`
	ROIStatus ROIStatus `json:"roiStatus"`
}

// MarshalJSON encodes the period with a null roi when the ROI is not finite;
// roiStatus then carries the reason. encoding/json rejects NaN and infinities.
func (p PeriodProjection) MarshalJSON() ([]byte, error) {
	out := periodJSON{
		Period:    p.Period,
		Viewers:   p.Viewers,
		Revenue:   p.Revenue,
		Costs:     p.Costs,
		ROIStatus: p.ROIStatus,
	}
	if p.ROIStatus == ROIFinite {
		roi := p.ROI
		out.ROI = &roi
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a period encoded by MarshalJSON, turning a null roi
// back into the value its status describes.
func (p *PeriodProjection) UnmarshalJSON(data []byte) error {
	var in periodJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	p.Period = in.Period
	p.Viewers = in.Viewers
	p.Revenue = in.Revenue
	p.Costs = in.Costs
	p.ROIStatus = in.ROIStatus

	switch {
	case in.ROI != nil:
		p.ROI = *in.ROI
		p.ROIStatus = StatusOf(p.ROI)
	case in.ROIStatus == ROIPositiveInfinity:
		p.ROI = math.Inf(1)
	case in.ROIStatus == ROINegativeInfinity:
		p.ROI = math.Inf(-1)
	default:
		p.ROI = math.NaN()
		p.ROIStatus = ROIUndefined
	}
	return nil
}
