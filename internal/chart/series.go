package chart

// Category is one entry of an ordered series: a performance kind with its
// score (and goal), or a day with its weight (and calories).
type Category struct {
	Label        string  `json:"label"`
	Value        float64 `json:"value"`
	Secondary    float64 `json:"secondary,omitempty"`
	HasSecondary bool    `json:"hasSecondary,omitempty"`
	Tooltip      string  `json:"tooltip,omitempty"`
	SecondaryTip string  `json:"secondaryTooltip,omitempty"`
}

// Series order is significant: it decides angular or horizontal position.
type Series []Category

func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, c := range s {
		values[i] = c.Value
	}
	return values
}

func (s Series) Secondaries() []float64 {
	values := make([]float64, len(s))
	for i, c := range s {
		values[i] = c.Secondary
	}
	return values
}

// HasSecondary is true when every category carries a secondary value.
func (s Series) HasSecondary() bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if !c.HasSecondary {
			return false
		}
	}
	return true
}
