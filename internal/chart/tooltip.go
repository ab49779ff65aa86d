package chart

// Tooltip is the hover state of a chart. It is independent of the value
// transitions: it only changes on pointer enter, move and leave.
type Tooltip struct {
	Visible bool    `json:"visible"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Index   int     `json:"index"`
	Text    string  `json:"text"`
}

// TooltipOffsetX keeps the tooltip box right of the pointer.
const TooltipOffsetX = 15

func (t *Tooltip) Enter(index int, text string) {
	t.Visible = true
	t.Index = index
	t.Text = text
}

func (t *Tooltip) Move(x, y float64) {
	t.X = x + TooltipOffsetX
	t.Y = y
}

func (t *Tooltip) Leave() {
	t.Visible = false
}
