package attachment

// Color names a chart color from the host palette.
// The zero value means "let the renderer pick".
type Color string

// Semantic colors.
const (
	ColorGood      Color = "good"
	ColorWarning   Color = "warning"
	ColorAttention Color = "attention"
	ColorNeutral   Color = "neutral"
)

// Categorical palette.
const (
	ColorCategoricalRed       Color = "categoricalRed"
	ColorCategoricalPurple    Color = "categoricalPurple"
	ColorCategoricalLavender  Color = "categoricalLavender"
	ColorCategoricalBlue      Color = "categoricalBlue"
	ColorCategoricalLightBlue Color = "categoricalLightBlue"
	ColorCategoricalTeal      Color = "categoricalTeal"
	ColorCategoricalGreen     Color = "categoricalGreen"
	ColorCategoricalLime      Color = "categoricalLime"
	ColorCategoricalMarigold  Color = "categoricalMarigold"
)

// Sequential palette.
const (
	ColorSequential1 Color = "sequential1"
	ColorSequential2 Color = "sequential2"
	ColorSequential3 Color = "sequential3"
	ColorSequential4 Color = "sequential4"
	ColorSequential5 Color = "sequential5"
	ColorSequential6 Color = "sequential6"
	ColorSequential7 Color = "sequential7"
	ColorSequential8 Color = "sequential8"
)

// Diverging palette.
const (
	ColorDivergingBlue      Color = "divergingBlue"
	ColorDivergingLightBlue Color = "divergingLightBlue"
	ColorDivergingCyan      Color = "divergingCyan"
	ColorDivergingTeal      Color = "divergingTeal"
	ColorDivergingYellow    Color = "divergingYellow"
	ColorDivergingPeach     Color = "divergingPeach"
	ColorDivergingLightRed  Color = "divergingLightRed"
	ColorDivergingRed       Color = "divergingRed"
	ColorDivergingMaroon    Color = "divergingMaroon"
	ColorDivergingGray      Color = "divergingGray"
)

// String returns the palette name.
func (c Color) String() string { return string(c) }
