package models

// AxisEntry is one position on the shared timestamp axis. Token is the fixed
// external timestamp representation written to every output row; Day is the
// UTC calendar key used for signal-date matching.
type AxisEntry struct {
	EpochMS int64
	Token   string
	Day     string
}

// Axis is the ordered timestamp sequence shared by all output channels of one
// symbol. Strictly increasing by EpochMS.
type Axis []AxisEntry

// PriceRow carries the four price columns plus volume for one axis position.
type PriceRow struct {
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// SymbolSeries is the aligned output of one unit: every slice is co-indexed
// with Axis and has identical length. Signal is synthesized by the encoder,
// the rest are carried over from the validated bars.
type SymbolSeries struct {
	Symbol        string
	Axis          Axis
	Price         []PriceRow
	Rating        []float64
	Consolidation []float64
	Signal        []int
}

// Channel identifies one of the four output units of a symbol.
type Channel string

const (
	ChannelPrice         Channel = "PRICE_DATA"
	ChannelRating        Channel = "RLST_RATING"
	ChannelConsolidation Channel = "BC_INDICATOR"
	ChannelSignal        Channel = "BLUE_DOTS"
)

// Channels lists all output channels in emission order.
func Channels() []Channel {
	return []Channel{ChannelPrice, ChannelRating, ChannelConsolidation, ChannelSignal}
}
