package entities

type ChartKind int

const (
	LineChart ChartKind = iota
	BarChart
)

// ChartSpec is a self-contained description of one chart; renderers draw it without any shared state.
type ChartSpec struct {
	Kind   ChartKind
	Title  string
	XLabel string
	YLabel string
	Labels []string
	Values []float64
	// ShowValues annotates each bar with its value.
	ShowValues bool
}
