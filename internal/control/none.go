package control

// None outputs zero control regardless of input.
type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Compute(pv, t float64) float64 {
	return 0
}
