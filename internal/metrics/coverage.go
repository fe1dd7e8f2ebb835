package metrics

// Coverage is the mean lit fraction over all observed frames.
type Coverage struct {
	name    string
	sum     float64
	samples int
}

func NewCoverage() *Coverage {
	return &Coverage{name: "coverage"}
}

func (c *Coverage) Name() string { return c.name }

func (c *Coverage) Observe(f Frame) {
	c.sum += f.LitFraction()
	c.samples++
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.sum = 0
	c.samples = 0
}

// Peak is the largest cell intensity seen in any frame.
type Peak struct {
	name string
	max  float64
}

func NewPeak() *Peak {
	return &Peak{name: "peak_intensity"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(f Frame) {
	if f.Max > p.max {
		p.max = f.Max
	}
}

func (p *Peak) Value() float64 { return p.max }

func (p *Peak) Reset() { p.max = 0 }
