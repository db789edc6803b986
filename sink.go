package mdview

// Sink receives visual blocks from a rendering pass, in emission order.
type Sink interface {
	Emit(VisualBlock) error
	Flush() error
}

// SinkFunc adapts a function to a Sink with a no-op Flush.
type SinkFunc func(VisualBlock) error

// Emit calls f(v).
func (f SinkFunc) Emit(v VisualBlock) error { return f(v) }

// Flush does nothing.
func (f SinkFunc) Flush() error { return nil }

// Collector is a Sink that keeps every block it receives.
type Collector struct {
	Blocks []VisualBlock
}

// Emit appends v.
func (c *Collector) Emit(v VisualBlock) error {
	c.Blocks = append(c.Blocks, v)
	return nil
}

// Flush does nothing.
func (c *Collector) Flush() error { return nil }

// Reset drops collected blocks, keeping capacity.
func (c *Collector) Reset() {
	c.Blocks = c.Blocks[:0]
}
