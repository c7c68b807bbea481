package logger

// Noop discards all messages.
type Noop struct{}

// NewNoop creates a Noop logger.
func NewNoop() Noop { return Noop{} }

func (Noop) Debug(msg string, args ...interface{}) {}
func (Noop) Info(msg string, args ...interface{})  {}
func (Noop) Warn(msg string, args ...interface{})  {}
func (Noop) Error(msg string, args ...interface{}) {}

func (n Noop) WithComponent(component string) Logger { return n }

var _ Logger = Noop{}
