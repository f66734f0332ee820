package meshing

// Consumer receives a finished mesh, e.g. to display or export it. The
// consumer owns the buffer after the call.
type Consumer interface {
	ConsumeMesh(m *MeshBuffer) error
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc func(m *MeshBuffer) error

// ConsumeMesh calls f(m).
func (f ConsumerFunc) ConsumeMesh(m *MeshBuffer) error {
	return f(m)
}
