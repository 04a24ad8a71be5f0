package remote

// Ack is the reply of calls that return nothing; gob needs a field.
type Ack struct {
	OK bool
}

type SetIntensityRequest struct {
	Name  string
	Value float64
}

// FrameMessage carries one PNG encoded frame.
type FrameMessage struct {
	Seq   uint64
	Image []byte
}
