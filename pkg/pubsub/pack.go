package pubsub

// Pack is a single message on the queue. Key decides the partition, so events
// of the same user must share a key to keep their relative order.
type Pack struct {
	Key []byte
	Msg []byte
}
