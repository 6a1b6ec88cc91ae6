package event

import (
	"context"
	"encoding/json"

	"github.com/questday/backend/pkg/pubsub"
	"github.com/questday/backend/pkg/xcontext"
)

const Topic = "notification"

type Event interface {
	Op() string
}

type Metadata struct {
	To string `json:"to"`
}

type EventRequest struct {
	Op       string   `json:"o"`
	Data     any      `json:"d"`
	Metadata Metadata `json:"m"`
}

func New(ev Event, metadata Metadata) *EventRequest {
	return &EventRequest{
		Op:       ev.Op(),
		Data:     ev,
		Metadata: metadata,
	}
}

// Publish sends the event fire-and-forget. A delivery failure is logged and
// swallowed so it can never fail the transaction that produced the event.
func Publish(ctx context.Context, publisher pubsub.Publisher, ev Event, userID string) {
	b, err := json.Marshal(New(ev, Metadata{To: userID}))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal %s event: %v", ev.Op(), err)
		return
	}

	if err := publisher.Publish(ctx, Topic, &pubsub.Pack{Key: []byte(userID), Msg: b}); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish %s event: %v", ev.Op(), err)
	}
}
