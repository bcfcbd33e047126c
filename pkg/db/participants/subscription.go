package participants

import (
	"context"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
)

// ParticipantSubscription delivers the full, timestamp-descending record set
// to its callback once on start and again after every collection change.
// Close must be called before opening a replacement subscription for the same
// consumer, otherwise the old change stream keeps invoking its callback.
type ParticipantSubscription struct {
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// Close tears down the underlying change stream and waits until no more
// callbacks are in flight.
func (s *ParticipantSubscription) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
	})
}

// Done is closed when the subscription has fully stopped.
func (s *ParticipantSubscription) Done() <-chan struct{} {
	return s.done
}

// SubscribeToChanges opens a change stream on the participants collection and
// calls onSnapshot with the current full record set: once immediately, and
// once per observed change event. Callbacks run sequentially on a single
// goroutine, in arrival order of the underlying events.
func (dbService *ParticipantDBService) SubscribeToChanges(ctx context.Context, onSnapshot func([]regTypes.Participant)) (*ParticipantSubscription, error) {
	streamCtx, cancel := context.WithCancel(ctx)

	stream, err := dbService.collectionParticipants().Watch(streamCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, err
	}

	sub := &ParticipantSubscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		defer func() {
			closeCtx, closeCancel := dbService.getContext()
			defer closeCancel()
			if err := stream.Close(closeCtx); err != nil {
				slog.Debug("Error closing participant change stream", slog.String("error", err.Error()))
			}
		}()

		sendSnapshot := func() {
			current, err := dbService.GetParticipants()
			if err != nil {
				slog.Error("Error fetching participants for subscription snapshot", slog.String("error", err.Error()))
				return
			}
			onSnapshot(current)
		}

		sendSnapshot()

		for stream.Next(streamCtx) {
			var event bson.M
			if err := stream.Decode(&event); err != nil {
				slog.Error("Error decoding participant change event", slog.String("error", err.Error()))
				continue
			}
			sendSnapshot()
		}

		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			slog.Error("Participant change stream stopped", slog.String("error", err.Error()))
		}
	}()

	return sub, nil
}
