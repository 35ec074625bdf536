package adapter

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/docstore"
)

// Subscribe reads collection once, delivers it, and then polls the server
// every poll interval. A new snapshot is delivered only when a document was
// added, removed or updated since the previous one. The first read must
// succeed; later failures are logged and retried on the next tick, except
// for access errors, which end the subscription.
func (h *httpServerAdapter) Subscribe(ctx context.Context, collection string, onChange docstore.ChangeFunc) (docstore.Unsubscribe, error) {
	docs, err := h.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	sub := docstore.NewSubscription(onChange)
	sub.Offer(docs)
	go sub.Run()

	go h.poll(ctx, collection, sub, fingerprint(docs))

	return sub.Stop, nil
}

func (h *httpServerAdapter) poll(ctx context.Context, collection string, sub *docstore.Subscription, last []string) {
	log := h.logger.With().Str("collection", collection).Logger()

	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sub.Stop()
			return
		case <-sub.Done():
			return
		case <-ticker.C:
		}

		docs, err := h.List(ctx, collection)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			if errors.Is(err, docstore.ErrPermissionDenied) || errors.Is(err, ErrUnauthorized) {
				log.Warn().Err(err).Msg("subscription ended: access lost")
				sub.Stop()
				return
			}
			log.Debug().Err(err).Msg("poll failed, retrying")
			continue
		}

		next := fingerprint(docs)
		if slices.Equal(last, next) {
			continue
		}
		last = next
		sub.Offer(docs)
	}
}

// fingerprint identifies a snapshot by its paths and update times.
func fingerprint(docs []docstore.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Path+"@"+d.UpdateTime.UTC().Format(time.RFC3339Nano))
	}
	return out
}
