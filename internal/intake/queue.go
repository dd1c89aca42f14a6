// Package intake holds externally originated content until the list
// controller drains it: one slot for text shared from elsewhere and one for
// a deep-linked bookmark id. Each slot keeps at most one pending value.
package intake

import (
	"hoard/internal/logger"
	"hoard/internal/reactive"
)

// Queue is the process-wide holder for pending share and deep-link content.
// A new value overwrites any unconsumed prior value; delivery is at most
// once.
type Queue struct {
	share    *reactive.State[string]
	deeplink *reactive.State[string]
	log      logger.Logger
}

// NewQueue creates an empty Queue.
func NewQueue(log logger.Logger) *Queue {
	return &Queue{
		share:    reactive.NewState(""),
		deeplink: reactive.NewState(""),
		log:      log,
	}
}

// PublishShare stores text as the pending share. Empty payloads are ignored.
func (q *Queue) PublishShare(text string) {
	if text == "" {
		return
	}
	q.log.Debug("share received", logger.Int("len", len(text)))
	q.share.Set(text)
}

// PublishDeeplink stores id as the pending deep link. Empty payloads are
// ignored.
func (q *Queue) PublishDeeplink(id string) {
	if id == "" {
		return
	}
	q.log.Debug("deeplink received", logger.String("id", id))
	q.deeplink.Set(id)
}

// ConsumeShare clears the pending share slot. Callers read the value
// through Share before consuming.
func (q *Queue) ConsumeShare() {
	q.share.Set("")
}

// ConsumeDeeplink clears the pending deep-link slot.
func (q *Queue) ConsumeDeeplink() {
	q.deeplink.Set("")
}

// Share exposes the pending-share slot for observation. Empty string means
// no pending value.
func (q *Queue) Share() *reactive.State[string] {
	return q.share
}

// Deeplink exposes the pending deep-link slot for observation.
func (q *Queue) Deeplink() *reactive.State[string] {
	return q.deeplink
}
