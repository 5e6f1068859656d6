package hub

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/joseiguti/nowoptics-back/internal/metrics"
)

// Router steers inbound frames: register frames mutate the registry,
// signaling frames are relayed verbatim to their target with a sender
// tag added. Routing is purely frame-local; the router carries no state
// across frames.
//
// The relay never interprets signaling payloads. SDP bodies and ICE
// candidates pass through untouched, along with any call-session
// metadata the caller attached.
type Router struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewRouter creates a router bound to the given hub's registry.
func NewRouter(h *Hub, logger zerolog.Logger) *Router {
	return &Router{
		hub:    h,
		logger: logger.With().Str("component", "router").Logger(),
	}
}

// Route handles one inbound frame from sender. Every failure mode is a
// silent drop: malformed JSON, unknown kinds, missing fields, and
// offline targets all leave the connection open and send nothing back.
func (r *Router) Route(sender *Client, raw []byte) {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		r.drop(sender, "malformed", "dropping unparseable frame")
		return
	}

	kind, _ := fields["kind"].(string)
	userKey, _ := fields["userKey"].(string)

	switch kind {
	case KindRegister:
		if userKey == "" {
			r.drop(sender, "missing_user_key", "register frame without userKey")
			return
		}
		r.hub.Register(userKey, sender)

	case KindOffer, KindAnswer, KindCandidate:
		target, _ := fields["target"].(string)
		if target == "" {
			r.drop(sender, "missing_target", "signaling frame without target")
			return
		}

		dest, ok := r.hub.Lookup(target)
		if !ok {
			// Best-effort relay: the target is offline and the sender
			// is not told.
			r.drop(sender, "target_offline", "signaling target not registered")
			return
		}

		fields["sender"] = userKey
		data, err := json.Marshal(fields)
		if err != nil {
			r.drop(sender, "malformed", "failed to re-encode signaling frame")
			return
		}

		if !dest.trySend(data) {
			r.drop(sender, "send_failed", "target connection refused frame")
			return
		}
		metrics.SignalsRelayed.WithLabelValues(kind).Inc()

	default:
		// Unrecognized kinds are ignored, not rejected.
		r.drop(sender, "unknown_kind", "ignoring frame of unknown kind")
	}
}

func (r *Router) drop(sender *Client, reason, msg string) {
	metrics.SignalsDropped.WithLabelValues(reason).Inc()
	r.logger.Debug().Str("conn", sender.id).Str("reason", reason).Msg(msg)
}
