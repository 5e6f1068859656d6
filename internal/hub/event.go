package hub

// Event kinds pushed to every open connection when the HTTP layer
// mutates a message.
const (
	EventNewMessage    = "new_message"
	EventUpdateMessage = "update_message"
	EventDeleteMessage = "delete_message"
)

// Inbound signaling frame kinds. Offer, answer and candidate frames are
// relayed verbatim to their target; anything else is ignored.
const (
	KindRegister  = "register"
	KindOffer     = "offer"
	KindAnswer    = "answer"
	KindCandidate = "candidate"
)

// Event is a data-change notification fanned out to all connections.
// Data is the full message record for new/update and a MessageRef for
// delete.
type Event struct {
	Kind string      `json:"kind"`
	Data interface{} `json:"data"`
}
