// Package model holds the shared data types and sentinel errors for the
// causal event log: the event input/record shapes, the proof wire format,
// and the construction-time error values every other package returns.
package model

import "errors"

// ActionType is the closed set of causal event kinds.
type ActionType string

const (
	ActionRequest        ActionType = "request"
	ActionResponse       ActionType = "response"
	ActionError          ActionType = "error"
	ActionStateTransition ActionType = "state_transition"
)

// Valid reports whether a is one of the four recognized action types.
func (a ActionType) Valid() bool {
	switch a {
	case ActionRequest, ActionResponse, ActionError, ActionStateTransition:
		return true
	default:
		return false
	}
}

// EventInput is what a caller submits to register_event.
type EventInput struct {
	AgentID       string     `json:"agentId"`
	ActionType    ActionType `json:"actionType"`
	PayloadHash   string     `json:"payloadHash"`
	Predecessor   *string    `json:"predecessorHash"`
	Timestamp     int64      `json:"timestamp"`
}

// Event is an EventInput augmented with the fields the registry and the
// Merkle log assign at registration time (I1-I7 of the spec).
type Event struct {
	CausalEventID   string     `json:"causalEventId"`
	AgentID         string     `json:"agentId"`
	ActionType      ActionType `json:"actionType"`
	PayloadHash     string     `json:"payloadHash"`
	PredecessorHash *string    `json:"predecessorHash"`
	Timestamp       int64      `json:"timestamp"`
	EventHash       string     `json:"eventHash"`
	PositionInTree  int        `json:"positionInTree"`
	TreeRootHash    string     `json:"treeRootHash"`
}

// ChainLink is one element of a causal chain as carried in a proof: just
// enough of an Event to re-derive and re-check linkage without hauling
// the whole record along.
type ChainLink struct {
	EventHash       string     `json:"eventHash"`
	ActionType      ActionType `json:"actionType"`
	Timestamp       int64      `json:"timestamp"`
	PredecessorHash *string    `json:"predecessorHash"`
}

// PathPosition says where a Merkle proof step's sibling sits relative to
// the node being folded.
type PathPosition string

const (
	PositionLeft  PathPosition = "left"
	PositionRight PathPosition = "right"
)

// PathStep is one level of an inclusion proof.
type PathStep struct {
	EventHash   string       `json:"eventHash"`
	SiblingHash string       `json:"siblingHash"`
	Position    PathPosition `json:"position"`
}

// Proof is the full, self-contained transport form of §3/§6: a verifier
// needs nothing else besides the expected agent ID and public key.
type Proof struct {
	TargetEvent    Event       `json:"targetEvent"`
	ProofPath      []PathStep  `json:"proofPath"`
	CausalChain    []ChainLink `json:"causalChain"`
	TreeRootHash   string      `json:"treeRootHash"`
	AgentSignature string      `json:"agentSignature"`
}

// LightProof is the cheap, non-cryptographic summary used by the
// progressive verifier's fast path.
type LightProof struct {
	AgentID        string             `json:"agentId"`
	TargetHash     string             `json:"targetHash"`
	Chain          []LightChainEntry  `json:"chain"`
	GeneratedAt    int64              `json:"timestamp"`
}

// LightChainEntry is a minimal chain element: just enough to check
// monotonicity and target membership.
type LightChainEntry struct {
	EventHash string `json:"eventHash"`
	Timestamp int64  `json:"timestamp"`
}

// RegistryExport is the debugging-only persisted-state view of §6: not a
// stable durability format, but a concrete, serializable snapshot.
type RegistryExport struct {
	AgentID string      `json:"agentId"`
	Events  []Event     `json:"events"`
	Tree    ExportTree  `json:"tree"`
}

// ExportTree mirrors the Merkle log's internal shape for the export view.
type ExportTree struct {
	Leaves    []string `json:"leaves"`
	Levels    int      `json:"levels"`
	RootHash  string   `json:"rootHash"`
	LeafCount int      `json:"leafCount"`
}

// Construction errors (§7): caller bugs, returned immediately.
var (
	ErrEmptyAgentID        = errors.New("causalproof: agent identifier must not be empty")
	ErrNegativeIndex        = errors.New("causalproof: merkle index must not be negative")
	ErrInvalidActionType    = errors.New("causalproof: action type is not one of the recognized kinds")
	ErrAgentMismatch        = errors.New("causalproof: event agent identifier does not match the registry's bound agent")
	ErrUnknownPredecessor   = errors.New("causalproof: predecessor digest is not present in this registry")
	ErrIndexOutOfRange      = errors.New("causalproof: leaf index is out of range for this log")
	ErrUnknownEventID       = errors.New("causalproof: no event with that causal identifier")
	ErrEmptyRootRejectsAll  = errors.New("causalproof: an empty expected root rejects every inclusion proof")
)
