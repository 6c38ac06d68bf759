// Package core defines the primitive value types shared across the market
// domain: amounts, rates, identifiers, and the acting-party sum type.
package core

// Amount is a quantity of currency in indivisible base units.
type Amount uint64

// Bps is a rate in basis points (10000 = 100%). All percentage arithmetic
// in the engine is integer math on basis points so independent re-executions
// of the same transaction sequence produce identical results.
type Bps uint32

// FullBps is the basis-point representation of 100%.
const FullBps Bps = 10000

// Apply returns the portion of amount described by the rate, rounded down.
func (b Bps) Apply(amount Amount) Amount {
	return Amount(uint64(amount) * uint64(b) / uint64(FullBps))
}

// AccountID identifies a currency account.
type AccountID string

// ItemID identifies a unique digital item.
type ItemID string

// ActorKind discriminates the closed set of acting parties.
type ActorKind int

const (
	// ActorUnspecified represents an invalid actor value.
	ActorUnspecified ActorKind = iota
	// ActorOwner indicates the item owner acting directly.
	ActorOwner
	// ActorAgent indicates a delegated agent acting on the owner's behalf.
	ActorAgent
)

// Actor describes who performs an operation on an item: the owner or a
// delegated agent. It is a closed tagged union; permission resolution
// happens through the external authorizer, not through dispatch on Actor.
type Actor struct {
	Kind    ActorKind
	AgentID string
}

// Owner returns the owner actor.
func Owner() Actor {
	return Actor{Kind: ActorOwner}
}

// Agent returns an agent actor for the given agent ID.
func Agent(agentID string) Actor {
	return Actor{Kind: ActorAgent, AgentID: agentID}
}

// String returns a stable label used for storage and journal payloads.
func (a Actor) String() string {
	switch a.Kind {
	case ActorOwner:
		return "owner"
	case ActorAgent:
		return "agent:" + a.AgentID
	default:
		return "unspecified"
	}
}

// ParseActor reverses Actor.String.
func ParseActor(label string) Actor {
	if label == "owner" {
		return Actor{Kind: ActorOwner}
	}
	if len(label) > len("agent:") && label[:len("agent:")] == "agent:" {
		return Actor{Kind: ActorAgent, AgentID: label[len("agent:"):]}
	}
	return Actor{}
}
