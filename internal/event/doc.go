// Package event defines the structural event kinds reported by the tokenizer
// and the subscription bitmask used to filter them.
// Invariants:
//   - Every Kind is exactly one bit; Kind values double as Set members.
//   - The bit layout is part of the engine/host contract and never changes
//     between releases of the same engine build.
//   - Each Kind maps to exactly one Payload shape (see Kind.Payload).
package event
