// Package structural implements value semantics for arbitrary nested Go
// values: deep equality, a combinable hash and a canonical string form.
//
// It backs the Equal, Hash and String methods emitted by immutable-gen,
// which call the engine once per participating field in declaration order.
//
// Values are classified by shape and the classification is cached per type
// in a ShapeCache:
//   - absent: nil, or a nil pointer, slice, map, interface, func or chan
//   - optional: implements Optional, walked by presence and contents
//   - pair: implements PairLike, or registered with RegisterPair
//   - sequence: slice, array, Sequence, or an iterator like iter.Seq[E]
//   - map: walked as PairLike entries in canonical key order
//   - struct: delegates to its own Equal/Hash/String when present,
//     otherwise walked field by field. An own Equal without Hash makes
//     every value of the type hash alike.
//   - scalar: everything else
//
// All operations are pure and safe for concurrent use. Cyclic values are
// not detected and must not be passed in.
package structural
