// Package skillrouter selects and composes behavioral-guideline
// skills for an incoming natural-language request. Given a registry
// of skills (each a trigger description plus a guidance body), the
// engine scores the request against every skill's triggers, activates
// the candidates that clear the threshold (or are named explicitly),
// composes the active bodies into one ordered, labeled guidance
// block, and flags overlapping or contradictory advice as advisories.
//
// The registry is built once (or replaced wholesale via Reload) and
// is immutable afterwards; matching, activation, composition and
// conflict resolution are pure functions over (request, registry) and
// run fully in parallel across requests. Nothing outlives a request,
// so cancellation is always safe.
package skillrouter
