// Package selection decides which devices of a scenario are activated so
// that every location is satisfied by one of its candidate groups.
//
// Three selectors are provided:
//
//   - GroupAdjustment ("group-adjustment", alias "devicesSelection") picks a
//     group per location, most constrained location first, and keeps every
//     satisfied location on the cheapest fully active group.
//   - MinCoveredFirst ("min-covered-first", alias "greedyMSC") is a greedy
//     set cover targeting the least covered location.
//   - EnergyWeighted ("energy-weighted", alias "ESR") is a greedy weighted set
//     cover minimising energy per newly covered location.
//
// Candidates are scanned in ascending id order and replaced only by a
// strictly better score, so ties go to the lowest id. Selection state is
// reset at the start of every run.
//
// Runner wraps a selector with validation, Verify, the LowerBound gap,
// Prometheus collectors, a metrics sink, the run log and activation
// publishing.
package selection
