// Package mctree is the module root for a multicast Steiner-tree
// maintenance simulator: given a weighted network topology and a stream of
// client join/leave/tick/improve events, it maintains a directed spanning
// tree over the current client set and periodically shrinks its total
// weight via tabu-guided local search.
//
// Subpackages:
//
//	config/    — immutable run configuration (Table B flags + YAML scenario files)
//	network/   — weighted undirected graph + shortest-path oracle
//	tabu/      — directed-edge tabu index with TTL decay
//	pathindex/ — macro-path priority queue with lazy invalidation
//	mctree/    — the maintained tree: add/remove/clean/reconnect/reroot/validate
//	improve/   — time-bounded simulated-annealing local search
//	scenario/  — event-ordering policies and the dispatch loop
//	stats/     — per-run telemetry accumulation
//	events/    — event-stream text format reader
//	topoload/  — topology-file reader and weight-derivation policies
//	topogen/   — synthetic topology generation (grid/complete/random-sparse)
//	cmd/mctreesim/ — CLI entry point
package mctree
