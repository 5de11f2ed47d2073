// Package dataset provides the partitioned-collection abstraction the
// pipeline runs on: bulk transformations (map, filter, join, group-by-key,
// sampling) over data split into partitions, executed in parallel with a
// bounded worker budget.
//
// The pipeline stages compile against this surface alone and never manage
// goroutines themselves. This implementation keeps partitions in local
// memory; the operation set is deliberately narrow so a distributed backend
// could be substituted without touching the stages.
//
// # Operations
//
//   - Map, TryMap, Filter, KeyBy: elementwise, order-independent
//   - Join: inner equi-join on key (hash shuffle)
//   - GroupByKey, ReduceByKey: per-key grouping after a shuffle
//   - Aggregate: partition-wise fold with a coordinator-side merge
//   - Collect: materialize a bounded result into the coordinator's memory
//   - Cache: hint that a dataset will be scanned repeatedly
//   - SampleUniform, SampleByKey: single-pass reservoir sampling
//
// Collect must only be called on bounded-size results (centers, per-cluster
// stats, sample buffers), never on the full record set.
package dataset
