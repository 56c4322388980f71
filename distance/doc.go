// Package distance builds the pairwise distance matrix over the root and the
// candidate nodes.
//
// The matrix is dense and (n+1)×(n+1): index 0 is the root, index i (1..n)
// is candidates[i-1]. Entries are produced by a Metric, Euclidean by default,
// evaluated once per unordered pair and mirrored, so the result is symmetric
// by construction with an exact zero diagonal.
//
// A caller-supplied metric may return +Inf to mark a pair that cannot be
// wired (a river crossing, a parcel boundary); downstream stages treat such
// pairs as missing edges. NaN and negative values are rejected.
//
// Complexity: O(n²) time and memory. At the default 1500-candidate cap the
// matrix holds about 2.25M float64 values.
package distance
