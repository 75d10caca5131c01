// Package vptree provides an exact nearest-neighbor index using a
// vantage-point binary tree over the pseudometric d(x,y) = 1 - cosine(x,y).
// Removal is lazy (tombstones); the tree rebuilds once tombstones exceed a
// quarter of its size.
package vptree
