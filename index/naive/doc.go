// Package naive provides an exact nearest-neighbor index that scans every
// point on each query. It has no parameters and no approximation error;
// preferred for small libraries (n < ~1,000) where a tree or hash structure
// buys nothing.
package naive
