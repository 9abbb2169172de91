// Package lower turns analysed declarations into stack IR. Every function
// returns a lazy sequence; nothing is emitted until it is ranged over.
package lower
