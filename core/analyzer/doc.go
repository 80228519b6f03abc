// Package analyzer turns a set of operating-room bookings into advisory
// recommendations. Every function is pure: inputs are never modified, no
// state is kept between calls and identical inputs give identical output,
// identifiers included.
//
// Checks run in a fixed order: surgeon double-booking, room utilization and
// emergency/routine balance. Conflict detection compares bookings that are
// adjacent within a surgeon's group. In the default input-order mode the
// group keeps the caller's ordering, so overlaps between bookings that are not
// neighbours in that ordering are not reported. ConflictChronological sorts
// each group by scheduled start first.
package analyzer
