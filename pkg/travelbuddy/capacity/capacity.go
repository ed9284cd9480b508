// Package capacity decides when a cab ride has no seats left.
//
// Only cab rides are closed automatically. Trips and outings carry a people
// count but nothing enforces it.
package capacity

// IsFull reports whether a ride with seatCount seats is full once joinCount
// users have joined. The creator occupies one seat and never appears in the
// join count.
func IsFull(seatCount, joinCount int) bool {
	return joinCount+1 >= seatCount
}

// Participants returns the number of people travelling, creator included.
func Participants(joinCount int) int {
	return joinCount + 1
}
