// Package fare computes ticket prices from a train's per-class fares.
package fare

import "github.com/Domenick1991/railbooking/internal/domain"

// PerSeat returns the per-seat fare in paise for the given class.
func PerSeat(train *domain.Train, class domain.SeatClass) int64 {
	if class == domain.SeatClassAC {
		return train.AcFarePaise
	}
	return train.SleeperFarePaise
}

// Total returns numSeats times the per-seat fare.
func Total(train *domain.Train, class domain.SeatClass, numSeats int) int64 {
	return int64(numSeats) * PerSeat(train, class)
}
