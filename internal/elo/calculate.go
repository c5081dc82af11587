package elo

import "math"

type Points float64

const (
	Win  Points = 1
	Lose Points = 0
)

// K-factor tiers by games played: placement, calibration, established.
const (
	KPlacement   = 80
	KCalibration = 40
	KEstablished = 20

	placementGames   = 5
	calibrationGames = 15
)

// Expected score of A against B.
func Expected(Ra int, Rb int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(Rb-Ra)/400.0))
}

// KFactor returns the confidence weight for a side with n games played.
func KFactor(n int) int {
	if n < placementGames {
		return KPlacement
	}
	if n < calibrationGames {
		return KCalibration
	}
	return KEstablished
}

// Calculate new rating.
// Ra - film A rating.
// Rb - film B rating.
// K - coefficient, see KFactor.
// Sa - points: 1 for win; 0 for lose.
// Rounds half away from zero.
func Calculate(Ra int, Rb int, K int, Sa Points) int {
	ra := float64(Ra)
	k := float64(K)

	ra = ra + k*(float64(Sa)-Expected(Ra, Rb))
	return int(math.Round(ra))
}

// Update applies a judged duel to both sides at once. K is chosen
// independently per side from its games played.
func Update(winnerRating, winnerMatches, loserRating, loserMatches int) (newWinner, newLoser int) {
	newWinner = Calculate(winnerRating, loserRating, KFactor(winnerMatches), Win)
	newLoser = Calculate(loserRating, winnerRating, KFactor(loserMatches), Lose)
	return newWinner, newLoser
}
