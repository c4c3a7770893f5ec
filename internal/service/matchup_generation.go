package service

import (
	"github.com/google/uuid"
	"github.com/unitytennis/tennis-backend/internal/tennis"
)

type pairing struct {
	first, second int
	round         int
}

// roundRobinPairs lists every unordered pair (i, j), i < j, of n seats in that order.
// Each pair carries the round the circle method schedules it in, so no seat plays
// twice in one round.
func roundRobinPairs(n int) []pairing {
	if n < 2 {
		return []pairing{}
	}

	rounds := circleRounds(n)
	pairs := make([]pairing, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, pairing{first: i, second: j, round: rounds[[2]int{i, j}]})
		}
	}
	return pairs
}

// circleRounds keeps seat 0 fixed and rotates the rest one step per round.
// Odd counts get a bye seat; whoever meets it sits the round out.
func circleRounds(n int) map[[2]int]int {
	seats := n
	if seats%2 == 1 {
		seats++
	}

	ring := make([]int, seats)
	for i := range ring {
		ring[i] = i
	}

	rounds := make(map[[2]int]int, n*(n-1)/2)
	for r := 1; r < seats; r++ {
		for k := 0; k < seats/2; k++ {
			a, b := ring[k], ring[seats-1-k]
			if a >= n || b >= n {
				continue
			}
			if a > b {
				a, b = b, a
			}
			rounds[[2]int{a, b}] = r
		}

		last := ring[seats-1]
		copy(ring[2:], ring[1:seats-1])
		ring[1] = last
	}
	return rounds
}

// buildRoundRobin turns a roster into PENDING matchups, numbered from firstOrder.
func buildRoundRobin(bracketID uuid.UUID, roster []tennis.BracketPlayer, firstOrder int) []tennis.Matchup {
	pairs := roundRobinPairs(len(roster))
	matchups := make([]tennis.Matchup, 0, len(pairs))

	for k, p := range pairs {
		home, away := roster[p.first], roster[p.second]
		round := p.round
		matchups = append(matchups, tennis.Matchup{
			ID:               uuid.New(),
			BracketID:        bracketID,
			Round:            &round,
			MatchOrder:       firstOrder + k,
			Player1ID:        home.PlayerID,
			Player2ID:        away.PlayerID,
			Player1PartnerID: home.PartnerID,
			Player2PartnerID: away.PartnerID,
			Status:           tennis.MatchupPending,
		})
	}
	return matchups
}
