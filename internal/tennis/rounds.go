package tennis

import (
	"sort"

	"github.com/unitytennis/tennis-backend/internal/utils"
)

type Round struct {
	Number   int       `json:"round"`
	Matchups []Matchup `json:"matchups"`
}

// GroupByRound buckets matchups by round number in ascending order, each round
// sorted by match order. Matchups without a round are collected under round 0.
func GroupByRound(matchups []Matchup) []Round {
	rounds := make(map[int][]Matchup)
	var roundNums []int

	for _, m := range matchups {
		n := utils.Deref(m.Round, 0)
		if _, exists := rounds[n]; !exists {
			roundNums = append(roundNums, n)
		}
		rounds[n] = append(rounds[n], m)
	}

	sort.Ints(roundNums)

	grouped := make([]Round, 0, len(roundNums))
	for _, n := range roundNums {
		ms := rounds[n]
		sort.SliceStable(ms, func(i, j int) bool {
			return ms[i].MatchOrder < ms[j].MatchOrder
		})
		grouped = append(grouped, Round{Number: n, Matchups: ms})
	}
	return grouped
}
