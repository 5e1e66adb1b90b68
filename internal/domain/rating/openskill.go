package rating

import (
	openskill "github.com/intinig/go-openskill/rating"
	"github.com/intinig/go-openskill/types"
)

// ratingState is the (mu, sigma) belief passed through the model.
type ratingState struct {
	mu    float64
	sigma float64
}

// rateTeams submits one room's teams, already ordered best-first, to
// the Plackett-Luce team-rank update. ranks carries the final rank per
// team in the same order; tied ranks are handed through to the model.
func rateTeams(teams [][]ratingState, ranks []int64) [][]ratingState {
	in := make([]types.Team, len(teams))
	for i, team := range teams {
		t := make(types.Team, len(team))
		for j, r := range team {
			t[j] = types.Rating{Mu: r.mu, Sigma: r.sigma}
		}
		in[i] = t
	}

	rk := make([]int, len(ranks))
	for i, r := range ranks {
		rk[i] = int(r)
	}

	out := openskill.Rate(in, &types.OpenSkillOptions{Rank: rk})

	res := make([][]ratingState, len(out))
	for i, team := range out {
		res[i] = make([]ratingState, len(team))
		for j, r := range team {
			res[i][j] = ratingState{mu: r.Mu, sigma: r.Sigma}
		}
	}
	return res
}
