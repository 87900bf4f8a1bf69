package service

import (
	"sort"
	"strings"

	"counsellor/internal/model"
)

// fitScore rates how well a university matches a profile on a 0-100 scale
// and buckets it as dream/target/safe with a risk level. Pure function of
// its inputs, so rankings are reproducible for a fixed profile snapshot.
func fitScore(university *model.University, profile *model.Profile) (score int, category, risk string) {
	if profile == nil {
		return 50, "target", "medium"
	}

	score = 50

	if profile.GPA > 0 && university.AcceptanceRate > 0 {
		switch {
		case profile.GPA >= 3.7:
			score += 15
		case profile.GPA >= 3.3:
			score += 10
		case profile.GPA >= 3.0:
			score += 5
		}
	}

	if !profile.BudgetMax.IsZero() && !university.TuitionMax.IsZero() {
		switch {
		case profile.BudgetMax.GreaterThanOrEqual(university.TuitionMax):
			score += 15
		case profile.BudgetMax.GreaterThanOrEqual(university.TuitionMin):
			score += 8
		default:
			score -= 10
		}
	}

	if profile.IELTSScore > 0 && university.IELTSRequirement > 0 {
		if profile.IELTSScore >= university.IELTSRequirement {
			score += 10
		} else {
			score -= 5
		}
	}

	if profile.GREScore > 0 && university.GRERequirement > 0 {
		if profile.GREScore >= university.GRERequirement {
			score += 10
		} else {
			score -= 5
		}
	}

	if countries := profile.PreferredCountryList(); len(countries) > 0 && university.Country != "" {
		for _, c := range countries {
			if strings.EqualFold(c, university.Country) {
				score += 10
				break
			}
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	if university.AcceptanceRate > 0 {
		switch {
		case university.AcceptanceRate < 15 || score < 50:
			category, risk = "dream", "high"
		case university.AcceptanceRate < 35 || score < 70:
			category, risk = "target", "medium"
		default:
			category, risk = "safe", "low"
		}
	} else {
		switch {
		case score >= 70:
			category, risk = "safe", "low"
		case score >= 50:
			category, risk = "target", "medium"
		default:
			category, risk = "dream", "high"
		}
	}

	return score, category, risk
}

// rankUniversities annotates records with fit data and orders them by fit
// score descending, with ranking then ID as deterministic tie-breakers.
func rankUniversities(universities []model.University, profile *model.Profile) []model.RankedUniversity {
	ranked := make([]model.RankedUniversity, 0, len(universities))
	for _, u := range universities {
		score, category, risk := fitScore(&u, profile)
		ranked = append(ranked, model.RankedUniversity{
			University: u,
			FitScore:   score,
			Category:   category,
			RiskLevel:  risk,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].FitScore != ranked[j].FitScore {
			return ranked[i].FitScore > ranked[j].FitScore
		}
		if ranked[i].Ranking != ranked[j].Ranking {
			return ranked[i].Ranking < ranked[j].Ranking
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}
