package scoring

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func profileWith(specialization, negatives string) *models.Profile {
	return &models.Profile{
		UserID:           "user-1",
		Specialization:   specialization,
		NegativeKeywords: negatives,
	}
}

func tenderWith(title, description string) models.Tender {
	return models.Tender{ID: "t-1", Title: title, Description: description}
}

func Test_Score_MatchingSpecializationTokens(t *testing.T) {

	profile := profileWith("rénovation énergétique", "plomberie")
	tender := tenderWith("Rénovation énergétique du lycée", "")

	// 50 + 10 (rénovation) + 10 (énergétique), no negative hit
	assert.Equal(t, 70, Score(profile, tender))
}

func Test_Score_NoMatches_ReturnsBaseline(t *testing.T) {

	profile := profileWith("charpente couverture", "")
	tender := tenderWith("Fourniture de mobilier scolaire", "tables et chaises")

	assert.Equal(t, 50, Score(profile, tender))
}

func Test_Score_ShortTokensAreIgnored(t *testing.T) {

	// every token has 4 runes or fewer, so nothing can match
	profile := profileWith("bois fer eau", "")
	tender := tenderWith("bois fer eau", "")

	assert.Equal(t, 50, Score(profile, tender))
}

func Test_Score_DuplicateTokenCountedOnce(t *testing.T) {

	profile := profileWith("toiture toiture toiture", "")
	tender := tenderWith("réfection de toiture", "")

	assert.Equal(t, 60, Score(profile, tender))
}

func Test_Score_NegativeKeywordDominates(t *testing.T) {

	profile := profileWith("rénovation énergétique isolation", "plomberie")
	tender := tenderWith("Rénovation énergétique et isolation", "travaux de plomberie inclus")

	// 50 + 30 - 40
	assert.Equal(t, 40, Score(profile, tender))
}

func Test_Score_ClampsToLowerBound(t *testing.T) {

	profile := profileWith("", "plomberie, électricité, peinture")
	tender := tenderWith("plomberie électricité peinture", "")

	assert.Equal(t, MinScore, Score(profile, tender))
}

func Test_Score_ClampsToUpperBound(t *testing.T) {

	tokens := []string{"maçonnerie", "charpente", "couverture", "menuiserie", "isolation", "plâtrerie"}
	profile := profileWith(strings.Join(tokens, " "), "")
	tender := tenderWith(strings.Join(tokens, " "), "")

	assert.Equal(t, MaxScore, Score(profile, tender))
}

func Test_Score_CaseInsensitive(t *testing.T) {

	profile := profileWith("TOITURE", "")
	tender := tenderWith("réfection de toiture", "")

	assert.Equal(t, 60, Score(profile, tender))
}

func Test_Score_AlwaysWithinBounds(t *testing.T) {

	rng := rand.New(rand.NewSource(42))
	words := []string{"toiture", "isolation", "plomberie", "voirie", "chauffage", "désamiantage", "bardage", "vrd"}

	randomText := func(n int) string {
		picked := make([]string, n)
		for i := range picked {
			picked[i] = words[rng.Intn(len(words))]
		}
		return strings.Join(picked, " ")
	}

	for i := 0; i < 500; i++ {
		profile := profileWith(randomText(rng.Intn(8)), strings.ReplaceAll(randomText(rng.Intn(4)), " ", ","))
		tender := tenderWith(randomText(rng.Intn(6)), randomText(rng.Intn(20)))

		score := Score(profile, tender)
		assert.GreaterOrEqual(t, score, MinScore)
		assert.LessOrEqual(t, score, MaxScore)
	}
}

func Test_Score_AddingMatchingTokenNeverDecreasesScore(t *testing.T) {

	profile := profileWith("isolation chauffage", "")
	tender := tenderWith("travaux de chauffage", "remplacement de chaudière")

	before := Score(profile, tender)
	tender.Description += " et isolation des combles"
	after := Score(profile, tender)

	assert.GreaterOrEqual(t, after, before)
}

func Test_Score_AddingNegativeKeywordNeverIncreasesScore(t *testing.T) {

	profile := profileWith("isolation chauffage", "plomberie")
	tender := tenderWith("travaux de chauffage et isolation", "")

	before := Score(profile, tender)
	profile.NegativeKeywords += ", chaudière"
	tender.Description = "remplacement de chaudière"
	after := Score(profile, tender)

	assert.LessOrEqual(t, after, before)
}

func Test_Score_Deterministic(t *testing.T) {

	profile := profileWith("rénovation énergétique", "plomberie")
	tender := tenderWith("Rénovation énergétique du lycée", "isolation des façades")

	first := Score(profile, tender)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(profile, tender))
	}
}
