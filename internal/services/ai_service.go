package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/samber/lo"
)

type aiClient interface {
	GenerateResponse(ctx context.Context, request string) (string, error)
}

// AIService wraps the hosted model behind the three assistant features:
// structured tender analysis, free-form chat about a tender and CPV code
// suggestions for a profile.
type AIService struct {
	aiClient aiClient
}

func NewAIService(aiClient aiClient) *AIService {
	return &AIService{aiClient: aiClient}
}

func (a *AIService) AnalyzeTender(ctx context.Context, profile *models.Profile,
	tender models.Tender) (*models.TenderAnalysis, error) {

	response, err := a.aiClient.GenerateResponse(ctx, a.analysisRequest(profile, tender))
	if err != nil {
		return nil, err
	}

	var analysis models.TenderAnalysis
	if err = json.Unmarshal([]byte(stripCodeFences(response)), &analysis); err != nil {
		return nil, fmt.Errorf("unexpected analysis response for tender %v: %w", tender.ID, err)
	}
	return &analysis, nil
}

func (a *AIService) ChatAboutTender(ctx context.Context, profile *models.Profile,
	tender models.Tender, history []models.ChatMessage, message string) (string, error) {

	return a.aiClient.GenerateResponse(ctx, a.chatRequest(profile, tender, history, message))
}

var cpvCodePattern = regexp.MustCompile(`\b\d{8}(-\d)?\b`)

// SuggestCPVCodes asks the model for classification codes matching the
// profile's specialization. Anything in the reply that does not look like a
// CPV code is discarded.
func (a *AIService) SuggestCPVCodes(ctx context.Context, profile *models.Profile) ([]string, error) {

	response, err := a.aiClient.GenerateResponse(ctx, a.cpvRequest(profile))
	if err != nil {
		return nil, err
	}

	codes := cpvCodePattern.FindAllString(response, -1)
	return lo.Uniq(codes), nil
}

func (a *AIService) analysisRequest(profile *models.Profile, tender models.Tender) (request string) {

	request = "Tu assistes une entreprise qui répond à des marchés publics."
	request += " Entreprise : " + profile.CompanyName + ", spécialité : " + profile.Specialization + "."
	request += " Avis de marché : " + tender.Title + ". Description : " + tender.Description

	if tender.Budget != nil {
		request += fmt.Sprintf(" Budget estimé : %.0f euros.", *tender.Budget)
	}

	request += " Analyse ce marché pour cette entreprise. Réponds uniquement avec un objet JSON " +
		`de la forme {"risks":[],"strengths":[],"workload":"","questions":[]} : ` +
		"risques du marché, points forts de l'entreprise, estimation de la charge de travail, " +
		"questions à poser à l'acheteur."
	return request
}

func (a *AIService) chatRequest(profile *models.Profile, tender models.Tender,
	history []models.ChatMessage, message string) (request string) {

	request = "Tu assistes l'entreprise " + profile.CompanyName +
		" (spécialité : " + profile.Specialization + ") sur le marché public suivant. "
	request += "Avis : " + tender.Title + ". Description : " + tender.Description + " "

	if len(history) != 0 {
		lines := lo.Map(history, func(m models.ChatMessage, _ int) string {
			return m.Role + ": " + m.Content
		})
		request += "Historique de la conversation : " + strings.Join(lines, " | ") + " "
	}

	request += "Question de l'utilisateur : " + message
	return request
}

func (a *AIService) cpvRequest(profile *models.Profile) string {
	return "Liste les codes CPV correspondant à l'activité suivante : " + profile.Specialization +
		". Réponds uniquement avec les codes, séparés par des virgules."
}

func stripCodeFences(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}
