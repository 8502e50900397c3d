package cache

import (
	"time"

	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/samber/lo"
)

// sampleTenders is the built-in demo set shown before any real fetch.
var sampleTenders = []models.Tender{
	{
		ID:          "sample-24-000001",
		Title:       "Rénovation énergétique de l'école élémentaire Jules Ferry",
		Buyer:       "Commune de Périgueux",
		Deadline:    "30 novembre 2024 à 12h00",
		URL:         "https://www.boamp.fr/avis/detail/sample-24-000001",
		Departments: []string{"24"},
		Descriptors: []string{"Bâtiment", "Isolation thermique"},
		Procedure:   "Procédure adaptée",
		Score:       50,
		Budget:      lo.ToPtr(480000.0),
		Summary:     "Travaux d'isolation et de remplacement du système de chauffage",
		Description: "Isolation thermique par l'extérieur, remplacement des menuiseries et installation d'une chaufferie bois.",
		PublishedAt: time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:          "sample-24-000002",
		Title:       "Entretien des espaces verts communaux",
		Buyer:       "Commune de Bergerac",
		Deadline:    "12 décembre 2024 à 16h00",
		URL:         "https://www.boamp.fr/avis/detail/sample-24-000002",
		Departments: []string{"24"},
		Descriptors: []string{"Espaces verts"},
		Procedure:   "Procédure adaptée",
		Score:       50,
		Summary:     "Marché à bons de commande sur 3 ans",
		Description: "Tonte, taille et entretien courant des espaces verts de la commune, reconductible deux fois.",
		PublishedAt: time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
	},
}
