package boamp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	log "github.com/sirupsen/logrus"
)

// Record is one raw BOAMP notice as served by the records endpoint. The
// interesting details (full description, budget, lots, contact) live in the
// `donnees` field, a JSON document serialized as a string.
type Record struct {
	IDWeb             string     `json:"idweb"`
	Objet             string     `json:"objet"`
	NomAcheteur       string     `json:"nomacheteur"`
	DateLimiteReponse string     `json:"datelimitereponse"`
	URLAvis           string     `json:"url_avis"`
	CodeDepartement   []string   `json:"code_departement"`
	Descripteurs      []string   `json:"descripteur_libelle"`
	TypeProcedure     string     `json:"typeprocedure"`
	DateParution      CustomDate `json:"dateparution"`
	Donnees           string     `json:"donnees"`
}

type recordDetails struct {
	Objet struct {
		TitreMarche      string `json:"titre_marche"`
		Caracteristiques string `json:"caracteristiques"`
		Resume           string `json:"resume"`
	} `json:"objet"`
	Montant *float64 `json:"montant"`
	Lots    []struct {
		Num         int    `json:"num"`
		Intitule    string `json:"intitule"`
		Description string `json:"description"`
	} `json:"lots"`
	Contact *struct {
		Nom string `json:"nom"`
		Mel string `json:"mel"`
		Tel string `json:"tel"`
	} `json:"contact"`
}

// ToTender maps a raw record into the internal tender shape. A malformed
// `donnees` document only loses that record's detail fields, never the batch.
func (r Record) ToTender() models.Tender {

	tender := models.Tender{
		ID:          r.IDWeb,
		Title:       r.Objet,
		Buyer:       r.NomAcheteur,
		Deadline:    r.DateLimiteReponse,
		URL:         r.URLAvis,
		Departments: r.CodeDepartement,
		Descriptors: r.Descripteurs,
		Procedure:   r.TypeProcedure,
		PublishedAt: r.DateParution.Time,
	}

	if r.Donnees == "" {
		return tender
	}

	var details recordDetails
	if err := json.Unmarshal([]byte(r.Donnees), &details); err != nil {
		log.Debugf("skipping malformed donnees block for notice %v: %v", r.IDWeb, err)
		return tender
	}

	tender.Summary = details.Objet.Resume
	tender.Description = details.Objet.Caracteristiques
	tender.Budget = details.Montant
	for _, lot := range details.Lots {
		tender.Lots = append(tender.Lots, models.Lot{
			Number:      lot.Num,
			Title:       lot.Intitule,
			Description: lot.Description,
		})
	}
	if details.Contact != nil {
		tender.Contact = &models.Contact{
			Name:  details.Contact.Nom,
			Email: details.Contact.Mel,
			Phone: details.Contact.Tel,
		}
	}
	return tender
}

type CustomDate struct {
	time.Time
}

func (d *CustomDate) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}

	t, err := time.Parse("2006-01-02", str)
	if err != nil {
		return fmt.Errorf("parsing date %s: %v", str, err)
	}
	d.Time = t
	return nil
}
