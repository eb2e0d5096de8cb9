package usecase

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary holds the fixed keyword sets driving classification and entity
// extraction. The zero value is unusable; start from DefaultVocabulary.
type Vocabulary struct {
	Departments         []string `yaml:"departments"`
	Roles               []string `yaml:"roles"`
	ManagementTier      []string `yaml:"management_tier"`
	StaffRole           string   `yaml:"staff_role"`
	DocumentContext     []string `yaml:"document_context"`
	ContextualReference []string `yaml:"contextual_reference"`
	PersonnelNouns      []string `yaml:"personnel_nouns"`
	ListingKeywords     []string `yaml:"listing_keywords"`
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Departments: []string{"HR", "Sales", "IT", "Accounting", "General Affairs", "Marketing"},
		Roles: []string{
			"Director", "Manager", "Supervisor", "Lead", "Chief",
			"Assistant", "Intern", "Staff",
		},
		ManagementTier: []string{"Director", "Manager", "Supervisor", "Lead", "Chief"},
		StaffRole:      "Staff",
		DocumentContext: []string{
			"meeting minutes", "minutes", "policy", "strategy",
			"project", "agenda", "proposal", "guideline",
		},
		ContextualReference: []string{"about", "regarding", "details of", "overview of"},
		PersonnelNouns: []string{
			"employee", "staff", "personnel", "roster",
			"workforce", "headcount", "member",
		},
		ListingKeywords: []string{"roster", "headcount", "how many", "employee list", "staff list"},
	}
}

// LoadVocabulary overlays a YAML file onto the defaults. Unset fields keep
// their default values, so partial override files are fine.
func LoadVocabulary(path string) (Vocabulary, error) {
	vocab := DefaultVocabulary()
	if path == "" {
		return vocab, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary file: %w", err)
	}

	var overlay Vocabulary
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary yaml: %w", err)
	}

	if len(overlay.Departments) > 0 {
		vocab.Departments = overlay.Departments
	}
	if len(overlay.Roles) > 0 {
		vocab.Roles = overlay.Roles
	}
	if len(overlay.ManagementTier) > 0 {
		vocab.ManagementTier = overlay.ManagementTier
	}
	if overlay.StaffRole != "" {
		vocab.StaffRole = overlay.StaffRole
	}
	if len(overlay.DocumentContext) > 0 {
		vocab.DocumentContext = overlay.DocumentContext
	}
	if len(overlay.ContextualReference) > 0 {
		vocab.ContextualReference = overlay.ContextualReference
	}
	if len(overlay.PersonnelNouns) > 0 {
		vocab.PersonnelNouns = overlay.PersonnelNouns
	}
	if len(overlay.ListingKeywords) > 0 {
		vocab.ListingKeywords = overlay.ListingKeywords
	}
	return vocab, nil
}
