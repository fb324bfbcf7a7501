package scraper

import (
	"strings"

	"jobskenya/jobs-service/internal/model"
)

// counties is the fixed region list searched in this exact order — the list
// order, not the order of mentions in the text, decides ties.
var counties = []string{
	"Nairobi", "Mombasa", "Kisumu", "Nakuru", "Eldoret", "Kiambu",
	"Machakos", "Nyeri", "Meru", "Kakamega", "Kisii", "Kilifi",
	"Embu", "Garissa", "Bungoma", "Kajiado", "Kericho", "Turkana",
	"Homa Bay", "Nyamira", "Narok", "Vihiga", "Thika", "Lamu", "Siaya",
}

// typeRules are evaluated top to bottom; the first category with a keyword
// hit wins and categories are never combined.
var typeRules = []struct {
	employmentType string
	keywords       []string
}{
	{model.TypeInternship, []string{"intern", "attachment", "graduate trainee"}},
	{model.TypePartTime, []string{"part-time", "part time", "casual"}},
	{model.TypeGovernment, []string{"government", "county", "ministry", "public service", "psc"}},
	{model.TypeNGO, []string{"ngo", "unicef", "undp", "wfp", "unhcr", "oxfam", "non-profit", "nonprofit"}},
	{model.TypeRemote, []string{"remote", "work from home", "wfh"}},
	{model.TypeContract, []string{"contract", "consultant", "temporary", "freelance"}},
}

var sectorRules = []struct {
	sector   string
	keywords []string
}{
	{model.SectorICT, []string{"software", "developer", "ict", "data", "cyber", "tech", "systems"}},
	{model.SectorHealth, []string{"nurse", "doctor", "medical", "health", "clinical", "pharmacy"}},
	{model.SectorFinance, []string{"finance", "account", "audit", "tax", "banking"}},
	{model.SectorEngineering, []string{"engineer", "civil", "mechanical", "electrical"}},
	{model.SectorEducation, []string{"teach", "tutor", "lecturer", "school", "education"}},
	{model.SectorAgriculture, []string{"farm", "agri", "crop", "livestock", "food"}},
	{model.SectorMarketing, []string{"market", "sales", "brand", "advertis", "digital"}},
	{model.SectorNGO, []string{"ngo", "humanitarian", "relief", "programme"}},
	{model.SectorLegal, []string{"legal", "lawyer", "advocate", "compliance"}},
	{model.SectorTransport, []string{"driver", "transport", "logistics", "supply"}},
}

// InferRegion returns the first county name mentioned in text (by list
// order), "Remote" for remote/online postings, else the default region.
// Total: arbitrary input always yields a valid region.
func InferRegion(text string) string {
	t := strings.ToLower(text)
	for _, county := range counties {
		if strings.Contains(t, strings.ToLower(county)) {
			return county
		}
	}
	if strings.Contains(t, "remote") || strings.Contains(t, "online") {
		return model.RegionRemote
	}
	return model.RegionDefault
}

// InferType classifies the employment type from free text. Falls back to
// Full-Time when no rule matches.
func InferType(text string) string {
	t := strings.ToLower(text)
	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.employmentType
			}
		}
	}
	return model.TypeFullTime
}

// InferSector classifies the sector from free text. Falls back to General.
func InferSector(text string) string {
	t := strings.ToLower(text)
	for _, rule := range sectorRules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.sector
			}
		}
	}
	return model.SectorGeneral
}
