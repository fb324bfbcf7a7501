// Package model defines shared data structures for the jobs service.
package model

// Job is a normalised posting produced by one of the source adapters.
// It is the unit stored in scraped_jobs and returned by the read API.
type Job struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	Region         string `json:"region"`
	EmploymentType string `json:"employment_type"`
	Sector         string `json:"sector"`
	Salary         string `json:"salary"`
	Deadline       string `json:"deadline"`
	Link           string `json:"link"`
	ContactEmail   string `json:"contact_email"`
	Description    string `json:"description"`
	Source         string `json:"source"`
	FetchedAt      string `json:"fetched_at"`
}

// Region sentinels. Every other valid region is one of the county names
// listed in the classifier.
const (
	RegionRemote  = "Remote"
	RegionDefault = "Nairobi"
)

// Employment types, in classification priority order.
const (
	TypeInternship = "Internship"
	TypePartTime   = "Part-Time"
	TypeGovernment = "Government"
	TypeNGO        = "NGO"
	TypeRemote     = "Remote"
	TypeContract   = "Contract"
	TypeFullTime   = "Full-Time"
)

// Sectors, in classification priority order. SectorGeneral is the fallback.
const (
	SectorICT         = "ICT & Technology"
	SectorHealth      = "Health & Medicine"
	SectorFinance     = "Finance & Banking"
	SectorEngineering = "Engineering"
	SectorEducation   = "Education"
	SectorAgriculture = "Agriculture"
	SectorMarketing   = "Marketing & Sales"
	SectorNGO         = "NGO / Non-Profit"
	SectorLegal       = "Legal"
	SectorTransport   = "Transport & Logistics"
	SectorGeneral     = "General"
)

// SalaryNotStated is stored when an upstream omits salary information.
const SalaryNotStated = "Not stated"

// RunResult summarises one completed scrape run.
type RunResult struct {
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}
