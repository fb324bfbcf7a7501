package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jobskenya/jobs-service/internal/model"
)

const remotiveBaseURL = "https://remotive.com/api/remote-jobs"

// RemotiveSource fetches remote-only listings from the Remotive public API.
// The board is inherently remote, so region and employment type are fixed to
// the Remote sentinel instead of inferred.
type RemotiveSource struct {
	baseURL string
	client  *http.Client
}

// NewRemotiveSource constructs the adapter with its own timeout-bounded client.
func NewRemotiveSource() *RemotiveSource {
	return &RemotiveSource{baseURL: remotiveBaseURL, client: newHTTPClient()}
}

func (s *RemotiveSource) Name() string { return "Remotive (Remote)" }

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	Title           string `json:"title"`
	CompanyName     string `json:"company_name"`
	Category        string `json:"category"`
	Salary          string `json:"salary"`
	URL             string `json:"url"`
	Description     string `json:"description"`
	PublicationDate string `json:"publication_date"`
}

// Fetch issues one capped GET and maps every titled result into a Job.
func (s *RemotiveSource) Fetch(ctx context.Context) ([]model.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?limit=50", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remotive returned %d", resp.StatusCode)
	}

	var apiResp remotiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}

	jobs := make([]model.Job, 0, len(apiResp.Jobs))
	for _, j := range apiResp.Jobs {
		title := Clean(j.Title)
		if title == "" {
			continue
		}

		desc := Clean(StripHTML(j.Description))
		salary := j.Salary
		if salary == "" {
			salary = model.SalaryNotStated
		}
		fetchedAt := j.PublicationDate
		if fetchedAt == "" {
			fetchedAt = time.Now().UTC().Format(time.RFC3339)
		}

		jobs = append(jobs, model.Job{
			ID:             fmt.Sprintf("rem-%d", len(jobs)),
			Title:          title,
			Company:        Clean(j.CompanyName),
			Location:       "Remote / Online",
			Region:         model.RegionRemote,
			EmploymentType: model.TypeRemote,
			Sector:         InferSector(title + " " + j.Category),
			Salary:         salary,
			Deadline:       "",
			Link:           j.URL,
			ContactEmail:   "",
			Description:    truncate(desc, maxDescription),
			Source:         s.Name(),
			FetchedAt:      fetchedAt,
		})
	}
	return jobs, nil
}
