package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"jobskenya/jobs-service/internal/model"
)

const reliefWebBaseURL = "https://api.reliefweb.int/v1/jobs"

// reliefWebQuery filters to Kenya, caps at 50 results and requests only the
// fields the adapter reads.
const reliefWebQuery = "?appname=jobskenya" +
	"&filter[field]=country.name&filter[value]=Kenya" +
	"&limit=50" +
	"&fields[include][]=title" +
	"&fields[include][]=body" +
	"&fields[include][]=source" +
	"&fields[include][]=date" +
	"&fields[include][]=url"

// ReliefWebSource fetches NGO/UN job listings in Kenya from the ReliefWeb
// public API.
type ReliefWebSource struct {
	baseURL string
	client  *http.Client
}

// NewReliefWebSource constructs the adapter with its own timeout-bounded client.
func NewReliefWebSource() *ReliefWebSource {
	return &ReliefWebSource{baseURL: reliefWebBaseURL, client: newHTTPClient()}
}

func (s *ReliefWebSource) Name() string { return "ReliefWeb" }

// reliefWebResponse mirrors the top-level ReliefWeb JSON response.
type reliefWebResponse struct {
	Data []reliefWebItem `json:"data"`
}

type reliefWebItem struct {
	ID     string          `json:"id"`
	Fields reliefWebFields `json:"fields"`
}

type reliefWebFields struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	URL    string `json:"url"`
	Source []struct {
		Name string `json:"name"`
	} `json:"source"`
	Date struct {
		Created string `json:"created"`
	} `json:"date"`
}

// Fetch issues one GET against the fixed query and maps every usable result
// into a Job. Items without a title are skipped; the rest of the batch is
// still processed.
func (s *ReliefWebSource) Fetch(ctx context.Context) ([]model.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+reliefWebQuery, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reliefweb returned %d", resp.StatusCode)
	}

	var apiResp reliefWebResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	jobs := make([]model.Job, 0, len(apiResp.Data))
	for _, item := range apiResp.Data {
		title := Clean(item.Fields.Title)
		if title == "" {
			continue
		}

		company := "NGO"
		if len(item.Fields.Source) > 0 && item.Fields.Source[0].Name != "" {
			company = item.Fields.Source[0].Name
		}

		text := Clean(StripHTML(item.Fields.Body))
		fetchedAt := item.Fields.Date.Created
		if fetchedAt == "" {
			fetchedAt = time.Now().UTC().Format(time.RFC3339)
		}

		id := item.ID
		if id == "" {
			id = fmt.Sprintf("%d", len(jobs))
		}

		region := InferRegion(title + " " + text)
		jobs = append(jobs, model.Job{
			ID:             "rw-" + id,
			Title:          title,
			Company:        company,
			Location:       region + ", Kenya",
			Region:         region,
			EmploymentType: InferType(title + " " + text),
			Sector:         InferSector(title),
			Salary:         model.SalaryNotStated,
			Deadline:       "",
			Link:           item.Fields.URL,
			ContactEmail:   ExtractEmail(text),
			Description:    truncate(text, maxDescription),
			Source:         s.Name(),
			FetchedAt:      fetchedAt,
		})
	}
	return jobs, nil
}
