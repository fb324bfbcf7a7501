package scraper

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"jobskenya/jobs-service/internal/model"
)

const maxFeedEntries = 40

// companySeparators are tried in order; the first one present in a feed
// title splits it into (job title, company).
var companySeparators = []string{" at ", " - ", " | "}

var nonAlpha = regexp.MustCompile(`[^a-z]`)

// FeedSpec configures one RSS/Atom feed instance.
type FeedSpec struct {
	Name string // display name, also the fallback company
	URL  string
}

// FeedSources lists the configured feeds in pipeline order.
var FeedSources = []FeedSpec{
	{Name: "NGO Jobs Kenya", URL: "https://www.ngojobskenya.com/feed/"},
	{Name: "Career Point Kenya", URL: "https://www.careerpointkenya.co.ke/feed/"},
	{Name: "Jobs in Kenya", URL: "https://www.jobsinkenya.co.ke/feed/"},
	{Name: "UN Jobs Nairobi", URL: "https://unjobs.org/duty_stations/nairobi/rss"},
	{Name: "BrighterMonday", URL: "https://www.brightermonday.co.ke/rss/jobs"},
}

// FeedSource fetches one RSS or Atom feed and maps its entries into Jobs.
type FeedSource struct {
	spec   FeedSpec
	client *http.Client
}

// NewFeedSource constructs the adapter for one feed.
func NewFeedSource(spec FeedSpec) *FeedSource {
	return &FeedSource{spec: spec, client: newHTTPClient()}
}

func (s *FeedSource) Name() string { return s.spec.Name }

// feedItem abstracts one entry regardless of feed dialect. The RSS-shaped
// and Atom-shaped parsers below both satisfy it.
type feedItem interface {
	title() string
	summary() string
	link() string
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
}

func (it rssItem) title() string   { return it.Title }
func (it rssItem) summary() string { return it.Description }
func (it rssItem) link() string    { return it.Link }

type atomEntry struct {
	Title   string `xml:"title"`
	Summary string `xml:"summary"`
	Content string `xml:"content"`
	Links   []struct {
		Href string `xml:"href,attr"`
		Rel  string `xml:"rel,attr"`
	} `xml:"link"`
}

func (e atomEntry) title() string { return e.Title }

func (e atomEntry) summary() string {
	if e.Summary != "" {
		return e.Summary
	}
	return e.Content
}

func (e atomEntry) link() string {
	for _, l := range e.Links {
		if l.Rel == "" || l.Rel == "alternate" {
			return l.Href
		}
	}
	if len(e.Links) > 0 {
		return e.Links[0].Href
	}
	return ""
}

type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type atomDocument struct {
	Entries []atomEntry `xml:"entry"`
}

// parseFeedItems decodes body as RSS first, then Atom; the first dialect
// with a non-empty item list wins.
func parseFeedItems(body []byte) ([]feedItem, error) {
	var rss rssDocument
	if err := xml.Unmarshal(body, &rss); err == nil && len(rss.Channel.Items) > 0 {
		items := make([]feedItem, len(rss.Channel.Items))
		for i, it := range rss.Channel.Items {
			items[i] = it
		}
		return items, nil
	}

	var atom atomDocument
	if err := xml.Unmarshal(body, &atom); err != nil {
		return nil, fmt.Errorf("xml unmarshal: %w", err)
	}
	items := make([]feedItem, len(atom.Entries))
	for i, e := range atom.Entries {
		items[i] = e
	}
	return items, nil
}

// splitTitleCompany extracts an embedded company name from a feed title.
// Falls back to the feed's display name when no separator is present.
func splitTitleCompany(title, fallback string) (string, string) {
	for _, sep := range companySeparators {
		if i := strings.Index(title, sep); i >= 0 {
			return strings.TrimSpace(title[:i]), strings.TrimSpace(title[i+len(sep):])
		}
	}
	return title, fallback
}

// feedSlug derives the id prefix for a feed: first six alphabetic characters
// of the lowercased name.
func feedSlug(name string) string {
	return truncate(nonAlpha.ReplaceAllString(strings.ToLower(name), ""), 6)
}

// Fetch issues one GET with the bot user-agent, parses the document as RSS
// or Atom, and maps up to maxFeedEntries usable entries into Jobs. Entries
// with a missing or too-short title are skipped.
func (s *FeedSource) Fetch(ctx context.Context) ([]model.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.spec.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %d", s.spec.Name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	items, err := parseFeedItems(body)
	if err != nil {
		return nil, err
	}
	if len(items) > maxFeedEntries {
		items = items[:maxFeedEntries]
	}

	slug := feedSlug(s.spec.Name)
	now := time.Now().UTC().Format(time.RFC3339)

	jobs := make([]model.Job, 0, len(items))
	for _, item := range items {
		rawTitle := Clean(item.title())
		if len([]rune(rawTitle)) < 4 {
			continue
		}

		title, company := splitTitleCompany(rawTitle, s.spec.Name)
		desc := Clean(StripHTML(item.summary()))
		region := InferRegion(title + " " + desc)

		jobs = append(jobs, model.Job{
			ID:             fmt.Sprintf("%s-%d", slug, len(jobs)),
			Title:          title,
			Company:        company,
			Location:       region + ", Kenya",
			Region:         region,
			EmploymentType: InferType(title + " " + desc),
			Sector:         InferSector(title + " " + desc),
			Salary:         model.SalaryNotStated,
			Deadline:       "",
			Link:           item.link(),
			ContactEmail:   ExtractEmail(desc),
			Description:    truncate(desc, maxDescription),
			Source:         s.spec.Name,
			FetchedAt:      now,
		})
	}
	return jobs, nil
}
