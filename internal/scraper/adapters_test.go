package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobskenya/jobs-service/internal/model"
)

// ── ReliefWeb ──────────────────────────────────────────────────────────────

func TestReliefWebFetch_Success(t *testing.T) {
	payload := `{
		"data": [
			{
				"id": "4401234",
				"fields": {
					"title": "  Programme   Officer ",
					"body": "<p>Based in Kisumu.</p><p>Apply to hr@relief.or.ke</p>",
					"source": [{"name": "Relief Org"}],
					"date": {"created": "2026-08-20T09:00:00+00:00"},
					"url": "https://reliefweb.int/job/4401234"
				}
			},
			{
				"id": "4401235",
				"fields": {"title": "   ", "body": "untitled, must be skipped"}
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	src := NewReliefWebSource()
	src.baseURL = srv.URL

	jobs, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job (untitled skipped), got %d", len(jobs))
	}

	j := jobs[0]
	if j.ID != "rw-4401234" {
		t.Errorf("expected ID rw-4401234, got %s", j.ID)
	}
	if j.Title != "Programme Officer" {
		t.Errorf("expected cleaned title, got %q", j.Title)
	}
	if j.Company != "Relief Org" {
		t.Errorf("expected company Relief Org, got %q", j.Company)
	}
	if j.Region != "Kisumu" {
		t.Errorf("expected region Kisumu, got %q", j.Region)
	}
	if j.Location != "Kisumu, Kenya" {
		t.Errorf("expected location Kisumu, Kenya, got %q", j.Location)
	}
	if j.ContactEmail != "hr@relief.or.ke" {
		t.Errorf("expected contact email extracted, got %q", j.ContactEmail)
	}
	if j.Salary != model.SalaryNotStated {
		t.Errorf("expected salary sentinel, got %q", j.Salary)
	}
	if j.FetchedAt != "2026-08-20T09:00:00+00:00" {
		t.Errorf("expected upstream date passed through, got %q", j.FetchedAt)
	}
	if strings.Contains(j.Description, "<p>") {
		t.Errorf("expected markup stripped from description: %q", j.Description)
	}
}

func TestReliefWebFetch_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewReliefWebSource()
	src.baseURL = srv.URL

	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestReliefWebFetch_MissingCompanyFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"9","fields":{"title":"Field Monitor","body":""}}]}`))
	}))
	defer srv.Close()

	src := NewReliefWebSource()
	src.baseURL = srv.URL

	jobs, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Company != "NGO" {
		t.Fatalf("expected fallback company NGO, got %+v", jobs)
	}
}

// ── Remotive ───────────────────────────────────────────────────────────────

func TestRemotiveFetch_Success(t *testing.T) {
	payload := `{
		"jobs": [
			{
				"title": "Backend Engineer",
				"company_name": " Acme  Inc ",
				"category": "Software Development",
				"salary": "",
				"url": "https://remotive.com/jobs/1",
				"description": "<b>Go</b> services",
				"publication_date": "2026-08-19T00:00:00"
			},
			{
				"title": "Copywriter",
				"company_name": "WordCo",
				"category": "Marketing",
				"salary": "$40k",
				"url": "https://remotive.com/jobs/2",
				"description": "write copy"
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	src := NewRemotiveSource()
	src.baseURL = srv.URL

	jobs, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	j := jobs[0]
	if j.ID != "rem-0" {
		t.Errorf("expected ID rem-0, got %s", j.ID)
	}
	if j.Region != model.RegionRemote || j.EmploymentType != model.TypeRemote {
		t.Errorf("expected hardcoded Remote region/type, got %q/%q", j.Region, j.EmploymentType)
	}
	if j.Company != "Acme Inc" {
		t.Errorf("expected cleaned company, got %q", j.Company)
	}
	if j.Salary != model.SalaryNotStated {
		t.Errorf("expected salary sentinel for empty salary, got %q", j.Salary)
	}
	if j.Sector != model.SectorICT {
		t.Errorf("expected ICT sector from title+category, got %q", j.Sector)
	}
	if jobs[1].Salary != "$40k" {
		t.Errorf("expected salary passed through, got %q", jobs[1].Salary)
	}
	if jobs[1].Sector != model.SectorMarketing {
		t.Errorf("expected Marketing sector, got %q", jobs[1].Sector)
	}
}

// ── Feeds ──────────────────────────────────────────────────────────────────

func TestFeedFetch_RSS(t *testing.T) {
	payload := `<?xml version="1.0"?>
	<rss version="2.0">
	  <channel>
	    <title>Jobs</title>
	    <item>
	      <title>Accountant at Acme Ltd</title>
	      <description>&lt;p&gt;Keep the books in Nakuru. Apply: jobs@acme.co.ke&lt;/p&gt;</description>
	      <link>https://example-feed.test/jobs/1</link>
	    </item>
	    <item>
	      <title>IT</title>
	      <description>too short, skipped</description>
	      <link>https://example-feed.test/jobs/2</link>
	    </item>
	    <item>
	      <title>Matron - Hill School</title>
	      <description>Boarding school role</description>
	      <link>https://example-feed.test/jobs/3</link>
	    </item>
	  </channel>
	</rss>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "JobsKenyaBot") {
			t.Errorf("expected bot user-agent, got %q", ua)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	src := NewFeedSource(FeedSpec{Name: "NGO Jobs Kenya", URL: srv.URL})

	jobs, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs (short title skipped), got %d", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Accountant" || j.Company != "Acme Ltd" {
		t.Errorf("expected title split on \" at \", got title=%q company=%q", j.Title, j.Company)
	}
	if j.ID != "ngojob-0" {
		t.Errorf("expected ID ngojob-0, got %s", j.ID)
	}
	if j.Region != "Nakuru" {
		t.Errorf("expected region Nakuru, got %q", j.Region)
	}
	if j.ContactEmail != "jobs@acme.co.ke" {
		t.Errorf("expected email from description, got %q", j.ContactEmail)
	}
	if j.Link != "https://example-feed.test/jobs/1" {
		t.Errorf("unexpected link %q", j.Link)
	}

	if jobs[1].Title != "Matron" || jobs[1].Company != "Hill School" {
		t.Errorf("expected title split on \" - \", got title=%q company=%q", jobs[1].Title, jobs[1].Company)
	}
}

func TestFeedFetch_Atom(t *testing.T) {
	payload := `<?xml version="1.0"?>
	<feed xmlns="http://www.w3.org/2005/Atom">
	  <title>UN Jobs</title>
	  <entry>
	    <title>Data Officer</title>
	    <summary>Remote data entry role</summary>
	    <link rel="alternate" href="https://unjobs.test/1"/>
	  </entry>
	</feed>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	src := NewFeedSource(FeedSpec{Name: "UN Jobs Nairobi", URL: srv.URL})

	jobs, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}

	j := jobs[0]
	// No separator in the title: company falls back to the feed name.
	if j.Company != "UN Jobs Nairobi" {
		t.Errorf("expected feed name as company, got %q", j.Company)
	}
	if j.Link != "https://unjobs.test/1" {
		t.Errorf("expected atom link href, got %q", j.Link)
	}
	if j.ID != "unjobs-0" {
		t.Errorf("expected ID unjobs-0, got %s", j.ID)
	}
}

func TestFeedFetch_EntryCap(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss><channel>`)
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "<item><title>Posting number %d</title><description>d</description><link>l</link></item>", i)
	}
	b.WriteString(`</channel></rss>`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(b.String()))
	}))
	defer srv.Close()

	src := NewFeedSource(FeedSpec{Name: "Jobs in Kenya", URL: srv.URL})
	jobs, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != maxFeedEntries {
		t.Fatalf("expected entries capped at %d, got %d", maxFeedEntries, len(jobs))
	}
}

func TestFeedFetch_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	src := NewFeedSource(FeedSpec{Name: "BrighterMonday", URL: srv.URL})
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestFeedSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"NGO Jobs Kenya", "ngojob"},
		{"UN Jobs Nairobi", "unjobs"},
		{"BrighterMonday", "bright"},
	}
	for _, c := range cases {
		if got := feedSlug(c.name); got != c.want {
			t.Errorf("feedSlug(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestDescriptionCap(t *testing.T) {
	long := strings.Repeat("word ", 1000) // 5000 chars
	payload := fmt.Sprintf(
		`<rss><channel><item><title>Long Posting</title><description>%s</description><link>l</link></item></channel></rss>`,
		long,
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	src := NewFeedSource(FeedSpec{Name: "Career Point Kenya", URL: srv.URL})
	jobs, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if got := len([]rune(jobs[0].Description)); got > maxDescription {
		t.Errorf("description length %d exceeds cap %d", got, maxDescription)
	}
}
