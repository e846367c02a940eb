package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iamsohail/GmailFlightScanner/internal/domain/entity"
	repo "github.com/iamsohail/GmailFlightScanner/internal/interface/repository"
	"github.com/iamsohail/GmailFlightScanner/pkg/logger"
	"github.com/iamsohail/GmailFlightScanner/pkg/utils"
)

type fakeMailClient struct {
	results map[string][]string
	emails  map[string]*entity.Email
	fetched []string
}

func (f *fakeMailClient) Search(ctx context.Context, query string) ([]string, error) {
	return f.results[query], nil
}

func (f *fakeMailClient) Fetch(ctx context.Context, id string) (*entity.Email, error) {
	email, ok := f.emails[id]
	if !ok {
		return nil, fmt.Errorf("no such message %s", id)
	}
	f.fetched = append(f.fetched, id)
	return email, nil
}

type fakeReportRepo struct {
	written []*entity.FlightRecord
}

func (f *fakeReportRepo) Write(path string, records []*entity.FlightRecord) error {
	f.written = records
	return nil
}

func (f *fakeReportRepo) Read(path string) ([]*entity.FlightRecord, error) {
	return f.written, nil
}

func testEmail(id, subject, body string) *entity.Email {
	return &entity.Email{
		EmailID:    id,
		From:       "noreply@airindia.in",
		Subject:    subject,
		Body:       body,
		DateHeader: "Thu, 2 Jan 2025 10:30:00 +0530",
	}
}

func newProcessor(mail MailClient, report *fakeReportRepo, queries, names []string) *FlightProcessor {
	log := logger.NewLoggerWithLevel("error")
	parser := utils.NewEmailParser(repo.NewStaticAirlineRepository(), log)
	return NewFlightProcessor(mail, parser, report, nil, log, queries, names)
}

func TestRunPipeline(t *testing.T) {
	mail := &fakeMailClient{
		results: map[string][]string{
			`"PNR"`:           {"m1", "m2", "m3"},
			`"boarding pass"`: {"m2", "m4"},
		},
		emails: map[string]*entity.Email{
			"m1": testEmail("m1", "Your flight is confirmed",
				"Flight AI302 from DEL to BOM on 15 Jan 2025. PNR: XY123Z"),
			// Same booking surfaced by a second query
			"m2": testEmail("m2", "E-ticket attached",
				"AI302 DEL to BOM, 15 Jan 2025, PNR: XY123Z"),
			// Not a flight email at all
			"m3": testEmail("m3", "Weekly newsletter", "nothing to see"),
			// Excluded by subject
			"m4": testEmail("m4", "Hotel booking confirmed",
				"Flight AI999 from BOM to GOI, PNR: AB12CD"),
		},
	}
	report := &fakeReportRepo{}

	p := newProcessor(mail, report, []string{`"PNR"`, `"boarding pass"`}, nil)
	summary, err := p.Run(context.Background(), "flights.csv")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := &RunSummary{
		MessagesFound:   4,
		MessagesFetched: 4,
		ExcludedSubject: 1,
		NoSignal:        1,
		Duplicates:      1,
		Exported:        1,
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	if len(report.written) != 1 {
		t.Fatalf("exported %d records, want 1", len(report.written))
	}
	got := report.written[0]
	if got.FlightNumber != "AI302" || got.BookingRef != "XY123Z" {
		t.Errorf("unexpected record: %+v", got)
	}
	// First-seen wins: m1's subject, not m2's
	if got.EmailSubject != "Your flight is confirmed" {
		t.Errorf("duplicate record replaced the first-seen one: %+v", got)
	}
}

func TestRunUnionsQueryResults(t *testing.T) {
	mail := &fakeMailClient{
		results: map[string][]string{
			"q1": {"m1", "m2"},
			"q2": {"m2", "m1"},
		},
		emails: map[string]*entity.Email{
			"m1": testEmail("m1", "Itinerary", "Flight AI302 from DEL to BOM, PNR: AAA111"),
			"m2": testEmail("m2", "Itinerary", "Flight SG101 from BOM to DEL, PNR: BBB222"),
		},
	}
	report := &fakeReportRepo{}

	p := newProcessor(mail, report, []string{"q1", "q2"}, nil)
	if _, err := p.Run(context.Background(), "flights.csv"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(mail.fetched) != 2 {
		t.Errorf("fetched %d times, want 2 (each message once)", len(mail.fetched))
	}
}

func TestDedupeIsOrderIndependent(t *testing.T) {
	emails := map[string]*entity.Email{
		"m1": testEmail("m1", "Booking A", "Flight AI302 from DEL to BOM, PNR: XY123Z"),
		"m2": testEmail("m2", "Booking A again", "AI302 DEL to BOM, PNR: XY123Z"),
		"m3": testEmail("m3", "Booking B", "Flight SG101 from BOM to DEL, PNR: QQ999Z"),
	}

	identitySet := func(queries []string, results map[string][]string) map[string]bool {
		mail := &fakeMailClient{results: results, emails: emails}
		report := &fakeReportRepo{}
		p := newProcessor(mail, report, queries, nil)
		if _, err := p.Run(context.Background(), "flights.csv"); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		set := make(map[string]bool)
		for _, r := range report.written {
			set[r.IdentityKey()] = true
		}
		return set
	}

	forward := identitySet([]string{"a", "b"}, map[string][]string{
		"a": {"m1", "m3"}, "b": {"m2"},
	})
	reversed := identitySet([]string{"a", "b"}, map[string][]string{
		"a": {"m2"}, "b": {"m3", "m1"},
	})

	if diff := cmp.Diff(forward, reversed); diff != "" {
		t.Errorf("identity sets differ with query order (-forward +reversed):\n%s", diff)
	}
}

func TestPassengerNameFilter(t *testing.T) {
	mail := &fakeMailClient{
		results: map[string][]string{
			"q": {"m1", "m2"},
		},
		emails: map[string]*entity.Email{
			"m1": testEmail("m1", "Itinerary",
				"Passenger: Sohail Ahmad. Flight AI302 from DEL to BOM, PNR: XY123Z"),
			"m2": testEmail("m2", "Itinerary",
				"Passenger: Someone Else. Flight SG101 from BOM to DEL, PNR: QQ999Z"),
		},
	}
	report := &fakeReportRepo{}

	p := newProcessor(mail, report, []string{"q"}, []string{"sohail ahmad"})
	summary, err := p.Run(context.Background(), "flights.csv")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.NoPassenger != 1 || summary.Exported != 1 {
		t.Errorf("summary = %+v, want 1 exported and 1 noPassenger", summary)
	}
	if len(report.written) != 1 || report.written[0].BookingRef != "XY123Z" {
		t.Errorf("wrong record kept: %+v", report.written)
	}
}

func TestSortRecords(t *testing.T) {
	records := []*entity.FlightRecord{
		{Date: "", FlightNumber: "ZZ1"},
		{Date: "2025-03-01", FlightNumber: "AI302"},
		{Date: "2024-12-15", FlightNumber: "SG101"},
		{Date: "2025-03-01", FlightNumber: "6E200"},
		{Date: "", FlightNumber: "AA9"},
	}

	SortRecords(records)

	var got []string
	for _, r := range records {
		got = append(got, r.Date+"/"+r.FlightNumber)
	}
	want := []string{
		"2024-12-15/SG101",
		"2025-03-01/6E200",
		"2025-03-01/AI302",
		"/AA9",
		"/ZZ1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sort order mismatch (-want +got):\n%s", diff)
	}
}

func TestSubjectExcluded(t *testing.T) {
	tests := []struct {
		subject string
		want    bool
	}{
		{"Hotel Booking Confirmed", true},
		{"Your credit card statement", true},
		{"Tax Invoice for your trip", true},
		{"Flight itinerary DEL-BOM", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := subjectExcluded(tt.subject); got != tt.want {
			t.Errorf("subjectExcluded(%q) = %v, want %v", tt.subject, got, tt.want)
		}
	}
}
