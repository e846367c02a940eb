package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/iamsohail/GmailFlightScanner/internal/domain/entity"
	"github.com/iamsohail/GmailFlightScanner/internal/domain/repository"
	"github.com/iamsohail/GmailFlightScanner/pkg/logger"
	"github.com/iamsohail/GmailFlightScanner/pkg/metrics"
	"github.com/iamsohail/GmailFlightScanner/pkg/utils"
)

// MailClient is the slice of the Gmail service the pipeline needs.
type MailClient interface {
	Search(ctx context.Context, query string) ([]string, error)
	Fetch(ctx context.Context, id string) (*entity.Email, error)
}

// Skip reasons, also used as metric labels.
const (
	SkipExcludedSubject = "excluded_subject"
	SkipNoSignal        = "no_signal"
	SkipNoPassenger     = "no_passenger"
	SkipDuplicate       = "duplicate"
)

// excludedSubjects marks emails the queries keep matching that are not
// flight bookings: hotels, buses, card statements, marketing.
var excludedSubjects = []string{
	"hotel booking", "bus booking", "bus ticket", "credit card",
	"account summary", "savings of rs", "missed out on saving",
	"message from our ceo", "message from the ceo",
	"discounts in dubai", "big discounts", "credit note",
	"tax invoice", "gst invoice", "vrl travels",
	"credit card communication", "voucher worth",
	"challenge #", "intermiles credited",
}

// RunSummary reports what happened to every matched message.
type RunSummary struct {
	MessagesFound   int
	MessagesFetched int
	ExcludedSubject int
	NoSignal        int
	NoPassenger     int
	Duplicates      int
	Exported        int
}

// FlightProcessor runs the scan pipeline: search, fetch, extract, filter,
// dedupe, sort, export.
type FlightProcessor struct {
	mail       MailClient
	parser     *utils.EmailParser
	reportRepo repository.FlightReportRepository
	metrics    *metrics.Metrics
	logger     logger.Logger

	queries        []string
	passengerNames []string
}

// NewFlightProcessor creates a new flight processor. metrics may be nil.
// passengerNames is an optional lowercase list; when set, records whose
// source email mentions none of the names are dropped.
func NewFlightProcessor(
	mail MailClient,
	parser *utils.EmailParser,
	reportRepo repository.FlightReportRepository,
	m *metrics.Metrics,
	logger logger.Logger,
	queries []string,
	passengerNames []string,
) *FlightProcessor {
	return &FlightProcessor{
		mail:           mail,
		parser:         parser,
		reportRepo:     reportRepo,
		metrics:        m,
		logger:         logger,
		queries:        queries,
		passengerNames: passengerNames,
	}
}

// Run executes one full scan and writes the report to outputFile.
func (p *FlightProcessor) Run(ctx context.Context, outputFile string) (*RunSummary, error) {
	summary := &RunSummary{}

	ids, err := p.searchAll(ctx)
	if err != nil {
		return nil, err
	}
	summary.MessagesFound = len(ids)
	p.countFound(len(ids))
	p.logger.Info("Search complete", "uniqueMessages", len(ids))

	seen := make(map[string]bool)
	var records []*entity.FlightRecord

	for _, id := range ids {
		start := time.Now()
		email, err := p.mail.Fetch(ctx, id)
		if err != nil {
			// Mail client errors are fatal; everything past this point
			// is per-message and skippable.
			return nil, err
		}
		p.countFetched(time.Since(start))
		summary.MessagesFetched++

		record := p.parser.Parse(ctx, email)

		if subjectExcluded(email.Subject) {
			summary.ExcludedSubject++
			p.skip(email.EmailID, SkipExcludedSubject, "subject", email.Subject)
			continue
		}

		if !record.HasSignal() {
			summary.NoSignal++
			p.skip(email.EmailID, SkipNoSignal, "subject", email.Subject)
			continue
		}

		if !p.matchesPassenger(email) {
			summary.NoPassenger++
			p.skip(email.EmailID, SkipNoPassenger, "subject", email.Subject)
			continue
		}

		// First-seen record wins; later duplicates are dropped without
		// merging fields.
		if key := record.IdentityKey(); key != "" {
			if seen[key] {
				summary.Duplicates++
				p.skip(email.EmailID, SkipDuplicate, "identity", key)
				continue
			}
			seen[key] = true
		}

		records = append(records, record)
	}

	SortRecords(records)

	if err := p.reportRepo.Write(outputFile, records); err != nil {
		return nil, err
	}
	summary.Exported = len(records)
	if p.metrics != nil {
		p.metrics.RecordsExported.Add(float64(len(records)))
	}

	p.logger.Info("Scan complete",
		"found", summary.MessagesFound,
		"fetched", summary.MessagesFetched,
		"excludedSubject", summary.ExcludedSubject,
		"noSignal", summary.NoSignal,
		"noPassenger", summary.NoPassenger,
		"duplicates", summary.Duplicates,
		"exported", summary.Exported)

	return summary, nil
}

// searchAll runs every query and unions the resulting message IDs so each
// message is fetched once.
func (p *FlightProcessor) searchAll(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string

	for _, query := range p.queries {
		queryIDs, err := p.mail.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		for _, id := range queryIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
		p.logger.Debug("Query done", "query", query, "totalUnique", len(ids))
	}

	return ids, nil
}

func (p *FlightProcessor) matchesPassenger(email *entity.Email) bool {
	if len(p.passengerNames) == 0 {
		return true
	}
	text := strings.ToLower(email.Subject + " " + utils.EmailText(email))
	for _, name := range p.passengerNames {
		if strings.Contains(text, name) {
			return true
		}
	}
	return false
}

func (p *FlightProcessor) skip(emailID, reason string, keysAndValues ...interface{}) {
	kv := append([]interface{}{"emailID", emailID, "reason", reason}, keysAndValues...)
	p.logger.Info("Skipping message", kv...)
	if p.metrics != nil {
		p.metrics.MessagesSkipped.WithLabelValues(reason).Inc()
	}
}

func (p *FlightProcessor) countFound(n int) {
	if p.metrics != nil {
		p.metrics.MessagesFound.Add(float64(n))
	}
}

func (p *FlightProcessor) countFetched(d time.Duration) {
	if p.metrics != nil {
		p.metrics.MessagesFetched.Inc()
		p.metrics.FetchDuration.Observe(d.Seconds())
	}
}

func subjectExcluded(subject string) bool {
	s := strings.ToLower(subject)
	for _, kw := range excludedSubjects {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// SortRecords orders records by (date, flightNumber) ascending. Records
// without a date sort after all dated records. The sort is stable.
func SortRecords(records []*entity.FlightRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		di, dj := sortDate(records[i].Date), sortDate(records[j].Date)
		if di != dj {
			return di < dj
		}
		return records[i].FlightNumber < records[j].FlightNumber
	})
}

func sortDate(date string) string {
	if date == "" {
		// Empty dates sort last
		return "9999-99-99"
	}
	return date
}
