package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/iamsohail/GmailFlightScanner/internal/domain/entity"
	"github.com/iamsohail/GmailFlightScanner/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// FetchError indicates the Gmail API rejected a request for a
// non-transient reason (quota, permissions, bad request) or kept failing
// after the retry budget ran out. It aborts the run.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("gmail %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// GmailService handles interaction with the Gmail API
type GmailService struct {
	gmailService *gmail.Service
	limiter      *rate.Limiter
	maxRetries   int
	baseDelay    time.Duration
	logger       logger.Logger
}

// NewGmailService creates a new Gmail service. qps caps the client-side
// request rate; maxRetries bounds the backoff loop for transient errors.
func NewGmailService(ctx context.Context, tokenSource oauth2.TokenSource, qps float64, maxRetries int, logger logger.Logger) (*GmailService, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	if qps <= 0 {
		qps = 5
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &GmailService{
		gmailService: service,
		limiter:      rate.NewLimiter(rate.Limit(qps), 1),
		maxRetries:   maxRetries,
		baseDelay:    time.Second,
		logger:       logger,
	}, nil
}

// Search returns the IDs of all messages matching the query, paging
// through the result set until exhausted. Spam and trash are included so
// old bookings moved there still surface.
func (s *GmailService) Search(ctx context.Context, query string) ([]string, error) {
	var ids []string
	pageToken := ""

	for {
		var resp *gmail.ListMessagesResponse
		err := s.withRetry(ctx, "search", func() error {
			req := s.gmailService.Users.Messages.List("me").
				Q(query).
				IncludeSpamTrash(true).
				Context(ctx)
			if pageToken != "" {
				req = req.PageToken(pageToken)
			}
			var err error
			resp, err = req.Do()
			return err
		})
		if err != nil {
			return nil, err
		}

		for _, msg := range resp.Messages {
			ids = append(ids, msg.Id)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			return ids, nil
		}
	}
}

// Fetch retrieves a single message in full and converts it to the domain
// entity.
func (s *GmailService) Fetch(ctx context.Context, id string) (*entity.Email, error) {
	var msg *gmail.Message
	err := s.withRetry(ctx, "fetch", func() error {
		var err error
		msg, err = s.gmailService.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.convertToEmail(msg), nil
}

// withRetry runs fn behind the rate limiter, retrying transient failures
// with doubling delays. Non-transient API errors surface immediately.
func (s *GmailService) withRetry(ctx context.Context, op string, fn func() error) error {
	delay := s.baseDelay
	var lastErr error

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isTransient(err) {
			return &FetchError{Op: op, Err: err}
		}
		if attempt == s.maxRetries {
			break
		}

		s.logger.Warn("Transient Gmail error, retrying",
			"op", op,
			"attempt", attempt,
			"delay", delay.String(),
			"error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return &FetchError{Op: op, Err: fmt.Errorf("gave up after %d attempts: %w", s.maxRetries, lastErr)}
}

// isTransient reports whether the error is worth retrying: server-side
// failures, throttling, and network errors. Other HTTP client errors
// (quota, permission, bad request) are not.
func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}
	// Anything below the HTTP layer counts as transient
	return true
}

// convertToEmail converts a Gmail message to our domain entity
func (s *GmailService) convertToEmail(msg *gmail.Message) *entity.Email {
	email := &entity.Email{
		EmailID:    msg.Id,
		ReceivedAt: time.Unix(0, msg.InternalDate*int64(time.Millisecond)),
	}

	if msg.Payload == nil {
		return email
	}

	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "From":
			email.From = header.Value
		case "To":
			email.To = header.Value
		case "Subject":
			email.Subject = header.Value
		case "Date":
			email.DateHeader = header.Value
		}
	}

	plain, html := extractParts(msg.Payload)
	email.Body = plain
	email.HTMLBody = html

	return email
}

// extractParts walks a message part tree and concatenates the plain-text
// and HTML fragments it finds.
func extractParts(part *gmail.MessagePart) (string, string) {
	var plain, html string

	switch part.MimeType {
	case "text/plain":
		plain = decodePartBody(part)
	case "text/html":
		html = decodePartBody(part)
	default:
		for _, sub := range part.Parts {
			p, h := extractParts(sub)
			plain += p
			html += h
		}
	}

	return plain, html
}

func decodePartBody(part *gmail.MessagePart) string {
	if part.Body == nil || part.Body.Data == "" {
		return ""
	}
	data, err := base64.URLEncoding.DecodeString(part.Body.Data)
	if err != nil {
		// Some messages arrive without padding
		data, err = base64.RawURLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			return ""
		}
	}
	return string(data)
}
