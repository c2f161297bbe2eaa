package service

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/hostify/hostify-api/pkg/apperror"
)

// DomainChecker answers whether a single fully qualified domain name is
// available for registration
type DomainChecker interface {
	CheckAvailability(ctx context.Context, domain string) (bool, error)
}

// DomainService runs availability searches across the configured TLD list
type DomainService struct {
	checker DomainChecker
	tlds    []string
}

// NewDomainService creates a new domain search service
func NewDomainService(checker DomainChecker, tlds []string) *DomainService {
	if len(tlds) == 0 {
		tlds = []string{"com", "net", "org"}
	}
	return &DomainService{checker: checker, tlds: tlds}
}

var labelPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// DomainResult is the availability outcome for one TLD. Error holds a short
// description when the lookup itself failed for that TLD.
type DomainResult struct {
	Domain    string `json:"domain"`
	TLD       string `json:"tld"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// Search checks a keyword against every configured TLD concurrently. A
// keyword that already carries a TLD is checked as-is only.
func (s *DomainService) Search(ctx context.Context, keyword string) ([]DomainResult, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	keyword = strings.TrimPrefix(keyword, "www.")

	if idx := strings.Index(keyword, "."); idx > 0 {
		label := keyword[:idx]
		tld := keyword[idx+1:]
		if !labelPattern.MatchString(label) || tld == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "keyword", Message: "keyword is not a valid domain name"},
			})
		}
		result := s.check(ctx, label, tld)
		return []DomainResult{result}, nil
	}

	if !labelPattern.MatchString(keyword) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "keyword", Message: "keyword may only contain letters, digits and hyphens"},
		})
	}

	results := make([]DomainResult, len(s.tlds))
	var wg sync.WaitGroup
	for i, tld := range s.tlds {
		wg.Add(1)
		go func(i int, tld string) {
			defer wg.Done()
			results[i] = s.check(ctx, keyword, tld)
		}(i, tld)
	}
	wg.Wait()

	return results, nil
}

func (s *DomainService) check(ctx context.Context, label, tld string) DomainResult {
	domain := label + "." + tld
	result := DomainResult{Domain: domain, TLD: tld}

	available, err := s.checker.CheckAvailability(ctx, domain)
	if err != nil {
		result.Error = "lookup failed"
		return result
	}
	result.Available = available
	return result
}
