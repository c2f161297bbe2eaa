// Package domaincheck answers domain availability questions for the
// storefront domain search.
package domaincheck

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"time"
)

// RDAPChecker queries the rdap.org bootstrap aggregator. A 404 means no
// registration record exists, which is the closest public signal for
// availability without registrar credentials.
type RDAPChecker struct {
	client  *http.Client
	baseURL string
}

// NewRDAPChecker creates a checker with the given per-lookup timeout
func NewRDAPChecker(timeout time.Duration) *RDAPChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RDAPChecker{
		client:  &http.Client{Timeout: timeout},
		baseURL: "https://rdap.org",
	}
}

// CheckAvailability reports whether the domain has no RDAP registration record
func (c *RDAPChecker) CheckAvailability(ctx context.Context, domain string) (bool, error) {
	endpoint := fmt.Sprintf("%s/domain/%s", c.baseURL, url.PathEscape(domain))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/rdap+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		return true, nil
	case http.StatusOK:
		return false, nil
	default:
		return false, fmt.Errorf("rdap lookup for %s returned status %d", domain, resp.StatusCode)
	}
}

// StubChecker gives deterministic answers without network access. It is
// used in development and tests so the search page works offline.
type StubChecker struct{}

// NewStubChecker creates a stub availability checker
func NewStubChecker() *StubChecker {
	return &StubChecker{}
}

// CheckAvailability hashes the domain so the same name always gets the
// same answer, with roughly two thirds reported available
func (c *StubChecker) CheckAvailability(_ context.Context, domain string) (bool, error) {
	h := fnv.New32a()
	h.Write([]byte(domain))
	return h.Sum32()%3 != 0, nil
}
