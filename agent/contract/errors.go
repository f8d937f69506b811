package contract

import "errors"

var (
	// ErrMissingCredential means a required external API key is not configured.
	ErrMissingCredential = errors.New("required api credential is missing")
	// ErrNotFound means the upstream reported no data for the query.
	ErrNotFound = errors.New("no data found")
	// ErrUpstream covers network failures, 5xx responses and unexpected payloads.
	ErrUpstream = errors.New("upstream unavailable")
	// ErrRateLimited is the explicit backoff signal from an upstream.
	ErrRateLimited = errors.New("rate limited")
	// ErrMalformedPlan means the plan completion failed structural parsing.
	ErrMalformedPlan = errors.New("plan is malformed")
	// ErrCredentialsExhausted means both model credentials failed for one request.
	ErrCredentialsExhausted = errors.New("both model credentials exhausted")
)
