package crosspost

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	// Platform vocabulary errors
	ErrInvalidPlatform     = errors.New("crosspost: invalid platform name")
	ErrUnsupportedPlatform = errors.New("crosspost: platform has no formatter")

	// Publisher errors
	ErrPublisherNotRegistered = errors.New("crosspost: no publisher registered for platform")
	ErrPublishRequestFailed   = errors.New("crosspost: platform publish request failed")
	ErrPublishInvalidResponse = errors.New("crosspost: invalid platform response")
	ErrPublishTimeout         = errors.New("crosspost: platform publish timed out")

	// Ledger errors
	ErrRecordNotFound = errors.New("crosspost: cross-post record not found")
)

// ---------------------------------------------------------------------------
// PlatformName
// ---------------------------------------------------------------------------

// PlatformName identifies a marketplace the engine can distribute to.
// The set is closed: any other value is a validation error, never silently
// ignored.
type PlatformName string

const (
	// PlatformEbay is the eBay marketplace (automated API integration)
	PlatformEbay PlatformName = "ebay"
	// PlatformPoshmark is the Poshmark marketplace (manual-prepared)
	PlatformPoshmark PlatformName = "poshmark"
	// PlatformDepop is the Depop marketplace (manual-prepared)
	PlatformDepop PlatformName = "depop"
	// PlatformMercari is the Mercari marketplace (manual-prepared)
	PlatformMercari PlatformName = "mercari"
	// PlatformVintageCrib is the home platform; publishing to it is a direct
	// status write and is allowed on every subscription tier
	PlatformVintageCrib PlatformName = "vintage_crib"
)

// AllPlatforms returns every valid platform name in stable order.
func AllPlatforms() []PlatformName {
	return []PlatformName{
		PlatformEbay,
		PlatformPoshmark,
		PlatformDepop,
		PlatformMercari,
		PlatformVintageCrib,
	}
}

// IsValid returns true if the platform name is part of the closed set
func (p PlatformName) IsValid() bool {
	switch p {
	case PlatformEbay, PlatformPoshmark, PlatformDepop, PlatformMercari, PlatformVintageCrib:
		return true
	default:
		return false
	}
}

// String returns the string representation of PlatformName
func (p PlatformName) String() string {
	return string(p)
}

// DisplayName returns a human-readable name for the platform
func (p PlatformName) DisplayName() string {
	switch p {
	case PlatformEbay:
		return "eBay"
	case PlatformPoshmark:
		return "Poshmark"
	case PlatformDepop:
		return "Depop"
	case PlatformMercari:
		return "Mercari"
	case PlatformVintageCrib:
		return "Vintage Crib"
	default:
		return string(p)
	}
}

// IsHome returns true for the home platform, which bypasses the publisher
// port entirely
func (p PlatformName) IsHome() bool {
	return p == PlatformVintageCrib
}

// DefaultMode returns the publish mode this platform operates in
func (p PlatformName) DefaultMode() PublishMode {
	switch p {
	case PlatformPoshmark, PlatformDepop, PlatformMercari:
		return ModeManualPrepared
	default:
		return ModeAutomated
	}
}

// ParsePlatforms validates a caller-supplied list of platform names against
// the closed set. One unknown value rejects the whole list.
func ParsePlatforms(names []string) ([]PlatformName, error) {
	platforms := make([]PlatformName, 0, len(names))
	seen := make(map[PlatformName]bool, len(names))
	for _, name := range names {
		p := PlatformName(name)
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPlatform, name)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		platforms = append(platforms, p)
	}
	return platforms, nil
}

// ---------------------------------------------------------------------------
// PublishMode
// ---------------------------------------------------------------------------

// PublishMode distinguishes how a listing reaches a platform. The two modes
// carry deliberately different success semantics: an automated success means
// the listing is live; a manual-prepared success only means the copy-paste
// package is ready.
type PublishMode string

const (
	// ModeAutomated means the platform is driven through its API
	ModeAutomated PublishMode = "automated"
	// ModeManualPrepared means the engine produced a copy-paste package for
	// the seller to post by hand
	ModeManualPrepared PublishMode = "manual_prepared"
)

// String returns the string representation of PublishMode
func (m PublishMode) String() string {
	return string(m)
}

// IsValid returns true if the mode is valid
func (m PublishMode) IsValid() bool {
	return m == ModeAutomated || m == ModeManualPrepared
}
