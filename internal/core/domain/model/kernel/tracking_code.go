package kernel

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"logistics/internal/pkg/errs"
)

const (
	// DefaultTrackingCodeLength is the length of codes handed out to customers.
	DefaultTrackingCodeLength = 6
	// MinTrackingCodeLength leaves at least one random character in front of
	// the timestamp suffix.
	MinTrackingCodeLength = 4
	// MaxTrackingCodeLength bounds the tracking_code column.
	MaxTrackingCodeLength = 32

	trackingCodeTimeDigits = 3
	trackingCodeAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// TrackingCode is the short public identifier a customer uses to follow a
// shipment. It is uppercase alphanumeric. Generated codes end with the least
// significant base-36 digits of the creation time in milliseconds; the
// remaining leading characters are random.
type TrackingCode struct {
	value string
}

// NewTrackingCode generates a code of the given length for a shipment created
// at now.
func NewTrackingCode(now time.Time, length int) (TrackingCode, error) {
	if length < MinTrackingCodeLength || length > MaxTrackingCodeLength {
		return TrackingCode{}, errs.NewValueIsOutOfRangeError(
			"tracking code length", length, MinTrackingCodeLength, MaxTrackingCodeLength)
	}

	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	for len(stamp) < trackingCodeTimeDigits {
		stamp = "0" + stamp
	}
	suffix := stamp[len(stamp)-trackingCodeTimeDigits:]

	var b strings.Builder
	b.Grow(length)
	limit := big.NewInt(int64(len(trackingCodeAlphabet)))
	for range length - trackingCodeTimeDigits {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return TrackingCode{}, fmt.Errorf("generate tracking code: %w", err)
		}
		b.WriteByte(trackingCodeAlphabet[n.Int64()])
	}
	b.WriteString(suffix)

	return TrackingCode{value: b.String()}, nil
}

// TrackingCodeFromString parses user input. Lowercase letters are accepted
// and normalized.
func TrackingCodeFromString(s string) (TrackingCode, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if code == "" {
		return TrackingCode{}, errs.NewValueIsRequiredError("tracking code")
	}
	if len(code) < MinTrackingCodeLength || len(code) > MaxTrackingCodeLength {
		return TrackingCode{}, errs.NewValueIsOutOfRangeError(
			"tracking code length", len(code), MinTrackingCodeLength, MaxTrackingCodeLength)
	}
	for _, r := range code {
		if !strings.ContainsRune(trackingCodeAlphabet, r) {
			return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
				"tracking code", fmt.Errorf("%q is not alphanumeric", r))
		}
	}
	return TrackingCode{value: code}, nil
}

func (c TrackingCode) String() string {
	return c.value
}

func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}

func (c TrackingCode) Validate() error {
	if c.value == "" {
		return errs.NewValueIsRequiredError("tracking code")
	}
	return nil
}
