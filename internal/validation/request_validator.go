package validation

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/AlenaMolokova/gamehub/internal/constants"
	"github.com/shopspring/decimal"
)

var walletAddressRegex = regexp.MustCompile(`^[A-Za-z0-9:_\-+/=]{10,128}$`)

func ValidateAmount(amount decimal.NullDecimal, min decimal.Decimal) error {
	if !amount.Valid {
		return errors.New("amount is required")
	}
	if amount.Decimal.LessThan(min) {
		return fmt.Errorf("minimum withdrawal amount is %s", min.String())
	}
	if amount.Decimal.Exponent() < -2 && !amount.Decimal.Equal(amount.Decimal.Round(2)) {
		return errors.New("amount must have at most two decimal places")
	}
	return nil
}

func ValidateWalletAddress(address string) error {
	if address == "" {
		return errors.New("walletAddress is required")
	}
	if !walletAddressRegex.MatchString(address) {
		return errors.New("walletAddress is malformed")
	}
	return nil
}

func ValidateScreenshotURL(raw string) error {
	if raw == "" {
		return errors.New("screenshotUrl is required")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("screenshotUrl must be an http(s) URL")
	}
	return nil
}

func ValidateDecision(decision string) error {
	switch decision {
	case constants.DecisionApprove, constants.DecisionReject:
		return nil
	}
	return fmt.Errorf("decision must be %q or %q", constants.DecisionApprove, constants.DecisionReject)
}

func ValidateStatus(status string) error {
	switch status {
	case constants.StatusPending, constants.StatusApproved, constants.StatusRejected:
		return nil
	}
	return fmt.Errorf("unknown status %q", status)
}

// Required returns an error naming the first empty field.
func Required(fields ...[2]string) error {
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			return fmt.Errorf("%s is required", f[0])
		}
	}
	return nil
}
