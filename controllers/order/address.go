package orderControllers

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ResonanceSE/Resonance/models"
)

// saveShippingAddress persists the free-text address onto the profile,
// splitting it into city/state/postal/country by line and comma. The
// parsing is naive and best-effort; the raw text on the order row is the
// source of truth.
func saveShippingAddress(db *gorm.DB, user *models.User, shippingAddress string) error {
	parsed, err := parseShippingAddress(shippingAddress)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"address": parsed.Street}
	if parsed.City != "" {
		updates["city"] = parsed.City
	}
	if parsed.State != "" {
		updates["state"] = parsed.State
	}
	if parsed.PostalCode != "" {
		updates["postal_code"] = parsed.PostalCode
	}
	if parsed.Country != "" {
		updates["country"] = parsed.Country
	}
	return db.Model(user).Updates(updates).Error
}

type parsedAddress struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// parseShippingAddress expects roughly:
//
//	street
//	city, state postal
//	country
//
// and degrades to treating the whole text as the street line.
func parseShippingAddress(raw string) (parsedAddress, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return parsedAddress{}, errors.New("empty shipping address")
	}

	var lines []string
	for _, line := range strings.Split(trimmed, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	parsed := parsedAddress{Street: lines[0]}
	if len(lines) > 1 {
		parts := strings.Split(lines[1], ",")
		parsed.City = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			statePostal := strings.Fields(strings.TrimSpace(parts[1]))
			if len(statePostal) > 0 {
				parsed.State = statePostal[0]
			}
			if len(statePostal) > 1 {
				parsed.PostalCode = strings.Join(statePostal[1:], " ")
			}
		}
	}
	if len(lines) > 2 {
		parsed.Country = lines[len(lines)-1]
	}

	return parsed, nil
}
