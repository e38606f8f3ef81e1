// Package validate checks decoded request payloads before they reach the
// services. Every failure is a model.ValidationError naming the offending field.
package validate

import (
	"strings"

	"github.com/go-openapi/strfmt"

	"github.com/tradejournal/tradejournal-server/internal/model"
)

const (
	maxSymbolLen      = 32
	maxNameLen        = 100
	maxDescriptionLen = 500
	maxNotesLen       = 5000
	maxLinkLen        = 2048
)

// NonEmpty rejects blank and whitespace-only values.
func NonEmpty(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return model.NewValidationError(field, field+" is required")
	}
	return nil
}

// MaxLen rejects values longer than limit bytes. A nil value passes.
func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if len(*v) > limit {
		return model.NewValidationError(field, field+" exceeds maximum length")
	}
	return nil
}

// Link accepts absolute http(s) URLs only.
func Link(field string, v *string) error {
	if v == nil || *v == "" {
		return nil
	}
	if err := MaxLen(field, v, maxLinkLen); err != nil {
		return err
	}
	if !strfmt.Default.Validates("uri", *v) {
		return model.NewValidationError(field, field+" must be a valid URL")
	}
	if !strings.HasPrefix(*v, "http://") && !strings.HasPrefix(*v, "https://") {
		return model.NewValidationError(field, field+" must use http or https")
	}
	return nil
}

// NonNegative rejects values below zero. A nil value passes.
func NonNegative(field string, v *float64) error {
	if v != nil && *v < 0 {
		return model.NewValidationError(field, field+" must be >= 0")
	}
	return nil
}

func side(v model.Side) error {
	if !v.Valid() {
		return model.NewValidationError("side", "side must be one of buy, sell")
	}
	return nil
}

func status(v *model.Status) error {
	if v != nil && !v.Valid() {
		return model.NewValidationError("status", "status must be one of TP, SL, BE")
	}
	return nil
}

// CreateTrade requires symbol, side, date and rate; the rest are optional.
func CreateTrade(in model.TradeInput) error {
	if err := NonEmpty("symbol", in.Symbol); err != nil {
		return err
	}
	if len(in.Symbol) > maxSymbolLen {
		return model.NewValidationError("symbol", "symbol exceeds maximum length")
	}
	if err := side(in.Side); err != nil {
		return err
	}
	if !in.Date.Valid() {
		return model.NewValidationError("date", "date is required")
	}
	if in.Rate == nil {
		return model.NewValidationError("rate", "rate is required")
	}
	if err := NonNegative("risk", in.Risk); err != nil {
		return err
	}
	if err := status(in.Status); err != nil {
		return err
	}
	if err := MaxLen("notes", in.Notes, maxNotesLen); err != nil {
		return err
	}
	return Link("trading_link", in.TradingLink)
}

// UpdateTrade applies the create rules to the fields present.
func UpdateTrade(u model.TradeUpdate) error {
	if u.Symbol != nil {
		if err := NonEmpty("symbol", *u.Symbol); err != nil {
			return err
		}
		if err := MaxLen("symbol", u.Symbol, maxSymbolLen); err != nil {
			return err
		}
	}
	if u.Side != nil {
		if err := side(*u.Side); err != nil {
			return err
		}
	}
	if u.Date != nil && !u.Date.Valid() {
		return model.NewValidationError("date", "date must not be null")
	}
	if err := NonNegative("risk", u.Risk); err != nil {
		return err
	}
	if err := status(u.Status); err != nil {
		return err
	}
	if err := MaxLen("notes", u.Notes, maxNotesLen); err != nil {
		return err
	}
	return Link("trading_link", u.TradingLink)
}

// CreateTag validates a new emotion or confirmation.
func CreateTag(in model.TagInput) error {
	if err := NonEmpty("name", in.Name); err != nil {
		return err
	}
	if len(in.Name) > maxNameLen {
		return model.NewValidationError("name", "name exceeds maximum length")
	}
	return MaxLen("description", in.Description, maxDescriptionLen)
}

// UpdateTag validates a partial tag update.
func UpdateTag(u model.TagUpdate) error {
	if u.Name != nil {
		if err := NonEmpty("name", *u.Name); err != nil {
			return err
		}
		if err := MaxLen("name", u.Name, maxNameLen); err != nil {
			return err
		}
	}
	return MaxLen("description", u.Description, maxDescriptionLen)
}

// CreateDayJournal requires a date.
func CreateDayJournal(in model.DayJournalInput) error {
	if !in.Date.Valid() {
		return model.NewValidationError("date", "date is required")
	}
	return MaxLen("notes", in.Notes, maxNotesLen)
}

// UpdateDayJournal only bounds the notes; the date is fixed at creation.
func UpdateDayJournal(u model.DayJournalUpdate) error {
	return MaxLen("notes", u.Notes, maxNotesLen)
}
