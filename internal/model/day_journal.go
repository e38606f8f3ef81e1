package model

// DayJournal records how a trading day went against the plan.
type DayJournal struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id,omitempty"`
	Date             Date    `json:"date"`
	BreakTradingPlan bool    `json:"break_trading_plan"`
	Notes            *string `json:"notes"`
	CreatedAt        string  `json:"created_at,omitempty"`
}

// DayJournalInput is the client payload for creating a day journal.
type DayJournalInput struct {
	Date             Date    `json:"date"`
	BreakTradingPlan bool    `json:"break_trading_plan"`
	Notes            *string `json:"notes,omitempty"`
}

func (in DayJournalInput) Fields() map[string]any {
	f := map[string]any{
		"date":               in.Date,
		"break_trading_plan": in.BreakTradingPlan,
	}
	putString(f, "notes", in.Notes)
	return f
}

// DayJournalUpdate is a partial day journal. The date identifies the day and
// cannot be changed.
type DayJournalUpdate struct {
	BreakTradingPlan *bool   `json:"break_trading_plan,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

func (u DayJournalUpdate) Fields() map[string]any {
	f := map[string]any{}
	if u.BreakTradingPlan != nil {
		f["break_trading_plan"] = *u.BreakTradingPlan
	}
	putString(f, "notes", u.Notes)
	return f
}
