package model

// Side is the direction of a trade.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

func (s Side) Valid() bool { return s == SideBuy || s == SideSell }

// Status is how a trade was closed: take profit, stop loss or break even.
type Status string

const (
	StatusTP Status = "TP"
	StatusSL Status = "SL"
	StatusBE Status = "BE"
)

func (s Status) Valid() bool { return s == StatusTP || s == StatusSL || s == StatusBE }

// Trade is a single journaled trade.
type Trade struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id,omitempty"`
	Symbol        string   `json:"symbol"`
	Side          Side     `json:"side"`
	Date          Date     `json:"date"`
	Rate          float64  `json:"rate"`
	Risk          *float64 `json:"risk"`
	Result        *float64 `json:"result"`
	Status        *Status  `json:"status"`
	Notes         *string  `json:"notes"`
	Emotions      []string `json:"emotions"`
	Confirmations []string `json:"confirmations"`
	TradingLink   *string  `json:"trading_link"`
	CreatedAt     string   `json:"created_at,omitempty"`
}

// TradeInput is the client payload for creating a trade.
type TradeInput struct {
	Symbol        string   `json:"symbol"`
	Side          Side     `json:"side"`
	Date          Date     `json:"date"`
	Rate          *float64 `json:"rate"`
	Risk          *float64 `json:"risk,omitempty"`
	Result        *float64 `json:"result,omitempty"`
	Status        *Status  `json:"status,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	Emotions      []string `json:"emotions,omitempty"`
	Confirmations []string `json:"confirmations,omitempty"`
	TradingLink   *string  `json:"trading_link,omitempty"`
}

// Fields returns the persisted field set; unset optionals are left out.
func (in TradeInput) Fields() map[string]any {
	f := map[string]any{
		"symbol":        in.Symbol,
		"side":          string(in.Side),
		"date":          in.Date,
		"emotions":      nonNil(in.Emotions),
		"confirmations": nonNil(in.Confirmations),
	}
	if in.Rate != nil {
		f["rate"] = *in.Rate
	}
	putFloat(f, "risk", in.Risk)
	putFloat(f, "result", in.Result)
	if in.Status != nil {
		f["status"] = string(*in.Status)
	}
	putString(f, "notes", in.Notes)
	putString(f, "trading_link", in.TradingLink)
	return f
}

// TradeUpdate is a partial trade; nil fields are left untouched.
type TradeUpdate struct {
	Symbol        *string   `json:"symbol,omitempty"`
	Side          *Side     `json:"side,omitempty"`
	Date          *Date     `json:"date,omitempty"`
	Rate          *float64  `json:"rate,omitempty"`
	Risk          *float64  `json:"risk,omitempty"`
	Result        *float64  `json:"result,omitempty"`
	Status        *Status   `json:"status,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	Emotions      *[]string `json:"emotions,omitempty"`
	Confirmations *[]string `json:"confirmations,omitempty"`
	TradingLink   *string   `json:"trading_link,omitempty"`
}

// Fields returns only the fields present in the update.
func (u TradeUpdate) Fields() map[string]any {
	f := map[string]any{}
	putString(f, "symbol", u.Symbol)
	if u.Side != nil {
		f["side"] = string(*u.Side)
	}
	if u.Date != nil {
		f["date"] = *u.Date
	}
	putFloat(f, "rate", u.Rate)
	putFloat(f, "risk", u.Risk)
	putFloat(f, "result", u.Result)
	if u.Status != nil {
		f["status"] = string(*u.Status)
	}
	putString(f, "notes", u.Notes)
	if u.Emotions != nil {
		f["emotions"] = nonNil(*u.Emotions)
	}
	if u.Confirmations != nil {
		f["confirmations"] = nonNil(*u.Confirmations)
	}
	putString(f, "trading_link", u.TradingLink)
	return f
}

func putFloat(f map[string]any, key string, v *float64) {
	if v != nil {
		f[key] = *v
	}
}

func putString(f map[string]any, key string, v *string) {
	if v != nil {
		f[key] = *v
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
