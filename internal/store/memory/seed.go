package memory

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tradejournal/tradejournal-server/internal/store"
)

const seedCreatedAt = "2025-10-28T00:00:00Z"

var seedTrades = []store.Document{
	{
		"id": "1", "symbol": "NQ", "side": "buy", "date": "2025-10-28", "rate": 2.5,
		"status": "TP", "result": 95.50, "notes": "Trade de prueba exitoso",
		"emotions": []string{}, "confirmations": []string{},
		"trading_link": "https://www.binance.com/es/trade/BTC_USDT",
	},
	{
		"id": "2", "symbol": "NQ", "side": "sell", "date": "2025-10-27", "rate": 2.0,
		"status": "SL", "result": -49.25, "notes": "Stop loss alcanzado",
		"emotions": []string{}, "confirmations": []string{},
		"trading_link": "https://www.binance.com/es/trade/ETH_USDT",
	},
}

var seedEmotions = [][2]string{
	{"Confianza", "Sentimiento de seguridad en la operación"},
	{"Calma", "Estado de tranquilidad durante el trade"},
	{"Ansiedad", "Nerviosismo antes o durante la operación"},
	{"Euforia", "Excitación por buenos resultados"},
	{"Frustración", "Sentimiento tras pérdidas"},
}

var seedConfirmations = [][2]string{
	{"FVG", "Fair Value Gap - Hueco de valor justo"},
	{"CISD", "Change in State of Delivery"},
	{"IFVG", "Internal Fair Value Gap"},
	{"OB", "Order Block - Bloque de órdenes"},
	{"PDL", "Previous Day Low - Mínimo del día anterior"},
	{"PDH", "Previous Day High - Máximo del día anterior"},
	{"LTF", "Lower Time Frame - Marco temporal inferior"},
	{"HTF", "Higher Time Frame - Marco temporal superior"},
}

var (
	brokeNotes    = []string{"No seguí el plan de trading hoy.", "Me emocioné y tomé trades fuera del plan.", "Overtrading - tomé más trades de los permitidos.", "Ignoré las reglas de riesgo hoy."}
	followedNotes = []string{"Seguí el plan correctamente hoy.", "Buen día, mantuve la disciplina.", "", ""}
)

// Seed loads the sample data set. Every seeded record is unowned, so it is
// only visible to demo callers. Output is deterministic.
func Seed(s *Store) {
	for _, d := range seedTrades {
		d = store.Clone(d)
		d[store.FieldCreatedAt] = seedCreatedAt
		s.trades.put(d)
	}
	seedTags(s.emotions, seedEmotions)
	seedTags(s.confirmations, seedConfirmations)

	rng := rand.New(rand.NewSource(42))
	for _, year := range []int{2024, 2025} {
		for _, d := range octoberWeekdays(year) {
			id, _ := uuid.NewRandomFromReader(rng)
			broke := rng.Intn(7) == 0
			options := followedNotes
			if broke {
				options = brokeNotes
			}
			doc := store.Document{
				store.FieldID:        id.String(),
				store.FieldDate:      d.Format("2006-01-02"),
				"break_trading_plan": broke,
				store.FieldCreatedAt: seedCreatedAt,
			}
			if n := options[rng.Intn(len(options))]; n != "" {
				doc["notes"] = n
			}
			s.dayJournals.put(doc)
		}
	}
}

func seedTags(c *collection, tags [][2]string) {
	for i, t := range tags {
		c.put(store.Document{
			store.FieldID:        strconv.Itoa(i + 1),
			store.FieldName:      t[0],
			"description":        t[1],
			store.FieldCreatedAt: seedCreatedAt,
		})
	}
}

func octoberWeekdays(year int) []time.Time {
	var out []time.Time
	for d := time.Date(year, time.October, 1, 0, 0, 0, 0, time.UTC); d.Month() == time.October; d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			out = append(out, d)
		}
	}
	return out
}
