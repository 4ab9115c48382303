package generator

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// Columns возвращает колонки таблицы channel_txn в порядке вставки.
func Columns() []string {
	return []string{
		"channel_id", "unique_id", "loc_detail", "ts", "msg",
		"action", "txn_id", "nil_action", "nil_id",
	}
}

const (
	actionInsert = 10
	nilAction    = 12
	tsWindowMS   = 10_000_000
)

// Generator синтезирует строки channel_txn для одного воркера.
// Не потокобезопасен: каждый воркер владеет своим экземпляром.
type Generator struct {
	workerID  int
	locDetail string
	startTS   int64
	faker     *gofakeit.Faker
}

// New создает генератор для воркера с заданным идентификатором.
func New(workerID int) *Generator {
	return &Generator{
		workerID:  workerID,
		locDetail: fmt.Sprintf("ARCC%04d", workerID),
		startTS:   time.Now().UnixMilli(),
		faker:     gofakeit.New(0),
	}
}

// txnMessage - полезная нагрузка колонки msg
type txnMessage struct {
	Entity           bool    `json:"entity"`
	EntityLastName   string  `json:"entityIndividualLastName"`
	FirstName        string  `json:"individualFirstName"`
	City             string  `json:"city"`
	CountryCode      string  `json:"countryCode"`
	StateCode        string  `json:"stateCode"`
	StreetAddress    string  `json:"streetAddress"`
	ZipCode          string  `json:"zipCode"`
	PhoneNumber      string  `json:"phoneNumber"`
	TinIssuerCountry string  `json:"tinIssuerCountry"`
	IDType           int     `json:"idType"`
	IDIssuerCountry  string  `json:"idIssuerCountry"`
	IDIssuerState    string  `json:"idIssuerState"`
	IDNumber         string  `json:"idNumber"`
	DOB              int     `json:"dob"`
	UID              string  `json:"uid"`
	Location         string  `json:"location"`
	TS               int64   `json:"ts"`
	CtrID            int     `json:"ctrId"`
	Amount           float64 `json:"amount"`
	EmployeeID       string  `json:"employeeId"`
}

// NextRow возвращает значения одной синтетической строки
// в порядке Columns(). Никогда не ошибается.
func (g *Generator) NextRow() []any {
	uid := uuid.NewString()
	ts := g.startTS + int64(g.faker.IntRange(0, tsWindowMS))

	return []any{
		g.workerID,
		uid,
		g.locDetail,
		ts,
		g.message(uid, ts),
		actionInsert,
		g.faker.IntRange(7000, 999999),
		nilAction,
		nil,
	}
}

func (g *Generator) message(uid string, ts int64) string {
	msg := txnMessage{
		EntityLastName:   g.faker.LastName(),
		FirstName:        g.faker.FirstName(),
		City:             g.faker.City(),
		CountryCode:      "US",
		StateCode:        g.faker.StateAbr(),
		StreetAddress:    g.faker.Street(),
		ZipCode:          g.faker.Zip(),
		PhoneNumber:      fmt.Sprintf("%d", g.faker.IntRange(6_000_000_000, 9_999_999_999)),
		TinIssuerCountry: "US",
		IDType:           g.faker.IntRange(1, 9),
		IDIssuerCountry:  "US",
		IDIssuerState:    g.faker.StateAbr(),
		IDNumber:         fmt.Sprintf("%d", g.faker.IntRange(10_000_000, 99_999_999)),
		DOB:              g.faker.IntRange(19600101, 20051231),
		UID:              uid,
		Location:         g.locDetail,
		TS:               ts,
		CtrID:            g.faker.IntRange(10, 99),
		Amount:           float64(g.faker.IntRange(100_000, 9_999_999)) / 100,
		EmployeeID:       fmt.Sprintf("%d", g.faker.IntRange(40000, 49999)),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		// Структура сериализуема всегда, сюда не попадаем
		return "{}"
	}
	return string(data)
}
