package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gamevault/backoffice/config"
	"github.com/gamevault/backoffice/internal/domain/entity"
	"github.com/gamevault/backoffice/internal/domain/valueobject"
	"github.com/gamevault/backoffice/internal/infra/dependency"
	"github.com/gamevault/backoffice/internal/integration/persistence/model"
	"github.com/gamevault/backoffice/test/integration/mock"
)

const reportCachePattern = "financials:report:*"

var tags string

// featurePaths points at test/features from this package directory.
var featurePaths = []string{"../../features"}

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		Name: "backoffice-api",
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:      "pretty",
			Paths:       featurePaths,
			Tags:        tags,
			Concurrency: 1,
			Strict:      true,
			TestingT:    t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func TestFeaturePathsHoldFeatures(t *testing.T) {
	for _, path := range featurePaths {
		entries, err := os.ReadDir(path)
		if err != nil {
			t.Fatalf("feature path %s: %v", path, err)
		}
		found := false
		for _, entry := range entries {
			if strings.HasSuffix(entry.Name(), ".feature") {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("feature path %s holds no .feature files", path)
		}
	}
}

type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	db       *mock.Db
	timeMock *mock.Time
	games    map[string]*entity.Game
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testClock = mock.NewTime()
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
		_ = os.Setenv("PRICING_CONFIG_FILE", "")
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:      fmt.Sprintf("http://localhost:%d", testServerPort),
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: testClock,
		db:       mock.NewDb(model.All()...),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the clock is frozen at "([^"]*)"$`, test.theClockIsFrozenAt)

	// Seed steps
	ctx.Given(`^the following games exist:$`, test.theFollowingGamesExist)
	ctx.Given(`^the following orders exist:$`, test.theFollowingOrdersExist)
	ctx.Given(`^the following completed buyings exist:$`, test.theFollowingCompletedBuyingsExist)
	ctx.Given(`^the following completed rentals exist:$`, test.theFollowingCompletedRentalsExist)
	ctx.Given(`^the following completed trades exist:$`, test.theFollowingCompletedTradesExist)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Cache steps
	ctx.Then(`^the report cache should contain (\d+) entr(?:y|ies)$`, test.theReportCacheShouldContainEntries)
	ctx.When(`^the report cache expires$`, test.theReportCacheExpires)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.games = make(map[string]*entity.Game)
	t.timeMock.SetCurrentTime(time.Now())

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) startServer() error {
	var startErr error
	serverInit.Do(func() {
		gin.SetMode(gin.TestMode)

		inj, err := dependency.NewInjector(config.Load(), testDB.DbConn, mock.NewRedis(), dependency.WithClock(testClock))
		if err != nil {
			startErr = err
			return
		}
		engine := inj.Router.Setup("test")

		go func() {
			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})
	if startErr != nil {
		return startErr
	}

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return errors.New("server did not become healthy")
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) theClockIsFrozenAt(value string) error {
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	t.timeMock.Freeze(at)
	return nil
}

// tableRows maps each data row of a gherkin table by its header cells.
func tableRows(table *godog.Table) ([]map[string]string, error) {
	if table == nil || len(table.Rows) < 1 {
		return nil, errors.New("table has no header")
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}
		rows = append(rows, values)
	}
	return rows, nil
}

func parseAmount(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}

func parseInt(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func parseDay(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	at, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &at, nil
}

func (t *testContext) game(title string) (*entity.Game, error) {
	game, ok := t.games[title]
	if !ok {
		return nil, fmt.Errorf("game %q was not seeded", title)
	}
	return game, nil
}

func (t *testContext) theFollowingGamesExist(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	for _, row := range rows {
		price, err := parseAmount(row["price"])
		if err != nil {
			return err
		}
		cost, err := parseAmount(row["cost"])
		if err != nil {
			return err
		}
		withCase, err := parseInt(row["stock_with_case"])
		if err != nil {
			return err
		}
		cartridgeOnly, err := parseInt(row["stock_cartridge_only"])
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		game := &entity.Game{
			ID:                 uuid.New(),
			Title:              row["title"],
			Platform:           row["platform"],
			Price:              price,
			CostPrice:          cost,
			StockWithCase:      withCase,
			StockCartridgeOnly: cartridgeOnly,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if sale := row["sale_price"]; sale != "" {
			salePrice, err := decimal.NewFromString(sale)
			if err != nil {
				return err
			}
			game.SalePrice = &salePrice
			game.IsOnSale = true
		}

		if err := t.db.DbConn.Create(model.GameFromEntity(game)).Error; err != nil {
			return err
		}
		t.games[game.Title] = game
	}
	return nil
}

func (t *testContext) theFollowingOrdersExist(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	for _, row := range rows {
		game, err := t.game(row["game"])
		if err != nil {
			return err
		}
		quantity, err := parseInt(row["quantity"])
		if err != nil {
			return err
		}
		unitPrice, err := parseAmount(row["unit_price"])
		if err != nil {
			return err
		}
		discount, err := parseAmount(row["discount"])
		if err != nil {
			return err
		}
		deliveryFee, err := parseAmount(row["delivery_fee"])
		if err != nil {
			return err
		}
		createdAt, err := parseDay(row["created_at"])
		if err != nil {
			return err
		}
		deliveredAt, err := parseDay(row["delivered_at"])
		if err != nil {
			return err
		}
		if createdAt == nil {
			createdAt = deliveredAt
		}
		if createdAt == nil {
			return errors.New("order needs created_at or delivered_at")
		}

		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		variant := entity.StockVariantWithCase
		if v := row["variant"]; v != "" {
			variant = entity.StockVariant(v)
		}
		status := entity.OrderStatusDelivered
		if s := row["status"]; s != "" {
			status = entity.OrderStatus(s)
		}

		order := &entity.Order{
			ID:             uuid.New(),
			Status:         status,
			Subtotal:       subtotal,
			DiscountAmount: discount,
			DeliveryFee:    deliveryFee,
			TotalAmount:    subtotal.Sub(discount).Add(deliveryFee),
			PaymentMethod:  row["payment_method"],
			Source:         row["source"],
			Items: []entity.OrderItem{{
				GameLine: entity.GameLine{
					GameID:    game.ID,
					Title:     game.Title,
					Platform:  game.Platform,
					Quantity:  quantity,
					UnitPrice: unitPrice,
				},
				Variant: variant,
			}},
			DeliveredAt: deliveredAt,
			CreatedAt:   *createdAt,
		}

		if err := t.db.DbConn.Create(model.OrderFromEntity(order)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theFollowingCompletedBuyingsExist(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	for _, row := range rows {
		totalCost, err := parseAmount(row["total_cost"])
		if err != nil {
			return err
		}
		completedAt, err := parseDay(row["completed_at"])
		if err != nil {
			return err
		}
		if completedAt == nil {
			return errors.New("completed buying needs completed_at")
		}

		buying := &entity.Buying{
			ID:          uuid.New(),
			Status:      entity.BuyingStatusCompleted,
			TotalCost:   totalCost,
			CompletedAt: completedAt,
			CreatedAt:   *completedAt,
		}
		if supplier := row["supplier"]; supplier != "" {
			buying.SupplierName = &supplier
		}
		if title := row["game"]; title != "" {
			game, err := t.game(title)
			if err != nil {
				return err
			}
			buying.Items = []entity.GameLine{{GameID: game.ID, Title: game.Title, Platform: game.Platform, Quantity: 1, UnitPrice: totalCost}}
		}

		if err := t.db.DbConn.Create(model.BuyingFromEntity(buying)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theFollowingCompletedRentalsExist(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	for _, row := range rows {
		game, err := t.game(row["game"])
		if err != nil {
			return err
		}
		fee, err := parseAmount(row["rental_fee"])
		if err != nil {
			return err
		}
		days, err := parseInt(row["days"])
		if err != nil {
			return err
		}
		completedAt, err := parseDay(row["completed_at"])
		if err != nil {
			return err
		}
		if completedAt == nil {
			return errors.New("completed rental needs completed_at")
		}

		start := completedAt.AddDate(0, 0, -days)
		rental := &entity.Rental{
			ID:        uuid.New(),
			Status:    entity.RentalStatusCompleted,
			GameID:    game.ID,
			GameTitle: game.Title,
			Platform:  game.Platform,
			GamePrice: game.Price,
			Days:      days,
			RentalFee: fee,
			Deposit:   decimal.Max(decimal.Zero, game.Price.Sub(fee)),
			StartDate: start,
			EndDate:   *completedAt,
			UpdatedAt: completedAt,
			CreatedAt: start,
		}

		if err := t.db.DbConn.Create(model.RentalFromEntity(rental)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theFollowingCompletedTradesExist(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	for _, row := range rows {
		given, err := t.game(row["given"])
		if err != nil {
			return err
		}
		received, err := t.game(row["received"])
		if err != nil {
			return err
		}
		cash, err := parseAmount(row["cash_difference"])
		if err != nil {
			return err
		}
		fee, err := parseAmount(row["trade_fee"])
		if err != nil {
			return err
		}
		completedAt, err := parseDay(row["completed_at"])
		if err != nil {
			return err
		}
		if completedAt == nil {
			return errors.New("completed trade needs completed_at")
		}

		tradeType := valueobject.TradeTypeTradeUp
		if cash.IsZero() {
			tradeType = valueobject.TradeTypeEven
		}

		trade := &entity.Trade{
			ID:             uuid.New(),
			Status:         entity.TradeStatusCompleted,
			GamesGiven:     []entity.GameLine{{GameID: given.ID, Title: given.Title, Platform: given.Platform, Quantity: 1, UnitPrice: given.Price}},
			GamesReceived:  []entity.GameLine{{GameID: received.ID, Title: received.Title, Platform: received.Platform, Quantity: 1, UnitPrice: received.Price}},
			CashDifference: cash,
			TradeFee:       fee,
			TradeType:      tradeType,
			CompletedAt:    completedAt,
			CreatedAt:      *completedAt,
		}

		if err := t.db.DbConn.Create(model.TradeFromEntity(trade)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

// replacePlaceholders swaps {{game:<title>}} for the seeded game id.
func (t *testContext) replacePlaceholders(content string) string {
	for title, game := range t.games {
		content = strings.ReplaceAll(content, "{{game:"+title+"}}", game.ID.String())
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}

	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	_, err := t.jsonBody()
	return err
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) newModelSlice(table string) (any, error) {
	m, ok := t.db.GetModel(table)
	if !ok {
		return nil, fmt.Errorf("table '%s' not found in models", table)
	}
	sliceType := reflect.SliceOf(reflect.TypeOf(m).Elem())
	slicePtr := reflect.New(sliceType)
	slicePtr.Elem().Set(reflect.MakeSlice(sliceType, 0, 0))
	return slicePtr.Interface(), nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	rows, err := t.newModelSlice(table)
	if err != nil {
		return err
	}

	if err := t.db.DbConn.Unscoped().Find(rows).Error; err != nil {
		return err
	}

	count := reflect.ValueOf(rows).Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}

	rows, err := t.newModelSlice(table)
	if err != nil {
		return err
	}

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	if err := query.Find(rows).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	count := reflect.ValueOf(rows).Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theReportCacheShouldContainEntries(count int) error {
	keys, err := mock.KeysMatching(mock.NewRedis(), reportCachePattern)
	if err != nil {
		return err
	}
	if len(keys) != count {
		return fmt.Errorf("expected %d cached reports, got %d (%v)", count, len(keys), keys)
	}
	return nil
}

func (t *testContext) theReportCacheExpires() error {
	mock.FastForward(time.Hour)
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	var field any = objectMap
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
