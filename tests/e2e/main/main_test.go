package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/internal/fixture"
	"goldenorders/internal/service"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type E2ETestSuite struct {
	suite.Suite

	kafkaWriter *kafka.Writer
	httpClient  *http.Client
	baseURL     string
	domain      string
}

func (s *E2ETestSuite) SetupSuite() {
	kafkaBrokers := getEnvOrDefault("KAFKA_BROKERS", "localhost:9092")
	hostport := net.JoinHostPort(getEnvOrDefault("APP_HOST", "localhost"), getEnvOrDefault("APP_PORT", "8080"))
	s.baseURL = "http://" + hostport
	s.domain = getEnvOrDefault("AUTH_CORPORATE_DOMAIN", "goldenpr.com.br")

	s.kafkaWriter = &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(kafkaBrokers, ",")...),
		Topic:                  getEnvOrDefault("KAFKA_TOPIC", "orders-intake"),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	s.httpClient = &http.Client{
		Timeout: 10 * time.Second,
	}

	s.waitForApp()
}

func (s *E2ETestSuite) waitForApp() {
	const maxRetries = 30
	const retryDelay = 2 * time.Second

	for i := range maxRetries {
		resp, err := s.do(http.MethodGet, "/health", "", nil)
		if err != nil {
			s.T().Logf("Health check failed (attempt %d/%d): %v", i+1, maxRetries, err)
			time.Sleep(retryDelay)
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			s.T().Log("App is healthy")
			return
		}
		s.T().Logf("App health check status %d (attempt %d/%d)", resp.StatusCode, i+1, maxRetries)
		time.Sleep(retryDelay)
	}
	s.T().Fatalf("App did not become healthy after %d attempts", maxRetries)
}

func (s *E2ETestSuite) TearDownSuite() {
	if s.kafkaWriter != nil {
		s.kafkaWriter.Close()
	}
}

func (s *E2ETestSuite) do(method, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, s.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.httpClient.Do(req)
}

// signIn registers a fresh corporate account and returns its session token.
func (s *E2ETestSuite) signIn() (string, string) {
	email := fmt.Sprintf("e2e-%s@%s", strings.ToLower(gofakeit.LetterN(8)), s.domain)
	creds := map[string]string{"email": email, "password": "senha-e2e-123"}

	resp, err := s.do(http.MethodPost, "/api/v1/auth/signup", "", creds)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp, err = s.do(http.MethodPost, "/api/v1/auth/signin", "", creds)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var result service.SignInResult
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&result))
	s.Require().NotEmpty(result.Token)
	return email, result.Token
}

func (s *E2ETestSuite) TestTotalsArePublic() {
	draft := fixture.Order("ninguem@"+s.domain, time.Now())

	resp, err := s.do(http.MethodPost, "/api/v1/orders/totals", "", draft)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var priced entity.Order
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&priced))

	want := decimal.Zero
	for _, item := range draft.Items {
		want = want.Add(item.Quantity.Mul(item.UnitPrice))
	}
	s.Require().True(want.Equal(priced.GlobalValue1), "%s != %s", want, priced.GlobalValue1)
}

func (s *E2ETestSuite) TestOrderFlow() {
	email, token := s.signIn()

	order := fixture.Order(email, time.Now())
	order.ID = fmt.Sprintf("PED-E2E%06d", gofakeit.Number(0, 999999))

	orderBytes, err := json.Marshal(order)
	s.Require().NoError(err)

	err = s.kafkaWriter.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(order.ID),
			Value: orderBytes,
		},
	)
	s.Require().NoError(err, "Failed to write message to Kafka")

	var responseOrder entity.Order
	s.Require().Eventually(func() bool {
		resp, err := s.do(http.MethodGet, "/api/v1/orders/"+order.ID, token, nil)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return false
		}
		return json.NewDecoder(resp.Body).Decode(&responseOrder) == nil
	}, 30*time.Second, 500*time.Millisecond, "order never reached the API")

	require.Equal(s.T(), order.ID, responseOrder.ID)
	require.Equal(s.T(), email, responseOrder.CreatedBy)
	require.Equal(s.T(), order.Customer.Name, responseOrder.Customer.Name)
	require.Len(s.T(), responseOrder.Items, len(order.Items))

	resp, err := s.do(http.MethodGet, "/api/v1/orders/"+order.ID+"/xlsx", token, nil)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().Equal(service.ContentTypeXLSX, resp.Header.Get("Content-Type"))

	resp, err = s.do(http.MethodPost, "/api/v1/orders/"+order.ID+"/acceptance", "", map[string]any{
		"signer_name":     "Representante Legal",
		"signer_document": "529.982.247-25",
		"signature":       "Representante Legal",
		"agreed":          true,
	})
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var receipt entity.AcceptanceReceipt
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&receipt))
	s.Require().NotZero(receipt.LogID)
	s.Require().True(strings.HasPrefix(receipt.IntegrityToken, "SHA."), receipt.IntegrityToken)
}

func (s *E2ETestSuite) TestOrdersRequireSession() {
	resp, err := s.do(http.MethodGet, "/api/v1/orders", "", nil)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func TestE2E(t *testing.T) {
	if os.Getenv("E2E_TEST") == "" {
		t.Skip("Skipping E2E test; set E2E_TEST to run.")
	}
	suite.Run(t, new(E2ETestSuite))
}
