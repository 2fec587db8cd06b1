//go:build e2e

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gitee.com/flycash/payment-processor/internal/api/web"
	"gitee.com/flycash/payment-processor/internal/api/web/middleware/auth"
	prodioc "gitee.com/flycash/payment-processor/internal/ioc"
	"gitee.com/flycash/payment-processor/internal/repository"
	"gitee.com/flycash/payment-processor/internal/repository/cache/local"
	"gitee.com/flycash/payment-processor/internal/repository/dao"
	"gitee.com/flycash/payment-processor/internal/service/payment"
	"gitee.com/flycash/payment-processor/internal/service/summary"
	testioc "gitee.com/flycash/payment-processor/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PaymentTestSuite struct {
	suite.Suite
	db     *egorm.Component
	server *gin.Engine
}

func TestPaymentTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentTestSuite))
}

func (s *PaymentTestSuite) SetupSuite() {
	s.db = testioc.InitDBAndTables()
	cfg := testioc.TestConfig()
	store := prodioc.InitSettingsStore(cfg)
	repo := repository.NewPaymentRepository(dao.NewPaymentDAO(s.db), local.NewDefaultPaymentCache(cfg.CacheTTL))
	paymentSvc := payment.NewService(repo)
	summarySvc := summary.NewService(repo, prodioc.InitFeeRate(cfg))
	s.server = prodioc.InitGinEngine(s.T().Context(), cfg, store,
		web.NewPaymentHandler(paymentSvc, store),
		web.NewAdminHandler(paymentSvc, summarySvc, store),
		prodioc.InitRegistry())
}

func (s *PaymentTestSuite) SetupTest() {
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/admin/purge-payments", nil).Code)
}

func (s *PaymentTestSuite) TearDownSuite() {
	s.NoError(s.db.Exec("TRUNCATE TABLE `payments`").Error)
}

func (s *PaymentTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.HeaderToken, "123")
	recorder := httptest.NewRecorder()
	s.server.ServeHTTP(recorder, req)
	return recorder
}

func (s *PaymentTestSuite) newPayment(amount string, requestedAt time.Time) map[string]any {
	return map[string]any{
		"correlationId": uuid.Must(uuid.NewV4()).String(),
		"amount":        json.Number(amount),
		"requestedAt":   requestedAt.Format(time.RFC3339Nano),
	}
}

func (s *PaymentTestSuite) TestIdempotence() {
	p := s.newPayment("12.345", time.Now().UTC())

	s.Equal(http.StatusOK, s.do(http.MethodPost, "/payments", p).Code)
	dup := s.do(http.MethodPost, "/payments", p)
	s.Equal(http.StatusUnprocessableEntity, dup.Code)
	s.Contains(dup.Body.String(), fmt.Sprintf("CorrelationId already exists: %s", p["correlationId"]))

	var count int64
	s.NoError(s.db.Model(&dao.Payment{}).Where("correlation_id = ?", p["correlationId"]).Count(&count).Error)
	s.Equal(int64(1), count)

	got := s.do(http.MethodGet, fmt.Sprintf("/payments/%s", p["correlationId"]), nil)
	s.Equal(http.StatusOK, got.Code)
	var vo web.PaymentVO
	s.NoError(json.Unmarshal(got.Body.Bytes(), &vo))
	s.Equal("12.35", vo.Amount.StringFixed(2))
}

func (s *PaymentTestSuite) TestConcurrentDuplicates() {
	p := s.newPayment("10", time.Now().UTC())
	const n = 10
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = s.do(http.MethodPost, "/payments", p).Code
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, code := range codes {
		if code == http.StatusOK {
			ok++
		} else {
			s.Equal(http.StatusUnprocessableEntity, code)
		}
	}
	s.Equal(1, ok)
}

func (s *PaymentTestSuite) TestSummary() {
	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	for i, amount := range []string{"10.00", "20.50", "30.25"} {
		p := s.newPayment(amount, base.Add(time.Duration(i)*time.Hour))
		s.Equal(http.StatusOK, s.do(http.MethodPost, "/payments", p).Code)
	}

	testCases := []struct {
		name      string
		query     string
		wantReqs  int64
		wantTotal string
	}{
		{name: "全部", query: "", wantReqs: 3, wantTotal: "60.75"},
		{name: "闭区间", query: "?from=2025-07-01T12:00:00Z&to=2025-07-01T13:00:00Z", wantReqs: 2, wantTotal: "30.5"},
		{name: "只有 from 时统计全部", query: "?from=2025-07-01T14:00:00Z", wantReqs: 3, wantTotal: "60.75"},
		{name: "范围内没有记录", query: "?from=2024-01-01T00:00:00Z&to=2024-01-02T00:00:00Z", wantReqs: 0, wantTotal: "0"},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			recorder := s.do(http.MethodGet, "/admin/payments-summary"+tc.query, nil)
			s.Equal(http.StatusOK, recorder.Code)
			var vo web.SummaryVO
			s.NoError(json.Unmarshal(recorder.Body.Bytes(), &vo))
			s.Equal(tc.wantReqs, vo.TotalRequests)
			s.True(decimal.RequireFromString(tc.wantTotal).Equal(vo.TotalAmount), vo.TotalAmount.String())
			s.True(vo.TotalAmount.Mul(decimal.RequireFromString("0.05")).Equal(vo.TotalFee))
			s.True(decimal.RequireFromString("0.05").Equal(vo.FeePerTransaction))
		})
	}
}

func (s *PaymentTestSuite) TestPurge() {
	p := s.newPayment("5", time.Now().UTC())
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/payments", p).Code)
	path := fmt.Sprintf("/payments/%s", p["correlationId"])
	s.Equal(http.StatusOK, s.do(http.MethodGet, path, nil).Code)

	s.Equal(http.StatusOK, s.do(http.MethodPost, "/admin/purge-payments", nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, path, nil).Code)
	// 清空之后可以重新写入
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/payments", p).Code)

	var first dao.Payment
	s.NoError(s.db.Order("id").First(&first).Error)
	s.Equal(int64(1), first.ID)
}

func (s *PaymentTestSuite) TestFailureFlag() {
	s.Equal(http.StatusOK, s.do(http.MethodPut, "/admin/configurations/failure", map[string]any{"failure": true}).Code)
	for i := 0; i < 3; i++ {
		s.Equal(http.StatusInternalServerError, s.do(http.MethodPost, "/payments", s.newPayment("1", time.Now().UTC())).Code)
	}
	s.Equal(http.StatusServiceUnavailable, s.do(http.MethodGet, "/payments/service-health", nil).Code)
	s.Equal(http.StatusOK, s.do(http.MethodPut, "/admin/configurations/failure", map[string]any{"failure": false}).Code)
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/payments", s.newPayment("1", time.Now().UTC())).Code)

	var count int64
	s.NoError(s.db.Model(&dao.Payment{}).Count(&count).Error)
	s.Equal(int64(1), count)
}
