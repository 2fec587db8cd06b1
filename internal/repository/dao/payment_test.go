package dao

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"gitee.com/flycash/payment-processor/internal/errs"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PaymentDAOTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	dao  PaymentDAO
}

func TestPaymentDAOTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(PaymentDAOTestSuite))
}

func (s *PaymentDAOTestSuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.mock = mock
	s.dao = NewPaymentDAO(gdb)
}

func (s *PaymentDAOTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PaymentDAOTestSuite) TestCreate() {
	requestedAt := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	data := Payment{
		CorrelationID: "4a7901b8-7d26-4d9d-aa19-4dc1c7cf60b3",
		Amount:        decimal.RequireFromString("19.90"),
		RequestedAt:   requestedAt,
	}
	s.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `payments`")).
		WithArgs(data.CorrelationID, sqlmock.AnyArg(), requestedAt, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	created, err := s.dao.Create(s.T().Context(), data)
	s.NoError(err)
	s.Equal(int64(7), created.ID)
	s.Equal(data.CorrelationID, created.CorrelationID)
	s.Positive(created.Ctime)
}

func (s *PaymentDAOTestSuite) TestCreateDuplicate() {
	s.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `payments`")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'uk_correlation_id'"})

	_, err := s.dao.Create(s.T().Context(), Payment{
		CorrelationID: "4a7901b8-7d26-4d9d-aa19-4dc1c7cf60b3",
		Amount:        decimal.NewFromInt(1),
		RequestedAt:   time.Now(),
	})
	s.ErrorIs(err, errs.ErrPaymentDuplicate)
}

func (s *PaymentDAOTestSuite) TestCreateOtherError() {
	boom := errors.New("connection reset")
	s.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `payments`")).
		WillReturnError(boom)

	_, err := s.dao.Create(s.T().Context(), Payment{
		CorrelationID: "4a7901b8-7d26-4d9d-aa19-4dc1c7cf60b3",
		Amount:        decimal.NewFromInt(1),
		RequestedAt:   time.Now(),
	})
	s.ErrorIs(err, boom)
	s.NotErrorIs(err, errs.ErrPaymentDuplicate)
}

func (s *PaymentDAOTestSuite) TestFindByCorrelationID() {
	requestedAt := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "correlation_id", "amount", "requested_at", "ctime"}).
		AddRow(3, "4a7901b8-7d26-4d9d-aa19-4dc1c7cf60b3", "12.35", requestedAt, 1)
	s.mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `payments` WHERE correlation_id = ?")).
		WillReturnRows(rows)

	p, err := s.dao.FindByCorrelationID(s.T().Context(), "4a7901b8-7d26-4d9d-aa19-4dc1c7cf60b3")
	s.NoError(err)
	s.Equal(int64(3), p.ID)
	s.True(decimal.RequireFromString("12.35").Equal(p.Amount))
	s.True(requestedAt.Equal(p.RequestedAt))
}

func (s *PaymentDAOTestSuite) TestFindByCorrelationIDNotFound() {
	s.mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `payments` WHERE correlation_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "correlation_id", "amount", "requested_at", "ctime"}))

	_, err := s.dao.FindByCorrelationID(s.T().Context(), "4a7901b8-7d26-4d9d-aa19-4dc1c7cf60b3")
	s.ErrorIs(err, errs.ErrPaymentNotFound)
}

func (s *PaymentDAOTestSuite) TestAggregate() {
	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)
	testCases := []struct {
		name     string
		from     *time.Time
		to       *time.Time
		query    string
		args     []driver.Value
		rows     *sqlmock.Rows
		wantReqs int64
		wantAmt  string
	}{
		{
			name:     "两个边界都有",
			from:     &from,
			to:       &to,
			query:    "SELECT COUNT(`id`) AS total_requests, COALESCE(SUM(`amount`), 0) AS total_amount FROM `payments` WHERE `requested_at` BETWEEN ? AND ?",
			args:     []driver.Value{from, to},
			rows:     sqlmock.NewRows([]string{"total_requests", "total_amount"}).AddRow(2, "30.00"),
			wantReqs: 2,
			wantAmt:  "30",
		},
		{
			name:     "缺少 to 时不过滤",
			from:     &from,
			query:    "SELECT COUNT(`id`) AS total_requests, COALESCE(SUM(`amount`), 0) AS total_amount FROM `payments`",
			rows:     sqlmock.NewRows([]string{"total_requests", "total_amount"}).AddRow(5, "100.10"),
			wantReqs: 5,
			wantAmt:  "100.1",
		},
		{
			name:     "空表",
			query:    "SELECT COUNT(`id`) AS total_requests, COALESCE(SUM(`amount`), 0) AS total_amount FROM `payments`",
			rows:     sqlmock.NewRows([]string{"total_requests", "total_amount"}).AddRow(0, "0"),
			wantReqs: 0,
			wantAmt:  "0",
		},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			exp := s.mock.ExpectQuery(regexp.QuoteMeta(tc.query) + "$")
			if tc.args != nil {
				exp = exp.WithArgs(tc.args...)
			}
			exp.WillReturnRows(tc.rows)

			agg, err := s.dao.Aggregate(s.T().Context(), tc.from, tc.to)
			s.NoError(err)
			s.Equal(tc.wantReqs, agg.TotalRequests)
			s.True(decimal.RequireFromString(tc.wantAmt).Equal(agg.TotalAmount), agg.TotalAmount.String())
		})
	}
}

func (s *PaymentDAOTestSuite) TestTruncate() {
	s.mock.ExpectExec(regexp.QuoteMeta("TRUNCATE TABLE `payments`")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.NoError(s.dao.Truncate(s.T().Context()))
}
