package summary

import (
	"errors"
	"testing"
	"time"

	"gitee.com/flycash/payment-processor/internal/domain"
	"gitee.com/flycash/payment-processor/internal/errs"
	repomocks "gitee.com/flycash/payment-processor/internal/repository/mocks"
	"github.com/ecodeclub/ekit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestService_Summarize(t *testing.T) {
	t.Parallel()
	rate := FeeRate(decimal.RequireFromString("0.05"))
	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		from      *time.Time
		to        *time.Time
		agg       domain.PaymentAggregate
		wantReqs  int64
		wantTotal string
		wantFee   string
	}{
		{
			name:      "没有记录",
			from:      &from,
			to:        &to,
			agg:       domain.PaymentAggregate{TotalAmount: decimal.Zero},
			wantTotal: "0",
			wantFee:   "0",
		},
		{
			name:      "手续费等于总额乘以费率",
			from:      &from,
			to:        &to,
			agg:       domain.PaymentAggregate{TotalRequests: 3, TotalAmount: decimal.RequireFromString("30.30")},
			wantReqs:  3,
			wantTotal: "30.30",
			wantFee:   "1.515",
		},
		{
			name:      "只有一个边界时统计全部",
			from:      ekit.ToPtr(from),
			agg:       domain.PaymentAggregate{TotalRequests: 10, TotalAmount: decimal.RequireFromString("100")},
			wantReqs:  10,
			wantTotal: "100",
			wantFee:   "5",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			r := repomocks.NewMockPaymentRepository(ctrl)
			r.EXPECT().Aggregate(gomock.Any(), tc.from, tc.to).Return(tc.agg, nil)

			got, err := NewService(r, rate).Summarize(t.Context(), tc.from, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.wantReqs, got.TotalRequests)
			assert.True(t, decimal.RequireFromString(tc.wantTotal).Equal(got.TotalAmount))
			// 不做额外的舍入
			assert.True(t, decimal.RequireFromString(tc.wantFee).Equal(got.TotalFee), got.TotalFee.String())
			assert.True(t, decimal.Decimal(rate).Equal(got.FeePerTransaction))
		})
	}
}

func TestService_SummarizeStorageFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r := repomocks.NewMockPaymentRepository(ctrl)
	r.EXPECT().Aggregate(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.PaymentAggregate{}, errors.New("too many connections"))

	_, err := NewService(r, FeeRate(decimal.RequireFromString("0.05"))).Summarize(t.Context(), nil, nil)
	assert.ErrorIs(t, err, errs.ErrStorageFailure)
}
