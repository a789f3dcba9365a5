package dispatching

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-ledger-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_GenerateReportData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)

	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)

	m.campaigns.EXPECT().CountCreatedBetween(gomock.Any(), start, end).Return(12, nil)
	m.campaigns.EXPECT().CountCompletedBetween(gomock.Any(), start, end).Return(5, nil)
	m.metrics.EXPECT().CountBetween(gomock.Any(), start, end).Return(340, nil)
	m.patterns.EXPECT().CountBetween(gomock.Any(), start, end).Return(3, nil)

	result, err := service.Dispatch(context.Background(), "generate_report_data", Params{
		"start_date": "2025-08-01",
		"end_date":   "2025-08-31",
	})
	assert.NoError(t, err)

	report := result.(domain.ReportData)
	assert.Equal(t, start, report.PeriodStart)
	assert.Equal(t, end, report.PeriodEnd)
	assert.Equal(t, 12, report.CampaignsCreated)
	assert.Equal(t, 5, report.CampaignsCompleted)
	assert.Equal(t, 340, report.MetricsTracked)
	assert.Equal(t, 3, report.PatternsLearned)
}

func TestService_GenerateWeeklySummary_DefaultWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)

	var capturedStart, capturedEnd time.Time
	m.campaigns.EXPECT().
		CountCreatedBetween(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, from, to time.Time) (int, error) {
			capturedStart, capturedEnd = from, to
			return 0, nil
		})
	m.campaigns.EXPECT().CountCompletedBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
	m.metrics.EXPECT().CountBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
	m.patterns.EXPECT().CountBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)

	_, err := service.Dispatch(context.Background(), "generate_weekly_summary", Params{})
	assert.NoError(t, err)

	// Sem datas explícitas a janela é os últimos 7 dias terminando agora
	assert.Equal(t, capturedStart, capturedEnd.AddDate(0, 0, -7))
	assert.WithinDuration(t, time.Now().UTC(), capturedEnd, time.Minute)
}

func TestService_GenerateReportData_InvalidDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _ := newTestService(ctrl)

	_, err := service.Dispatch(context.Background(), "generate_report_data", Params{
		"start_date": "31/08/2025",
	})
	assert.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, err.Error(), "start_date")
}
