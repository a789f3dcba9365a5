package dispatching

import (
	"context"
	"time"

	"github.com/vfg2006/campaign-ledger-api/internal/domain"
	"github.com/vfg2006/campaign-ledger-api/pkg/utils"
)

const (
	defaultReportDays = 30
	weeklyReportDays  = 7
)

func (s *Service) generateReportData(ctx context.Context, params Params) (any, error) {
	return s.buildReport(ctx, "generate_report_data", params, defaultReportDays)
}

// generateWeeklySummary é generate_report_data com janela default de 7 dias
func (s *Service) generateWeeklySummary(ctx context.Context, params Params) (any, error) {
	return s.buildReport(ctx, "generate_weekly_summary", params, weeklyReportDays)
}

func (s *Service) buildReport(ctx context.Context, action string, params Params, defaultDays int) (any, error) {
	start, end, err := reportRange(params, action, defaultDays)
	if err != nil {
		return nil, err
	}

	report := domain.ReportData{
		PeriodStart: start,
		PeriodEnd:   end,
	}

	report.CampaignsCreated, err = s.campaigns.CountCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, newStoreError(action, err)
	}

	report.CampaignsCompleted, err = s.campaigns.CountCompletedBetween(ctx, start, end)
	if err != nil {
		return nil, newStoreError(action, err)
	}

	report.MetricsTracked, err = s.metrics.CountBetween(ctx, start, end)
	if err != nil {
		return nil, newStoreError(action, err)
	}

	report.PatternsLearned, err = s.patterns.CountBetween(ctx, start, end)
	if err != nil {
		return nil, newStoreError(action, err)
	}

	return report, nil
}

// reportRange resolve o intervalo opcional; o default é os últimos
// defaultDays dias terminando agora
func reportRange(params Params, action string, defaultDays int) (time.Time, time.Time, error) {
	start, err := utils.ParseDate(optionalString(params, startDateKeys))
	if err != nil {
		return time.Time{}, time.Time{}, newValidation(action, "start_date", "invalid start_date: "+err.Error())
	}

	end, err := utils.ParseDate(optionalString(params, endDateKeys))
	if err != nil {
		return time.Time{}, time.Time{}, newValidation(action, "end_date", "invalid end_date: "+err.Error())
	}

	endTime := time.Now().UTC()
	if end != nil {
		endTime = *end
	}

	startTime := endTime.AddDate(0, 0, -defaultDays)
	if start != nil {
		startTime = *start
	}

	return startTime, endTime, nil
}
