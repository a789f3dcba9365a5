package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-ledger-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-ledger-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestReportSnapshotService_GenerateSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Mocks
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockMetricRepo := mocks.NewMockMetricRepository(ctrl)
	mockPatternRepo := mocks.NewMockPatternRepository(ctrl)
	mockSnapshotRepo := mocks.NewMockReportSnapshotRepository(ctrl)

	// Service
	service := &ReportSnapshotService{
		campaignRepo: mockCampaignRepo,
		metricRepo:   mockMetricRepo,
		patternRepo:  mockPatternRepo,
		snapshotRepo: mockSnapshotRepo,
		config: ReportSnapshotConfig{
			WindowDays: 7,
			Enabled:    true,
		},
	}

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, err error)
	}{
		{
			name: "Snapshot gerado com os agregados da janela",
			setup: func() {
				mockCampaignRepo.EXPECT().
					CountCreatedBetween(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(4, nil)
				mockCampaignRepo.EXPECT().
					CountCompletedBetween(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(2, nil)
				mockMetricRepo.EXPECT().
					CountBetween(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(120, nil)
				mockPatternRepo.EXPECT().
					CountBetween(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(1, nil)
				mockSnapshotRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, snapshot *domain.ReportSnapshot) error {
						assert.Equal(t, "7d", snapshot.WindowLabel)
						assert.Equal(t, 4, snapshot.Report.CampaignsCreated)
						assert.Equal(t, 2, snapshot.Report.CampaignsCompleted)
						assert.Equal(t, 120, snapshot.Report.MetricsTracked)
						assert.Equal(t, 1, snapshot.Report.PatternsLearned)

						window := snapshot.Report.PeriodEnd.Sub(snapshot.Report.PeriodStart)
						assert.Equal(t, 7*24*time.Hour, window)
						return nil
					})
			},
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
				assert.False(t, service.lastSuccessAt.IsZero())
			},
		},
		{
			name: "Falha de contagem interrompe sem persistir o snapshot",
			setup: func() {
				mockCampaignRepo.EXPECT().
					CountCreatedBetween(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(0, assert.AnError)
			},
			validate: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			err := service.GenerateSnapshot(context.Background())
			tt.validate(t, err)
		})
	}
}

func TestReportSnapshotService_GenerateSnapshot_AlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := &ReportSnapshotService{
		campaignRepo: mocks.NewMockCampaignRepository(ctrl),
		metricRepo:   mocks.NewMockMetricRepository(ctrl),
		patternRepo:  mocks.NewMockPatternRepository(ctrl),
		snapshotRepo: mocks.NewMockReportSnapshotRepository(ctrl),
		config:       ReportSnapshotConfig{WindowDays: 7},
		syncRunning:  true,
	}

	// Execução concorrente é recusada em silêncio, sem tocar os repositórios
	err := service.GenerateSnapshot(context.Background())
	assert.NoError(t, err)
}
