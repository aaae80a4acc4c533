package service

import (
	"context"
	"time"

	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/internal/repository"
	"go.uber.org/zap"
)

const timestampLayout = "2006-01-02 15:04:05"

type StatusService interface {
	Report(ctx context.Context) model.StatusReport
}

type statusService struct {
	repo   repository.StatusRepository
	host   string
	dbName string
	now    func() time.Time
}

func NewStatusService(repo repository.StatusRepository, host, dbName string) StatusService {
	return &statusService{repo: repo, host: host, dbName: dbName, now: time.Now}
}

// Report never fails: connection problems are described in the report.
func (s *statusService) Report(ctx context.Context) model.StatusReport {
	report := model.StatusReport{
		Status:    "unknown",
		Timestamp: s.now().Format(timestampLayout),
		Database: model.DatabaseInfo{
			Host:       s.host,
			Name:       s.dbName,
			Connection: "untested",
		},
		Tables: []model.TableInfo{},
	}

	if err := s.repo.Ping(ctx); err != nil {
		zap.L().Warn("Database status check failed", zap.Error(err))
		report.Status = "error"
		report.Message = "Database connection failed: " + err.Error()
		report.Database.Connection = "failed"
		return report
	}

	report.Status = "success"
	report.Message = "Connected to database successfully"
	report.Database.Connection = "connected"

	tables, err := s.repo.Tables(ctx)
	if err != nil {
		zap.L().Warn("Listing tables failed", zap.Error(err))
		report.Message = "Connected to database, but listing tables failed: " + err.Error()
		return report
	}
	report.Tables = tables
	return report
}
