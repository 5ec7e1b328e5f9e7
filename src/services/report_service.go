package services

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/edvhesabat/backend/src/database"
	"github.com/username/edvhesabat/backend/src/logger"
	"github.com/username/edvhesabat/backend/src/models"
	"github.com/username/edvhesabat/backend/src/parsers"
	"github.com/username/edvhesabat/backend/src/processors"
	"github.com/username/edvhesabat/backend/src/render"
)

const (
	ckBatchRecords     = "res_batch_records_%s"
	ckMonthlyReport    = "res_monthly_report_%s_%d_%d"
	ckYearlyReport     = "res_yearly_report_%s_%d"
	ckBalanceReport    = "agg_balance_report_%s"
	ckCounterpartyList = "agg_counterparty_statements_%s"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type reportServiceImpl struct {
	ratePolicy  *processors.RatePolicy
	aggregator  *processors.PeriodAggregator
	reconciler  *processors.ReconciliationProcessor
	balances    *processors.BalanceProcessor
	reportCache *cache.Cache
}

func NewReportService(
	ratePolicy *processors.RatePolicy,
	reconciler *processors.ReconciliationProcessor,
	reportCache *cache.Cache,
) ReportService {
	return &reportServiceImpl{
		ratePolicy:  ratePolicy,
		aggregator:  processors.NewPeriodAggregator(),
		reconciler:  reconciler,
		balances:    processors.NewBalanceProcessor(),
		reportCache: reportCache,
	}
}

// ProcessUpload parses a source stream into canonical records and persists
// them as a new write-once batch. Malformed rows are dropped and counted;
// they never abort the load.
func (s *reportServiceImpl) ProcessUpload(fileReader io.Reader, source string) (*UploadResult, error) {
	overallStartTime := time.Now()
	logger.L.Info("ProcessUpload START", "source", source)

	parser, err := parsers.GetParser(source, s.ratePolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	records, skipReport, err := parser.Parse(fileReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	// The amount invariant must hold for every record entering storage;
	// a violation here is a rate-policy defect, not bad input.
	for _, r := range records {
		if err := r.CheckAmountInvariant(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
	}

	batchID := uuid.NewString()
	if err := database.InsertBatch(batchID, source, records, skipReport); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	s.invalidateBatchCache(batchID)

	logger.L.Info("ProcessUpload END",
		"batchID", batchID,
		"loaded", skipReport.Loaded,
		"skipped", skipReport.Skipped(),
		"duration", time.Since(overallStartTime))

	return &UploadResult{
		BatchID:    batchID,
		Source:     source,
		SkipReport: skipReport,
	}, nil
}

// invalidateBatchCache clears every cached view of a batch. Batches are
// write-once, so this only matters when an ID is reused in tests.
func (s *reportServiceImpl) invalidateBatchCache(batchID string) {
	keysToDelete := []string{
		fmt.Sprintf(ckBatchRecords, batchID),
		fmt.Sprintf(ckBalanceReport, batchID),
		fmt.Sprintf(ckCounterpartyList, batchID),
	}
	for _, key := range keysToDelete {
		s.reportCache.Delete(key)
	}
}

// batchRecords loads (and caches) the canonical records of a batch.
func (s *reportServiceImpl) batchRecords(batchID string) ([]models.EDVRecord, error) {
	cacheKey := fmt.Sprintf(ckBatchRecords, batchID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for batch records", "batchID", batchID)
		return cached.([]models.EDVRecord), nil
	}

	records, err := database.FetchBatchRecords(batchID)
	if err != nil {
		return nil, err
	}
	s.reportCache.Set(cacheKey, records, DefaultCacheExpiration)
	return records, nil
}

func (s *reportServiceImpl) MonthlyReport(batchID string, year, month int) (*models.MonthlyReport, error) {
	cacheKey := fmt.Sprintf(ckMonthlyReport, batchID, year, month)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*models.MonthlyReport), nil
	}

	period, err := models.MonthPeriod(year, month)
	if err != nil {
		return nil, err
	}
	records, err := s.batchRecords(batchID)
	if err != nil {
		return nil, err
	}

	totals := s.aggregator.Aggregate(records, period)
	result, err := s.reconciler.Reconcile(totals, period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	report := &models.MonthlyReport{
		Year:   year,
		Month:  month,
		Totals: totals,
		Result: result,
	}
	s.reportCache.Set(cacheKey, report, DefaultCacheExpiration)
	return report, nil
}

func (s *reportServiceImpl) YearlyReport(batchID string, year int) (*models.YearlyReport, error) {
	cacheKey := fmt.Sprintf(ckYearlyReport, batchID, year)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*models.YearlyReport), nil
	}

	records, err := s.batchRecords(batchID)
	if err != nil {
		return nil, err
	}
	report, err := s.reconciler.ReconcileYear(records, year)
	if err != nil {
		return nil, err
	}
	s.reportCache.Set(cacheKey, &report, DefaultCacheExpiration)
	return &report, nil
}

func (s *reportServiceImpl) PeriodReport(batchID string, period models.Period) (*models.ReconciliationResult, error) {
	records, err := s.batchRecords(batchID)
	if err != nil {
		return nil, err
	}
	totals := s.aggregator.Aggregate(records, period)
	result, err := s.reconciler.Reconcile(totals, period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}
	return &result, nil
}

func (s *reportServiceImpl) Declaration(batchID string, year, month int, voen string) (string, error) {
	report, err := s.MonthlyReport(batchID, year, month)
	if err != nil {
		return "", err
	}
	return render.Declaration(report, voen), nil
}

func (s *reportServiceImpl) BalanceReport(batchID string) (*models.BalanceReport, error) {
	cacheKey := fmt.Sprintf(ckBalanceReport, batchID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*models.BalanceReport), nil
	}

	records, err := s.batchRecords(batchID)
	if err != nil {
		return nil, err
	}
	report := s.balances.BalanceReport(records)
	s.reportCache.Set(cacheKey, &report, DefaultCacheExpiration)
	return &report, nil
}

func (s *reportServiceImpl) CounterpartyStatements(batchID string) ([]models.CounterpartyStatement, error) {
	cacheKey := fmt.Sprintf(ckCounterpartyList, batchID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.([]models.CounterpartyStatement), nil
	}

	records, err := s.batchRecords(batchID)
	if err != nil {
		return nil, err
	}
	statements := s.balances.CounterpartyStatements(records)
	s.reportCache.Set(cacheKey, statements, DefaultCacheExpiration)
	return statements, nil
}

func (s *reportServiceImpl) CounterpartyStatement(batchID, voen string) (*models.CounterpartyStatement, error) {
	records, err := s.batchRecords(batchID)
	if err != nil {
		return nil, err
	}
	statement, found := s.balances.StatementFor(records, voen)
	if !found {
		return nil, fmt.Errorf("no activity with VÖEN %s in batch %s", voen, batchID)
	}
	return &statement, nil
}

func (s *reportServiceImpl) BatchInfo(batchID string) (*models.BatchInfo, error) {
	info, err := database.GetBatchInfo(batchID)
	if err != nil {
		return nil, err
	}
	return &info, nil
}
