package application

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/openkraft/localelint/internal/domain"
)

// CheckRequest carries per-run overrides. Empty fields fall back to the
// project configuration.
type CheckRequest struct {
	// Files lists explicit candidates. It is honored when FilesSet is true,
	// even if empty.
	Files    []string
	FilesSet bool

	// Since limits candidates to files changed between this revision and HEAD.
	Since string

	Reference string
	Dir       string
	Out       string
}

// CheckService orchestrates a validation run:
// load config → read reference → enumerate candidates → validate each → aggregate → persist.
type CheckService struct {
	configLoader domain.ConfigLoader
	source       domain.DocumentSource
	parsers      domain.ParserRegistry
	store        domain.ReportStore
	history      domain.RunHistory
	changes      domain.ChangeDetector
	logger       *zap.Logger
	now          func() time.Time
}

// CheckOption configures optional collaborators of a CheckService.
type CheckOption func(*CheckService)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) CheckOption {
	return func(s *CheckService) { s.logger = l }
}

// WithHistory enables run history for projects that opt in.
func WithHistory(h domain.RunHistory) CheckOption {
	return func(s *CheckService) { s.history = h }
}

// WithChangeDetector enables Since and commit hashes in history.
func WithChangeDetector(c domain.ChangeDetector) CheckOption {
	return func(s *CheckService) { s.changes = c }
}

// WithClock overrides the time source used for history timestamps.
func WithClock(now func() time.Time) CheckOption {
	return func(s *CheckService) { s.now = now }
}

func NewCheckService(
	configLoader domain.ConfigLoader,
	source domain.DocumentSource,
	parsers domain.ParserRegistry,
	store domain.ReportStore,
	opts ...CheckOption,
) *CheckService {
	s := &CheckService{
		configLoader: configLoader,
		source:       source,
		parsers:      parsers,
		store:        store,
		logger:       zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check runs a full validation of the project at projectPath. The report is
// persisted on every path, including panics. The returned error is non-nil
// only when persisting the report failed.
func (s *CheckService) Check(projectPath string, req CheckRequest) (result *domain.RunResult, err error) {
	result = &domain.RunResult{Report: domain.NewRunReport()}

	resultsPath := resolvePath(projectPath, domain.DefaultResultsPath)
	if req.Out != "" {
		resultsPath = resolvePath(projectPath, req.Out)
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("validation run panicked", zap.Any("panic", r))
			result.Report = result.Report.WithError(domain.UnexpectedFailure(r))
		}
		s.logger.Debug("saving report", zap.String("path", resultsPath), zap.Bool("valid", result.Report.Valid))
		err = s.store.Save(resultsPath, result.Report)
	}()

	cfg, cfgErr := s.configLoader.Load(projectPath)
	if cfgErr != nil {
		result.Report = result.Report.WithError(domain.UnexpectedFailure(fmt.Errorf("loading config: %w", cfgErr)))
		return result, nil
	}
	cfg = applyOverrides(cfg, req)
	result.Config = cfg
	resultsPath = resolvePath(projectPath, cfg.ResultsPath)

	s.run(projectPath, req, result)
	s.record(projectPath, result)
	return result, nil
}

func applyOverrides(cfg domain.ProjectConfig, req CheckRequest) domain.ProjectConfig {
	if req.Reference != "" {
		cfg.Reference = req.Reference
	}
	if req.Dir != "" {
		cfg.TranslationsDir = req.Dir
	}
	if req.Out != "" {
		cfg.ResultsPath = req.Out
	}
	return cfg
}

func (s *CheckService) run(projectPath string, req CheckRequest, result *domain.RunResult) {
	cfg := result.Config
	result.Reference = filepath.Base(cfg.Reference)

	reference, fatal := s.loadReference(projectPath, cfg)
	if fatal != "" {
		s.logger.Warn("reference unusable", zap.String("reference", cfg.Reference), zap.String("reason", fatal))
		result.Report = result.Report.WithError(fatal)
		return
	}

	files, err := s.candidates(projectPath, req, cfg)
	if err != nil {
		result.Report = result.Report.WithError(domain.UnexpectedFailure(err))
		return
	}
	result.Files = files

	if len(files) == 0 {
		result.Report = result.Report.WithNotice(domain.MsgNothingToValidate)
		return
	}

	dir := resolvePath(projectPath, cfg.TranslationsDir)
	for _, id := range files {
		o := s.checkOne(id, filepath.Join(dir, filepath.FromSlash(id)), reference, cfg)
		s.logger.Debug("checked candidate", zap.String("file", id), zap.Bool("passed", o.Passed()))
		result.Outcomes = append(result.Outcomes, o)
	}

	result.Report = result.Report.Merge(domain.Aggregate(result.Reference, result.Outcomes))
}

// loadReference returns the reference mapping, or the fatal run-level message
// that ends the run.
func (s *CheckService) loadReference(projectPath string, cfg domain.ProjectConfig) (*domain.Mapping, string) {
	refID := filepath.Base(cfg.Reference)

	raw, err := s.source.Read(resolvePath(projectPath, cfg.Reference))
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, domain.ReferenceMissing(refID)
		}
		return nil, domain.UnexpectedFailure(fmt.Errorf("reading %s: %w", refID, err))
	}

	p, ok := s.parsers.ForFile(cfg.Reference)
	if !ok {
		return nil, domain.UnexpectedFailure(fmt.Errorf("no parser for %s", refID))
	}

	mapping, diag := domain.ParseReference(raw, p)
	if diag != nil {
		return nil, domain.ReferenceInvalid(refID, *diag)
	}
	return mapping, ""
}

// candidates resolves the candidate list by precedence: explicit files,
// then changes since a revision, then a sorted directory scan.
func (s *CheckService) candidates(projectPath string, req CheckRequest, cfg domain.ProjectConfig) ([]string, error) {
	if req.FilesSet {
		ids := make([]string, 0, len(req.Files))
		for _, f := range req.Files {
			ids = append(ids, candidateID(cfg.TranslationsDir, f))
		}
		return ids, nil
	}

	if req.Since != "" {
		if s.changes == nil {
			return nil, fmt.Errorf("change detection is not available")
		}
		files, err := s.changes.ChangedFiles(projectPath, req.Since, cfg.TranslationsDir, cfg.Extensions)
		if err != nil {
			return nil, fmt.Errorf("detecting changes since %s: %w", req.Since, err)
		}
		return files, nil
	}

	dir := resolvePath(projectPath, cfg.TranslationsDir)
	names, err := s.source.List(dir, cfg.Extensions)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", cfg.TranslationsDir, err)
	}

	// A reference stored among the translations is not its own candidate.
	refPath := filepath.Clean(resolvePath(projectPath, cfg.Reference))
	files := names[:0]
	for _, n := range names {
		if filepath.Join(dir, n) == refPath {
			continue
		}
		files = append(files, n)
	}
	return files, nil
}

func (s *CheckService) checkOne(id, fullPath string, reference *domain.Mapping, cfg domain.ProjectConfig) domain.Outcome {
	raw, err := s.source.Read(fullPath)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return domain.MissingDocument{File: id}
		}
		return domain.UnreadableDocument{File: id, Reason: err.Error()}
	}

	if cfg.RequireLocaleNames {
		if _, ok := domain.LocaleOf(id); !ok {
			return domain.InvalidLocaleName{File: id}
		}
	}

	p, ok := s.parsers.ForFile(id)
	if !ok {
		return domain.UnreadableDocument{File: id, Reason: fmt.Sprintf("unsupported document format %q", filepath.Ext(id))}
	}
	return domain.Validate(id, raw, reference, p)
}

// record appends a history entry when the project opted in. Failures are logged, never fatal.
func (s *CheckService) record(projectPath string, result *domain.RunResult) {
	if !result.Config.History || s.history == nil {
		return
	}

	entry := domain.RunEntry{
		Timestamp:    s.now().UTC().Format(time.RFC3339),
		Valid:        result.Report.Valid,
		FilesChecked: len(result.Files),
		ErrorCount:   len(result.Report.Errors),
	}
	if s.changes != nil {
		if hash, err := s.changes.CommitHash(projectPath); err == nil {
			entry.CommitHash = hash
		}
	}

	if err := s.history.Save(projectPath, entry); err != nil {
		s.logger.Warn("could not save run history", zap.Error(err))
	}
}

// ValidateDocument checks raw content against the project's reference without
// reading or writing any candidate on disk.
func (s *CheckService) ValidateDocument(projectPath, fileID string, raw []byte) (domain.OutcomeSummary, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return domain.OutcomeSummary{}, fmt.Errorf("loading config: %w", err)
	}

	reference, fatal := s.loadReference(projectPath, cfg)
	if fatal != "" {
		return domain.OutcomeSummary{}, errors.New(fatal)
	}

	p, ok := s.parsers.ForFile(fileID)
	if !ok {
		return domain.OutcomeSummary{}, fmt.Errorf("unsupported document format %q", filepath.Ext(fileID))
	}

	refID := filepath.Base(cfg.Reference)
	return domain.Summarize(refID, domain.Validate(fileID, raw, reference, p)), nil
}

// ReferenceKeys returns the reference document's keys in document order.
func (s *CheckService) ReferenceKeys(projectPath string) ([]string, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reference, fatal := s.loadReference(projectPath, cfg)
	if fatal != "" {
		return nil, errors.New(fatal)
	}
	return reference.Keys(), nil
}

// LastReport loads the most recently persisted report, or nil if none exists.
func (s *CheckService) LastReport(projectPath string) (*domain.RunReport, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		cfg = domain.DefaultConfig()
	}
	return s.store.Load(resolvePath(projectPath, cfg.ResultsPath))
}

// History returns the recorded run history, oldest first.
func (s *CheckService) History(projectPath string) ([]domain.RunEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Load(projectPath)
}
