package application_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/openkraft/localelint/internal/adapters/outbound/config"
	"github.com/openkraft/localelint/internal/adapters/outbound/history"
	"github.com/openkraft/localelint/internal/adapters/outbound/parser"
	"github.com/openkraft/localelint/internal/adapters/outbound/report"
	"github.com/openkraft/localelint/internal/adapters/outbound/source"
	"github.com/openkraft/localelint/internal/application"
	"github.com/openkraft/localelint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, opts ...application.CheckOption) *application.CheckService {
	t.Helper()
	opts = append([]application.CheckOption{application.WithLogger(zaptest.NewLogger(t))}, opts...)
	return application.NewCheckService(config.New(), source.New(), parser.NewRegistry(), report.New(), opts...)
}

// project lays out a reference at the root and candidates under translations/.
func project(t *testing.T, reference string, candidates map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	if reference != "" {
		writeFile(t, filepath.Join(dir, "en-US.json"), reference)
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "translations"), 0755))
	for name, content := range candidates {
		writeFile(t, filepath.Join(dir, "translations", name), content)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func persisted(t *testing.T, dir string) *domain.RunReport {
	t.Helper()
	r, err := report.New().Load(filepath.Join(dir, domain.DefaultResultsPath))
	require.NoError(t, err)
	require.NotNil(t, r, "report should have been persisted")
	return r
}

func TestCheck_MatchingKeysPass(t *testing.T) {
	dir := project(t, `{"a":"1","b":"2"}`, map[string]string{"fr.json": `{"a":"x","b":"y"}`})

	result, err := newService(t).Check(dir, application.CheckRequest{})
	require.NoError(t, err)
	assert.True(t, result.Report.Valid)
	assert.Empty(t, result.Report.Errors)
	assert.Equal(t, []string{"fr.json"}, result.Files)
	assert.Equal(t, result.Report, *persisted(t, dir))
}

func TestCheck_MissingKeyFails(t *testing.T) {
	dir := project(t, `{"a":"1","b":"2"}`, map[string]string{"fr.json": `{"a":"x"}`})

	result, err := newService(t).Check(dir, application.CheckRequest{})
	require.NoError(t, err)
	assert.False(t, result.Report.Valid)
	assert.Equal(t, []string{"Missing keys in fr.json: b"}, result.Report.Errors)
}

func TestCheck_ExtraKeyFails(t *testing.T) {
	dir := project(t, `{"a":"1"}`, map[string]string{"fr.json": `{"a":"x","c":"z"}`})

	result, err := newService(t).Check(dir, application.CheckRequest{})
	require.NoError(t, err)
	assert.False(t, result.Report.Valid)
	assert.Equal(t, []string{"Extra keys in fr.json that don't exist in en-US.json: c"}, result.Report.Errors)
}

func TestCheck_TruncatedCandidateIsParseFailure(t *testing.T) {
	dir := project(t, `{"a":"1"}`, map[string]string{"fr.json": `{"a": "x"`})

	result, err := newService(t).Check(dir, application.CheckRequest{})
	require.NoError(t, err)
	assert.False(t, result.Report.Valid)
	require.Len(t, result.Outcomes, 1)
	pf, ok := result.Outcomes[0].(domain.ParseFailure)
	require.True(t, ok)
	assert.NotEmpty(t, pf.Diagnostic.Message)
	assert.Contains(t, result.Report.Errors[0], "Invalid JSON in fr.json")
}

func TestCheck_NothingToValidateStaysValid(t *testing.T) {
	dir := project(t, `{"a":"1"}`, nil)

	result, err := newService(t).Check(dir, application.CheckRequest{})
	require.NoError(t, err)
	assert.True(t, result.Report.Valid)
	assert.Equal(t, []string{domain.MsgNothingToValidate}, result.Report.Errors)
	assert.True(t, persisted(t, dir).Valid)
}

func TestCheck_EmptyExplicitListIsNothingToValidate(t *testing.T) {
	dir := project(t, `{"a":"1"}`, map[string]string{"fr.json": `{}`})

	files, ok := application.FilesFromEnv(" , ,")
	require.True(t, ok)

	result, err := newService(t).Check(dir, application.CheckRequest{Files: files, FilesSet: true})
	require.NoError(t, err)
	assert.True(t, result.Report.Valid)
	assert.Equal(t, []string{domain.MsgNothingToValidate}, result.Report.Errors)
}

func TestCheck_MissingReferenceIsFatal(t *testing.T) {
	dir := project(t, "", map[string]string{"fr.json": `{"a":"x"}`})

	result, err := newService(t).Check(dir, application.CheckRequest{})
	require.NoError(t, err)
	assert.False(t, result.Report.Valid)
	assert.Equal(t, []string{"Base translation file (en-US.json) not found"}, result.Report.Errors)
	assert.Empty(t, result.Outcomes)
	assert.False(t, persisted(t, dir).Valid)
}

func TestCheck_ReferenceInvalidIsFatal(t *testing.T) {
	dir := project(t, "{\n  \"a\": \"1\"\n  \"b\": \"2\"\n}", map[string]string{"fr.json": `{"a":"x"}`})

	result, err := newService(t).Check(dir, application.CheckRequest{})
	require.NoError(t, err)
	assert.False(t, result.Report.Valid)
	require.Len(t, result.Report.Errors, 1)
	assert.Contains(t, result.Report.Errors[0], "Base translation file (en-US.json) is invalid: ")
	assert.Empty(t, result.Outcomes)
}

func TestCheck_OutcomesFollowCandidateOrder(t *testing.T) {
	dir := project(t, `{"a":"1"}`, map[string]string{
		"de.json": `{}`,
		"fr.json": `{"a":"x","z":"1"}`,
	})

	result, err := newService(t).Check(dir, application.CheckRequest{
		Files:    []string{"fr.json", "ghost.json", "de.json"},
		FilesSet: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Extra keys in fr.json that don't exist in en-US.json: z",
		"File not found: ghost.json",
		"Missing keys in de.json: a",
	}, result.Report.Errors)
}

func TestCheck_DirectoryScanIsSortedAndFiltered(t *testing.T) {
	dir := project(t, `{"a":"1"}`, map[string]string{
		"fr.json":   `{"a":"x"}`,
		"de.json":   `{"a":"x"}`,
		"notes.txt": "ignored",
	})

	result, err := newService(t).Check(dir, application.CheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"de.json", "fr.json"}, result.Files)
}

func TestCheck_RedundantDirPrefixIsStripped(t *testing.T) {
	dir := project(t, `{"a":"1"}`, map[string]string{"fr.json": `{"a":"x"}`})

	result, err := newService(t).Check(dir, application.CheckRequest{
		Files:    []string{"translations/fr.json"},
		FilesSet: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fr.json"}, result.Files)
	assert.True(t, result.Report.Valid)
}

func TestCheck_UnsupportedExtensionIsReported(t *testing.T) {
	dir := project(t, `{"a":"1"}`, map[string]string{"fr.txt": `{"a":"x"}`})

	result, err := newService(t).Check(dir, application.CheckRequest{Files: []string{"fr.txt"}, FilesSet: true})
	require.NoError(t, err)
	assert.False(t, result.Report.Valid)
	assert.Equal(t, []string{`Error reading file fr.txt: unsupported document format ".txt"`}, result.Report.Errors)
}

func TestCheck_YAMLCandidates(t *testing.T) {
	dir := project(t, `{"greeting":"hi","farewell":"bye"}`, map[string]string{
		"fr.yaml": "greeting: salut\n",
	})
	writeFile(t, filepath.Join(dir, ".localelint.yaml"), "extensions: [.json, .yaml]\n")

	result, err := newService(t).Check(dir, application.CheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Missing keys in fr.yaml: farewell"}, result.Report.Errors)
}

func TestCheck_RequireLocaleNames(t *testing.T) {
	dir := project(t, `{"a":"1"}`, map[string]string{
		"fr-FR.json":       `{"a":"x"}`,
		"strings.old.json": `{"a":"x"}`,
	})
	writeFile(t, filepath.Join(dir, ".localelint.yaml"), "require_locale_names: true\n")

	result, err := newService(t).Check(dir, application.CheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Invalid locale name: strings.old.json (expected a BCP 47 tag such as fr-FR)"}, result.Report.Errors)
}

func TestCheck_ReferenceInsideTranslationsIsNotACandidate(t *testing.T) {
	dir := project(t, "", map[string]string{
		"en.json": `{"a":"1"}`,
		"fr.json": `{"a":"x"}`,
	})
	writeFile(t, filepath.Join(dir, ".localelint.yaml"), "reference: translations/en.json\n")

	result, err := newService(t).Check(dir, application.CheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"fr.json"}, result.Files)
	assert.Equal(t, "en.json", result.Reference)
}

func TestCheck_InvalidConfigStillPersists(t *testing.T) {
	dir := project(t, `{"a":"1"}`, nil)
	writeFile(t, filepath.Join(dir, ".localelint.yaml"), "extensions: [.po]\n")

	result, err := newService(t).Check(dir, application.CheckRequest{})
	require.NoError(t, err)
	assert.False(t, result.Report.Valid)
	assert.Contains(t, result.Report.Errors[0], "Validation script error: loading config")
	assert.False(t, persisted(t, dir).Valid)
}

func TestCheck_OverridesApply(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "locales", "base.json"), `{"a":"1"}`)
	writeFile(t, filepath.Join(dir, "i18n", "fr.json"), `{"a":"x"}`)

	result, err := newService(t).Check(dir, application.CheckRequest{
		Reference: "locales/base.json",
		Dir:       "i18n",
		Out:       "out/results.json",
	})
	require.NoError(t, err)
	assert.True(t, result.Report.Valid)

	saved, err := report.New().Load(filepath.Join(dir, "out", "results.json"))
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, saved.Valid)
}

type panickySource struct{ domain.DocumentSource }

func (panickySource) Read(string) ([]byte, error) { panic("disk on fire") }

func TestCheck_PanicIsRecordedAndPersisted(t *testing.T) {
	dir := project(t, `{"a":"1"}`, nil)
	core, logs := observer.New(zapcore.ErrorLevel)

	svc := application.NewCheckService(config.New(), panickySource{source.New()}, parser.NewRegistry(), report.New(),
		application.WithLogger(zap.New(core)))

	result, err := svc.Check(dir, application.CheckRequest{})
	require.NoError(t, err)
	assert.False(t, result.Report.Valid)
	assert.Equal(t, []string{"Validation script error: disk on fire"}, result.Report.Errors)
	assert.Equal(t, 1, logs.FilterMessage("validation run panicked").Len())
	assert.False(t, persisted(t, dir).Valid)
}

type failingStore struct{ domain.ReportStore }

func (failingStore) Save(string, domain.RunReport) error { return errors.New("read-only filesystem") }

func TestCheck_PersistFailureIsReturned(t *testing.T) {
	dir := project(t, `{"a":"1"}`, nil)
	svc := application.NewCheckService(config.New(), source.New(), parser.NewRegistry(), failingStore{report.New()})

	_, err := svc.Check(dir, application.CheckRequest{})
	assert.EqualError(t, err, "read-only filesystem")
}

type fakeChanges struct {
	files []string
	err   error
}

func (f fakeChanges) ChangedFiles(_, _, _ string, _ []string) ([]string, error) { return f.files, f.err }
func (f fakeChanges) CommitHash(string) (string, error)                           { return "abc1234def", nil }

func TestCheck_SinceUsesChangeDetector(t *testing.T) {
	dir := project(t, `{"a":"1"}`, map[string]string{
		"de.json": `{}`,
		"fr.json": `{"a":"x"}`,
	})

	svc := newService(t, application.WithChangeDetector(fakeChanges{files: []string{"fr.json"}}))
	result, err := svc.Check(dir, application.CheckRequest{Since: "main"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fr.json"}, result.Files)
	assert.True(t, result.Report.Valid)
}

func TestCheck_SinceErrorIsRecorded(t *testing.T) {
	dir := project(t, `{"a":"1"}`, nil)

	svc := newService(t, application.WithChangeDetector(fakeChanges{err: errors.New("reference not found")}))
	result, err := svc.Check(dir, application.CheckRequest{Since: "nope"})
	require.NoError(t, err)
	assert.False(t, result.Report.Valid)
	assert.Contains(t, result.Report.Errors[0], "detecting changes since nope")
}

func TestCheck_ExplicitFilesBeatSince(t *testing.T) {
	dir := project(t, `{"a":"1"}`, map[string]string{"de.json": `{"a":"x"}`})

	svc := newService(t, application.WithChangeDetector(fakeChanges{files: []string{"fr.json"}}))
	result, err := svc.Check(dir, application.CheckRequest{Files: []string{"de.json"}, FilesSet: true, Since: "main"})
	require.NoError(t, err)
	assert.Equal(t, []string{"de.json"}, result.Files)
}

func TestCheck_HistoryRecordedWhenEnabled(t *testing.T) {
	dir := project(t, `{"a":"1"}`, map[string]string{"fr.json": `{}`})
	writeFile(t, filepath.Join(dir, ".localelint.yaml"), "history: true\n")

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(t,
		application.WithHistory(history.New()),
		application.WithChangeDetector(fakeChanges{}),
		application.WithClock(func() time.Time { return fixed }),
	)

	_, err := svc.Check(dir, application.CheckRequest{})
	require.NoError(t, err)

	entries, err := svc.History(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.RunEntry{
		Timestamp:    "2026-03-01T12:00:00Z",
		CommitHash:   "abc1234def",
		Valid:        false,
		FilesChecked: 1,
		ErrorCount:   1,
	}, entries[0])
}

func TestCheck_HistorySkippedByDefault(t *testing.T) {
	dir := project(t, `{"a":"1"}`, map[string]string{"fr.json": `{"a":"x"}`})
	svc := newService(t, application.WithHistory(history.New()))

	_, err := svc.Check(dir, application.CheckRequest{})
	require.NoError(t, err)

	entries, err := svc.History(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestValidateDocument(t *testing.T) {
	dir := project(t, `{"a":"1","b":"2"}`, nil)
	svc := newService(t)

	summary, err := svc.ValidateDocument(dir, "fr.json", []byte(`{"a":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "fail", summary.Status)
	assert.Equal(t, []string{"b"}, summary.MissingKeys)
	assert.Equal(t, []string{"Missing keys in fr.json: b"}, summary.Messages)

	_, err = os.Stat(filepath.Join(dir, domain.DefaultResultsPath))
	assert.True(t, os.IsNotExist(err), "validating a document must not persist a report")
}

func TestValidateDocument_ReferenceMissing(t *testing.T) {
	_, err := newService(t).ValidateDocument(t.TempDir(), "fr.json", []byte(`{}`))
	assert.EqualError(t, err, "Base translation file (en-US.json) not found")
}

func TestValidateDocument_UnsupportedFormat(t *testing.T) {
	dir := project(t, `{"a":"1"}`, nil)
	_, err := newService(t).ValidateDocument(dir, "fr.po", []byte(``))
	assert.ErrorContains(t, err, "unsupported document format")
}

func TestReferenceKeys(t *testing.T) {
	dir := project(t, `{"z":"1","a":"2","m":"3"}`, nil)

	keys, err := newService(t).ReferenceKeys(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, keys)
}

func TestLastReport(t *testing.T) {
	dir := project(t, `{"a":"1"}`, map[string]string{"fr.json": `{}`})
	svc := newService(t)

	none, err := svc.LastReport(dir)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = svc.Check(dir, application.CheckRequest{})
	require.NoError(t, err)

	last, err := svc.LastReport(dir)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, []string{"Missing keys in fr.json: a"}, last.Errors)
}
