// Package cmdutil holds the plumbing shared by the cmd/ programs: logging,
// console output and exit codes.
package cmdutil

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cityapp-admin/internal/docstore"
)

// Exit codes. Each failure kind gets its own so wrappers can tell them apart.
const (
	ExitOK              = 0
	ExitError           = 1
	ExitConfig          = 2
	ExitUnavailable     = 3
	ExitUnauthenticated = 4
	ExitPermission      = 5
	ExitNotFound        = 6
	ExitBatchLimit      = 7
	ExitCommitFailed    = 8
	ExitPartialCommit   = 9
)

var (
	okColor   = color.New(color.FgGreen, color.Bold).SprintFunc()
	errColor  = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor = color.New(color.FgYellow).SprintFunc()
)

// NewLogger builds a console logger at the given level ("debug", "info", ...).
func NewLogger(level string) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch docstore.KindOf(err) {
	case docstore.Unavailable:
		return ExitUnavailable
	case docstore.Unauthenticated:
		return ExitUnauthenticated
	case docstore.PermissionDenied:
		return ExitPermission
	case docstore.NotFound:
		return ExitNotFound
	case docstore.BatchLimit:
		return ExitBatchLimit
	case docstore.CommitFailed:
		return ExitCommitFailed
	case docstore.PartialCommit:
		return ExitPartialCommit
	default:
		return ExitError
	}
}

// Success prints a completion message to stdout.
func Success(format string, args ...any) {
	fmt.Println(okColor("✓ " + fmt.Sprintf(format, args...)))
}

// Warn prints a highlighted notice to stdout.
func Warn(format string, args ...any) {
	fmt.Println(warnColor(fmt.Sprintf(format, args...)))
}

// Exit logs err, prints it to stderr and exits with its exit code.
func Exit(log *zap.SugaredLogger, msg string, err error) {
	code := ExitCode(err)
	log.Errorw(msg, "error", err, "exit_code", code)
	_ = log.Sync()
	fmt.Fprintln(os.Stderr, errColor("✗ "+msg+": "+err.Error()))
	os.Exit(code)
}

// ExitConfigError reports a configuration or usage problem and exits.
func ExitConfigError(err error) {
	fmt.Fprintln(os.Stderr, errColor("✗ "+err.Error()))
	os.Exit(ExitConfig)
}
