package cmd

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"fastcheck.dev/pkg/fastcheck/internal/adapter"
	"fastcheck.dev/pkg/fastcheck/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "fastcheck"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	pathFlagName             = "path"
	threadFlagName           = "thread"
	queueFlagName            = "queue"
	rulesFlagName            = "rules"
	excludeFlagName          = "exclude"
	maxSizeFlagName          = "max-size"
	skipUnresolvableFlagName = "skip-unresolvable"
	engineFlagName           = "engine"
	reportFlagName           = "report"
	tuiFlagName              = "tui"
	logFileFlagName          = "log-file"
	verboseFlagName          = "verbose"

	scanPathKey             = "scan.path"
	scanThreadsKey          = "scan.threads"
	scanQueueKey            = "scan.queue"
	scanExcludeKey          = "scan.exclude"
	scanMaxSizeKey          = "scan.max_size"
	scanSkipUnresolvableKey = "scan.skip_unresolvable"
	rulesDirsKey            = "rules.dirs"
	rulesEngineKey          = "rules.engine"
	outputReportKey         = "output.report"
	outputTUIKey            = "output.tui"

	defaultScanPath = "./"
	defaultEngine   = adapter.EngineBuiltin

	envPrefix = "FASTCHECK"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ""
	defaultLogLevel      = "warn"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(scanPathKey, defaultScanPath)
	viper.SetDefault(scanThreadsKey, strconv.Itoa(domain.DefaultWorkers))
	viper.SetDefault(scanQueueKey, 0)
	viper.SetDefault(scanExcludeKey, []string{})
	viper.SetDefault(scanMaxSizeKey, int64(0))
	viper.SetDefault(scanSkipUnresolvableKey, false)
	viper.SetDefault(rulesDirsKey, []string{})
	viper.SetDefault(rulesEngineKey, defaultEngine)
	viper.SetDefault(outputReportKey, "")
	viper.SetDefault(outputTUIKey, false)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return
		}

		slog.Warn("Failed to read config file", "file", configFileName, "error", err)
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger installs the global slog logger. It always writes to
// stderr and, when a log file is configured, to a rotating file as well.
func configureLogger(stderr io.Writer, logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	var logLevel slog.Level
	if verbose || viper.GetBool(logVerboseKey) {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelWarn)
	}

	out := stderr

	if strings.TrimSpace(logPath) != "" {
		out = io.MultiWriter(stderr, &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    viper.GetInt(logMaxSizeKey),
			MaxBackups: viper.GetInt(logMaxBackupsKey),
			MaxAge:     viper.GetInt(logMaxAgeKey),
			Compress:   viper.GetBool(logCompressKey),
		})
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		AddSource: logLevel <= slog.LevelDebug,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
