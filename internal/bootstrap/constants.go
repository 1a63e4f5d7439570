package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner and group)
	LogFilePermission = 0660
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// ServiceName is attached to every log record
	ServiceName = "slothouse"

	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept when a new session starts
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingSlotHouse   = "Starting SlotHouse"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Storage
// =============================================================================

const (
	LogMsgStorageReady         = "Wallet storage ready"
	ErrMsgFailedOpenStorage    = "failed to open wallet storage"
	ErrMsgFailedMigrateStorage = "failed to migrate wallet storage"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgClosingStorage       = "Closing wallet storage"

	// Component names for shutdown logging
	ComponentNameSlots       = "slots"
	ComponentNameRTPReporter = "rtp reporter"
)

// Shutdown log message format (component name will be prepended)
const (
	LogMsgServiceShutdownFailed = " shutdown failed"
)
