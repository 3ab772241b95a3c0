package constants

const (
	AppName            = "planhub"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/planhub"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// TimestampFormat matches the millisecond ISO-8601 instants stored in addedAt
	TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

	// Persistence slot names, one per collection
	SlotTodos     = "productivityHub_todos"
	SlotHabits    = "productivityHub_habits"
	SlotResources = "productivityHub_resources"

	// Todo defaults
	DefaultPriority     = "medium"
	DefaultStartTime    = "09:00"
	DefaultDurationMin  = 60
	MinDurationMin      = 15
	DefaultResourceName = "Untitled Resource"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "planhub-"
	BackupFileSuffix = ".json"

	// Data directory layout
	SlotsDirName     = "slots"
	DatabaseFileName = "planhub.db"
	LogsDirName      = "logs"
	LogFileName      = "planhub.log"
	LockfileName     = "planhub.lock"

	// Environment
	EnvPrefix       = "PLANHUB"
	EnvDBConnection = "PLANHUB_DB_CONNECTION"

	// Storage drivers
	DriverDiskv    = "diskv"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// VideoMarkers are the URL substrings that classify a resource as a video.
var VideoMarkers = []string{"youtube", "youtu.be"}
