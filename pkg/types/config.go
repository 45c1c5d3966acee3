// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Collection names shared by the record sources, the persistence layer and
// the journal.
const (
	CollectionResearchers   = "researchers"
	CollectionProjects      = "projects"
	CollectionMatches       = "matches"
	CollectionDecisions     = "decisions"
	CollectionLogs          = "logs"
	CollectionAnnouncements = "announcements"
	CollectionMessages      = "messages"
)

// SourceFiles names the file backing each collection, relative to the data
// directory. Files ending in .yaml or .yml are decoded as YAML, anything
// else as JSON.
type SourceFiles struct {
	Researchers   string `json:"researchers" yaml:"researchers" mapstructure:"researchers"`
	Projects      string `json:"projects" yaml:"projects" mapstructure:"projects"`
	Matches       string `json:"matches" yaml:"matches" mapstructure:"matches"`
	Decisions     string `json:"decisions" yaml:"decisions" mapstructure:"decisions"`
	Logs          string `json:"logs" yaml:"logs" mapstructure:"logs"`
	Announcements string `json:"announcements" yaml:"announcements" mapstructure:"announcements"`
	Messages      string `json:"messages" yaml:"messages" mapstructure:"messages"`
}

// ByCollection returns the file name for a collection, or "" if unknown.
func (f SourceFiles) ByCollection(collection string) string {
	switch collection {
	case CollectionResearchers:
		return f.Researchers
	case CollectionProjects:
		return f.Projects
	case CollectionMatches:
		return f.Matches
	case CollectionDecisions:
		return f.Decisions
	case CollectionLogs:
		return f.Logs
	case CollectionAnnouncements:
		return f.Announcements
	case CollectionMessages:
		return f.Messages
	}
	return ""
}

// DataConfig holds settings for loading the record sources.
type DataConfig struct {
	// Dir is the directory holding every source file.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	Files SourceFiles `json:"files" yaml:"files" mapstructure:"files"`

	// PhotoPath is the virtual path under which bare image filenames are
	// served (e.g. "/akademisyen_fotograflari").
	PhotoPath string `json:"photo_path" yaml:"photo_path" mapstructure:"photo_path"`

	// HeaderToken is the researcher-field value that marks a stray header
	// row in match exports.
	HeaderToken string `json:"header_token" yaml:"header_token" mapstructure:"header_token"`
}

// PersistenceBackend selects where mutated collections are written.
type PersistenceBackend string

const (
	BackendFile   PersistenceBackend = "file"
	BackendSQLite PersistenceBackend = "sqlite"
)

// PersistenceConfig holds settings for the write-through store.
type PersistenceConfig struct {
	Backend PersistenceBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// SQLitePath is the database file used by the sqlite backend.
	SQLitePath string `json:"sqlite_path" yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string `json:"host" yaml:"host" mapstructure:"host"`
	Port int    `json:"port" yaml:"port" mapstructure:"port"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json or console.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups every setting of the service.
type Config struct {
	Data        DataConfig        `json:"data" yaml:"data" mapstructure:"data"`
	Persistence PersistenceConfig `json:"persistence" yaml:"persistence" mapstructure:"persistence"`
	Server      ServerConfig      `json:"server" yaml:"server" mapstructure:"server"`
	Log         LogConfig         `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the settings used when no config file or
// environment override is present.
func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			Dir: "data",
			Files: SourceFiles{
				Researchers:   "academicians_merged.json",
				Projects:      "eu_projects_merged_tum.json",
				Matches:       "n8n_akademisyen_proje_onerileri.json",
				Decisions:     "decisions.json",
				Logs:          "access_logs.json",
				Announcements: "announcements.json",
				Messages:      "messages.json",
			},
			PhotoPath:   "/akademisyen_fotograflari",
			HeaderToken: "academician_name",
		},
		Persistence: PersistenceConfig{
			Backend:    BackendFile,
			SQLitePath: "data/project-match.db",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 8000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
