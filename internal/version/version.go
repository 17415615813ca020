package version

import "fmt"

// Заполняются при сборке через ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersion возвращает версию сборки.
func GetVersion() string { return version }

// GetCommit возвращает хэш коммита сборки.
func GetCommit() string { return commit }

// GetDate возвращает дату сборки.
func GetDate() string { return date }

// Info возвращает все сведения о сборке разом.
func Info() (string, string, string) {
	return version, commit, date
}

// String возвращает человекочитаемое описание сборки.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}
