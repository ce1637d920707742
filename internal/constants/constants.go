// Package constants holds program-wide constants.
package constants

const (
	// ProgramIdentifier is the name the program reports in logs and notifications.
	ProgramIdentifier = "zettelkit"

	// BackupPrefix is the fixed prefix of every backup artifact name.
	BackupPrefix = "zettelkasten-"

	// BackupSuffix is the fixed suffix of every backup artifact name.
	BackupSuffix = ".tar.gz.age"

	// BackupTimeLayout is the timestamp layout embedded in backup names.
	BackupTimeLayout = "2006-01-02-1504"

	// WorkDir is the scratch directory name under the OS temp dir.
	WorkDir = "zettelkit-backup"
)
