package sink

import "github.com/aretw0/sonda/pkg/domain"

// Channel is the leveled entry point a record is written to.
type Channel int

const (
	LevelInfo Channel = iota
	LevelWarn
	LevelError
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Level picks the sink channel of a record. Next records follow the call-site
// severity (INFO→info, DEBUG→warn, ERROR→error), Error records always go to
// error, every other lifecycle record goes to info.
func Level(rec domain.LogRecord) Channel {
	switch rec.Kind {
	case domain.KindError:
		return LevelError
	case domain.KindNext:
		switch rec.Severity {
		case domain.SeverityError:
			return LevelError
		case domain.SeverityDebug:
			return LevelWarn
		}
	}
	return LevelInfo
}
