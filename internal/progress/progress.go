package progress

// Stage identifies a high-level step of a request.
type Stage string

const (
	StageValidating  Stage = "validating"
	StageRequesting  Stage = "requesting"
	StageDownloading Stage = "downloading"
	StageSaving      Stage = "saving"
	StageCompleted   Stage = "completed"
	StageError       Stage = "error"
)

// Level classifies a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
)

// Update conveys progress or stage changes for a task.
// Percent is 0..100 when known; set to a negative value (e.g., -1) to mean unknown.
type Update struct {
	TaskID  string
	Stage   Stage
	Percent float64 // 0..100, or <0 if unknown
	Message string  // short human-friendly status line
}

// Notice is a non-blocking message shown to the user while a task runs,
// such as "End time adjusted to video duration.".
type Notice struct {
	TaskID string
	Level  Level
	Text   string
}

// Result is emitted once per task when it completes or fails.
type Result struct {
	TaskID     string
	OutputPath string
	Bytes      int64
	Err        error // nil on success
}

// Reporter is implemented by UI or any observer interested in progress events.
type Reporter interface {
	Update(u Update)
	Notice(n Notice)
	Result(r Result)
}

// Discard is a Reporter that drops everything.
type Discard struct{}

func (Discard) Update(Update) {}
func (Discard) Notice(Notice) {}
func (Discard) Result(Result) {}
