package media

import (
	"sync"
	"time"

	"github.com/telefwd/tg-forwarder/internal/app/models"
)

type Direction string

const (
	DirectionDownload Direction = "download"
	DirectionUpload   Direction = "upload"
)

type State string

const (
	StatePending    State = "pending"
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateCancelled  State = "cancelled"
)

// Task is one in-flight media transfer. It is owned by the pipeline while
// queued or processing; ownership transfers to the caller once the result
// handle resolves.
type Task struct {
	id        string
	direction Direction
	message   *models.Message

	mu        sync.Mutex
	state     State
	progress  int
	errText   string
	buffer    []byte
	fileName  string
	startTime time.Time
	endTime   time.Time
}

func CreateTask(direction Direction, message *models.Message) *Task {
	now := time.Now()
	return &Task{
		id:        models.TaskID(message.ChatID, message.ID),
		direction: direction,
		message:   message,
		state:     StatePending,
		startTime: now,
		endTime:   now,
	}
}

func (t *Task) ID() string {
	return t.id
}

func (t *Task) Direction() Direction {
	return t.direction
}

func (t *Task) Message() *models.Message {
	return t.message
}

func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Task) SetState(state State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = state
	if state == StateCompleted || state == StateFailed || state == StateCancelled {
		t.endTime = time.Now()
	}
}

func (t *Task) Progress() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

// SetProgress clamps the value to [0, 100] and never moves backwards.
func (t *Task) SetProgress(progress int) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if progress > t.progress {
		t.progress = progress
	}
}

func (t *Task) Error() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errText
}

func (t *Task) SetError(errText string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errText = errText
}

func (t *Task) SetBuffer(data []byte, fileName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buffer = data
	t.fileName = fileName
}

func (t *Task) Buffer() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buffer
}

func (t *Task) FileName() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fileName
}

func (t *Task) StartTime() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startTime
}

func (t *Task) EndTime() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.endTime
}

func (t *Task) DurationMS() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.endTime.Sub(t.startTime).Milliseconds()
}

// GroupTask aggregates the tasks belonging to one multi-item post. Members
// are kept in insertion order; callers insert in ascending message-id order.
type GroupTask struct {
	key string

	mu    sync.Mutex
	tasks []*Task
}

func CreateGroupTask(key string) *GroupTask {
	return &GroupTask{key: key}
}

func (g *GroupTask) Key() string {
	return g.key
}

func (g *GroupTask) AddTask(task *Task) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tasks = append(g.tasks, task)
}

func (g *GroupTask) Tasks() []*Task {
	g.mu.Lock()
	defer g.mu.Unlock()
	cp := make([]*Task, len(g.tasks))
	copy(cp, g.tasks)
	return cp
}

func (g *GroupTask) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.tasks)
}

func (g *GroupTask) CompletedCount() int {
	return g.countState(StateCompleted)
}

func (g *GroupTask) FailedCount() int {
	return g.countState(StateFailed)
}

func (g *GroupTask) countState(state State) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	count := 0
	for _, task := range g.tasks {
		if task.State() == state {
			count++
		}
	}
	return count
}

// IsCompleted reports whether every member has reached a terminal
// Completed or Failed state.
func (g *GroupTask) IsCompleted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, task := range g.tasks {
		switch task.State() {
		case StateCompleted, StateFailed:
		default:
			return false
		}
	}
	return true
}

// OverallProgress is the arithmetic mean of member progress.
func (g *GroupTask) OverallProgress() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.tasks) == 0 {
		return 0
	}

	total := 0
	for _, task := range g.tasks {
		total += task.Progress()
	}
	return total / len(g.tasks)
}

// Caption returns the first non-empty caption among members in insertion order.
func (g *GroupTask) Caption() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, task := range g.tasks {
		if caption := task.Message().Body(); caption != "" {
			return caption
		}
	}
	return ""
}
