package tasks

import (
	"time"

	"github.com/google/uuid"
)

type TaskType string

const (
	TaskTypeHarvestAuthority TaskType = "harvest_authority"
)

type Task struct {
	ID        string
	Type      TaskType
	Name      string
	StartedAt *time.Time
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType, name string) Task {
	return Task{
		ID:   uuid.NewString(),
		Type: taskType,
		Name: name,
	}
}
