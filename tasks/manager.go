package tasks

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/rover/command"
	"go.viam.com/rover/logging"
	"go.viam.com/rover/navigation"
)

type queued struct {
	task Task
	seq  uint64
}

// Manager owns the ordered task queue. The head of the queue is the only active task; the rest
// wait their turn. Tasks are ordered by priority (lower first) and then by insertion.
type Manager struct {
	logger logging.Logger

	queue []queued
	seq   uint64

	// preempted was suspended by a higher priority Add and still needs its Suspended handler run.
	preempted Task
	// autoResume holds tasks suspended by preemption; they resume once they are the head again.
	autoResume map[Task]bool
}

// NewManager returns an empty Manager.
func NewManager(logger logging.Logger) *Manager {
	return &Manager{
		logger:     logger,
		autoResume: map[Task]bool{},
	}
}

// Add queues a task. A task that outranks a started head preempts it: the head is suspended and
// resumes automatically once it is at the front of the queue again.
func (m *Manager) Add(t Task) error {
	if t.Status() == Complete {
		return errors.Wrapf(ErrInvalidTransition, "cannot queue completed task %s", t)
	}

	m.seq++
	entry := queued{task: t, seq: m.seq}
	idx := sort.Search(len(m.queue), func(i int) bool {
		return m.queue[i].task.Priority() > t.Priority()
	})

	if idx == 0 && len(m.queue) > 0 {
		head := m.queue[0].task
		if head.Status() == InProgress {
			if err := head.Suspend(); err != nil {
				return err
			}
			m.preempted = head
			m.autoResume[head] = true
			m.logger.Infow("task preempted", "task", head.String(), "by", t.String())
		}
	}

	m.queue = append(m.queue, queued{})
	copy(m.queue[idx+1:], m.queue[idx:])
	m.queue[idx] = entry
	m.logger.Debugw("task added", "task", t.String(), "priority", t.Priority(), "position", idx)
	return nil
}

// HasTasks is true while the queue is not exhausted.
func (m *Manager) HasTasks() bool {
	return len(m.queue) > 0
}

// Len returns the number of queued tasks, the active one included.
func (m *Manager) Len() int {
	return len(m.queue)
}

// Current returns the active task, or nil when the queue is empty.
func (m *Manager) Current() Task {
	if len(m.queue) == 0 {
		return nil
	}
	return m.queue[0].task
}

// Pending returns the types of all queued tasks in execution order.
func (m *Manager) Pending() []Type {
	return lo.Map(m.queue, func(q queued, _ int) Type {
		return q.task.Type()
	})
}

// SuspendCurrent suspends the active task. It emits STOP every tick until ResumeCurrent.
func (m *Manager) SuspendCurrent() error {
	current := m.Current()
	if current == nil {
		return errors.New("no active task to suspend")
	}
	return current.Suspend()
}

// ResumeCurrent resumes a suspended active task.
func (m *Manager) ResumeCurrent() error {
	current := m.Current()
	if current == nil {
		return errors.New("no active task to resume")
	}
	delete(m.autoResume, current)
	return current.Resume()
}

// ExecuteCurrentTask runs one tick of the active task and returns the state the robot should be
// in. `current` is the robot's present state and is returned unchanged when the task has no
// opinion. When the task completes the queue advances in the same call. A task whose handler
// fails is evicted and the robot is stopped; the error never leaves the Manager.
func (m *Manager) ExecuteCurrentTask(
	worldMap *navigation.Map,
	nav *navigation.Navigator,
	current command.State,
) command.State {
	env := &Env{Map: worldMap, Navigator: nav, NextState: current}

	if m.preempted != nil {
		preempted := m.preempted
		m.preempted = nil
		if err := preempted.Suspended(env); err != nil {
			m.logger.Errorw("suspending preempted task failed", "task", preempted.String(), "error", err)
		}
		return command.Stop
	}

	if len(m.queue) == 0 {
		return command.Stop
	}

	head := m.queue[0].task
	if head.Status() == Suspended && m.autoResume[head] {
		delete(m.autoResume, head)
		if err := head.Resume(); err != nil {
			m.evict(err)
			return command.Stop
		}
		m.logger.Infow("task resumed", "task", head.String())
	}

	if err := Dispatch(head, env); err != nil {
		m.evict(err)
		return command.Stop
	}

	if head.Status() == Complete {
		if err := head.Complete(env); err != nil {
			m.evict(err)
			return env.NextState
		}
		m.pop()
		if head.Err() != nil {
			m.logger.Warnw("task finished with error", "task", head.String(), "error", head.Err())
		} else {
			m.logger.Infow("task complete", "task", head.String(), "remaining", len(m.queue))
		}
		m.promote(env.NextType)
	}

	return env.NextState
}

func (m *Manager) pop() {
	delete(m.autoResume, m.queue[0].task)
	m.queue = m.queue[1:]
}

func (m *Manager) evict(err error) {
	head := m.queue[0].task
	m.logger.Errorw("evicting task", "task", head.String(), "status", head.Status(), "error", err)
	m.pop()
}

// promote moves the first queued task of type next to the head of the queue.
func (m *Manager) promote(next Type) {
	if next == TypeNone {
		return
	}
	_, idx, found := lo.FindIndexOf(m.queue, func(q queued) bool {
		return q.task.Type() == next
	})
	if !found || idx == 0 {
		return
	}
	entry := m.queue[idx]
	copy(m.queue[1:idx+1], m.queue[:idx])
	m.queue[0] = entry
	m.logger.Debugw("promoted follow up task", "task", entry.task.String())
}
